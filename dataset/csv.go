package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spektr-org/salesdesk/engine"
)

// ============================================================================
// CSV PARSER: CSV bytes → []engine.Record
// ============================================================================
// The caller reads the bytes from wherever they live. Columns outside the
// schema are skipped; measure cells that do not parse are left unset.
// ============================================================================

// Parse converts CSV bytes into records using sch.
func Parse(data []byte, sch Schema) ([]engine.Record, error) {
	headers, rows, err := readAll(data, 0)
	if err != nil {
		return nil, err
	}

	dims := make(map[string]bool, len(sch.Dimensions))
	for _, d := range sch.Dimensions {
		dims[d.Key] = true
	}
	measures := make(map[string]bool, len(sch.Measures))
	synthetic := false
	for _, m := range sch.Measures {
		if m.Synthetic {
			synthetic = synthetic || m.Key == RecordCount
			continue
		}
		measures[m.Key] = true
	}

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(h)
	}

	records := make([]engine.Record, 0, len(rows))
	for _, row := range rows {
		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}
		for i, val := range row {
			if i >= len(keys) {
				break
			}
			key := keys[i]
			val = strings.TrimSpace(val)

			if key == sch.IDColumn {
				rec.ID = val
			}
			switch {
			case dims[key]:
				rec.Dimensions[key] = val
			case measures[key]:
				if f, ok := parseNumber(val); ok {
					rec.Measures[key] = f
				}
			}
		}
		if synthetic {
			rec.Measures[RecordCount] = 1
		}
		records = append(records, rec)
	}
	return records, nil
}

// Load discovers a schema from data and parses it into a RecordView.
func Load(data []byte, opts ...DiscoverOptions) (engine.RecordView, *Schema, error) {
	sch, err := Discover(data, opts...)
	if err != nil {
		return nil, nil, err
	}
	records, err := Parse(data, *sch)
	if err != nil {
		return nil, nil, err
	}
	view := engine.NewSliceView(records)

	// Facet options cover every row, not just the discovery sample.
	for i, d := range sch.Dimensions {
		if d.Facet {
			opts := engine.UniqueValues(view, d.Key)
			slices.Sort(opts)
			sch.Dimensions[i].Options = opts
		}
	}
	return view, sch, nil
}

// readAll reads the header and up to limit rows (0 = all). Malformed rows
// are skipped.
func readAll(data []byte, limit int) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: CSV has no header", ErrEmpty)
		}
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for limit <= 0 || len(rows) < limit {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

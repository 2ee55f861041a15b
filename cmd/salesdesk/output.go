package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/dataset"
	"github.com/spektr-org/salesdesk/engine"
)

// Output formats.
const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatTable  = "table"
	formatCSV    = "csv"
)

// ============================================================================
// OUTPUT TYPES
// ============================================================================

type column struct {
	Key   string
	Label string
}

type viewOutput struct {
	List    string             `json:"list"`
	Count   int                `json:"count"`
	Total   int                `json:"total"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Records []map[string]any   `json:"records"`
}

func catalogColumns(c crm.Catalog) []column {
	cols := make([]column, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = column{Key: col.Key, Label: col.Label}
	}
	return cols
}

func schemaColumns(s *dataset.Schema) []column {
	var cols []column
	for _, d := range s.Dimensions {
		cols = append(cols, column{Key: d.Key, Label: d.Label})
	}
	for _, m := range s.Measures {
		if !m.Synthetic {
			cols = append(cols, column{Key: m.Key, Label: m.Label})
		}
	}
	return cols
}

func isJSON(format string) bool {
	return format == formatJSON || format == formatPretty
}

// ============================================================================
// RESULT WRITERS
// ============================================================================

func writeResult(w io.Writer, name string, res *engine.Result, cols []column, format string) error {
	if isJSON(format) {
		return writeJSON(w, viewOutput{
			List:    name,
			Count:   res.Count,
			Total:   res.Total,
			Metrics: res.Metrics,
			Records: records(res.View, cols),
		}, format)
	}

	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	td := engine.BuildTable(name, res.View, keys)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Label
	}
	if err := writeRows(w, headers, td.Rows, format); err != nil {
		return err
	}
	if format == formatTable {
		fmt.Fprintf(w, "%s of %s records\n", engine.FormatInt(res.Count), engine.FormatInt(res.Total))
	}
	return nil
}

// records flattens the view into id plus one entry per column. Absent values
// are null.
func records(view engine.RecordView, cols []column) []map[string]any {
	out := make([]map[string]any, view.Len())
	for i := range out {
		rec := map[string]any{"id": view.ID(i)}
		for _, c := range cols {
			switch v := view.Field(i, c.Key); v.Kind {
			case engine.KindNumber:
				rec[c.Key] = v.Num
			case engine.KindString:
				rec[c.Key] = v.Str
			default:
				rec[c.Key] = nil
			}
		}
		out[i] = rec
	}
	return out
}

type metricsOutput struct {
	Metrics   map[string]float64 `json:"metrics"`
	Breakdown *engine.TableData  `json:"breakdown,omitempty"`
}

// writeMetrics prints the metrics, then the group breakdown if the list has
// one. CSV carries the metrics only.
func writeMetrics(w io.Writer, res *engine.Result, breakdown *engine.TableData, format string) error {
	if isJSON(format) {
		return writeJSON(w, metricsOutput{Metrics: res.Metrics, Breakdown: breakdown}, format)
	}
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, formatMetric(res.Metrics[name])}
	}
	if err := writeRows(w, []string{"Metric", "Value"}, rows, format); err != nil {
		return err
	}
	if breakdown == nil || format != formatTable {
		return nil
	}
	return writeTable(w, breakdown)
}

// writeTable renders a built table with its title and summary row.
func writeTable(w io.Writer, td *engine.TableData) error {
	headers := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		headers[i] = c.Label
	}
	rows := td.Rows
	if td.Summary != nil {
		total := make([]string, len(td.Columns))
		total[0] = td.Summary.Label
		for i, c := range td.Columns[1:] {
			total[i+1] = td.Summary.Values[c.Key]
		}
		rows = append(slices.Clip(rows), total)
	}
	fmt.Fprintf(w, "\n%s\n", td.Title)
	return writeRows(w, headers, rows, formatTable)
}

func formatMetric(v float64) string {
	if v == float64(int64(v)) {
		return engine.FormatInt(int(v))
	}
	return fmt.Sprintf("%.2f", engine.Round(v, 2))
}

// writeRows renders a header and rows as a table or CSV.
func writeRows(w io.Writer, headers []string, rows [][]string, format string) error {
	switch format {
	case formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(headers); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	case formatTable:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(headers...).
			Rows(rows...)
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join([]string{formatJSON, formatPretty, formatTable, formatCSV}, ", "))
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == formatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

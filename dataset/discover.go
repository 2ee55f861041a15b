package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ============================================================================
// AUTO-DISCOVERY: Heuristic column classification
// ============================================================================
// Per column:
//   1. Sample values → detect type (numeric, date, bool, string)
//   2. Type + cardinality → role (id, dimension, measure, skip)
//   3. Low cardinality dimensions become facets; the rest are search text
//   4. Add the synthetic record_count measure
// ============================================================================

// ErrEmpty is returned for CSV input without a header or without rows.
var ErrEmpty = errors.New("empty dataset")

// DiscoverOptions controls discovery.
type DiscoverOptions struct {
	SampleSize int    // Max rows to inspect (0 = all)
	Name       string // Dataset name override
	// MaxFacetValues is the distinct-value ceiling for a facet. Default 12.
	MaxFacetValues int
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{SampleSize: 1000, MaxFacetValues: 12}
}

// Discover builds a Schema by inspecting CSV data.
func Discover(data []byte, opts ...DiscoverOptions) (*Schema, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
		if opt.MaxFacetValues <= 0 {
			opt.MaxFacetValues = 12
		}
	}

	headers, rows, err := readAll(data, opt.SampleSize)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: CSV has no data rows", ErrEmpty)
	}

	s := &Schema{Name: opt.Name}
	if s.Name == "" {
		s.Name = "Discovered Dataset"
	}

	for i, h := range headers {
		col := analyzeColumn(h, i, rows)
		switch col.role {
		case roleID:
			if s.IDColumn == "" {
				s.IDColumn = col.key
			}
			// Identifiers stay searchable.
			s.Dimensions = append(s.Dimensions, col.toField(false))
		case roleDimension:
			facet := col.uniqueCount <= opt.MaxFacetValues && col.uniqueCount < len(rows)
			s.Dimensions = append(s.Dimensions, col.toField(facet))
		case roleMeasure:
			s.Measures = append(s.Measures, col.toField(false))
		case roleSkipped:
			s.Skipped = append(s.Skipped, Skip{Column: col.header, Reason: col.skipReason})
		}
	}

	s.Measures = append(s.Measures, Field{Key: RecordCount, Label: "Record Count", Synthetic: true})
	return s, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnRole int

const (
	roleDimension columnRole = iota
	roleMeasure
	roleID
	roleSkipped
)

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeDate
	typeBool
)

type columnAnalysis struct {
	header      string
	key         string
	colType     columnType
	role        columnRole
	skipReason  string
	uniqueCount int
	hasDecimals bool
	samples     []string
}

func analyzeColumn(header string, index int, rows [][]string) columnAnalysis {
	col := columnAnalysis{header: header, key: toSnakeCase(header)}

	values := make([]string, 0, len(rows))
	unique := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[index])
		if isNull(v) {
			continue
		}
		values = append(values, v)
		unique[v] = true
	}
	col.uniqueCount = len(unique)

	if len(values) == 0 {
		col.role = roleSkipped
		col.skipReason = "All values are empty/null"
		return col
	}

	col.samples = collectSamples(unique, 10)
	col.colType = detectType(values)
	if col.colType == typeNumeric {
		col.hasDecimals = slices.ContainsFunc(values, func(v string) bool { return strings.Contains(v, ".") })
	}
	col.classifyRole(len(rows))
	return col
}

func (col *columnAnalysis) classifyRole(totalRows int) {
	allUnique := col.uniqueCount == totalRows && totalRows > 1

	switch col.colType {
	case typeNumeric:
		if allUnique && !col.hasDecimals && looksLikeID(col.key) {
			col.role = roleID
			return
		}
		col.role = roleMeasure
	case typeString:
		if allUnique && looksLikeID(col.key) {
			col.role = roleID
			return
		}
		col.role = roleDimension
	default:
		col.role = roleDimension
	}
}

func (col *columnAnalysis) toField(facet bool) Field {
	return Field{
		Key:          col.key,
		Label:        toDisplayName(col.header),
		SampleValues: col.samples,
		Facet:        facet && col.colType != typeDate,
		IsTemporal:   col.colType == typeDate,
	}
}

// looksLikeID matches id, *_id, *_key, *_no and *_code column keys.
func looksLikeID(key string) bool {
	if key == "id" || key == "key" {
		return true
	}
	for _, suffix := range []string{"_id", "_key", "_no", "_code"} {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// detectType requires 80%+ of non-null values to match numeric/date/bool.
func detectType(values []string) columnType {
	var numCount, dateCount, boolCount int
	for _, v := range values {
		if isNumeric(v) {
			numCount++
		}
		if isDate(v) {
			dateCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	switch {
	case boolCount >= threshold && boolCount > 0 && numCount < len(values):
		return typeBool
	case dateCount >= threshold && dateCount > 0:
		return typeDate
	case numCount >= threshold && numCount > 0:
		return typeNumeric
	}
	return typeString
}

func isNull(v string) bool {
	switch v {
	case "", "null", "NULL", "N/A", "n/a":
		return true
	}
	return false
}

// parseNumber accepts "1,234.56", currency-prefixed and negative values.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	for _, sym := range []string{"₹", "$", "€", "£"} {
		s = strings.TrimPrefix(s, sym)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

func isNumeric(s string) bool {
	_, ok := parseNumber(s)
	return ok
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"Jan-2006",
	"January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func isDate(s string) bool {
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(s))
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
			b.WriteRune('_')
		}
		b.WriteRune(r)
	}

	out := strings.ToLower(b.String())
	out = strings.NewReplacer(" ", "_", "-", "_", ".", "_").Replace(out)
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// toDisplayName cleans a header for display: "story_points" → "Story Points".
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// collectSamples returns up to max values in sorted order.
func collectSamples(unique map[string]bool, max int) []string {
	samples := make([]string, 0, len(unique))
	for v := range unique {
		samples = append(samples, v)
	}
	slices.Sort(samples)
	if len(samples) > max {
		samples = samples[:max]
	}
	return samples
}

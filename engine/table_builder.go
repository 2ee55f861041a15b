package engine

import (
	"strconv"
)

// ============================================================================
// TABLE BUILDER: Produces TableData from a derived view or groups
// ============================================================================
// Column discovery uses view.DimensionKeys()/MeasureKeys() unless the caller
// names columns explicitly.
// ============================================================================

// BuildTable produces a row-per-record table. Empty columns means every
// dimension followed by every measure.
func BuildTable(title string, view RecordView, columns []string) *TableData {
	if len(columns) == 0 {
		columns = append(append([]string{}, view.DimensionKeys()...), view.MeasureKeys()...)
	}
	measures := keySet(view.MeasureKeys())

	cols := make([]Column, 0, len(columns))
	for _, key := range columns {
		col := Column{Key: key, Label: LabelForField(key), Type: "text", Align: "left"}
		if measures[key] || numericField(view, key) {
			col.Type, col.Align = "number", "right"
		}
		cols = append(cols, col)
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(cols))
		for _, col := range cols {
			switch v := view.Field(i, col.Key); {
			case measures[col.Key]:
				row = append(row, fmtNum(view.Measure(i, col.Key)))
			case v.Kind == KindNumber:
				row = append(row, fmtNum(v.Num))
			default:
				row = append(row, v.Str)
			}
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Columns: cols,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Records",
			Values: map[string]string{"count": FormatInt(view.Len())},
		},
	}
}

// numericField reports whether the first present value of a non-measure
// field (a sort-only order field) is a number.
func numericField(view RecordView, key string) bool {
	for i := 0; i < view.Len(); i++ {
		switch view.Field(i, key).Kind {
		case KindNumber:
			return true
		case KindString:
			return false
		}
	}
	return false
}

// BuildGroupTable produces one row per group with its count and value.
func BuildGroupTable(title, dimension string, groups []Group) *TableData {
	columns := []Column{
		{Key: "group", Label: LabelForField(dimension), Type: "text", Align: "left"},
		{Key: "count", Label: "Count", Type: "number", Align: "right"},
		{Key: "value", Label: "Value", Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(groups))
	var totalValue float64
	var totalCount int
	for _, g := range groups {
		rows = append(rows, []string{g.Label, strconv.Itoa(g.Count), fmtNum(g.Value)})
		totalValue += g.Value
		totalCount += g.Count
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: "Total",
			Values: map[string]string{
				"count": strconv.Itoa(totalCount),
				"value": fmtNum(totalValue),
			},
		},
	}
}

// fmtNum prints whole numbers without decimals, fractions with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(Round(v, 2), 'f', 2, 64)
}

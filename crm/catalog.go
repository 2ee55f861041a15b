// Package crm holds the sales-CRM record types, their seed data and the
// engine bindings for each list page.
package crm

import "github.com/spektr-org/salesdesk/engine"

// ============================================================================
// CATALOG: What a list page can filter, search, sort and summarize
// ============================================================================
// A Catalog is declared once per collection. The presentation layer renders
// its facets as chips, its columns as a table header, and passes its
// TextFields into every engine.Criteria it builds.
// ============================================================================

// Kind tells the presentation layer how to format a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindMoney
	KindPercent
)

// Facet is one multi-select (or single-select) filter group.
type Facet struct {
	Key     string
	Label   string
	Options []string
	// Single marks an "All"-or-one selector rather than chips.
	Single bool
}

// Column is one list column.
type Column struct {
	Key      string
	Label    string
	Kind     Kind
	Sortable bool
}

// Floor is a minimum-value slider over a measure.
type Floor struct {
	Key   string
	Label string
	Max   float64
	Step  float64
}

// Catalog declares the list behaviour of one collection.
type Catalog struct {
	Facets     []Facet
	TextFields []string
	Columns    []Column
	Floors     []Floor
	Metrics    []engine.Metric
}

// Facet returns the facet named key.
func (c Catalog) Facet(key string) (Facet, bool) {
	for _, f := range c.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return Facet{}, false
}

// SortableColumns returns the columns that accept a sort.
func (c Catalog) SortableColumns() []Column {
	var out []Column
	for _, col := range c.Columns {
		if col.Sortable {
			out = append(out, col)
		}
	}
	return out
}

// ColumnKeys returns the column keys in display order.
func (c Catalog) ColumnKeys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

// Shared enumerations.
var (
	Regions = []string{"North", "South", "East", "West"}
	Owners  = []string{"Arjun Mehta", "Priya Sharma", "Vikram Singh", "Sarah Khan"}
)

// boolDim renders a flag as the on_hold facet value.
func boolDim(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

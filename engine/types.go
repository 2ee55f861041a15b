package engine

import "slices"

// ============================================================================
// SALESDESK ENGINE TYPES: Filter, Sort, Aggregate
// ============================================================================
// The engine owns no state. Every call receives the source view plus the
// caller's Criteria and returns freshly derived output.
// ============================================================================

// ============================================================================
// RECORD: Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Used by SliceView for ad-hoc datasets (CSV, tests). Typed collections go
// through DomainAdapter instead.
type Record struct {
	ID         string             `json:"id,omitempty"`
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// CRITERIA: Caller-owned filter / query / sort state
// ============================================================================

// Direction is the sort direction of a Sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort is the single active (field, direction) pair.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Criteria is everything a view computation depends on besides the records.
//
// Facets:     AND across facets, OR within a facet. Empty = all.
// Query:      case-insensitive substring over TextFields (OR). Empty = all.
// TextFields: declared per page, never discovered from the data.
// Floors:     measure >= floor (e.g. minimum seats). Absent = no floor.
// Sort:       nil preserves insertion order.
type Criteria struct {
	Facets     FacetSelections    `json:"facets,omitempty"`
	Query      string             `json:"query,omitempty"`
	TextFields []string           `json:"textFields,omitempty"`
	Floors     map[string]float64 `json:"floors,omitempty"`
	Sort       *Sort              `json:"sort,omitempty"`
}

// FacetSelections maps a facet field to its selected values.
type FacetSelections map[string][]string

// HasFilter returns true if a specific facet filter is set.
func (f FacetSelections) HasFilter(facet string) bool {
	return len(f[facet]) > 0
}

// IsEmpty returns true if no facet filter is set.
func (f FacetSelections) IsEmpty() bool {
	for _, vals := range f {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of selected values across facets.
func (f FacetSelections) Count() int {
	n := 0
	for _, vals := range f {
		n += len(vals)
	}
	return n
}

// Toggle returns a new FacetSelections with value toggled in facet.
// The receiver and its slices are left untouched.
func (f FacetSelections) Toggle(facet, value string) FacetSelections {
	next := make(FacetSelections, len(f)+1)
	for k, v := range f {
		next[k] = v
	}
	next[facet] = ToggleMembership(f[facet], value)
	return next
}

// Set returns a new FacetSelections with facet replaced by values.
func (f FacetSelections) Set(facet string, values ...string) FacetSelections {
	next := make(FacetSelections, len(f)+1)
	for k, v := range f {
		next[k] = v
	}
	next[facet] = slices.Clone(values)
	return next
}

// ============================================================================
// METRICS: Declared aggregate summaries
// ============================================================================

// Scope decides which collection a metric is computed over.
type Scope int

const (
	// ScopeFull computes over the whole source collection (portfolio KPIs).
	ScopeFull Scope = iota
	// ScopeFiltered computes over the derived view.
	ScopeFiltered
)

// Reducer names an aggregation.
type Reducer string

const (
	ReduceSum        Reducer = "sum"
	ReduceCount      Reducer = "count"
	ReduceRatio      Reducer = "ratio"   // Σ measure / Σ denominator
	ReducePercent    Reducer = "percent" // ratio × 100
	ReduceCountWhere Reducer = "count_where"
	ReduceAvg        Reducer = "avg"
	ReduceMax        Reducer = "max"
	ReduceMin        Reducer = "min"
)

// Predicate reports whether the record at index i of view matches.
type Predicate func(view RecordView, i int) bool

// Metric declares one named aggregate. Scope is fixed per metric.
type Metric struct {
	Name        string
	Scope       Scope
	Reducer     Reducer
	Measure     string    // sum/avg/max/min operand, ratio numerator
	Denominator string    // ratio/percent denominator
	Where       Predicate // count_where
}

// ============================================================================
// GROUP: Per-dimension-value aggregate
// ============================================================================

// Group is one bucket of GroupAndAggregate.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"`
}

// ============================================================================
// CHART / TABLE TYPES: Render-ready output
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType string        `json:"chartType"`
	Title     string        `json:"title"`
	XAxis     string        `json:"xAxis,omitempty"`
	YAxis     string        `json:"yAxis,omitempty"`
	Series    []ChartSeries `json:"series"`
	Colors    []string      `json:"colors,omitempty"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides aggregate values for a table footer.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// Result bundles a derived view with its metrics.
type Result struct {
	View    RecordView         `json:"-"`
	Count   int                `json:"count"`
	Total   int                `json:"total"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Package dataset turns CSV exports into engine records, so ad-hoc
// collections can be filtered, sorted and summarized like the seeded ones.
package dataset

// ============================================================================
// SCHEMA: Describes the shape of a CSV dataset
// ============================================================================
// Discovered from the data (Discover) or written by hand. Parse uses it to
// decide which columns become dimensions, measures, or the record id.
// ============================================================================

// Schema describes the columns of a dataset.
type Schema struct {
	Name string `json:"name"`

	// IDColumn is the key of the column used as record identity. Empty means
	// rows are identified by position.
	IDColumn string `json:"idColumn,omitempty"`

	Dimensions []Field `json:"dimensions"`
	Measures   []Field `json:"measures"`
	Skipped    []Skip  `json:"skipped,omitempty"`
}

// Field is one dimension or measure column.
type Field struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	SampleValues []string `json:"sampleValues,omitempty"`
	// Facet is true for low-cardinality dimensions worth offering as chips;
	// high-cardinality ones are still searchable text.
	Facet bool `json:"facet,omitempty"`
	// Options are a facet's distinct values, filled by Load.
	Options    []string `json:"options,omitempty"`
	IsTemporal bool     `json:"isTemporal,omitempty"`
	// Synthetic measures are not read from the file (record_count).
	Synthetic bool `json:"synthetic,omitempty"`
}

// Skip records why a column was left out during discovery.
type Skip struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// RecordCount is the synthetic measure set to 1 on every row.
const RecordCount = "record_count"

// DimensionKeys returns all dimension keys.
func (s Schema) DimensionKeys() []string {
	keys := make([]string, len(s.Dimensions))
	for i, d := range s.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (s Schema) MeasureKeys() []string {
	keys := make([]string, len(s.Measures))
	for i, m := range s.Measures {
		keys[i] = m.Key
	}
	return keys
}

// FacetKeys returns dimensions flagged as facets.
func (s Schema) FacetKeys() []string {
	var keys []string
	for _, d := range s.Dimensions {
		if d.Facet {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// TextKeys returns the dimensions that are not facets, the natural free-text
// search fields.
func (s Schema) TextKeys() []string {
	var keys []string
	for _, d := range s.Dimensions {
		if !d.Facet && !d.IsTemporal {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

package dashboard

import (
	"maps"
	"slices"

	"github.com/spektr-org/salesdesk/engine"
)

// ListState is the UI state of one list page. It is a value: every
// transition returns a new ListState and leaves the receiver untouched.
type ListState struct {
	Facets   engine.FacetSelections `json:"facets,omitempty"`
	Query    string                 `json:"query,omitempty"`
	Sort     *engine.Sort           `json:"sort,omitempty"`
	Floors   map[string]float64     `json:"floors,omitempty"`
	Selected string                 `json:"selected,omitempty"`
}

// WithQuery replaces the search text.
func (s ListState) WithQuery(q string) ListState {
	s.Query = q
	return s
}

// ToggleFacet flips value in facet's selection.
func (s ListState) ToggleFacet(facet, value string) ListState {
	s.Facets = s.Facets.Toggle(facet, value)
	return s
}

// SelectOnly makes value the sole selection of facet, or clears the facet
// when value already is the sole selection. An empty value clears it.
// Single-select controls ("All" or one status, the credit-hold card) use it.
func (s ListState) SelectOnly(facet, value string) ListState {
	cur := s.Facets[facet]
	if value == "" || (len(cur) == 1 && cur[0] == value) {
		s.Facets = s.Facets.Set(facet)
		return s
	}
	s.Facets = s.Facets.Set(facet, value)
	return s
}

// WithFloor sets a minimum for a measure. Zero or less removes it.
func (s ListState) WithFloor(key string, min float64) ListState {
	next := maps.Clone(s.Floors)
	if next == nil {
		next = make(map[string]float64)
	}
	if min <= 0 {
		delete(next, key)
	} else {
		next[key] = min
	}
	s.Floors = next
	return s
}

// ApplySort is a click on field's column header.
func (s ListState) ApplySort(field string) ListState {
	s.Sort = NextSort(s.Sort, field)
	return s
}

// Select records the record shown in the detail view.
func (s ListState) Select(id string) ListState {
	s.Selected = id
	return s
}

// Clear drops every facet, floor and the search text. Sort and selection
// are kept.
func (s ListState) Clear() ListState {
	s.Facets = nil
	s.Floors = nil
	s.Query = ""
	return s
}

// AppliedFilters counts selected facet values plus active floors. The search
// text is not a filter for this count.
func (s ListState) AppliedFilters() int {
	n := s.Facets.Count()
	for _, v := range s.Floors {
		if v > 0 {
			n++
		}
	}
	return n
}

// Criteria builds the engine input for this state.
func (s ListState) Criteria(textFields []string) engine.Criteria {
	return engine.Criteria{
		Facets:     s.Facets,
		Query:      s.Query,
		TextFields: textFields,
		Floors:     s.Floors,
		Sort:       s.Sort,
	}
}

// IsSelected reports whether value is selected in facet.
func (s ListState) IsSelected(facet, value string) bool {
	return slices.Contains(s.Facets[facet], value)
}

// NextSort is the column-header rule: ascending, unless field is already
// the ascending sort, then descending.
func NextSort(current *engine.Sort, field string) *engine.Sort {
	dir := engine.Ascending
	if current != nil && current.Field == field && current.Direction == engine.Ascending {
		dir = engine.Descending
	}
	return &engine.Sort{Field: field, Direction: dir}
}

package engine

import (
	"slices"
	"strings"
)

// ============================================================================
// FILTERS: Facet, Query and Floor Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent) with no data copy; original
// relative order preserved.
// ============================================================================

// ApplyFilters returns a view of records matching every constraint in c.
// Facets are AND-combined; values within a facet are OR-combined. Facets the
// view does not expose are ignored. The query matches when it is empty or is
// a case-insensitive substring of at least one of c.TextFields.
func ApplyFilters(view RecordView, c Criteria) RecordView {
	if c.Facets.IsEmpty() && len(c.Floors) == 0 && c.Query == "" {
		return view
	}

	known := keySet(view.DimensionKeys())
	measures := keySet(view.MeasureKeys())

	// Pre-build lookup sets for each active facet
	sets := make(map[string]map[string]bool)
	for facet, allowed := range c.Facets {
		if len(allowed) == 0 || !known[facet] {
			continue
		}
		sets[facet] = toSet(allowed)
	}

	floors := make(map[string]float64)
	for key, min := range c.Floors {
		if measures[key] {
			floors[key] = min
		}
	}

	query := strings.ToLower(c.Query)

	if len(sets) == 0 && len(floors) == 0 && query == "" {
		return view
	}

	// Single pass: a record passes if it matches ALL constraints
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matchesFacets(view, i, sets) &&
			matchesFloors(view, i, floors) &&
			matchesQuery(view, i, query, c.TextFields) {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func matchesFacets(view RecordView, i int, sets map[string]map[string]bool) bool {
	for facet, set := range sets {
		if !set[view.Dimension(i, facet)] {
			return false
		}
	}
	return true
}

func matchesFloors(view RecordView, i int, floors map[string]float64) bool {
	for key, min := range floors {
		if view.Measure(i, key) < min {
			return false
		}
	}
	return true
}

// matchesQuery expects query already lowercased.
func matchesQuery(view RecordView, i int, query string, fields []string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(view.Dimension(i, f)), query) {
			return true
		}
	}
	return false
}

// ToggleMembership returns a copy of set with value removed if present, or
// appended if absent. set is never modified.
func ToggleMembership(set []string, value string) []string {
	if slices.Contains(set, value) {
		out := make([]string, 0, len(set))
		for _, v := range set {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	}
	out := make([]string, len(set), len(set)+1)
	copy(out, set)
	return append(out, value)
}

// validateCriteria returns a FieldError for the first field in c that view
// does not expose.
func validateCriteria(view RecordView, c Criteria) error {
	dims := keySet(view.DimensionKeys())
	measures := keySet(view.MeasureKeys())

	for _, facet := range sortedKeys(c.Facets) {
		if !dims[facet] {
			return &FieldError{Role: "facet", Field: facet}
		}
	}
	if c.Query != "" {
		for _, f := range c.TextFields {
			if !dims[f] {
				return &FieldError{Role: "text", Field: f}
			}
		}
	}
	for _, key := range sortedKeys(c.Floors) {
		if !measures[key] {
			return &FieldError{Role: "floor", Field: key}
		}
	}
	if c.Sort != nil && !slices.Contains(view.FieldKeys(), c.Sort.Field) {
		return &FieldError{Role: "sort", Field: c.Sort.Field}
	}
	return nil
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

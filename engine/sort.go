package engine

import "slices"

// SortView returns view stably ordered by s.Field.
//
// Descending negates the comparator; equal and absent values keep their
// relative order from view in both directions. A nil sort, or a field the
// view does not expose, returns view unchanged.
func SortView(view RecordView, s *Sort) RecordView {
	if s == nil || !slices.Contains(view.FieldKeys(), s.Field) {
		return view
	}

	n := view.Len()
	values := make([]Value, n)
	indices := make([]int, n)
	for i := 0; i < n; i++ {
		values[i] = view.Field(i, s.Field)
		indices[i] = i
	}

	sign := 1
	if s.Direction == Descending {
		sign = -1
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return sign * values[a].Compare(values[b])
	})

	return newSubView(view, indices)
}

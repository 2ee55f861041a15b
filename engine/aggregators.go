package engine

// ============================================================================
// AGGREGATORS: Metrics and Grouping via RecordView
// ============================================================================
// All functions operate on RecordView with zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// ============================================================================

// ComputeAggregates evaluates every metric over records (ScopeFull) or over
// derived (ScopeFiltered). A nil derived falls back to records.
func ComputeAggregates(records, derived RecordView, metrics []Metric) map[string]float64 {
	if derived == nil {
		derived = records
	}
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		view := records
		if m.Scope == ScopeFiltered {
			view = derived
		}
		out[m.Name] = Reduce(view, m)
	}
	return out
}

// Reduce evaluates a single metric over view, ignoring its scope.
func Reduce(view RecordView, m Metric) float64 {
	switch m.Reducer {
	case ReduceSum:
		return SumMeasure(view, m.Measure)
	case ReduceCount:
		return float64(view.Len())
	case ReduceRatio:
		return RatioOfSums(view, m.Measure, m.Denominator)
	case ReducePercent:
		return RatioOfSums(view, m.Measure, m.Denominator) * 100
	case ReduceCountWhere:
		return float64(CountWhere(view, m.Where))
	case ReduceAvg:
		return AvgMeasure(view, m.Measure)
	case ReduceMax:
		return MaxMeasure(view, m.Measure)
	case ReduceMin:
		return MinMeasure(view, m.Measure)
	}
	return 0
}

// RatioOfSums sums numerator and denominator independently, then divides.
// A zero denominator total yields 0.
func RatioOfSums(view RecordView, numerator, denominator string) float64 {
	den := SumMeasure(view, denominator)
	if den == 0 {
		return 0
	}
	return SumMeasure(view, numerator) / den
}

// CountWhere counts records matching p. A nil predicate matches nothing.
func CountWhere(view RecordView, p Predicate) int {
	if p == nil {
		return 0
	}
	n := 0
	for i := 0; i < view.Len(); i++ {
		if p(view, i) {
			n++
		}
	}
	return n
}

// DimensionIs builds a predicate matching records whose dimension equals value.
func DimensionIs(dimension, value string) Predicate {
	return func(view RecordView, i int) bool {
		return view.Dimension(i, dimension) == value
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure, 0 for an empty view.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := view.Measure(0, measure)
	for i := 1; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure, 0 for an empty view.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := view.Measure(0, measure)
	for i := 1; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// ============================================================================
// GROUPING
// ============================================================================

// GroupAndAggregate buckets view by dimension and sums measure per bucket.
//
// Buckets for every key in order come first, in that order, even when empty
// (funnel stages with no deals still render). Keys not listed follow in
// first-seen order. An empty measure leaves Value at 0.
func GroupAndAggregate(view RecordView, dimension string, order []string, measure string) []Group {
	grouped := make(map[string][]int)
	seen := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			seen = append(seen, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	declared := toSet(order)
	keys := make([]string, 0, len(order)+len(seen))
	keys = append(keys, order...)
	for _, k := range seen {
		if !declared[k] {
			keys = append(keys, k)
		}
	}

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		sub := newSubView(view, grouped[key])
		g := Group{
			Key:   key,
			Label: key,
			Count: sub.Len(),
			View:  sub,
		}
		if measure != "" {
			g.Value = SumMeasure(sub, measure)
		}
		groups = append(groups, g)
	}
	return groups
}

// UniqueValues returns distinct non-empty values for a dimension, in
// first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

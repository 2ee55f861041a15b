package engine

import (
	"go.uber.org/zap"
)

// ============================================================================
// EXECUTOR: View derivation entry points
// ============================================================================
// Pipeline:
//   1. (Strict mode) validate criteria field names against the view
//   2. Apply facet / floor / query filters → SubView (stable)
//   3. Stable sort → SubView (optional)
//   4. Compute declared metrics over the source or the derived view
//
// Every call re-derives in full. Identical inputs yield an identical
// sequence, so callers may memoize on input equality.
// ============================================================================

// ComputeView returns the records of view passing c, in c.Sort order or in
// original order when c.Sort is nil. The error is non-nil only under
// WithStrictFields.
func ComputeView(view RecordView, c Criteria, opts ...Option) (RecordView, error) {
	cfg := applyOptions(opts)

	if cfg.Strict {
		if err := validateCriteria(view, c); err != nil {
			return nil, err
		}
	}

	filtered := ApplyFilters(view, c)
	sorted := SortView(filtered, c.Sort)

	if ce := cfg.Logger.Check(zap.DebugLevel, "view computed"); ce != nil {
		fields := []zap.Field{
			zap.Int("total", view.Len()),
			zap.Int("matched", sorted.Len()),
			zap.Int("facets", c.Facets.Count()),
			zap.String("query", c.Query),
		}
		if c.Sort != nil {
			fields = append(fields, zap.String("sort", c.Sort.Field+":"+c.Sort.Direction.String()))
		}
		ce.Write(fields...)
	}

	return sorted, nil
}

// Execute runs ComputeView then ComputeAggregates for metrics.
func Execute(view RecordView, c Criteria, metrics []Metric, opts ...Option) (*Result, error) {
	derived, err := ComputeView(view, c, opts...)
	if err != nil {
		return nil, err
	}
	return &Result{
		View:    derived,
		Count:   derived.Len(),
		Total:   view.Len(),
		Metrics: ComputeAggregates(view, derived, metrics),
	}, nil
}

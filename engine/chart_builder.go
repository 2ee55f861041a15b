package engine

// ============================================================================
// CHART BUILDER: Produces ChartConfig from Groups
// ============================================================================
// Used for the pipeline funnel and per-status breakdowns. One series, one
// point per group, colors assigned round-robin.
// ============================================================================

// Default color palette for chart points.
var defaultColors = []string{
	"#94A3B8", "#60A5FA", "#6366F1", "#F97316", "#16A34A",
	"#06B6D4", "#EC4899", "#84CC16", "#F59E0B", "#EF4444",
}

// BuildChart produces a bar ChartConfig from aggregated groups.
// Returns nil when there are no groups.
func BuildChart(title, dimension string, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: Round(g.Value, 2),
			Count: g.Count,
		})
	}

	return &ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     LabelForField(dimension),
		YAxis:     "Value",
		Series:    []ChartSeries{{Name: title, Data: points}},
		Colors:    assignColors(len(points)),
	}
}

// MaxPoint returns the largest point value in the first series, 0 if none.
func (c *ChartConfig) MaxPoint() float64 {
	if c == nil || len(c.Series) == 0 {
		return 0
	}
	var m float64
	for _, p := range c.Series[0].Data {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

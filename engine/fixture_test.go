package engine

// ============================================================================
// TEST FIXTURES
// ============================================================================

type deal struct {
	ID       string
	Brand    string
	Region   string
	Stage    string
	Value    float64
	Planned  float64
	Executed float64
	Score    *float64
}

func ptr(f float64) *float64 { return &f }

var dealAdapter = NewDomainAdapter[deal]().
	Identity(func(d deal) string { return d.ID }).
	Dimension("brand", func(d deal) string { return d.Brand }).
	Dimension("region", func(d deal) string { return d.Region }).
	Dimension("stage", func(d deal) string { return d.Stage }).
	Measure("value", func(d deal) float64 { return d.Value }).
	Measure("planned", func(d deal) float64 { return d.Planned }).
	Measure("executed", func(d deal) float64 { return d.Executed }).
	Order("score", func(d deal) Value { return OptNumber(d.Score) })

func sampleDeals() []deal {
	return []deal{
		{ID: "d1", Brand: "Fizz Co.", Region: "North", Stage: "Lead", Value: 120000, Planned: 10, Executed: 8, Score: ptr(3)},
		{ID: "d2", Brand: "Velocity Motors", Region: "West", Stage: "Qualified", Value: 350000, Planned: 0, Executed: 0},
		{ID: "d3", Brand: "Star Studios", Region: "South", Stage: "Lead", Value: 2400000, Planned: 20, Executed: 20, Score: ptr(1)},
		{ID: "d4", Brand: "North Peak", Region: "North", Stage: "Customer", Value: 450000, Planned: 5, Executed: 1, Score: ptr(3)},
		{ID: "d5", Brand: "Axis Bank", Region: "West", Stage: "Lead", Value: 120000, Planned: 0, Executed: 0, Score: ptr(2)},
	}
}

// threeRecords is the region/out collection used by the worked examples.
func threeRecords() RecordView {
	return NewSliceView([]Record{
		{ID: "1", Dimensions: map[string]string{"region": "North"}, Measures: map[string]float64{"out": 100}},
		{ID: "2", Dimensions: map[string]string{"region": "West"}, Measures: map[string]float64{"out": 0}},
		{ID: "3", Dimensions: map[string]string{"region": "North"}, Measures: map[string]float64{"out": 50}},
	})
}

func ids(view RecordView) []string {
	out := make([]string, view.Len())
	for i := range out {
		out[i] = view.ID(i)
	}
	return out
}

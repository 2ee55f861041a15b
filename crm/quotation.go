package crm

import (
	"fmt"
	"strconv"

	"github.com/spektr-org/salesdesk/engine"
)

// Screen is one cinema screen in the ad inventory.
type Screen struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Grade     string  `json:"grade"` // A+, A, B
	Seats     int     `json:"seats"`
	BaseRate  float64 `json:"baseRate"`
	Status    string  `json:"status"` // Live, Downtime, Maintenance
	Genre     string  `json:"genre"`
	Catchment string  `json:"catchment"`
	Audience  string  `json:"audience"`
}

// Quotation is one entry of the quotation log.
type Quotation struct {
	ID       string  `json:"id"`
	Client   string  `json:"client"`
	Campaign string  `json:"campaign"`
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Status   string  `json:"status"` // Draft, Shared, Approved, Rejected
	Screens  int     `json:"screens"`
}

// Inventory enumerations.
var (
	Cities         = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Hyderabad", "Pune", "Ahmedabad", "Kolkata"}
	Grades         = []string{"A+", "A", "B"}
	Genres         = []string{"Action", "Romance", "Horror", "Comedy", "Thriller", "Drama"}
	Catchments     = []string{"Mass", "Premium", "Youth", "Family", "Corporate"}
	ScreenStatuses = []string{"Live", "Downtime", "Maintenance"}

	QuotationStatuses = []string{"Draft", "Shared", "Approved", "Rejected"}
)

// Live is drawn four times as often as the other statuses.
var screenStatusWeights = []string{"Live", "Live", "Live", "Live", "Downtime", "Maintenance"}

// ScreenAdapter binds []Screen to the engine.
var ScreenAdapter = engine.NewDomainAdapter[Screen]().
	Identity(func(s Screen) string { return strconv.Itoa(s.ID) }).
	Dimension("name", func(s Screen) string { return s.Name }).
	Dimension("city", func(s Screen) string { return s.City }).
	Dimension("grade", func(s Screen) string { return s.Grade }).
	Dimension("genre", func(s Screen) string { return s.Genre }).
	Dimension("status", func(s Screen) string { return s.Status }).
	Dimension("catchment", func(s Screen) string { return s.Catchment }).
	Measure("seats", func(s Screen) float64 { return float64(s.Seats) }).
	Measure("base_rate", func(s Screen) float64 { return s.BaseRate })

// ScreenCatalog declares the inventory picker.
func ScreenCatalog() Catalog {
	return Catalog{
		Facets: []Facet{
			{Key: "city", Label: "City", Options: Cities},
			{Key: "grade", Label: "Grade", Options: Grades},
			{Key: "genre", Label: "Genre", Options: Genres},
			{Key: "status", Label: "Status", Options: ScreenStatuses, Single: true},
		},
		TextFields: []string{"name"},
		Columns: []Column{
			{Key: "name", Label: "Screen", Sortable: true},
			{Key: "city", Label: "City", Sortable: true},
			{Key: "grade", Label: "Grade"},
			{Key: "genre", Label: "Genre"},
			{Key: "status", Label: "Status"},
			{Key: "seats", Label: "Seats", Kind: KindInt, Sortable: true},
			{Key: "base_rate", Label: "Rate", Kind: KindMoney, Sortable: true},
		},
		Floors: []Floor{{Key: "seats", Label: "Min Seats", Max: 400, Step: 50}},
		Metrics: []engine.Metric{
			{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount},
			{Name: "filtered_seats", Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: "seats"},
			{Name: "live_screens", Scope: engine.ScopeFull, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("status", "Live")},
			{Name: "total_screens", Scope: engine.ScopeFull, Reducer: engine.ReduceCount},
		},
	}
}

// QuotationAdapter binds []Quotation to the engine.
var QuotationAdapter = engine.NewDomainAdapter[Quotation]().
	Identity(func(q Quotation) string { return q.ID }).
	Dimension("id", func(q Quotation) string { return q.ID }).
	Dimension("client", func(q Quotation) string { return q.Client }).
	Dimension("campaign", func(q Quotation) string { return q.Campaign }).
	Dimension("date", func(q Quotation) string { return q.Date }).
	Dimension("status", func(q Quotation) string { return q.Status }).
	Measure("value", func(q Quotation) float64 { return q.Value }).
	Measure("screens", func(q Quotation) float64 { return float64(q.Screens) })

// QuotationCatalog declares the quotation log.
func QuotationCatalog() Catalog {
	return Catalog{
		Facets: []Facet{
			{Key: "status", Label: "Status", Options: QuotationStatuses},
		},
		TextFields: []string{"id", "client", "campaign"},
		Columns: []Column{
			{Key: "id", Label: "Quote"},
			{Key: "client", Label: "Client", Sortable: true},
			{Key: "campaign", Label: "Campaign"},
			{Key: "date", Label: "Date", Sortable: true},
			{Key: "status", Label: "Status"},
			{Key: "screens", Label: "Screens", Kind: KindInt, Sortable: true},
			{Key: "value", Label: "Value", Kind: KindMoney, Sortable: true},
		},
		Metrics: []engine.Metric{
			{Name: "quoted_value", Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: "value"},
			{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount},
			{Name: "pending_proposals", Scope: engine.ScopeFull, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("status", "Shared")},
		},
	}
}

// SeedScreens generates the hundred-screen inventory.
func SeedScreens() []Screen {
	g := newGenerator(1)
	out := make([]Screen, 100)
	for i := range out {
		grade := "B"
		switch {
		case i%10 == 0:
			grade = "A+"
		case i%3 == 0:
			grade = "A"
		}
		audience := "General Family"
		if i%2 == 0 {
			audience = "Urban High Income"
		}
		out[i] = Screen{
			ID:        1000 + i,
			Name:      fmt.Sprintf("Cinema Complex - Screen %d", i+1),
			City:      g.pick(Cities),
			Grade:     grade,
			Seats:     g.between(120, 250),
			BaseRate:  float64(g.between(6, 12) * 100),
			Status:    g.pick(screenStatusWeights),
			Genre:     g.pick(Genres),
			Catchment: g.pick(Catchments),
			Audience:  audience,
		}
	}
	return out
}

// SeedQuotations generates the 25-entry quotation log.
func SeedQuotations() []Quotation {
	g := newGenerator(2)
	clients := []string{"PepsiCo", "Velocity Motors", "Fizz Co.", "InnoSys", "Star Studios"}
	campaigns := []string{"Summer Splash", "Festive Blitz", "New Launch", "Corporate Event"}

	out := make([]Quotation, 25)
	for i := range out {
		out[i] = Quotation{
			ID:       fmt.Sprintf("QT-25-%d", 200+i),
			Client:   g.pick(clients),
			Campaign: g.pick(campaigns),
			Date:     fmt.Sprintf("2025-10-%02d", g.between(1, 20)),
			Value:    float64(g.between(10, 50) * 10000),
			Status:   g.pick(QuotationStatuses),
			Screens:  g.between(3, 15),
		}
	}
	return out
}

// Draft is a quotation being assembled from inventory.
type Draft struct {
	Screens []Screen
}

// AddScreens returns a new draft with screens appended, skipping any
// already present.
func (d Draft) AddScreens(screens []Screen) Draft {
	have := make(map[int]bool, len(d.Screens))
	next := make([]Screen, len(d.Screens), len(d.Screens)+len(screens))
	copy(next, d.Screens)
	for _, s := range d.Screens {
		have[s.ID] = true
	}
	for _, s := range screens {
		if !have[s.ID] {
			have[s.ID] = true
			next = append(next, s)
		}
	}
	return Draft{Screens: next}
}

// Total is the sum of base rates in the draft.
func (d Draft) Total() float64 {
	var total float64
	for _, s := range d.Screens {
		total += s.BaseRate
	}
	return total
}

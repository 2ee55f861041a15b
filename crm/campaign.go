package crm

import (
	"fmt"

	"github.com/spektr-org/salesdesk/engine"
)

// Campaign is a running or planned screen campaign.
type Campaign struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Owner    string `json:"owner"`
	Month    string `json:"month"`
	Status   string `json:"status"` // Active, Completed, Pending, Paused
	Category string `json:"category"`
	Screens  int    `json:"screens"`
}

// Campaign enumerations. Campaigns also run in the Central region.
var (
	CampaignRegions    = []string{"North", "South", "East", "West", "Central"}
	CampaignCategories = []string{"FMCG", "Auto", "Tech", "Retail", "Entertainment"}
	CampaignStatuses   = []string{"Active", "Completed", "Pending", "Paused"}
)

// CampaignAdapter binds []Campaign to the engine.
var CampaignAdapter = engine.NewDomainAdapter[Campaign]().
	Identity(func(c Campaign) string { return c.ID }).
	Dimension("id", func(c Campaign) string { return c.ID }).
	Dimension("brand", func(c Campaign) string { return c.Brand }).
	Dimension("name", func(c Campaign) string { return c.Name }).
	Dimension("region", func(c Campaign) string { return c.Region }).
	Dimension("owner", func(c Campaign) string { return c.Owner }).
	Dimension("month", func(c Campaign) string { return c.Month }).
	Dimension("status", func(c Campaign) string { return c.Status }).
	Dimension("category", func(c Campaign) string { return c.Category }).
	Measure("screens", func(c Campaign) float64 { return float64(c.Screens) })

// CampaignCatalog declares the campaigns list.
func CampaignCatalog() Catalog {
	return Catalog{
		Facets: []Facet{
			{Key: "status", Label: "Status", Options: CampaignStatuses},
			{Key: "region", Label: "Region", Options: CampaignRegions},
			{Key: "owner", Label: "Owner", Options: Owners},
			{Key: "category", Label: "Category", Options: CampaignCategories},
		},
		TextFields: []string{"brand", "name"},
		Columns: []Column{
			{Key: "id", Label: "ID"},
			{Key: "brand", Label: "Brand", Sortable: true},
			{Key: "name", Label: "Campaign", Sortable: true},
			{Key: "region", Label: "Region"},
			{Key: "owner", Label: "Owner"},
			{Key: "status", Label: "Status", Sortable: true},
			{Key: "screens", Label: "Screens", Kind: KindInt, Sortable: true},
		},
		Metrics: []engine.Metric{
			{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount},
			{Name: "screens", Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: "screens"},
			{Name: "active", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("status", "Active")},
			{Name: "total_campaigns", Scope: engine.ScopeFull, Reducer: engine.ReduceCount},
		},
	}
}

// StatusBreakdown counts view per campaign status, in status order.
func StatusBreakdown(view engine.RecordView) []engine.Group {
	return engine.GroupAndAggregate(view, "status", CampaignStatuses, "screens")
}

// SeedCampaigns generates the 25 October campaigns.
func SeedCampaigns() []Campaign {
	g := newGenerator(3)
	brands := []string{"Nike", "Coca Cola", "Tesla", "Apple", "Samsung", "H&M"}
	names := []string{"Mega Sale", "Product Launch", "Brand Awareness", "Winter Blitz", "Summer Cool"}

	out := make([]Campaign, 25)
	for i := range out {
		out[i] = Campaign{
			ID:       fmt.Sprintf("CP-25-%d", 300+i),
			Brand:    g.pick(brands),
			Name:     g.pick(names),
			Region:   g.pick(CampaignRegions),
			Owner:    g.pick(Owners),
			Month:    "October 2025",
			Status:   g.pick(CampaignStatuses),
			Category: g.pick(CampaignCategories),
			Screens:  g.between(10, 100),
		}
	}
	return out
}

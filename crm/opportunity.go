package crm

import (
	"strconv"

	"github.com/spektr-org/salesdesk/engine"
)

// Stage is a pipeline funnel stage.
type Stage string

const (
	StageLead      Stage = "Lead"
	StageContacted Stage = "Contacted"
	StageQualified Stage = "Qualified"
	StageQuotation Stage = "Quotation Shared"
	StageCustomer  Stage = "Customer"
)

// StageInfo describes a funnel column.
type StageInfo struct {
	ID                 Stage
	Color              string
	DefaultProbability int
}

// Stages lists the funnel in display order.
var Stages = []StageInfo{
	{StageLead, "#94A3B8", 5},
	{StageContacted, "#60A5FA", 20},
	{StageQualified, "#6366F1", 40},
	{StageQuotation, "#F97316", 70},
	{StageCustomer, "#16A34A", 100},
}

// StageOrder returns the stage ids in funnel order.
func StageOrder() []string {
	out := make([]string, len(Stages))
	for i, s := range Stages {
		out[i] = string(s.ID)
	}
	return out
}

// Opportunity is a deal in the pipeline.
type Opportunity struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Brand       string  `json:"brand"`
	Value       float64 `json:"value"`
	Stage       Stage   `json:"stage"`
	Segment     string  `json:"segment"`
	Region      string  `json:"region"`
	ClientType  string  `json:"clientType"` // New, Existing
	Owner       string  `json:"owner"`
	Probability int     `json:"probability"`
	DaysInStage int     `json:"daysInStage"`
	Priority    string  `json:"priority"` // High, Medium, Low
}

// Pipeline facet enumerations.
var (
	ClientTypes      = []string{"New", "Existing"}
	PipelineSegments = []string{"FMCG", "Auto", "Retail", "Tech", "Media", "Banking"}
	Priorities       = []string{"High", "Medium", "Low"}
)

// OpportunityAdapter binds []Opportunity to the engine.
var OpportunityAdapter = engine.NewDomainAdapter[Opportunity]().
	Identity(func(o Opportunity) string { return strconv.Itoa(o.ID) }).
	Dimension("title", func(o Opportunity) string { return o.Title }).
	Dimension("brand", func(o Opportunity) string { return o.Brand }).
	Dimension("stage", func(o Opportunity) string { return string(o.Stage) }).
	Dimension("segment", func(o Opportunity) string { return o.Segment }).
	Dimension("region", func(o Opportunity) string { return o.Region }).
	Dimension("client_type", func(o Opportunity) string { return o.ClientType }).
	Dimension("owner", func(o Opportunity) string { return o.Owner }).
	Dimension("priority", func(o Opportunity) string { return o.Priority }).
	Measure("value", func(o Opportunity) float64 { return o.Value }).
	Measure("probability", func(o Opportunity) float64 { return float64(o.Probability) }).
	Measure("days_in_stage", func(o Opportunity) float64 { return float64(o.DaysInStage) }).
	Measure("weighted_value", func(o Opportunity) float64 { return o.Value * float64(o.Probability) / 100 }).
	Measure("won_value", func(o Opportunity) float64 {
		if o.Stage == StageCustomer {
			return o.Value
		}
		return 0
	})

// OpportunityCatalog declares the pipeline board.
func OpportunityCatalog() Catalog {
	return Catalog{
		Facets: []Facet{
			{Key: "client_type", Label: "Client Type", Options: ClientTypes},
			{Key: "segment", Label: "Segment", Options: PipelineSegments},
			{Key: "region", Label: "Region", Options: Regions},
			{Key: "owner", Label: "Owner", Options: Owners},
			{Key: "priority", Label: "Priority", Options: Priorities},
		},
		TextFields: []string{"brand", "title"},
		Columns: []Column{
			{Key: "title", Label: "Deal", Sortable: true},
			{Key: "brand", Label: "Brand", Sortable: true},
			{Key: "stage", Label: "Stage"},
			{Key: "owner", Label: "Owner"},
			{Key: "priority", Label: "Priority"},
			{Key: "value", Label: "Value", Kind: KindMoney, Sortable: true},
			{Key: "probability", Label: "Prob.", Kind: KindInt, Sortable: true},
			{Key: "days_in_stage", Label: "Days", Kind: KindInt, Sortable: true},
		},
		Metrics: OpportunityMetrics(),
	}
}

// OpportunityMetrics summarizes the filtered board.
func OpportunityMetrics() []engine.Metric {
	return []engine.Metric{
		{Name: "pipeline_value", Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: "value"},
		{Name: "weighted_value", Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: "weighted_value"},
		{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount},
		{Name: "total_deals", Scope: engine.ScopeFull, Reducer: engine.ReduceCount},
	}
}

// Funnel groups view by stage in funnel order, including empty stages.
func Funnel(view engine.RecordView) []engine.Group {
	return engine.GroupAndAggregate(view, "stage", StageOrder(), "value")
}

// SeedOpportunities returns the seven pipeline deals.
func SeedOpportunities() []Opportunity {
	return []Opportunity{
		{1, "Summer Promo", "Fizz Co.", 120000, StageContacted, "FMCG", "North", "New", "Arjun Mehta", 20, 4, "Medium"},
		{2, "SUV Launch", "Velocity Motors", 350000, StageQualified, "Auto", "West", "Existing", "Priya Sharma", 40, 12, "High"},
		{3, "Movie Tie-in", "Star Studios", 2400000, StageQuotation, "Media", "South", "Existing", "Arjun Mehta", 70, 2, "High"},
		{4, "Diwali Blitz", "Ethnic Weaver", 80000, StageLead, "Retail", "East", "New", "Vikram Singh", 5, 1, "Low"},
		{5, "Tech Conf", "InnoSys", 150000, StageCustomer, "Tech", "North", "Existing", "Vikram Singh", 100, 16, "Medium"},
		{6, "Winter Gear", "North Peak", 450000, StageQualified, "Retail", "North", "New", "Sarah Khan", 40, 5, "High"},
		{7, "Savings Plan", "Axis Bank", 900000, StageLead, "Banking", "West", "Existing", "Priya Sharma", 10, 3, "Medium"},
	}
}

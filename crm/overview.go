package crm

import "github.com/spektr-org/salesdesk/engine"

// Overview is the executive KPI header.
type Overview struct {
	OpenPipeline     float64 `json:"openPipeline"`
	WinRate          float64 `json:"winRate"` // percent of pipeline value already won
	ActiveAccounts   int     `json:"activeAccounts"`
	PendingProposals int     `json:"pendingProposals"`
	OpenTasks        int     `json:"openTasks"`
}

// WinRateMetric is won pipeline value as a percent of all pipeline value.
var WinRateMetric = engine.Metric{
	Name:        "win_rate",
	Scope:       engine.ScopeFull,
	Reducer:     engine.ReducePercent,
	Measure:     "won_value",
	Denominator: "value",
}

// Overview computes the KPI header from the current collections.
func (d *Dataset) Overview() Overview {
	deals := OpportunityAdapter.Bind(d.Opportunities)
	open := engine.ApplyFilters(deals, engine.Criteria{
		Facets: engine.FacetSelections{"stage": openStages()},
	})

	return Overview{
		OpenPipeline:     engine.SumMeasure(open, "value"),
		WinRate:          engine.Reduce(deals, WinRateMetric),
		ActiveAccounts:   engine.CountWhere(AccountAdapter.Bind(d.Accounts), engine.DimensionIs("status", string(StatusActive))),
		PendingProposals: engine.CountWhere(QuotationAdapter.Bind(d.Quotations), engine.DimensionIs("status", "Shared")),
		OpenTasks:        engine.CountWhere(TaskAdapter.Bind(d.Tasks), engine.DimensionIs("completed", "false")),
	}
}

// UrgentTasks returns open tasks of type Urgent, in list order.
func (d *Dataset) UrgentTasks() []Task {
	view := TaskAdapter.Bind(d.Tasks)
	urgent := engine.ApplyFilters(view, engine.Criteria{Facets: engine.FacetSelections{
		"type":      {string(TaskUrgent)},
		"completed": {"false"},
	}})
	return engine.Materialize(d.Tasks, urgent)
}

func openStages() []string {
	var out []string
	for _, s := range Stages {
		if s.ID != StageCustomer {
			out = append(out, string(s.ID))
		}
	}
	return out
}

// Resource is an enablement asset.
type Resource struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Section  string `json:"section"`
}

// EnablementResources is the static enablement hub content.
func EnablementResources() []Resource {
	return []Resource{
		{Title: "Beverage Giant ROI Q3", Section: "Pitch Perfect Recommendations"},
		{Title: "QUBE General Pitch v4", Section: "Pitch Perfect Recommendations"},
		{Title: "Cinema Advertising 101", Subtitle: "The Big Screen Advantage", Section: "Training"},
		{Title: "Footfall Trend (MoM)", Subtitle: "+12.5%", Section: "Theater Insights"},
	}
}

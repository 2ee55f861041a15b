package dashboard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spektr-org/salesdesk/config"
	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/engine"
	"github.com/spektr-org/salesdesk/predicate"
)

// List names.
const (
	ListAccounts   = "accounts"
	ListPipeline   = "pipeline"
	ListQuotations = "quotations"
	ListScreens    = "screens"
	ListCampaigns  = "campaigns"
	ListTasks      = "tasks"
)

// List binds one collection of a Dataset to its catalog.
type List struct {
	Name    string
	Page    string // owning page path
	Catalog crm.Catalog
	Bind    func(*crm.Dataset) engine.RecordView
}

// Lists in display order. The screen inventory lives on the quotation page.
var Lists = []List{
	{ListAccounts, "/accounts", crm.AccountCatalog(), func(d *crm.Dataset) engine.RecordView { return crm.AccountAdapter.Bind(d.Accounts) }},
	{ListPipeline, "/pipeline", crm.OpportunityCatalog(), func(d *crm.Dataset) engine.RecordView { return crm.OpportunityAdapter.Bind(d.Opportunities) }},
	{ListQuotations, "/quotation", crm.QuotationCatalog(), func(d *crm.Dataset) engine.RecordView { return crm.QuotationAdapter.Bind(d.Quotations) }},
	{ListScreens, "/quotation", crm.ScreenCatalog(), func(d *crm.Dataset) engine.RecordView { return crm.ScreenAdapter.Bind(d.Screens) }},
	{ListCampaigns, "/campaigns", crm.CampaignCatalog(), func(d *crm.Dataset) engine.RecordView { return crm.CampaignAdapter.Bind(d.Campaigns) }},
	{ListTasks, "/tasks", crm.TaskCatalog(), func(d *crm.Dataset) engine.RecordView { return crm.TaskAdapter.Bind(d.Tasks) }},
}

// LookupList finds a list by name, or by the path or name of the page that
// owns it.
func LookupList(name string) (List, error) {
	for _, l := range Lists {
		if l.Name == name {
			return l, nil
		}
	}
	if p, err := Lookup(name); err == nil && p.List != "" {
		return LookupList(p.List)
	}
	return List{}, fmt.Errorf("%w: no list %q", ErrUnknownPage, name)
}

// Derive computes the list view and metrics for st.
func (l List) Derive(d *crm.Dataset, st ListState, extra []engine.Metric, opts ...engine.Option) (*engine.Result, error) {
	view := l.Bind(d)
	metrics := l.Catalog.Metrics
	if len(extra) > 0 {
		metrics = append(slices.Clip(metrics), extra...)
	}
	res, err := engine.Execute(view, st.Criteria(l.Catalog.TextFields), metrics, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Name, err)
	}
	return res, nil
}

// Neighbor returns the id of the record next to st.Selected in view.
func Neighbor(view engine.RecordView, st ListState, step engine.Step) (string, bool) {
	i, ok := engine.Neighbor(view, st.Selected, step)
	if !ok {
		return "", false
	}
	return view.ID(i), true
}

// ErrDuplicateMetric is returned when a configured metric reuses a name
// already in the list's results.
var ErrDuplicateMetric = errors.New("duplicate metric")

// CompileMetrics turns configured metrics into engine metrics for view.
// count_where expressions are compiled with CEL; measure operands must be
// measures of view. Names in taken, and repeats within cfgs, are rejected.
func CompileMetrics(view engine.RecordView, cfgs []config.MetricConfig, taken ...string) ([]engine.Metric, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	names := make(map[string]bool, len(taken)+len(cfgs))
	for _, n := range taken {
		names[n] = true
	}
	measures := make(map[string]bool)
	for _, k := range view.MeasureKeys() {
		measures[k] = true
	}

	var c *predicate.Compiler
	out := make([]engine.Metric, 0, len(cfgs))
	for _, mc := range cfgs {
		if names[mc.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMetric, mc.Name)
		}
		names[mc.Name] = true

		m := engine.Metric{Name: mc.Name, Scope: engine.ScopeFull, Reducer: engine.Reducer(mc.Reducer)}
		if mc.Scope == "filtered" {
			m.Scope = engine.ScopeFiltered
		}
		switch m.Reducer {
		case "", engine.ReduceCountWhere:
			m.Reducer = engine.ReduceCountWhere
			if c == nil {
				var err error
				if c, err = predicate.ForView(view); err != nil {
					return nil, err
				}
			}
			p, err := c.Compile(mc.Where)
			if err != nil {
				return nil, fmt.Errorf("metric %q: %w", mc.Name, err)
			}
			m.Where = p
		case engine.ReduceCount:
		case engine.ReduceRatio, engine.ReducePercent:
			if !measures[mc.Denominator] {
				return nil, fmt.Errorf("metric %q: %w", mc.Name, &engine.FieldError{Role: "denominator", Field: mc.Denominator})
			}
			m.Denominator = mc.Denominator
			fallthrough
		case engine.ReduceSum, engine.ReduceAvg, engine.ReduceMax, engine.ReduceMin:
			if !measures[mc.Measure] {
				return nil, fmt.Errorf("metric %q: %w", mc.Name, &engine.FieldError{Role: "measure", Field: mc.Measure})
			}
			m.Measure = mc.Measure
		default:
			return nil, fmt.Errorf("metric %q: unknown reducer %q", mc.Name, mc.Reducer)
		}
		out = append(out, m)
	}
	return out, nil
}

// ExtraMetrics compiles the configured metrics for list l. Config keys may
// be the list name or the owning page path.
func ExtraMetrics(cfg *config.Config, l List, d *crm.Dataset) ([]engine.Metric, error) {
	if cfg == nil {
		return nil, nil
	}
	var cfgs []config.MetricConfig
	cfgs = append(cfgs, cfg.Metrics[l.Name]...)
	if l.Name != ListScreens {
		cfgs = append(cfgs, cfg.Metrics[l.Page]...)
	}
	taken := make([]string, len(l.Catalog.Metrics))
	for i, m := range l.Catalog.Metrics {
		taken[i] = m.Name
	}
	return CompileMetrics(l.Bind(d), cfgs, taken...)
}

// Breakdown is the per-group chart a list shows under its table: the
// pipeline funnel by stage and campaigns by status. Other lists have none.
func (l List) Breakdown(view engine.RecordView) (dimension string, groups []engine.Group, ok bool) {
	switch l.Name {
	case ListPipeline:
		return "stage", crm.Funnel(view), true
	case ListCampaigns:
		return "status", crm.StatusBreakdown(view), true
	}
	return "", nil, false
}

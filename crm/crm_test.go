package crm

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/salesdesk/engine"
)

func viewIDs(view engine.RecordView) []string {
	out := make([]string, view.Len())
	for i := range out {
		out[i] = view.ID(i)
	}
	return out
}

// ============================================================================
// ACCOUNTS
// ============================================================================

func TestAccountPortfolioMetrics(t *testing.T) {
	accounts := SeedAccounts()
	require.Len(t, accounts, 15)

	view := AccountAdapter.Bind(accounts)
	res, err := engine.Execute(view, engine.Criteria{
		Facets: engine.FacetSelections{"region": {"North"}},
	}, AccountMetrics(), engine.WithStrictFields())
	require.NoError(t, err)

	assert.Equal(t, 18275000.0, res.Metrics["total_receivables"])
	assert.Equal(t, "₹1,82,75,000", engine.FormatINR(res.Metrics["total_receivables"]))
	assert.Equal(t, 2.0, res.Metrics["on_hold_count"])
	assert.Equal(t, 2.0, res.Metrics["high_risk_count"])
	assert.Equal(t, 15.0, res.Metrics["total_accounts"])
	assert.Equal(t, "90.0%", engine.FormatPercent(res.Metrics["delivery_rate"], 1))
	assert.Equal(t, 5.0, res.Metrics["showing"], "full-scope metrics ignore the region filter")
}

func TestAccountFilters(t *testing.T) {
	view := AccountAdapter.Bind(SeedAccounts())
	cat := AccountCatalog()

	tests := []struct {
		name     string
		criteria engine.Criteria
		want     []string
	}{
		{
			name:     "segment and region",
			criteria: engine.Criteria{Facets: engine.FacetSelections{"segment": {"FMCG"}, "region": {"West"}}},
			want:     []string{"ACC-005", "ACC-008"},
		},
		{
			name:     "credit hold",
			criteria: engine.Criteria{Facets: engine.FacetSelections{"on_hold": {"true"}}},
			want:     []string{"ACC-005", "ACC-009"},
		},
		{
			name:     "search hits legal name",
			criteria: engine.Criteria{Query: "think & learn", TextFields: cat.TextFields},
			want:     []string{"ACC-009"},
		},
		{
			name: "outstanding descending",
			criteria: engine.Criteria{
				Facets: engine.FacetSelections{"risk_level": {"High", "Medium"}},
				Sort:   &engine.Sort{Field: "total_outstanding", Direction: engine.Descending},
			},
			want: []string{"ACC-005", "ACC-003", "ACC-009", "ACC-008", "ACC-015"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ComputeView(view, tt.criteria, engine.WithStrictFields())
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, viewIDs(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccountDeliveryPct(t *testing.T) {
	accounts := SeedAccounts()
	assert.Equal(t, 90.0, accounts[0].DeliveryPct())
	assert.Equal(t, 0.0, accounts[8].DeliveryPct(), "Byju's executed nothing")
	assert.Equal(t, 0.0, Account{}.DeliveryPct())
	assert.Equal(t, 25.0, accounts[0].CreditUtilization())
	assert.Equal(t, 0.0, Account{}.CreditUtilization())
}

func TestAccountOptionalFieldsSortAsTies(t *testing.T) {
	accounts := []Account{
		{ID: "a", TotalOutstanding: num(10)},
		{ID: "b"},
		{ID: "c", TotalOutstanding: num(10)},
	}
	view := AccountAdapter.Bind(accounts)
	got := engine.SortView(view, &engine.Sort{Field: "total_outstanding", Direction: engine.Descending})
	assert.Equal(t, []string{"a", "b", "c"}, viewIDs(got))

	field := view.Field(1, "delivery_pct")
	assert.True(t, field.IsAbsent())
}

func TestCatalogColumnsExistOnAdapters(t *testing.T) {
	catalogs := map[string]struct {
		cat  Catalog
		view engine.RecordView
	}{
		"accounts":      {AccountCatalog(), AccountAdapter.Bind(nil)},
		"opportunities": {OpportunityCatalog(), OpportunityAdapter.Bind(nil)},
		"screens":       {ScreenCatalog(), ScreenAdapter.Bind(nil)},
		"quotations":    {QuotationCatalog(), QuotationAdapter.Bind(nil)},
		"campaigns":     {CampaignCatalog(), CampaignAdapter.Bind(nil)},
		"tasks":         {TaskCatalog(), TaskAdapter.Bind(nil)},
	}

	for name, c := range catalogs {
		t.Run(name, func(t *testing.T) {
			fields := c.view.FieldKeys()
			for _, col := range c.cat.Columns {
				assert.Contains(t, fields, col.Key, "column %s", col.Key)
			}
			for _, f := range c.cat.Facets {
				assert.Contains(t, c.view.DimensionKeys(), f.Key, "facet %s", f.Key)
			}
			for _, tf := range c.cat.TextFields {
				assert.Contains(t, c.view.DimensionKeys(), tf, "text field %s", tf)
			}
			for _, fl := range c.cat.Floors {
				assert.Contains(t, c.view.MeasureKeys(), fl.Key, "floor %s", fl.Key)
			}
		})
	}
}

func TestCatalogHelpers(t *testing.T) {
	cat := AccountCatalog()

	f, ok := cat.Facet("risk_level")
	require.True(t, ok)
	assert.Equal(t, RiskProfiles, f.Options)
	_, ok = cat.Facet("colour")
	assert.False(t, ok)

	sortable := cat.SortableColumns()
	require.NotEmpty(t, sortable)
	for _, col := range sortable {
		assert.True(t, col.Sortable)
	}
	assert.Equal(t, "name", cat.ColumnKeys()[0])
}

// ============================================================================
// PIPELINE
// ============================================================================

func TestFunnel(t *testing.T) {
	view := OpportunityAdapter.Bind(SeedOpportunities())
	groups := Funnel(view)
	require.Len(t, groups, 5)

	type stage struct {
		Key   string
		Count int
		Value float64
	}
	got := make([]stage, len(groups))
	for i, g := range groups {
		got[i] = stage{g.Key, g.Count, g.Value}
	}
	want := []stage{
		{"Lead", 2, 980000},
		{"Contacted", 1, 120000},
		{"Qualified", 2, 800000},
		{"Quotation Shared", 1, 2400000},
		{"Customer", 1, 150000},
	}
	assert.Equal(t, want, got)
}

func TestFunnelOverFilteredView(t *testing.T) {
	view := OpportunityAdapter.Bind(SeedOpportunities())
	derived, err := engine.ComputeView(view, engine.Criteria{
		Facets: engine.FacetSelections{"owner": {"Priya Sharma"}},
	})
	require.NoError(t, err)

	groups := Funnel(derived)
	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, 900000.0, groups[0].Value)
	assert.Equal(t, 0, groups[1].Count)
	assert.Equal(t, 350000.0, groups[2].Value)

	metrics := engine.ComputeAggregates(view, derived, OpportunityMetrics())
	assert.Equal(t, 1250000.0, metrics["pipeline_value"])
	assert.Equal(t, 7.0, metrics["total_deals"])
}

func TestOpportunitySearch(t *testing.T) {
	view := OpportunityAdapter.Bind(SeedOpportunities())
	got := engine.ApplyFilters(view, engine.Criteria{Query: "north", TextFields: OpportunityCatalog().TextFields})
	assert.Equal(t, []string{"6"}, viewIDs(got), "region is not a text field")
}

// ============================================================================
// GENERATED COLLECTIONS
// ============================================================================

func TestSeedsAreDeterministic(t *testing.T) {
	assert.Equal(t, SeedScreens(), SeedScreens())
	assert.Equal(t, SeedQuotations(), SeedQuotations())
	assert.Equal(t, SeedCampaigns(), SeedCampaigns())
}

func TestSeedScreens(t *testing.T) {
	screens := SeedScreens()
	require.Len(t, screens, 100)

	assert.Equal(t, 1000, screens[0].ID)
	assert.Equal(t, "Cinema Complex - Screen 1", screens[0].Name)
	assert.Equal(t, "A+", screens[0].Grade)
	assert.Equal(t, "B", screens[1].Grade)
	assert.Equal(t, "A", screens[3].Grade)
	assert.Equal(t, "A+", screens[30].Grade)
	assert.Equal(t, "Urban High Income", screens[0].Audience)
	assert.Equal(t, "General Family", screens[1].Audience)

	for _, s := range screens {
		assert.GreaterOrEqual(t, s.Seats, 120)
		assert.Less(t, s.Seats, 370)
		assert.GreaterOrEqual(t, s.BaseRate, 600.0)
		assert.LessOrEqual(t, s.BaseRate, 1700.0)
		assert.Contains(t, ScreenStatuses, s.Status)
		assert.Contains(t, Cities, s.City)
	}
}

func TestScreenFloor(t *testing.T) {
	screens := SeedScreens()
	view := ScreenAdapter.Bind(screens)

	got, err := engine.ComputeView(view, engine.Criteria{
		Floors: map[string]float64{"seats": 300},
		Facets: engine.FacetSelections{"status": {"Live"}},
	}, engine.WithStrictFields())
	require.NoError(t, err)

	for _, s := range engine.Materialize(screens, got) {
		assert.GreaterOrEqual(t, s.Seats, 300)
		assert.Equal(t, "Live", s.Status)
	}
}

func TestSeedQuotations(t *testing.T) {
	quotes := SeedQuotations()
	require.Len(t, quotes, 25)
	assert.Equal(t, "QT-25-200", quotes[0].ID)
	assert.Equal(t, "QT-25-224", quotes[24].ID)

	date := regexp.MustCompile(`^2025-10-(0[1-9]|1[0-9]|20)$`)
	for _, q := range quotes {
		assert.Regexp(t, date, q.Date)
		assert.Contains(t, QuotationStatuses, q.Status)
		assert.GreaterOrEqual(t, q.Screens, 3)
		assert.Less(t, q.Screens, 18)
		assert.GreaterOrEqual(t, q.Value, 100000.0)
	}
}

func TestSeedCampaigns(t *testing.T) {
	campaigns := SeedCampaigns()
	require.Len(t, campaigns, 25)
	assert.Equal(t, "CP-25-300", campaigns[0].ID)

	view := CampaignAdapter.Bind(campaigns)
	groups := StatusBreakdown(view)
	require.Len(t, groups, 4)
	total := 0
	for i, g := range groups {
		assert.Equal(t, CampaignStatuses[i], g.Key)
		total += g.Count
	}
	assert.Equal(t, 25, total)
}

func TestDraftAddScreens(t *testing.T) {
	screens := SeedScreens()[:3]
	draft := Draft{}.AddScreens(screens[:2])
	next := draft.AddScreens(screens)

	assert.Len(t, draft.Screens, 2)
	assert.Len(t, next.Screens, 3, "duplicates are skipped")
	assert.Equal(t, screens[0].BaseRate+screens[1].BaseRate+screens[2].BaseRate, next.Total())
	assert.Zero(t, Draft{}.Total())
}

// ============================================================================
// TASKS
// ============================================================================

func TestToggleTask(t *testing.T) {
	tasks := SeedTasks()
	next := ToggleTask(tasks, "2")

	assert.False(t, tasks[1].Completed, "input untouched")
	assert.True(t, next[1].Completed)
	assert.False(t, next[0].Completed)

	back := ToggleTask(next, "2")
	assert.Equal(t, tasks, back)
	assert.Equal(t, tasks, ToggleTask(tasks, "nope"))
}

func TestAddTask(t *testing.T) {
	tasks := SeedTasks()

	next, added := AddTask(tasks, TaskDraft{})
	require.Len(t, next, 4)
	assert.Len(t, tasks, 3)
	assert.Equal(t, added, next[0], "new tasks are prepended")
	assert.Equal(t, "Untitled Task", added.Title)
	assert.Equal(t, "General", added.Client)
	assert.Equal(t, "TBD", added.Due)
	assert.Equal(t, TaskCall, added.Type)
	assert.False(t, added.Completed)
	_, err := uuid.Parse(added.ID)
	assert.NoError(t, err)

	_, custom := AddTask(tasks, TaskDraft{Title: "Send deck", Client: "Amul", Due: "Friday", Type: TaskMeeting})
	assert.Equal(t, Task{ID: custom.ID, Title: "Send deck", Client: "Amul", Due: "Friday", Type: TaskMeeting}, custom)
}

func TestTaskSearch(t *testing.T) {
	tasks := SeedTasks()
	view := TaskAdapter.Bind(tasks)
	got := engine.ApplyFilters(view, engine.Criteria{Query: "pvr", TextFields: TaskCatalog().TextFields})
	assert.Equal(t, []string{"3"}, viewIDs(got))
}

// ============================================================================
// OVERVIEW
// ============================================================================

func TestOverview(t *testing.T) {
	d := SeedDataset()
	o := d.Overview()

	assert.Equal(t, 4300000.0, o.OpenPipeline)
	assert.Equal(t, "3.4%", engine.FormatPercent(o.WinRate, 1))
	assert.Equal(t, 14, o.ActiveAccounts)
	assert.Equal(t, 3, o.OpenTasks)

	shared := 0
	for _, q := range d.Quotations {
		if q.Status == "Shared" {
			shared++
		}
	}
	assert.Equal(t, shared, o.PendingProposals)

	urgent := d.UrgentTasks()
	require.Len(t, urgent, 2)
	assert.Equal(t, "1", urgent[0].ID)

	d.Tasks = ToggleTask(d.Tasks, "1")
	assert.Len(t, d.UrgentTasks(), 1)
	assert.Equal(t, 2, d.Overview().OpenTasks)
}

func TestOverviewEmpty(t *testing.T) {
	o := (&Dataset{}).Overview()
	assert.Zero(t, o.WinRate)
	assert.Zero(t, o.OpenPipeline)
}

func TestOverviewWinRate(t *testing.T) {
	d := &Dataset{Opportunities: []Opportunity{
		{ID: 1, Stage: StageCustomer, Value: 100},
		{ID: 2, Stage: StageLead, Value: 300},
	}}
	assert.Equal(t, 25.0, d.Overview().WinRate)

	zero := &Dataset{Opportunities: []Opportunity{{ID: 1, Stage: StageCustomer}}}
	assert.Zero(t, zero.Overview().WinRate, "zero pipeline value")
}

func TestEnablementResources(t *testing.T) {
	res := EnablementResources()
	require.NotEmpty(t, res)
	assert.Equal(t, "Cinema Advertising 101", res[2].Title)
}

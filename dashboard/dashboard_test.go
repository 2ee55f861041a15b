package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/salesdesk/config"
	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/engine"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "Overview"},
		{"/accounts", "Accounts"},
		{"accounts", "Accounts"},
		{"/Pipeline/", "Pipeline & Funnel"},
		{"overview", "Overview"},
		{"/enablement", "Sales Enablement"},
		{"/nowhere", "Overview"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.path).Label, "Resolve(%q)", tt.path)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("/reports")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestStep(t *testing.T) {
	assert.Equal(t, "/accounts", Step("/", 1).Path)
	assert.Equal(t, "/enablement", Step("/", -1).Path)
	assert.Equal(t, "/", Step("/enablement", 1).Path)
	assert.Equal(t, 0, IndexOf("/missing"))
	assert.Len(t, Pages, 7)
}

func TestNextSort(t *testing.T) {
	first := NextSort(nil, "name")
	assert.Equal(t, &engine.Sort{Field: "name", Direction: engine.Ascending}, first)

	second := NextSort(first, "name")
	assert.Equal(t, engine.Descending, second.Direction)

	third := NextSort(second, "name")
	assert.Equal(t, engine.Ascending, third.Direction, "desc goes back to asc")

	other := NextSort(first, "region")
	assert.Equal(t, &engine.Sort{Field: "region", Direction: engine.Ascending}, other)
}

func TestListStateTransitionsDoNotAlias(t *testing.T) {
	base := ListState{}.ToggleFacet("region", "North").WithFloor("seats", 200)

	next := base.ToggleFacet("region", "West").WithFloor("seats", 0).WithQuery("pepsi")

	assert.Equal(t, []string{"North"}, base.Facets["region"])
	assert.Equal(t, map[string]float64{"seats": 200}, base.Floors)
	assert.Empty(t, base.Query)

	assert.Equal(t, []string{"North", "West"}, next.Facets["region"])
	assert.Empty(t, next.Floors)
	assert.Equal(t, "pepsi", next.Query)
}

func TestListStateSelectOnly(t *testing.T) {
	st := ListState{}.SelectOnly("on_hold", "true")
	assert.Equal(t, []string{"true"}, st.Facets["on_hold"])

	st = st.SelectOnly("on_hold", "true")
	assert.False(t, st.Facets.HasFilter("on_hold"), "second click clears")

	st = st.SelectOnly("status", "Live").SelectOnly("status", "Downtime")
	assert.Equal(t, []string{"Downtime"}, st.Facets["status"])
	assert.False(t, st.SelectOnly("status", "").Facets.HasFilter("status"))
}

func TestListStateClearAndCount(t *testing.T) {
	st := ListState{}.
		ToggleFacet("segment", "FMCG").
		ToggleFacet("segment", "Retail").
		SelectOnly("on_hold", "true").
		WithQuery("ltd").
		WithFloor("seats", 150).
		ApplySort("name").
		Select("ACC-001")

	assert.Equal(t, 4, st.AppliedFilters())
	assert.True(t, st.IsSelected("segment", "Retail"))

	cleared := st.Clear()
	assert.Zero(t, cleared.AppliedFilters())
	assert.Empty(t, cleared.Query)
	assert.Equal(t, st.Sort, cleared.Sort)
	assert.Equal(t, "ACC-001", cleared.Selected)
}

func TestLookupList(t *testing.T) {
	l, err := LookupList("screens")
	require.NoError(t, err)
	assert.Equal(t, "/quotation", l.Page)

	l, err = LookupList("/quotation")
	require.NoError(t, err)
	assert.Equal(t, ListQuotations, l.Name)

	l, err = LookupList("accounts")
	require.NoError(t, err)
	assert.Equal(t, ListAccounts, l.Name)

	_, err = LookupList("enablement")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestDeriveAndNeighbor(t *testing.T) {
	d := crm.SeedDataset()
	l, err := LookupList(ListAccounts)
	require.NoError(t, err)

	st := ListState{}.ToggleFacet("region", "North").ApplySort("total_outstanding").ApplySort("total_outstanding")
	res, err := l.Derive(d, st, nil, engine.WithStrictFields())
	require.NoError(t, err)

	var got []string
	for i := 0; i < res.View.Len(); i++ {
		got = append(got, res.View.ID(i))
	}
	want := []string{"ACC-001", "ACC-013", "ACC-012", "ACC-002", "ACC-007"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5.0, res.Metrics["showing"])

	st = st.Select("ACC-013")
	next, ok := Neighbor(res.View, st, engine.Next)
	require.True(t, ok)
	assert.Equal(t, "ACC-012", next)

	_, ok = Neighbor(res.View, st.Select("ACC-001"), engine.Previous)
	assert.False(t, ok)

	// Narrowing the view re-resolves the selection by id.
	narrowed, err := l.Derive(d, st.ToggleFacet("segment", "Retail"), nil)
	require.NoError(t, err)
	_, ok = Neighbor(narrowed.View, st, engine.Next)
	assert.False(t, ok, "ACC-013 is the only North retail account")
}

func TestDeriveStrictRejectsUnknownFacet(t *testing.T) {
	l, err := LookupList(ListTasks)
	require.NoError(t, err)

	_, err = l.Derive(crm.SeedDataset(), ListState{}.ToggleFacet("priority", "High"), nil, engine.WithStrictFields())
	assert.ErrorIs(t, err, engine.ErrUnknownField)
}

func TestExtraMetrics(t *testing.T) {
	d := crm.SeedDataset()
	cfg := config.Default()
	cfg.Metrics = map[string][]config.MetricConfig{
		"/accounts": {{Name: "west_blocked", Where: `region == "West" && on_hold == "true"`}},
		"accounts":  {{Name: "north_showing", Scope: "filtered", Where: `region == "North"`}},
	}

	l, err := LookupList(ListAccounts)
	require.NoError(t, err)
	extra, err := ExtraMetrics(cfg, l, d)
	require.NoError(t, err)
	require.Len(t, extra, 2)

	res, err := l.Derive(d, ListState{}.ToggleFacet("segment", "FMCG"), extra)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Metrics["west_blocked"])
	assert.Equal(t, 2.0, res.Metrics["north_showing"])
	assert.Len(t, l.Catalog.Metrics, len(crm.AccountMetrics()), "catalog metrics untouched")

	cfg.Metrics["/accounts"] = []config.MetricConfig{{Name: "bad", Where: `region`}}
	_, err = ExtraMetrics(cfg, l, d)
	assert.Error(t, err)

	none, err := ExtraMetrics(nil, l, d)
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestCompileMetricsReducers(t *testing.T) {
	d := crm.SeedDataset()
	l, err := LookupList(ListAccounts)
	require.NoError(t, err)
	view := l.Bind(d)

	metrics, err := CompileMetrics(view, []config.MetricConfig{
		{Name: "avg_outstanding", Reducer: "avg", Measure: "total_outstanding"},
		{Name: "largest", Reducer: "max", Measure: "total_outstanding"},
		{Name: "smallest", Reducer: "min", Measure: "total_outstanding"},
		{Name: "delivered", Reducer: "percent", Measure: "executed_runs", Denominator: "planned_runs"},
		{Name: "rows", Reducer: "count", Scope: "filtered"},
	})
	require.NoError(t, err)
	require.Len(t, metrics, 5)
	assert.Equal(t, engine.ScopeFiltered, metrics[4].Scope)

	res, err := l.Derive(d, ListState{}, metrics)
	require.NoError(t, err)
	assert.InDelta(t, res.Metrics["total_receivables"]/res.Metrics["total_accounts"], res.Metrics["avg_outstanding"], 1e-9)
	assert.Equal(t, engine.MaxMeasure(view, "total_outstanding"), res.Metrics["largest"])
	assert.LessOrEqual(t, res.Metrics["smallest"], res.Metrics["avg_outstanding"])
	assert.Equal(t, res.Metrics["delivery_rate"], res.Metrics["delivered"])
	assert.Equal(t, res.Metrics["showing"], res.Metrics["rows"])
}

func TestCompileMetricsRejects(t *testing.T) {
	d := crm.SeedDataset()
	l, err := LookupList(ListAccounts)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Metrics = map[string][]config.MetricConfig{"/accounts": {{Name: "showing", Reducer: "count"}}}
	_, err = ExtraMetrics(cfg, l, d)
	assert.ErrorIs(t, err, ErrDuplicateMetric, "catalog names are reserved")

	view := l.Bind(d)
	_, err = CompileMetrics(view, []config.MetricConfig{
		{Name: "x", Reducer: "count"},
		{Name: "x", Reducer: "count"},
	})
	assert.ErrorIs(t, err, ErrDuplicateMetric)

	_, err = CompileMetrics(view, []config.MetricConfig{{Name: "x", Reducer: "sum", Measure: "region"}})
	assert.ErrorIs(t, err, engine.ErrUnknownField, "dimensions are not measures")

	_, err = CompileMetrics(view, []config.MetricConfig{{Name: "x", Reducer: "ratio", Measure: "total_outstanding", Denominator: "nope"}})
	var fe *engine.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "denominator", fe.Role)

	_, err = CompileMetrics(view, []config.MetricConfig{{Name: "x", Reducer: "median", Measure: "total_outstanding"}})
	assert.ErrorContains(t, err, "unknown reducer")
}

func TestBreakdown(t *testing.T) {
	d := crm.SeedDataset()

	l, err := LookupList(ListPipeline)
	require.NoError(t, err)
	dim, groups, ok := l.Breakdown(l.Bind(d))
	require.True(t, ok)
	assert.Equal(t, "stage", dim)
	require.Len(t, groups, len(crm.StageOrder()))
	assert.Equal(t, crm.StageOrder()[0], groups[0].Key)
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, len(d.Opportunities), total)

	l, err = LookupList(ListCampaigns)
	require.NoError(t, err)
	dim, _, ok = l.Breakdown(l.Bind(d))
	assert.True(t, ok)
	assert.Equal(t, "status", dim)

	l, err = LookupList(ListAccounts)
	require.NoError(t, err)
	_, _, ok = l.Breakdown(l.Bind(d))
	assert.False(t, ok)
}

func TestToasts(t *testing.T) {
	var q Toasts
	q1, first := q.Push("hello", ToastInfo)
	q2, second := q1.Push(ReportReadyMessage, ToastSuccess)

	assert.Empty(t, q)
	assert.Len(t, q1, 1)
	require.Len(t, q2, 2)
	assert.NotEqual(t, first, second)

	q3 := q2.Dismiss(first)
	require.Len(t, q3, 1)
	assert.Equal(t, second, q3[0].ID)
	assert.Len(t, q2, 2, "dismiss leaves the old queue intact")

	assert.Len(t, q3.Dismiss(first), 1, "dismissing twice is a no-op")
	assert.Equal(t, `New task created: "Call Amul"`, TaskCreatedMessage("Call Amul"))
}

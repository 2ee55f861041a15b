package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/salesdesk/engine"
)

// ============================================================================
// DISCOVERY TESTS
// ============================================================================

var jiraCSV = []byte(`Issue Key,Summary,Status,Priority,Issue Type,Assignee,Component,Sprint,Story Points,Time Spent Hours,Created,Resolved
PROJ-101,Login timeout on mobile,In Progress,P1 - Critical,Bug,alice@corp.com,Backend,Sprint 17,5,12.5,2026-01-15,
PROJ-102,Dashboard crash on Safari,To Do,P2 - High,Bug,bob@corp.com,Frontend,Sprint 17,3,0,2026-01-16,
PROJ-103,Add dark mode toggle,Done,P3 - Medium,Story,charlie@corp.com,Frontend,Sprint 16,8,16,2026-01-10,2026-01-20
PROJ-104,Update user docs,In Review,P4 - Low,Task,alice@corp.com,Documentation,Sprint 17,2,4,2026-01-18,
PROJ-105,Payment fails with expired card,In Progress,P1 - Critical,Bug,dave@corp.com,Backend,Sprint 17,8,20,2026-01-12,
PROJ-106,Optimize DB queries,Done,P2 - High,Task,eve@corp.com,Backend,Sprint 16,5,10,2026-01-08,2026-01-15
PROJ-107,Mobile push notifications,To Do,P2 - High,Story,frank@corp.com,Mobile,Sprint 18,13,0,2026-01-20,
PROJ-108,Fix memory leak in worker,In Progress,P1 - Critical,Bug,alice@corp.com,Infrastructure,Sprint 17,5,8,2026-01-14,
PROJ-109,Redesign settings page,Done,P3 - Medium,Story,bob@corp.com,Frontend,Sprint 15,8,14,2026-01-05,2026-01-12
PROJ-110,API rate limiting,Done,P2 - High,Story,charlie@corp.com,Backend,Sprint 16,5,9,2026-01-09,2026-01-18
PROJ-111,Add export to CSV,To Do,P3 - Medium,Story,dave@corp.com,Backend,Sprint 18,3,0,2026-01-22,
PROJ-112,Update SSL certs,Done,P1 - Critical,Task,eve@corp.com,Infrastructure,Sprint 16,1,2,2026-01-07,2026-01-07
`)

var receivablesCSV = []byte(`Month,Region,Segment,Outstanding,Notes
Jan-2026,North,FMCG,"₹1,25,000",
Jan-2026,West,Retail,"80,000.50",
Feb-2026,North,FMCG,n/a,
Feb-2026,South,Auto,-5000,
`)

func TestDiscoverJiraCSV(t *testing.T) {
	sch, err := Discover(jiraCSV, DiscoverOptions{Name: "Sprint board"})
	require.NoError(t, err)

	assert.Equal(t, "Sprint board", sch.Name)
	assert.Equal(t, "issue_key", sch.IDColumn)

	dims := sch.DimensionKeys()
	for _, k := range []string{"issue_key", "summary", "status", "priority", "issue_type", "assignee", "component", "sprint", "created", "resolved"} {
		assert.Contains(t, dims, k)
	}

	want := []string{"story_points", "time_spent_hours", RecordCount}
	if diff := cmp.Diff(want, sch.MeasureKeys()); diff != "" {
		t.Errorf("measures mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"status", "priority", "issue_type", "assignee", "component", "sprint"}, sch.FacetKeys())
	assert.Equal(t, []string{"issue_key", "summary"}, sch.TextKeys())

	for _, d := range sch.Dimensions {
		switch d.Key {
		case "created", "resolved":
			assert.True(t, d.IsTemporal, d.Key)
		case "story_points":
			t.Errorf("story_points should not be a dimension")
		}
	}
}

func TestDiscoverSkipsEmptyColumns(t *testing.T) {
	sch, err := Discover(receivablesCSV)
	require.NoError(t, err)

	assert.Equal(t, "Discovered Dataset", sch.Name)
	assert.Empty(t, sch.IDColumn)
	require.Len(t, sch.Skipped, 1)
	assert.Equal(t, "Notes", sch.Skipped[0].Column)
	assert.Contains(t, sch.MeasureKeys(), "outstanding")
	assert.NotContains(t, sch.DimensionKeys(), "notes")
}

func TestDiscoverEmpty(t *testing.T) {
	_, err := Discover(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Discover([]byte("a,b,c\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   columnType
	}{
		{"numbers", []string{"1", "2.5", "1,200", "₹900"}, typeNumeric},
		{"mostly numbers", []string{"1", "2", "3", "4", "oops"}, typeNumeric},
		{"dates", []string{"2026-01-02", "Jan-2026", "2 Jan 2026"}, typeDate},
		{"bools", []string{"yes", "No", "TRUE"}, typeBool},
		{"text", []string{"North", "West", "1"}, typeString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectType(tt.values))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Issue Key":        "issue_key",
		"storyPoints":      "story_points",
		"Time-Spent.Hours": "time_spent_hours",
		"  Region  ":       "region",
		"A  B":             "a_b",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnakeCase(in), "toSnakeCase(%q)", in)
	}
}

func TestToDisplayName(t *testing.T) {
	assert.Equal(t, "Story Points", toDisplayName("story_points"))
	assert.Equal(t, "Issue Key", toDisplayName("Issue Key"))
	assert.Equal(t, "Total Due", toDisplayName("total-due"))
}

// ============================================================================
// PARSE TESTS
// ============================================================================

func TestParseReceivables(t *testing.T) {
	sch, err := Discover(receivablesCSV)
	require.NoError(t, err)

	records, err := Parse(receivablesCSV, *sch)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, 125000.0, records[0].Measures["outstanding"])
	assert.Equal(t, 80000.5, records[1].Measures["outstanding"])
	_, ok := records[2].Measures["outstanding"]
	assert.False(t, ok, "n/a leaves the measure unset")
	assert.Equal(t, -5000.0, records[3].Measures["outstanding"])
	assert.Equal(t, 1.0, records[3].Measures[RecordCount])
	assert.Equal(t, "South", records[3].Dimensions["region"])
	assert.NotContains(t, records[0].Dimensions, "notes")
}

func TestLoadFeedsTheEngine(t *testing.T) {
	view, sch, err := Load(jiraCSV)
	require.NoError(t, err)
	require.Equal(t, 12, view.Len())
	assert.Equal(t, "PROJ-101", view.ID(0))

	done, err := engine.Execute(view, engine.Criteria{
		Facets: engine.FacetSelections{"status": {"Done"}},
		Sort:   &engine.Sort{Field: "story_points", Direction: engine.Descending},
	}, []engine.Metric{
		{Name: "points", Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: "story_points"},
		{Name: "issues", Scope: engine.ScopeFull, Reducer: engine.ReduceSum, Measure: RecordCount},
	})
	require.NoError(t, err)

	var got []string
	for i := 0; i < done.View.Len(); i++ {
		got = append(got, done.View.ID(i))
	}
	assert.Equal(t, []string{"PROJ-103", "PROJ-109", "PROJ-106", "PROJ-110", "PROJ-112"}, got)
	assert.Equal(t, 27.0, done.Metrics["points"])
	assert.Equal(t, 12.0, done.Metrics["issues"])

	search, err := engine.ComputeView(view, engine.Criteria{Query: "MEMORY", TextFields: sch.TextKeys()})
	require.NoError(t, err)
	require.Equal(t, 1, search.Len())
	assert.Equal(t, "PROJ-108", search.ID(0))

	for _, d := range sch.Dimensions {
		switch d.Key {
		case "status":
			assert.Equal(t, []string{"Done", "In Progress", "In Review", "To Do"}, d.Options)
		case "summary":
			assert.Nil(t, d.Options, "text dimensions carry no options")
		}
	}

	big, err := engine.ComputeView(view, engine.Criteria{Floors: map[string]float64{"story_points": 8}})
	require.NoError(t, err)
	assert.Equal(t, 4, big.Len())
}

func TestParsePositionalIDs(t *testing.T) {
	view, _, err := Load(receivablesCSV)
	require.NoError(t, err)
	assert.Equal(t, "0", view.ID(0))
	assert.Equal(t, "3", view.ID(3))
}

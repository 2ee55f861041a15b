package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFilters(t *testing.T) {
	view := dealAdapter.Bind(sampleDeals())

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria keeps everything", Criteria{}, []string{"d1", "d2", "d3", "d4", "d5"}},
		{"single facet value", Criteria{Facets: FacetSelections{"region": {"North"}}}, []string{"d1", "d4"}},
		{"or within facet", Criteria{Facets: FacetSelections{"region": {"North", "South"}}}, []string{"d1", "d3", "d4"}},
		{"and across facets", Criteria{Facets: FacetSelections{"region": {"North", "West"}, "stage": {"Lead"}}}, []string{"d1", "d5"}},
		{"empty selection is no filter", Criteria{Facets: FacetSelections{"region": {}}}, []string{"d1", "d2", "d3", "d4", "d5"}},
		{"unknown facet is ignored", Criteria{Facets: FacetSelections{"colour": {"Red"}}}, []string{"d1", "d2", "d3", "d4", "d5"}},
		{"facet match is exact", Criteria{Facets: FacetSelections{"region": {"north"}}}, []string{}},
		{"query is case-insensitive", Criteria{Query: "STAR", TextFields: []string{"brand"}}, []string{"d3"}},
		{"query ors text fields", Criteria{Query: "north", TextFields: []string{"brand", "region"}}, []string{"d1", "d4"}},
		{"floor drops smaller measures", Criteria{Floors: map[string]float64{"value": 350000}}, []string{"d2", "d3", "d4"}},
		{"unknown floor is ignored", Criteria{Floors: map[string]float64{"seats": 999}}, []string{"d1", "d2", "d3", "d4", "d5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(view, tt.criteria)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ApplyFilters() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyFiltersMonotonic(t *testing.T) {
	view := dealAdapter.Bind(sampleDeals())
	base := Criteria{Facets: FacetSelections{"stage": {"Lead"}}}
	narrow := ApplyFilters(view, base)

	// Adding a second facet narrows; adding a value to the same facet widens
	// only with records carrying that value.
	narrower := ApplyFilters(view, Criteria{Facets: base.Facets.Set("region", "North")})
	assert.LessOrEqual(t, narrower.Len(), narrow.Len())

	wider := ApplyFilters(view, Criteria{Facets: base.Facets.Toggle("stage", "Customer")})
	for i := 0; i < wider.Len(); i++ {
		assert.Contains(t, []string{"Lead", "Customer"}, wider.Dimension(i, "stage"))
	}
}

func TestQueryMembership(t *testing.T) {
	deals := sampleDeals()
	view := dealAdapter.Bind(deals)
	fields := []string{"brand", "stage"}

	for _, q := range []string{"", "a", "LEAD", "motors", "zzz"} {
		got := ApplyFilters(view, Criteria{Query: q, TextFields: fields})
		var want []string
		for _, d := range deals {
			lq := strings.ToLower(q)
			if q == "" || strings.Contains(strings.ToLower(d.Brand), lq) || strings.Contains(strings.ToLower(d.Stage), lq) {
				want = append(want, d.ID)
			}
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, ids(got), "query %q", q)
	}
}

func TestQueryNeedsDeclaredFields(t *testing.T) {
	view := threeRecords()

	got := ApplyFilters(view, Criteria{Query: "west"})
	assert.Zero(t, got.Len(), "undeclared fields must not be searched")

	got = ApplyFilters(view, Criteria{Query: "west", TextFields: []string{"region"}})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestToggleMembership(t *testing.T) {
	in := []string{"North", "West"}

	removed := ToggleMembership(in, "North")
	assert.Equal(t, []string{"West"}, removed)

	added := ToggleMembership(in, "South")
	assert.Equal(t, []string{"North", "West", "South"}, added)

	assert.Equal(t, []string{"North", "West"}, in, "input must not be mutated")

	// Appending to the result must not write into the input's backing array.
	base := make([]string, 1, 4)
	base[0] = "A"
	out := ToggleMembership(base, "B")
	out[0] = "Z"
	assert.Equal(t, "A", base[0])

	assert.Equal(t, []string{"X"}, ToggleMembership(nil, "X"))
}

func TestFacetSelectionsToggle(t *testing.T) {
	sel := FacetSelections{"region": {"North"}}
	next := sel.Toggle("region", "West").Toggle("stage", "Lead")

	require.Equal(t, FacetSelections{"region": {"North"}}, sel)
	assert.Equal(t, []string{"North", "West"}, next["region"])
	assert.Equal(t, []string{"Lead"}, next["stage"])
	assert.Equal(t, 3, next.Count())
	assert.True(t, next.HasFilter("stage"))

	cleared := next.Toggle("stage", "Lead")
	assert.False(t, cleared.HasFilter("stage"))
	assert.False(t, cleared.IsEmpty())
	assert.True(t, FacetSelections{"stage": nil}.IsEmpty())
}

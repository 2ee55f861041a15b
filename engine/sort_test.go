package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSortView(t *testing.T) {
	view := dealAdapter.Bind(sampleDeals())

	tests := []struct {
		name string
		sort *Sort
		want []string
	}{
		{"nil keeps insertion order", nil, []string{"d1", "d2", "d3", "d4", "d5"}},
		{"numeric ascending, ties stable", &Sort{Field: "value"}, []string{"d1", "d5", "d2", "d4", "d3"}},
		{"numeric descending, ties stable", &Sort{Field: "value", Direction: Descending}, []string{"d3", "d4", "d2", "d1", "d5"}},
		{"string ascending", &Sort{Field: "brand"}, []string{"d5", "d1", "d4", "d3", "d2"}},
		{"unknown field is a no-op", &Sort{Field: "nope", Direction: Descending}, []string{"d1", "d2", "d3", "d4", "d5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortView(view, tt.sort)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("SortView() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortStableUnderBothDirections(t *testing.T) {
	view := dealAdapter.Bind(sampleDeals())
	byStage := func(dir Direction) []string {
		return ids(SortView(view, &Sort{Field: "stage", Direction: dir}))
	}

	// Leads d1, d3, d5 keep their relative order in both directions.
	assert.Equal(t, []string{"d4", "d1", "d3", "d5", "d2"}, byStage(Ascending))
	assert.Equal(t, []string{"d2", "d1", "d3", "d5", "d4"}, byStage(Descending))
}

func TestSortAbsentValuesTie(t *testing.T) {
	deals := []deal{
		{ID: "a", Score: ptr(2)},
		{ID: "b"},
		{ID: "c", Score: ptr(1)},
	}
	view := dealAdapter.Bind(deals)

	// b ties with both neighbours and stays put.
	got := ids(SortView(view, &Sort{Field: "score"}))
	assert.Len(t, got, 3)
	assert.Equal(t, "b", got[1])
}

func TestValueCompare(t *testing.T) {
	assert.Equal(t, -1, Number(1).Compare(Number(2)))
	assert.Equal(t, 1, String("b").Compare(String("a")))
	assert.Equal(t, 0, Absent.Compare(Number(5)))
	assert.Equal(t, 0, Number(5).Compare(String("5")))
	assert.True(t, OptNumber(nil).IsAbsent())
	assert.Equal(t, "2.5", Number(2.5).String())
}

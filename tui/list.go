package tui

import (
	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/dashboard"
	"github.com/spektr-org/salesdesk/engine"
)

// listModel is the per-list UI state plus its last derived result. It is a
// value; the pointer methods edit a caller's copy.
type listModel struct {
	list  dashboard.List
	extra []engine.Metric
	state dashboard.ListState

	result *engine.Result
	cursor int
	facet  int // focused facet
	option int // focused option within the facet
	column int // focused sortable column
	detail bool
}

func newListModel(l dashboard.List, extra []engine.Metric) listModel {
	return listModel{list: l, extra: extra}
}

// refresh re-derives the view from d. The engine runs lenient here, so an
// error only surfaces for a misconfigured list.
func (lm *listModel) refresh(d *crm.Dataset, opts ...engine.Option) error {
	res, err := lm.list.Derive(d, lm.state, lm.extra, opts...)
	if err != nil {
		return err
	}
	lm.result = res
	if lm.cursor >= res.View.Len() {
		lm.cursor = max(res.View.Len()-1, 0)
	}
	return nil
}

func (lm listModel) view() engine.RecordView {
	if lm.result == nil {
		return engine.NewSliceView(nil)
	}
	return lm.result.View
}

func (lm *listModel) move(delta int) {
	n := lm.view().Len()
	if n == 0 {
		lm.cursor = 0
		return
	}
	lm.cursor = min(max(lm.cursor+delta, 0), n-1)
}

func (lm listModel) cursorID() (string, bool) {
	v := lm.view()
	if lm.cursor < 0 || lm.cursor >= v.Len() {
		return "", false
	}
	return v.ID(lm.cursor), true
}

func (lm listModel) focusedFacet() (crm.Facet, bool) {
	facets := lm.list.Catalog.Facets
	if len(facets) == 0 {
		return crm.Facet{}, false
	}
	return facets[lm.facet%len(facets)], true
}

func (lm *listModel) nextFacet() {
	if n := len(lm.list.Catalog.Facets); n > 0 {
		lm.facet = (lm.facet + 1) % n
		lm.option = 0
	}
}

func (lm *listModel) moveOption(delta int) {
	f, ok := lm.focusedFacet()
	if !ok || len(f.Options) == 0 {
		return
	}
	n := len(f.Options)
	lm.option = ((lm.option+delta)%n + n) % n
}

// toggleOption applies the focused chip. Single-select facets behave like a
// radio group with an implicit "All".
func (lm *listModel) toggleOption() {
	f, ok := lm.focusedFacet()
	if !ok || len(f.Options) == 0 {
		return
	}
	value := f.Options[lm.option%len(f.Options)]
	if f.Single {
		lm.state = lm.state.SelectOnly(f.Key, value)
	} else {
		lm.state = lm.state.ToggleFacet(f.Key, value)
	}
	lm.cursor = 0
}

func (lm listModel) focusedColumn() (crm.Column, bool) {
	cols := lm.list.Catalog.SortableColumns()
	if len(cols) == 0 {
		return crm.Column{}, false
	}
	return cols[lm.column%len(cols)], true
}

func (lm *listModel) nextColumn() {
	if n := len(lm.list.Catalog.SortableColumns()); n > 0 {
		lm.column = (lm.column + 1) % n
	}
}

func (lm *listModel) sortFocused() {
	if col, ok := lm.focusedColumn(); ok {
		lm.state = lm.state.ApplySort(col.Key)
	}
}

// stepFloor moves the first floor of the catalog by delta steps, clamped to
// [0, Max].
func (lm *listModel) stepFloor(delta int) {
	floors := lm.list.Catalog.Floors
	if len(floors) == 0 {
		return
	}
	f := floors[0]
	v := lm.state.Floors[f.Key] + float64(delta)*f.Step
	v = min(max(v, 0), f.Max)
	lm.state = lm.state.WithFloor(f.Key, v)
	lm.cursor = 0
}

func (lm *listModel) clear() {
	lm.state = lm.state.Clear()
	lm.cursor = 0
}

func (lm *listModel) openDetail() bool {
	id, ok := lm.cursorID()
	if !ok {
		return false
	}
	lm.state = lm.state.Select(id)
	lm.detail = true
	return true
}

// step moves the detail view to the neighbouring record. The selection is
// re-resolved by id against the current view.
func (lm *listModel) step(s engine.Step) bool {
	id, ok := dashboard.Neighbor(lm.view(), lm.state, s)
	if !ok {
		return false
	}
	lm.state = lm.state.Select(id)
	lm.cursor = engine.IndexOf(lm.view(), id)
	return true
}

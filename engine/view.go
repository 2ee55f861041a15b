package engine

import "strconv"

// ============================================================================
// RECORD VIEW: Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   SliceView     : wraps []Record (CSV, ad-hoc, tests)
//   DomainView[T] : reads typed structs via accessor functions (zero-copy)
//   SubView       : filtered/sorted subset (indices into parent, zero-copy)
//
// Consumers register accessors once at init; the engine reads in tight loops.
// ============================================================================

// RecordView provides indexed access to a dataset.
type RecordView interface {
	Len() int
	ID(index int) string
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	// Field returns the orderable value used for sorting. Absent when unset.
	Field(index int, key string) Value
	// Origin maps index back to the position in the bound root collection.
	Origin(index int) int
	DimensionKeys() []string
	MeasureKeys() []string
	FieldKeys() []string
}

// ============================================================================
// SLICE VIEW: wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
// Used by dataset.Parse and ad-hoc consumers.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
}

func (v *SliceView) Len() int { return len(v.records) }

// ID returns the record's ID, or its position when the ID is empty.
func (v *SliceView) ID(i int) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	if id := v.records[i].ID; id != "" {
		return id
	}
	return strconv.Itoa(i)
}

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

// Field prefers a measure over a dimension of the same key.
func (v *SliceView) Field(i int, key string) Value {
	if i < 0 || i >= len(v.records) {
		return Absent
	}
	r := v.records[i]
	if m, ok := r.Measures[key]; ok {
		return Number(m)
	}
	if d, ok := r.Dimensions[key]; ok {
		return String(d)
	}
	return Absent
}

func (v *SliceView) Origin(i int) int { return i }

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

func (v *SliceView) FieldKeys() []string {
	keys := make([]string, 0, len(v.dimKeys)+len(v.mesKeys))
	keys = append(keys, v.dimKeys...)
	return append(keys, v.mesKeys...)
}

// ============================================================================
// SUB VIEW: filtered or reordered subset (zero-copy)
// ============================================================================

// SubView is an ordered subset of a parent RecordView.
// Holds indices into the parent, no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) ID(i int) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.ID(v.indices[i])
}

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) Field(i int, key string) Value {
	if i < 0 || i >= len(v.indices) {
		return Absent
	}
	return v.parent.Field(v.indices[i], key)
}

func (v *SubView) Origin(i int) int {
	if i < 0 || i >= len(v.indices) {
		return -1
	}
	return v.parent.Origin(v.indices[i])
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }
func (v *SubView) FieldKeys() []string     { return v.parent.FieldKeys() }

// ============================================================================
// DOMAIN ADAPTER: Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Account]().
//	    Identity(func(a Account) string { return a.ID }).
//	    Dimension("region", func(a Account) string { return a.Region }).
//	    Measure("total_outstanding", func(a Account) float64 { return a.TotalOutstanding })
//
//	view := adapter.Bind(accounts)
//	derived, _ := engine.ComputeView(view, criteria)
//	rows := engine.Materialize(accounts, derived)
//
// Dimensions double as string sort fields and measures as numeric sort
// fields unless an explicit Order accessor overrides the key.
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	id       func(T) string
	dimOrder []string
	mesOrder []string
	ordOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	ords     map[string]func(T) Value
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
		ords: make(map[string]func(T) Value),
	}
}

// Identity registers the accessor used by Neighbor and UI selection.
func (a *DomainAdapter[T]) Identity(fn func(T) string) *DomainAdapter[T] {
	a.id = fn
	return a
}

// Dimension registers a string accessor (facet or free-text field).
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a numeric accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Order registers an explicit sort accessor, e.g. a computed percentage or
// an optional value that may be Absent.
func (a *DomainAdapter[T]) Order(key string, fn func(T) Value) *DomainAdapter[T] {
	if _, exists := a.ords[key]; !exists {
		a.ordOrder = append(a.ordOrder, key)
	}
	a.ords[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy; holds a reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	fieldKeys := make([]string, 0, len(a.ordOrder)+len(a.dimOrder)+len(a.mesOrder))
	seen := make(map[string]bool)
	for _, group := range [][]string{a.ordOrder, a.dimOrder, a.mesOrder} {
		for _, k := range group {
			if !seen[k] {
				seen[k] = true
				fieldKeys = append(fieldKeys, k)
			}
		}
	}
	return &DomainView[T]{
		data:      data,
		id:        a.id,
		dims:      a.dims,
		meas:      a.meas,
		ords:      a.ords,
		dimKeys:   a.dimOrder,
		measKeys:  a.mesOrder,
		fieldKeys: fieldKeys,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data      []T
	id        func(T) string
	dims      map[string]func(T) string
	meas      map[string]func(T) float64
	ords      map[string]func(T) Value
	dimKeys   []string
	measKeys  []string
	fieldKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) ID(i int) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if v.id == nil {
		return strconv.Itoa(i)
	}
	return v.id(v.data[i])
}

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) Field(i int, key string) Value {
	if i < 0 || i >= len(v.data) {
		return Absent
	}
	if fn, ok := v.ords[key]; ok {
		return fn(v.data[i])
	}
	if fn, ok := v.meas[key]; ok {
		return Number(fn(v.data[i]))
	}
	if fn, ok := v.dims[key]; ok {
		return String(fn(v.data[i]))
	}
	return Absent
}

func (v *DomainView[T]) Origin(i int) int { return i }

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
func (v *DomainView[T]) FieldKeys() []string     { return v.fieldKeys }

// Materialize returns the rows of data selected by view, in view order.
// view must derive from a view bound to data.
func Materialize[T any](data []T, view RecordView) []T {
	out := make([]T, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if o := view.Origin(i); o >= 0 && o < len(data) {
			out = append(out, data[o])
		}
	}
	return out
}

// IndexOf returns the position of id in view, or -1.
func IndexOf(view RecordView, id string) int {
	for i := 0; i < view.Len(); i++ {
		if view.ID(i) == id {
			return i
		}
	}
	return -1
}

package engine

import "strconv"

// Kind is the type tag of a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindString
)

// Value is an orderable field value.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Absent is the zero Value. It ties with everything.
var Absent = Value{}

// Number wraps a numeric field value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// String wraps a string field value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// OptNumber is Number for a present pointer and Absent for nil.
func OptNumber(p *float64) Value {
	if p == nil {
		return Absent
	}
	return Number(*p)
}

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// Compare orders v against o: numeric for numbers, lexicographic for strings.
// Absent on either side, or a kind mismatch, compares as 0.
func (v Value) Compare(o Value) int {
	if v.Kind == KindAbsent || o.Kind == KindAbsent || v.Kind != o.Kind {
		return 0
	}
	switch v.Kind {
	case KindNumber:
		switch {
		case v.Num < o.Num:
			return -1
		case v.Num > o.Num:
			return 1
		}
	case KindString:
		switch {
		case v.Str < o.Str:
			return -1
		case v.Str > o.Str:
			return 1
		}
	}
	return 0
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	}
	return ""
}

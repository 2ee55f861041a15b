package engine

// Step is a navigation direction within a derived view.
type Step int

const (
	Next Step = iota
	Previous
)

// Neighbor returns the index in view of the record adjacent to currentID.
//
// The current position is looked up by identity on every call, since the
// view may have been re-derived since the caller last saw it. ok is false at
// either boundary and when currentID is not in view.
func Neighbor(view RecordView, currentID string, step Step) (index int, ok bool) {
	cur := IndexOf(view, currentID)
	if cur < 0 {
		return -1, false
	}
	switch step {
	case Next:
		if cur+1 < view.Len() {
			return cur + 1, true
		}
	case Previous:
		if cur > 0 {
			return cur - 1, true
		}
	}
	return -1, false
}

// HasNeighbor reports whether Neighbor would succeed. UI layers use it to
// disable the previous/next controls.
func HasNeighbor(view RecordView, currentID string, step Step) bool {
	_, ok := Neighbor(view, currentID, step)
	return ok
}

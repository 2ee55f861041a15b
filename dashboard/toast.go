package dashboard

import (
	"slices"

	"github.com/google/uuid"
)

// ToastKind styles a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID      string
	Message string
	Kind    ToastKind
}

// Toasts is the visible queue, oldest first.
type Toasts []Toast

// Push returns a new queue with the message appended, and the new toast's id.
func (q Toasts) Push(message string, kind ToastKind) (Toasts, string) {
	t := Toast{ID: uuid.NewString(), Message: message, Kind: kind}
	next := make(Toasts, len(q), len(q)+1)
	copy(next, q)
	return append(next, t), t.ID
}

// Dismiss returns a new queue without id. Dismissing an id that already
// expired is a no-op.
func (q Toasts) Dismiss(id string) Toasts {
	return slices.DeleteFunc(slices.Clone(q), func(t Toast) bool { return t.ID == id })
}

// ReportReadyMessage is the toast shown when report generation completes.
const ReportReadyMessage = "Executive Sales Report (Q4) has been generated and downloaded."

// TaskCreatedMessage is the toast shown after a quick-added task.
func TaskCreatedMessage(title string) string {
	return `New task created: "` + title + `"`
}

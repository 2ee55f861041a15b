package tui

// toastExpiredMsg fires when a toast's display time has elapsed.
type toastExpiredMsg struct {
	id string
}

// reportReadyMsg fires when report generation completes.
type reportReadyMsg struct{}

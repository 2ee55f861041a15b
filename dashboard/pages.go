// Package dashboard holds the presentation-independent dashboard state:
// page routing, per-list UI state, sort header toggling and the toast queue.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPage is returned by Lookup for paths no page serves.
var ErrUnknownPage = errors.New("unknown page")

// Page is one sidebar destination.
type Page struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Title string `json:"title"`
	// List names the collection the page's main list is bound to, if any.
	List string `json:"list,omitempty"`
}

// Pages in sidebar order.
var Pages = []Page{
	{Path: "/", Label: "Overview", Title: "Executive Overview"},
	{Path: "/accounts", Label: "Accounts", Title: "Accounts Portfolio", List: ListAccounts},
	{Path: "/pipeline", Label: "Pipeline & Funnel", Title: "Pipeline Forecast", List: ListPipeline},
	{Path: "/quotation", Label: "Quotation Mgmt", Title: "Quotation Management", List: ListQuotations},
	{Path: "/campaigns", Label: "Campaigns", Title: "Campaign Tracker", List: ListCampaigns},
	{Path: "/tasks", Label: "Task & Activity", Title: "Tasks & Activity", List: ListTasks},
	{Path: "/enablement", Label: "Sales Enablement", Title: "Sales Enablement Hub"},
}

// Resolve maps a path to its page. Unknown paths fall back to Overview.
func Resolve(path string) Page {
	p, err := Lookup(path)
	if err != nil {
		return Pages[0]
	}
	return p
}

// Lookup maps a path or bare page name ("accounts", "/accounts",
// "overview") to its page.
func Lookup(path string) (Page, error) {
	key := strings.ToLower(strings.TrimSpace(path))
	if key == "overview" || key == "" {
		key = "/"
	}
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	key = strings.TrimSuffix(key, "/")
	if key == "" {
		key = "/"
	}
	for _, p := range Pages {
		if p.Path == key {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("%w: %q", ErrUnknownPage, path)
}

// IndexOf returns the sidebar position of path, or 0.
func IndexOf(path string) int {
	for i, p := range Pages {
		if p.Path == path {
			return i
		}
	}
	return 0
}

// Step returns the page delta positions away from path, wrapping around.
func Step(path string, delta int) Page {
	n := len(Pages)
	i := ((IndexOf(path)+delta)%n + n) % n
	return Pages[i]
}

// Package salesdesk is the sales CRM dashboard: a generic filter, sort and
// aggregate engine plus the collections, dashboard state and terminal UI
// built on it.
//
// Usage:
//
//	import "github.com/spektr-org/salesdesk/engine"
//
//	view := crm.AccountAdapter.Bind(accounts)
//	result, err := engine.Execute(view, engine.Criteria{
//	    Facets: engine.FacetSelections{"region": {"North"}},
//	    Query:  "amul",
//	}, crm.AccountCatalog().Metrics)
//
// The engine works over any RecordView. The crm package binds the seeded
// collections to it, dataset binds discovered CSV files, and dashboard keeps
// the per-list state the tui and the salesdesk command drive.
package salesdesk

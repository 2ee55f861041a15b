package crm

import (
	"strings"

	"github.com/spektr-org/salesdesk/engine"
)

// AccountStatus is the relationship state of an account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "Active"
	StatusDormant AccountStatus = "Dormant"
	StatusChurned AccountStatus = "Churned"
)

// RiskLevel is the credit / churn risk of an account.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Contact is a person at an account.
type Contact struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	LastMet string `json:"lastMet"`
}

// Activity is one logged interaction with an account.
type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // Call, Meeting, Email, Quotation
	Description string `json:"description"`
	Date        string `json:"date"`
	Owner       string `json:"owner"`
}

// Account is a client brand. The finance and execution figures are optional;
// nil sorts as a tie and sums as zero.
type Account struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	LegalName      string        `json:"legalName"`
	Segment        string        `json:"segment"`
	Region         string        `json:"region"`
	Owner          string        `json:"owner"`
	Status         AccountStatus `json:"status"`
	OpenOpps       int           `json:"openOpps"`
	LastEngagement string        `json:"lastEngagementDate"`
	RiskLevel      RiskLevel     `json:"riskLevel"`
	Tags           []string      `json:"tags"`

	TotalOutstanding *float64 `json:"totalOutstanding,omitempty"`
	CreditLimit      *float64 `json:"creditLimit,omitempty"`
	OnHold           bool     `json:"onHold"`
	ExecutedRuns     *float64 `json:"executedRuns,omitempty"`
	PlannedRuns      *float64 `json:"plannedRuns,omitempty"`

	Contacts   []Contact  `json:"contacts"`
	Activities []Activity `json:"activities"`
}

// DeliveryPct is executed / planned runs in percent, 0 when nothing is planned.
func (a Account) DeliveryPct() float64 {
	planned := deref(a.PlannedRuns)
	if planned == 0 {
		return 0
	}
	return deref(a.ExecutedRuns) / planned * 100
}

// CreditUtilization is outstanding / limit in percent, 0 without a limit.
func (a Account) CreditUtilization() float64 {
	limit := deref(a.CreditLimit)
	if limit == 0 {
		return 0
	}
	return deref(a.TotalOutstanding) / limit * 100
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Account facet enumerations.
var (
	Segments     = []string{"FMCG", "Automotive", "Retail", "Tech", "Banking", "FinTech", "EdTech"}
	RiskProfiles = []string{"Low", "Medium", "High"}
)

// AccountAdapter binds []Account to the engine.
var AccountAdapter = engine.NewDomainAdapter[Account]().
	Identity(func(a Account) string { return a.ID }).
	Dimension("name", func(a Account) string { return a.Name }).
	Dimension("legal_name", func(a Account) string { return a.LegalName }).
	Dimension("segment", func(a Account) string { return a.Segment }).
	Dimension("region", func(a Account) string { return a.Region }).
	Dimension("owner", func(a Account) string { return a.Owner }).
	Dimension("status", func(a Account) string { return string(a.Status) }).
	Dimension("risk_level", func(a Account) string { return string(a.RiskLevel) }).
	Dimension("on_hold", func(a Account) string { return boolDim(a.OnHold) }).
	Measure("total_outstanding", func(a Account) float64 { return deref(a.TotalOutstanding) }).
	Measure("credit_limit", func(a Account) float64 { return deref(a.CreditLimit) }).
	Measure("executed_runs", func(a Account) float64 { return deref(a.ExecutedRuns) }).
	Measure("planned_runs", func(a Account) float64 { return deref(a.PlannedRuns) }).
	Measure("open_opps", func(a Account) float64 { return float64(a.OpenOpps) }).
	Order("total_outstanding", func(a Account) engine.Value { return engine.OptNumber(a.TotalOutstanding) }).
	Order("credit_limit", func(a Account) engine.Value { return engine.OptNumber(a.CreditLimit) }).
	Order("delivery_pct", func(a Account) engine.Value {
		if a.PlannedRuns == nil || a.ExecutedRuns == nil {
			return engine.Absent
		}
		return engine.Number(a.DeliveryPct())
	})

// AccountCatalog declares the accounts list.
func AccountCatalog() Catalog {
	return Catalog{
		Facets: []Facet{
			{Key: "segment", Label: "Segment", Options: Segments},
			{Key: "region", Label: "Region", Options: Regions},
			{Key: "risk_level", Label: "Risk", Options: RiskProfiles},
			{Key: "on_hold", Label: "Credit Hold", Options: []string{"true", "false"}, Single: true},
		},
		TextFields: []string{"name", "legal_name"},
		Columns: []Column{
			{Key: "name", Label: "Account", Sortable: true},
			{Key: "segment", Label: "Segment"},
			{Key: "region", Label: "Region", Sortable: true},
			{Key: "owner", Label: "Owner"},
			{Key: "risk_level", Label: "Risk"},
			{Key: "open_opps", Label: "Open Opps", Kind: KindInt, Sortable: true},
			{Key: "total_outstanding", Label: "Outstanding", Kind: KindMoney, Sortable: true},
			{Key: "delivery_pct", Label: "Delivery", Kind: KindPercent, Sortable: true},
		},
		Metrics: AccountMetrics(),
	}
}

// AccountMetrics is the portfolio header plus the filtered row count.
func AccountMetrics() []engine.Metric {
	return []engine.Metric{
		{Name: "total_receivables", Scope: engine.ScopeFull, Reducer: engine.ReduceSum, Measure: "total_outstanding"},
		{Name: "on_hold_count", Scope: engine.ScopeFull, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("on_hold", "true")},
		{Name: "delivery_rate", Scope: engine.ScopeFull, Reducer: engine.ReducePercent, Measure: "executed_runs", Denominator: "planned_runs"},
		{Name: "high_risk_count", Scope: engine.ScopeFull, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("risk_level", string(RiskHigh))},
		{Name: "total_accounts", Scope: engine.ScopeFull, Reducer: engine.ReduceCount},
		{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount},
	}
}

func seedContacts(brand string) []Contact {
	domain := strings.ToLower(strings.ReplaceAll(brand, " ", ""))
	return []Contact{
		{ID: "C1", Name: "Rahul Sharma", Role: "Marketing Head", Email: "rahul@" + domain + ".com", Phone: "+91 98765 43210", LastMet: "3 days ago"},
		{ID: "C2", Name: "Sneha Gupta", Role: "Media Planner", Email: "sneha@" + domain + ".com", Phone: "+91 98765 55555", LastMet: "12 days ago"},
	}
}

func seedActivities() []Activity {
	return []Activity{
		{ID: "A1", Type: "Call", Description: "Monthly campaign review and ROI discussion.", Date: "2 days ago", Owner: "Arjun Mehta"},
		{ID: "A2", Type: "Quotation", Description: "Shared Diwali Blitz proposal for 45 screens.", Date: "1 week ago", Owner: "Arjun Mehta"},
		{ID: "A3", Type: "Email", Description: "Requirement gathering for upcoming movie tie-in.", Date: "10 days ago", Owner: "Arjun Mehta"},
	}
}

func num(f float64) *float64 { return &f }

type accountRow struct {
	id, name, legal, segment, region, owner string
	status                                  AccountStatus
	opps                                    int
	engaged                                 string
	risk                                    RiskLevel
	tag                                     string
	outstanding, limit                      float64
	onHold                                  bool
	executed, planned                       float64
	brand                                   string
}

var accountRows = []accountRow{
	{"ACC-001", "PepsiCo India", "PepsiCo India Holdings Pvt Ltd.", "FMCG", "North", "Arjun Mehta", StatusActive, 3, "2 days ago", RiskLow, "Strategic", 1250000, 5000000, false, 4500, 5000, "PepsiCo"},
	{"ACC-002", "Maruti Suzuki", "Maruti Suzuki India Ltd.", "Automotive", "North", "Priya Sharma", StatusActive, 1, "1 day ago", RiskLow, "Bulk Buyer", 0, 10000000, false, 8900, 9000, "Maruti"},
	{"ACC-003", "Reliance Retail", "Reliance Retail Ventures Ltd.", "Retail", "West", "Vikram Singh", StatusActive, 5, "Today", RiskMedium, "Pan-India", 4580000, 5000000, false, 12000, 15000, "Reliance"},
	{"ACC-004", "Nestle India", "Nestle India Ltd.", "FMCG", "South", "Arjun Mehta", StatusActive, 2, "4 days ago", RiskLow, "Maggi Launch", 200000, 2000000, false, 3400, 3500, "Nestle"},
	{"ACC-005", "Hindustan Unilever", "Hindustan Unilever Ltd.", "FMCG", "West", "Sarah Khan", StatusActive, 0, "12 days ago", RiskHigh, "Churn Risk", 6700000, 5000000, true, 1500, 4000, "HUL"},
	{"ACC-006", "Tata Motors", "Tata Motors Ltd.", "Automotive", "West", "Priya Sharma", StatusActive, 2, "3 days ago", RiskLow, "EV Focus", 45000, 3000000, false, 2200, 2200, "TataMotors"},
	{"ACC-007", "Samsung India", "Samsung India Electronics Pvt Ltd.", "Tech", "North", "Vikram Singh", StatusActive, 4, "1 day ago", RiskLow, "Premium", 0, 8000000, false, 5600, 5600, "Samsung"},
	{"ACC-008", "Amul", "Gujarat Coop Milk Mkt Federation", "FMCG", "West", "Sarah Khan", StatusActive, 1, "5 days ago", RiskMedium, "Dairy", 890000, 1500000, false, 4100, 4500, "Amul"},
	{"ACC-009", "Byju's", "Think & Learn Pvt Ltd.", "EdTech", "South", "Arjun Mehta", StatusDormant, 0, "45 days ago", RiskHigh, "Delayed Pay", 2500000, 1000000, true, 0, 500, "Byjus"},
	{"ACC-010", "Asian Paints", "Asian Paints Ltd.", "Home", "West", "Priya Sharma", StatusActive, 3, "Today", RiskLow, "Diwali", 120000, 4000000, false, 1800, 2000, "AsianPaints"},
	{"ACC-011", "PhonePe", "PhonePe Pvt Ltd.", "FinTech", "South", "Vikram Singh", StatusActive, 1, "2 days ago", RiskLow, "Digital", 0, 2500000, false, 3300, 3300, "PhonePe"},
	{"ACC-012", "Coca-Cola India", "Coca-Cola India Pvt Ltd.", "FMCG", "North", "Arjun Mehta", StatusActive, 2, "1 week ago", RiskLow, "Global", 560000, 6000000, false, 4800, 5000, "Coke"},
	{"ACC-013", "Amazon India", "Amazon Seller Services Pvt Ltd.", "Retail", "North", "Sarah Khan", StatusActive, 6, "2 days ago", RiskLow, "Prime Day", 1200000, 20000000, false, 15000, 15500, "Amazon"},
	{"ACC-014", "ITC Ltd.", "ITC Limited", "FMCG", "East", "Vikram Singh", StatusActive, 1, "10 days ago", RiskLow, "Diversified", 0, 7500000, false, 6700, 6700, "ITC"},
	{"ACC-015", "Axis Bank", "Axis Bank Ltd.", "Banking", "West", "Priya Sharma", StatusActive, 2, "3 days ago", RiskMedium, "Cards", 230000, 3000000, false, 1200, 1500, "AxisBank"},
}

// SeedAccounts returns the fifteen portfolio accounts.
func SeedAccounts() []Account {
	out := make([]Account, len(accountRows))
	for i, r := range accountRows {
		out[i] = Account{
			ID:               r.id,
			Name:             r.name,
			LegalName:        r.legal,
			Segment:          r.segment,
			Region:           r.region,
			Owner:            r.owner,
			Status:           r.status,
			OpenOpps:         r.opps,
			LastEngagement:   r.engaged,
			RiskLevel:        r.risk,
			Tags:             []string{r.tag},
			TotalOutstanding: num(r.outstanding),
			CreditLimit:      num(r.limit),
			OnHold:           r.onHold,
			ExecutedRuns:     num(r.executed),
			PlannedRuns:      num(r.planned),
			Contacts:         seedContacts(r.brand),
			Activities:       seedActivities(),
		}
	}
	return out
}

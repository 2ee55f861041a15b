package crm

import "math/rand/v2"

// Seed is the fixed generator seed behind every generated collection, so
// every run and every test sees the same screens, quotations and campaigns.
const Seed uint64 = 2025

// generator draws from a fixed PCG stream. Each collection gets its own stream
// so adding a field to one does not reshuffle the others.
type generator struct {
	r *rand.Rand
}

func newGenerator(stream uint64) *generator {
	return &generator{r: rand.New(rand.NewPCG(Seed, stream))}
}

// pick returns a uniformly chosen element of opts.
func (g *generator) pick(opts []string) string {
	return opts[g.r.IntN(len(opts))]
}

// between returns an int in [lo, lo+n).
func (g *generator) between(lo, n int) int {
	return lo + g.r.IntN(n)
}

// Dataset is every seeded collection. Values are replaced wholesale by the
// presentation layer; nothing here is mutated in place.
type Dataset struct {
	Accounts      []Account
	Opportunities []Opportunity
	Screens       []Screen
	Quotations    []Quotation
	Campaigns     []Campaign
	Tasks         []Task
}

// SeedDataset builds the initial collections.
func SeedDataset() *Dataset {
	return &Dataset{
		Accounts:      SeedAccounts(),
		Opportunities: SeedOpportunities(),
		Screens:       SeedScreens(),
		Quotations:    SeedQuotations(),
		Campaigns:     SeedCampaigns(),
		Tasks:         SeedTasks(),
	}
}

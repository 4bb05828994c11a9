package plan

// Alternative is one named scenario kept alongside the best, with the
// profit-per-area it scored when recorded.
type Alternative struct {
	Scenario      string
	ProfitPerArea float64
}

// BestEntry is a cached preferred scenario for one ticker, produced by the
// batch precomputation pass. Entries are advisory: if the stored scenario can
// no longer be matched against freshly computed options (prices moved), the
// resolver falls back to re-deriving best by profit-per-area.
type BestEntry struct {
	// RecipeID restricts resolution to one recipe row when the caller opts
	// in. Stored empty by the batch pass since ids are not semantically
	// meaningful across exchanges.
	RecipeID string

	// Scenario is the canonical description of the preferred plan.
	Scenario string

	// Alternatives are up to 3 further canonical scenarios worth surfacing,
	// best-first.
	Alternatives []Alternative

	// BuyAllProfitPerArea is the profit-per-area of sourcing every input on
	// the market, recorded as a self-production-versus-trading baseline.
	BuyAllProfitPerArea float64
}

// BestMap maps tickers to their cached preferred scenarios. A nil or empty
// map is valid and simply disables best-map seeding.
type BestMap map[string]BestEntry

// MaxAlternatives bounds how many display scenarios a best entry carries.
const MaxAlternatives = 3

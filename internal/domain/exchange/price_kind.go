package exchange

// PriceKind identifies which quote column a price is drawn from.
type PriceKind string

const (
	// KindAsk is the current lowest sell offer on a commodity exchange
	KindAsk PriceKind = "ASK"

	// KindBid is the current highest buy offer on a commodity exchange
	KindBid PriceKind = "BID"

	// KindAvg7 is the 7-day volume-weighted reference price
	KindAvg7 PriceKind = "AVG7"

	// KindAvg30 is the 30-day volume-weighted reference price
	KindAvg30 PriceKind = "AVG30"
)

// UniverseCode is the synthetic cross-exchange venue. It aggregates all
// exchanges and therefore only carries reference prices, never ask/bid.
const UniverseCode = "UNIVERSE"

// IsReference returns true for the smoothed reference price kinds.
func (k PriceKind) IsReference() bool {
	return k == KindAvg7 || k == KindAvg30
}

// Valid returns true if the kind is one of the four known quote columns.
func (k PriceKind) Valid() bool {
	switch k {
	case KindAsk, KindBid, KindAvg7, KindAvg30:
		return true
	}
	return false
}

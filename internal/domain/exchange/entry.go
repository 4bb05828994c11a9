package exchange

import "errors"

// Entry is an immutable per-(ticker, exchange) price record. Each quote is
// independently nullable: a nil pointer means the good is not tradable under
// that kind on this exchange.
type Entry struct {
	ticker       string
	exchangeCode string
	ask          *float64
	bid          *float64
	avg7         *float64
	avg30        *float64
}

// NewEntry creates a price record with validation. The universe venue never
// carries ask/bid quotes, so those are rejected for it.
func NewEntry(ticker, exchangeCode string, ask, bid, avg7, avg30 *float64) (*Entry, error) {
	if ticker == "" {
		return nil, errors.New("ticker cannot be empty")
	}
	if exchangeCode == "" {
		return nil, errors.New("exchange code cannot be empty")
	}
	if exchangeCode == UniverseCode && (ask != nil || bid != nil) {
		return nil, errors.New("universe venue carries only reference prices")
	}

	return &Entry{
		ticker:       ticker,
		exchangeCode: exchangeCode,
		ask:          copyPrice(ask),
		bid:          copyPrice(bid),
		avg7:         copyPrice(avg7),
		avg30:        copyPrice(avg30),
	}, nil
}

func (e *Entry) Ticker() string       { return e.ticker }
func (e *Entry) ExchangeCode() string { return e.exchangeCode }

// Quote returns the price for the given kind. The second return value is
// false when the quote is absent or unusable (zero/negative values guard
// against malformed feed rows).
func (e *Entry) Quote(kind PriceKind) (float64, bool) {
	var p *float64
	switch kind {
	case KindAsk:
		p = e.ask
	case KindBid:
		p = e.bid
	case KindAvg7:
		p = e.avg7
	case KindAvg30:
		p = e.avg30
	default:
		return 0, false
	}

	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package exchange

// PriceBook is an immutable snapshot of all known prices, keyed by ticker
// and exchange code. It is loaded once per run and never mutated afterwards,
// so it is safe to share between concurrent resolution sessions.
type PriceBook struct {
	entries map[string]map[string]*Entry
}

// NewPriceBook builds a price book from a flat list of entries. Later entries
// for the same (ticker, exchange) pair replace earlier ones.
func NewPriceBook(entries []*Entry) *PriceBook {
	book := &PriceBook{entries: make(map[string]map[string]*Entry)}
	for _, e := range entries {
		byExchange, ok := book.entries[e.Ticker()]
		if !ok {
			byExchange = make(map[string]*Entry)
			book.entries[e.Ticker()] = byExchange
		}
		byExchange[e.ExchangeCode()] = e
	}
	return book
}

// Price returns the quote for (ticker, exchange, kind), or false when the
// good is not tradable under that combination. Pure lookup, no side effects.
func (b *PriceBook) Price(ticker, exchangeCode string, kind PriceKind) (float64, bool) {
	byExchange, ok := b.entries[ticker]
	if !ok {
		return 0, false
	}
	entry, ok := byExchange[exchangeCode]
	if !ok {
		return 0, false
	}
	return entry.Quote(kind)
}

// BuyPrice is what one unit costs to acquire under the selected price mode:
// the reference kind itself when a reference mode is selected (the only mode
// the universe venue supports), otherwise the exchange ask.
func (b *PriceBook) BuyPrice(ticker, exchangeCode string, kind PriceKind) (float64, bool) {
	if kind.IsReference() {
		return b.Price(ticker, exchangeCode, kind)
	}
	return b.Price(ticker, exchangeCode, KindAsk)
}

// SellPrice is what one unit fetches when sold under the selected price mode:
// the reference kind itself when a reference mode is selected, otherwise the
// exchange bid.
func (b *PriceBook) SellPrice(ticker, exchangeCode string, kind PriceKind) (float64, bool) {
	if kind.IsReference() {
		return b.Price(ticker, exchangeCode, kind)
	}
	return b.Price(ticker, exchangeCode, KindBid)
}

// Exchanges returns the exchange codes present for a ticker.
func (b *PriceBook) Exchanges(ticker string) []string {
	byExchange, ok := b.entries[ticker]
	if !ok {
		return nil
	}
	codes := make([]string, 0, len(byExchange))
	for code := range byExchange {
		codes = append(codes, code)
	}
	return codes
}

// Size returns the number of (ticker, exchange) entries in the book.
func (b *PriceBook) Size() int {
	n := 0
	for _, byExchange := range b.entries {
		n += len(byExchange)
	}
	return n
}

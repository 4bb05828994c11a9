package recipe

import "sort"

// Depths computes each producible ticker's dependency depth: 0 for goods
// with no recipe (buy-only leaves), otherwise 1 + the maximum depth of its
// direct inputs. Valid recipe data is acyclic; if a cycle slips in, the walk
// stops at the revisited ticker and treats it as a leaf so the computation
// still terminates.
func (t *Table) Depths() map[string]int {
	depths := make(map[string]int)
	visiting := make(map[string]bool)

	var walk func(ticker string) int
	walk = func(ticker string) int {
		if d, ok := depths[ticker]; ok {
			return d
		}
		if visiting[ticker] {
			return 0
		}
		if !t.HasRecipe(ticker) {
			depths[ticker] = 0
			return 0
		}

		visiting[ticker] = true
		defer func() { visiting[ticker] = false }()

		maxInput := 0
		for _, in := range t.InputTickers(ticker) {
			if d := walk(in); d > maxInput {
				maxInput = d
			}
		}
		depths[ticker] = maxInput + 1
		return depths[ticker]
	}

	for _, ticker := range t.Tickers() {
		walk(ticker)
	}
	return depths
}

// TickersByDepth returns all producible tickers ordered leaves-first, so a
// caller processing them in order always sees a good's inputs before the
// good itself. Ties break alphabetically for determinism.
func (t *Table) TickersByDepth() []string {
	depths := t.Depths()
	tickers := t.Tickers()
	sort.SliceStable(tickers, func(i, j int) bool {
		if depths[tickers[i]] != depths[tickers[j]] {
			return depths[tickers[i]] < depths[tickers[j]]
		}
		return tickers[i] < tickers[j]
	})
	return tickers
}

// DetectCycle reports the first circular dependency reachable from the
// given ticker, or nil if none exists.
func (t *Table) DetectCycle(ticker string) error {
	visiting := make(map[string]bool)

	var walk func(ticker string, path []string) error
	walk = func(ticker string, path []string) error {
		if visiting[ticker] {
			return &ErrCircularDependency{Ticker: ticker, Chain: append(path, ticker)}
		}
		if !t.HasRecipe(ticker) {
			return nil
		}

		visiting[ticker] = true
		defer func() { visiting[ticker] = false }()

		current := append(path, ticker)
		for _, in := range t.InputTickers(ticker) {
			if err := walk(in, current); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(ticker, nil)
}

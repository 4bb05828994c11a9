package recipe

import "sort"

// Table maps a good's ticker to all known recipe rows producing it. A good
// may have multiple competing rows (different buildings or planets). The
// table is loaded once per run and is immutable afterwards.
type Table struct {
	byTicker map[string][]*Row
	byID     map[string][]*Row
}

// NewTable builds a table from a flat list of rows.
func NewTable(rows []*Row) *Table {
	t := &Table{
		byTicker: make(map[string][]*Row),
		byID:     make(map[string][]*Row),
	}
	for _, row := range rows {
		t.byTicker[row.Ticker()] = append(t.byTicker[row.Ticker()], row)
		t.byID[row.RecipeID()] = append(t.byID[row.RecipeID()], row)
	}
	return t
}

// RowsFor returns all recipe rows whose primary output is the given ticker.
// An empty result means the good is buy-only.
func (t *Table) RowsFor(ticker string) []*Row {
	return t.byTicker[ticker]
}

// RowsByID returns all rows carrying the given recipe id. The same id may
// repeat across building/planet variants.
func (t *Table) RowsByID(recipeID string) []*Row {
	return t.byID[recipeID]
}

// HasRecipe returns true if at least one row produces the ticker.
func (t *Table) HasRecipe(ticker string) bool {
	return len(t.byTicker[ticker]) > 0
}

// Tickers returns every producible ticker in deterministic order.
func (t *Table) Tickers() []string {
	tickers := make([]string, 0, len(t.byTicker))
	for ticker := range t.byTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// InputTickers returns the union of direct input tickers across every row
// producing the good, in deterministic order.
func (t *Table) InputTickers(ticker string) []string {
	seen := make(map[string]bool)
	for _, row := range t.byTicker[ticker] {
		for _, slot := range row.Inputs() {
			seen[slot.Ticker] = true
		}
	}
	inputs := make([]string, 0, len(seen))
	for in := range seen {
		inputs = append(inputs, in)
	}
	sort.Strings(inputs)
	return inputs
}

// RowCount returns the total number of rows in the table.
func (t *Table) RowCount() int {
	n := 0
	for _, rows := range t.byTicker {
		n += len(rows)
	}
	return n
}

package helpers

import (
	"testing"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/recipe"
)

// Ptr returns a pointer to the given price, for the nullable quote fields.
func Ptr(v float64) *float64 { return &v }

// MustRow builds a recipe row and fails the test on validation errors.
func MustRow(t *testing.T, recipeID, building string, inputs, outputs []recipe.Slot,
	area, areaPerOutput, runsPerDay, workforceCost, depreciationCost, buildCost float64) *recipe.Row {
	t.Helper()
	row, err := recipe.NewRow(recipeID, building, inputs, outputs,
		area, areaPerOutput, runsPerDay, workforceCost, depreciationCost, buildCost)
	if err != nil {
		t.Fatalf("failed to build recipe row %s: %v", recipeID, err)
	}
	return row
}

// MustEntry builds a price entry and fails the test on validation errors.
func MustEntry(t *testing.T, ticker, exchangeCode string, ask, bid, avg7, avg30 *float64) *exchange.Entry {
	t.Helper()
	entry, err := exchange.NewEntry(ticker, exchangeCode, ask, bid, avg7, avg30)
	if err != nil {
		t.Fatalf("failed to build price entry %s/%s: %v", ticker, exchangeCode, err)
	}
	return entry
}

// ChainFixture is a small three-level production chain used across engine
// tests: POW is made from HAL and LI, HAL can itself be made from LIO, and
// LI and LIO are buy-only leaves.
type ChainFixture struct {
	Table *recipe.Table
	Book  *exchange.PriceBook
}

// NewChainFixture builds the standard chain on exchange AI1 with spreads
// that make crafting HAL in-house clearly better than buying it.
func NewChainFixture(t *testing.T) *ChainFixture {
	t.Helper()

	rows := []*recipe.Row{
		MustRow(t, "POW:3xHAL-2xLI", "FAB",
			[]recipe.Slot{{Ticker: "HAL", Amount: 3}, {Ticker: "LI", Amount: 2}},
			[]recipe.Slot{{Ticker: "POW", Amount: 1}},
			30, 30, 4, 40, 10, 60000),
		MustRow(t, "HAL:4xLIO", "SME",
			[]recipe.Slot{{Ticker: "LIO", Amount: 4}},
			[]recipe.Slot{{Ticker: "HAL", Amount: 2}},
			20, 10, 6, 24, 6, 30000),
	}

	entries := []*exchange.Entry{
		MustEntry(t, "POW", "AI1", Ptr(900), Ptr(850), Ptr(870), Ptr(880)),
		MustEntry(t, "HAL", "AI1", Ptr(120), Ptr(95), Ptr(105), Ptr(110)),
		MustEntry(t, "LI", "AI1", Ptr(40), Ptr(35), Ptr(38), Ptr(39)),
		MustEntry(t, "LIO", "AI1", Ptr(8), Ptr(6), Ptr(7), Ptr(7)),
	}

	return &ChainFixture{
		Table: recipe.NewTable(rows),
		Book:  exchange.NewPriceBook(entries),
	}
}

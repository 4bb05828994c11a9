package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
	"prodplan/internal/domain/recipe"
	"prodplan/test/helpers"
)

func newChainEngine(t *testing.T) *Engine {
	t.Helper()
	fixture := helpers.NewChainFixture(t)
	return NewEngine(fixture.Table, fixture.Book, DefaultOptions())
}

func scenarios(options []*plan.MakeOption) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Scenario()
	}
	return out
}

func TestResolveAll_ExploresBuyAndMakeBranches(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act
	options := session.ResolveAll("POW", 0, true, true)

	// Assert: one scenario per sourcing choice of the HAL slot
	require.Len(t, options, 2)
	assert.ElementsMatch(t, []string{
		"Buy HAL, Buy LI",
		"Make HAL:4xLIO (for HAL) [Buy LIO], Buy LI",
	}, scenarios(options))
}

func TestResolveAll_IsIdempotent(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act
	first := session.ResolveAll("POW", 0, true, true)
	second := session.ResolveAll("POW", 0, true, true)

	// Assert
	assert.ElementsMatch(t, scenarios(first), scenarios(second))
}

func TestResolveAll_ProfitDecomposition(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act
	options := session.ResolveAll("POW", 0, true, true)
	require.Len(t, options, 2)

	for _, opt := range options {
		// Assert: every option satisfies the decomposition identities
		assert.InDelta(t, opt.TotalOutputValue()-(opt.InputCost()+opt.WorkforceCost()+opt.DepreciationCost()),
			opt.BaseProfit(), 1e-9)
		assert.InDelta(t, opt.BaseProfit()-opt.OpportunityCost(), opt.FinalProfit(), 1e-9)
	}
}

func TestResolveAll_MakeBranchCarriesOpportunityCost(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act
	options := session.ResolveAll("POW", 0, true, true)
	require.Len(t, options, 2)

	var buyOpt, makeOpt *plan.MakeOption
	for _, opt := range options {
		if opt.Scenario() == "Buy HAL, Buy LI" {
			buyOpt = opt
		} else {
			makeOpt = opt
		}
	}
	require.NotNil(t, buyOpt)
	require.NotNil(t, makeOpt)

	// Assert: buying HAL has no opportunity cost
	assert.Zero(t, buyOpt.OpportunityCost())
	assert.InDelta(t, 360.0, buyOpt.FinalProfit(), 1e-9)

	// Making HAL is charged 3 units of the child's base profit per output:
	// child base = 190 - (32+24+6) = 128 over 2 outputs -> 64/unit, x3 = 192
	assert.InDelta(t, 192.0, makeOpt.OpportunityCost(), 1e-9)
	assert.InDelta(t, 435.0, makeOpt.FinalProfit(), 1e-9)

	// The MADE input owns the child plan
	inputs := makeOpt.Inputs()
	require.Len(t, inputs, 2)
	assert.True(t, inputs[0].Made())
	require.NotNil(t, inputs[0].Child())
	assert.Equal(t, "HAL", inputs[0].Child().Ticker())
}

func TestResolveAll_ForceBuyDisablesMakeBranch(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{
		ForceBuy: map[string]bool{"HAL": true},
	})

	// Act
	options := session.ResolveAll("POW", 0, true, true)

	// Assert
	require.Len(t, options, 1)
	assert.Equal(t, "Buy HAL, Buy LI", options[0].Scenario())
}

func TestResolveAll_ForceMakeDisablesBuyBranch(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{
		ForceMake: map[string]bool{"HAL": true},
	})

	// Act
	options := session.ResolveAll("POW", 0, true, true)

	// Assert
	require.Len(t, options, 1)
	assert.Equal(t, "Make HAL:4xLIO (for HAL) [Buy LIO], Buy LI", options[0].Scenario())
}

func TestResolveAll_ExcludeRecipeRemovesChildRows(t *testing.T) {
	// Arrange: excluding HAL's only recipe leaves just the buy branch
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{
		ExcludeRecipe: map[string]bool{"HAL:4xLIO": true},
	})

	// Act
	options := session.ResolveAll("POW", 0, true, true)

	// Assert
	require.Len(t, options, 1)
	assert.Equal(t, "Buy HAL, Buy LI", options[0].Scenario())
}

func TestResolveAll_UnpricedInputStillCraftable(t *testing.T) {
	// Arrange: HAL has no market quote at all, so it cannot be bought but can
	// still be made from priced LIO
	fixture := helpers.NewChainFixture(t)
	book := exchange.NewPriceBook([]*exchange.Entry{
		helpers.MustEntry(t, "POW", "AI1", helpers.Ptr(900), helpers.Ptr(850), nil, nil),
		helpers.MustEntry(t, "HAL", "AI1", nil, helpers.Ptr(95), nil, nil),
		helpers.MustEntry(t, "LI", "AI1", helpers.Ptr(40), helpers.Ptr(35), nil, nil),
		helpers.MustEntry(t, "LIO", "AI1", helpers.Ptr(8), helpers.Ptr(6), nil, nil),
	})
	engine := NewEngine(fixture.Table, book, DefaultOptions())
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act
	options := session.ResolveAll("POW", 0, true, true)

	// Assert
	require.Len(t, options, 1)
	assert.Equal(t, "Make HAL:4xLIO (for HAL) [Buy LIO], Buy LI", options[0].Scenario())
}

func TestResolveAll_UnsellablePrimaryOutputYieldsNothing(t *testing.T) {
	// Arrange: POW has no sell-side quote
	fixture := helpers.NewChainFixture(t)
	book := exchange.NewPriceBook([]*exchange.Entry{
		helpers.MustEntry(t, "HAL", "AI1", helpers.Ptr(120), helpers.Ptr(95), nil, nil),
		helpers.MustEntry(t, "LI", "AI1", helpers.Ptr(40), helpers.Ptr(35), nil, nil),
		helpers.MustEntry(t, "LIO", "AI1", helpers.Ptr(8), helpers.Ptr(6), nil, nil),
	})
	engine := NewEngine(fixture.Table, book, DefaultOptions())
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act & Assert
	assert.Empty(t, session.ResolveAll("POW", 0, true, true))
}

func TestResolveBuyAll_PricesEveryInputOnTheMarket(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act
	opt, ok := session.ResolveBuyAll("POW")

	// Assert: 3xHAL@120 + 2xLI@40 = 440 input cost, profit 850-490=360/batch
	require.True(t, ok)
	assert.Equal(t, "Buy HAL, Buy LI", opt.Scenario())
	assert.InDelta(t, 440.0, opt.InputCost(), 1e-9)
	assert.InDelta(t, 48.0, session.ProfitPerArea(opt), 1e-9)
}

func TestResolveBest_PrefersStoredScenarioWhenStillComputable(t *testing.T) {
	// Arrange: by raw profit-per-area the all-buy plan wins (48 vs 34.8), but
	// the best map pins the crafting scenario
	engine := newChainEngine(t)
	bestMap := plan.BestMap{
		"POW": {Scenario: "Make HAL:4xLIO (for HAL), Buy LI"},
	}
	session := engine.NewSession("AI1", exchange.KindAsk, bestMap, Constraints{})

	// Act
	opt, ok := session.ResolveBest("POW", true)

	// Assert
	require.True(t, ok)
	assert.Equal(t, "Make HAL:4xLIO (for HAL) [Buy LIO], Buy LI", opt.Scenario())
}

func TestResolveBest_StaleStoredScenarioFallsBackToBestPA(t *testing.T) {
	// Arrange: the stored scenario matches nothing computable anymore
	engine := newChainEngine(t)
	bestMap := plan.BestMap{
		"POW": {Scenario: "Make POW:ancient (for POW)"},
	}
	session := engine.NewSession("AI1", exchange.KindAsk, bestMap, Constraints{})

	// Act
	opt, ok := session.ResolveBest("POW", true)

	// Assert: silently falls through to the recomputed best
	require.True(t, ok)
	assert.Equal(t, "Buy HAL, Buy LI", opt.Scenario())
}

func TestResolveAll_CyclicRecipesTerminate(t *testing.T) {
	// Arrange: A and B require each other; both are also buyable so options
	// still exist once the cycle guard abandons the recursive branch
	rows := []*recipe.Row{
		helpers.MustRow(t, "A:1xB", "FAB",
			[]recipe.Slot{{Ticker: "B", Amount: 1}},
			[]recipe.Slot{{Ticker: "A", Amount: 1}}, 10, 10, 2, 1, 1, 100),
		helpers.MustRow(t, "B:1xA", "FAB",
			[]recipe.Slot{{Ticker: "A", Amount: 1}},
			[]recipe.Slot{{Ticker: "B", Amount: 1}}, 10, 10, 2, 1, 1, 100),
	}
	book := exchange.NewPriceBook([]*exchange.Entry{
		helpers.MustEntry(t, "A", "AI1", helpers.Ptr(50), helpers.Ptr(45), nil, nil),
		helpers.MustEntry(t, "B", "AI1", helpers.Ptr(30), helpers.Ptr(25), nil, nil),
	})
	engine := NewEngine(recipe.NewTable(rows), book, DefaultOptions())
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	// Act: must terminate
	options := session.ResolveAll("A", 0, true, true)

	// Assert
	assert.NotEmpty(t, options)
}

func TestConstraints_SignatureIsDeterministic(t *testing.T) {
	// Arrange
	c := Constraints{
		ForceMake:     map[string]bool{"HAL": true, "LIO": true},
		ForceBuy:      map[string]bool{"LI": true},
		ExcludeRecipe: map[string]bool{"HAL:4xLIO": true},
	}

	// Act & Assert
	assert.Equal(t, c.Signature(), c.Signature())
	assert.NotEqual(t, c.Signature(), Constraints{}.Signature())
	assert.Empty(t, Constraints{}.Signature())
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodplan/internal/application/resolver"
	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
	"prodplan/test/helpers"
)

func newChainBuilder(t *testing.T) *Builder {
	t.Helper()
	fixture := helpers.NewChainFixture(t)
	return NewBuilder(resolver.NewEngine(fixture.Table, fixture.Book, resolver.DefaultOptions()))
}

func TestBuild_RanksOptionsByProfitPerArea(t *testing.T) {
	// Arrange
	builder := newChainBuilder(t)
	req := QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk}

	// Act
	rep := builder.Build(req, nil)

	// Assert
	require.Empty(t, rep.Error)
	require.Len(t, rep.Options, 2)
	assert.Equal(t, "Buy HAL, Buy LI", rep.Options[0].Option.Scenario())
	assert.InDelta(t, 48.0, rep.Options[0].ProfitPerArea, 1e-9)
	assert.GreaterOrEqual(t, rep.Options[0].ProfitPerArea, rep.Options[1].ProfitPerArea)

	require.NotNil(t, rep.Best)
	assert.Equal(t, rep.Options[0].Option, rep.Best.Option)
	assert.InDelta(t, 48.0, rep.BuyAllProfitPerArea, 1e-9)
}

func TestBuild_AnnotatesROIAndPayback(t *testing.T) {
	// Arrange
	builder := newChainBuilder(t)
	req := QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk}

	// Act
	rep := builder.Build(req, nil)
	require.Empty(t, rep.Error)

	best := rep.Options[0]
	// Assert: all-buy plan, 1440 daily profit against its own 60000 build cost
	assert.InDelta(t, 60000.0/1440.0, best.ROINarrowDays, 1e-9)
	assert.Equal(t, best.ROINarrowDays, best.ROIBroadDays, "no MADE children, narrow equals broad")
	assert.Greater(t, best.PaybackNarrowDays, best.ROINarrowDays, "payback additionally fronts the input buffer")
}

func TestBuild_GroupsScenarios(t *testing.T) {
	// Arrange
	builder := newChainBuilder(t)
	req := QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk}

	// Act
	rep := builder.Build(req, nil)

	// Assert
	require.Len(t, rep.Scenarios, 2)
	assert.Equal(t, "Buy HAL, Buy LI", rep.Scenarios[0].Scenario)
	assert.Equal(t, 1, rep.Scenarios[0].Count)
}

func TestBuild_InvalidRequestReturnsErrorReport(t *testing.T) {
	// Arrange
	builder := newChainBuilder(t)
	req := QueryRequest{
		Ticker:       "POW",
		ExchangeCode: "AI1",
		Kind:         exchange.KindAsk,
		ForceMake:    []string{"HAL"},
		ForceBuy:     []string{"HAL"},
	}

	// Act
	rep := builder.Build(req, nil)

	// Assert: well-formed report with the problem spelled out
	assert.Contains(t, rep.Error, "HAL")
	assert.Nil(t, rep.Best)
	assert.Empty(t, rep.Options)
}

func TestBuild_NoOptionsReturnsErrorReport(t *testing.T) {
	// Arrange: nothing is priced on NC1
	builder := newChainBuilder(t)
	req := QueryRequest{Ticker: "POW", ExchangeCode: "NC1", Kind: exchange.KindAsk}

	// Act
	rep := builder.Build(req, nil)

	// Assert
	assert.Contains(t, rep.Error, "no profitable scenarios")
	assert.Nil(t, rep.Best)
}

func TestBuild_TopNTruncatesOptionsButNotGroups(t *testing.T) {
	// Arrange
	builder := newChainBuilder(t)
	req := QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk, TopN: 1}

	// Act
	rep := builder.Build(req, nil)

	// Assert
	assert.Len(t, rep.Options, 1)
	assert.Len(t, rep.Scenarios, 2)
}

func TestBuild_UsesBestMapSeed(t *testing.T) {
	// Arrange: a best map should not change which options exist at the root,
	// only how deep levels collapse; with this tiny chain the result set is
	// stable either way
	builder := newChainBuilder(t)
	bestMap := plan.BestMap{
		"HAL": {Scenario: "Buy LIO"},
	}
	req := QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk}

	// Act
	rep := builder.Build(req, bestMap)

	// Assert
	require.Empty(t, rep.Error)
	assert.Len(t, rep.Options, 2)
}

func TestValidate_CatchesOverrideProblems(t *testing.T) {
	fixture := helpers.NewChainFixture(t)
	table := fixture.Table

	cases := []struct {
		name string
		req  QueryRequest
		want string
	}{
		{
			name: "missing ticker",
			req:  QueryRequest{ExchangeCode: "AI1", Kind: exchange.KindAsk},
			want: "Ticker",
		},
		{
			name: "unknown kind",
			req:  QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: "WEEKLY"},
			want: "unknown price kind",
		},
		{
			name: "universe with transactional kind",
			req:  QueryRequest{Ticker: "POW", ExchangeCode: exchange.UniverseCode, Kind: exchange.KindAsk},
			want: "reference prices",
		},
		{
			name: "force-make without recipe",
			req:  QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk, ForceMake: []string{"LI"}},
			want: "has no recipe",
		},
		{
			name: "unknown forced recipe",
			req:  QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk, ForceRecipe: []string{"POW:ghost"}},
			want: "does not exist",
		},
		{
			name: "exclusion leaves no viable recipe",
			req:  QueryRequest{Ticker: "POW", ExchangeCode: "AI1", Kind: exchange.KindAsk, ExcludeRecipe: []string{"HAL:4xLIO"}},
			want: "no viable recipe",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate(table)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_AcceptsCleanRequest(t *testing.T) {
	fixture := helpers.NewChainFixture(t)
	req := QueryRequest{
		Ticker:       "POW",
		ExchangeCode: "AI1",
		Kind:         exchange.KindAsk,
		ForceMake:    []string{"HAL"},
		DemandPerDay: 100,
		TopN:         5,
	}
	assert.NoError(t, req.Validate(fixture.Table))
}

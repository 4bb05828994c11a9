package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
)

// optionWithProfit builds a standalone option whose profit-per-area equals
// the given value (area 1, one run and one unit per day).
func optionWithProfit(t *testing.T, scenario string, profit float64) *plan.MakeOption {
	t.Helper()
	opt, err := plan.NewMakeOption(plan.MakeOptionSpec{
		RecipeID:         "X:synthetic",
		Ticker:           "X",
		Scenario:         scenario,
		TotalOutputValue: profit,
		Output1Amount:    1,
		Area:             1,
		RunsPerDay:       1,
	})
	require.NoError(t, err)
	return opt
}

func TestPruneChildOptions_KeepsTopKByProfitPerArea(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	options := make([]*plan.MakeOption, 0, 6)
	for i := 0; i < 6; i++ {
		options = append(options, optionWithProfit(t, "Buy A", float64(10+i)))
	}

	// Act
	kept := session.pruneChildOptions(options, 2)

	// Assert: all share one scenario, so exactly the top 2 survive
	require.Len(t, kept, 2)
	assert.InDelta(t, 15.0, session.ProfitPerArea(kept[0]), 1e-9)
	assert.InDelta(t, 14.0, session.ProfitPerArea(kept[1]), 1e-9)
}

func TestPruneChildOptions_KeepsOneRepresentativePerScenario(t *testing.T) {
	// Arrange: the worst-scoring option is the only one of its scenario
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})

	options := []*plan.MakeOption{
		optionWithProfit(t, "Buy A", 50),
		optionWithProfit(t, "Buy A", 40),
		optionWithProfit(t, "Buy A", 30),
		optionWithProfit(t, "Make B_1 (for B)", 1),
	}

	// Act
	kept := session.pruneChildOptions(options, 2)

	// Assert
	require.Len(t, kept, 3)
	kept2 := make([]string, len(kept))
	for i, opt := range kept {
		kept2[i] = opt.Scenario()
	}
	assert.Contains(t, kept2, "Make B_1 (for B)")
}

func TestPruneChildOptions_SmallSetsPassThrough(t *testing.T) {
	// Arrange
	engine := newChainEngine(t)
	session := engine.NewSession("AI1", exchange.KindAsk, nil, Constraints{})
	options := []*plan.MakeOption{optionWithProfit(t, "Buy A", 10)}

	// Act & Assert
	assert.Equal(t, options, session.pruneChildOptions(options, 4))
}

func TestClampByCostShare(t *testing.T) {
	cases := []struct {
		share float64
		keep  int
		want  int
	}{
		{0.01, 4, 1},
		{0.10, 4, 2},
		{0.20, 4, 3},
		{0.50, 4, 4},
		{0.20, 2, 2},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("share=%.2f keep=%d", tc.share, tc.keep), func(t *testing.T) {
			assert.Equal(t, tc.want, clampByCostShare(tc.keep, tc.share))
		})
	}
}

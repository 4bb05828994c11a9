package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() MakeOptionSpec {
	return MakeOptionSpec{
		RecipeID:         "FE:2xO-1xC",
		Ticker:           "FE",
		Scenario:         "Buy O, Buy C",
		InputCost:        100,
		WorkforceCost:    20,
		DepreciationCost: 5,
		TotalOutputValue: 200,
		OpportunityCost:  15,
		Output1Amount:    2,
		Area:             25,
		AreaPerOutput:    12.5,
		RunsPerDay:       4,
		BuildCost:        50000,
		Inputs: []MadeInputDetail{
			NewBoughtInput("O", 2, 80),
			NewBoughtInput("C", 1, 20),
		},
	}
}

func TestNewMakeOption_DerivesProfitDecomposition(t *testing.T) {
	// Act
	opt, err := NewMakeOption(validSpec())

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 75.0, opt.BaseProfit(), 1e-9)  // 200 - (100+20+5)
	assert.InDelta(t, 60.0, opt.FinalProfit(), 1e-9) // 75 - 15
	assert.InDelta(t, opt.BaseProfit()-opt.OpportunityCost(), opt.FinalProfit(), 1e-9)
}

func TestNewMakeOption_DerivesPerUnitAndPerDayFigures(t *testing.T) {
	// Act
	opt, err := NewMakeOption(validSpec())
	require.NoError(t, err)

	// Assert
	assert.InDelta(t, 37.5, opt.BaseProfitPerOutput(), 1e-9)
	assert.InDelta(t, 240.0, opt.FinalProfitPerDay(), 1e-9)
	assert.InDelta(t, 8.0, opt.OutputPerDay(), 1e-9)
	assert.InDelta(t, 62.5, opt.COGM(), 1e-9) // (100+20+5)/2
	// 7-day buffer covers inputs and workforce, not depreciation
	assert.InDelta(t, 7*(100+20)*4.0, opt.InputBuffer7(), 1e-9)
}

func TestNewMakeOption_RejectsInvalidSpecs(t *testing.T) {
	// Arrange
	noOutput := validSpec()
	noOutput.Output1Amount = 0

	orphanMake := validSpec()
	orphanMake.Inputs = []MadeInputDetail{{ticker: "O", amount: 2, made: true}}

	// Act & Assert
	_, err := NewMakeOption(noOutput)
	assert.Error(t, err)
	_, err = NewMakeOption(orphanMake)
	assert.Error(t, err)
}

func TestMakeOption_InputsReturnsCopy(t *testing.T) {
	// Arrange
	opt, err := NewMakeOption(validSpec())
	require.NoError(t, err)

	// Act
	inputs := opt.Inputs()
	inputs[0] = NewBoughtInput("MUTATED", 1, 1)

	// Assert
	assert.Equal(t, "O", opt.Inputs()[0].Ticker())
}

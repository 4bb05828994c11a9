package plan

import (
	"errors"
	"fmt"
)

// MakeOption is one fully-resolved way to produce one batch of one good via
// one recipe row under one scenario. It is the root of a production-plan
// tree: each MADE input owns a nested child option.
//
// Options are immutable once constructed. All monetary fields are per batch
// (one run) against a single fixed exchange + price-kind pair; mixing pairs
// within one tree is a caller error.
type MakeOption struct {
	recipeID string
	ticker   string
	scenario string

	inputCost        float64
	workforceCost    float64
	depreciationCost float64
	totalOutputValue float64

	baseProfit      float64
	opportunityCost float64
	finalProfit     float64

	output1Amount float64
	area          float64
	areaPerOutput float64
	runsPerDay    float64
	buildCost     float64
	inputBuffer7  float64

	inputs []MadeInputDetail
}

// MakeOptionSpec carries the computed figures into NewMakeOption.
type MakeOptionSpec struct {
	RecipeID         string
	Ticker           string
	Scenario         string
	InputCost        float64
	WorkforceCost    float64
	DepreciationCost float64
	TotalOutputValue float64
	OpportunityCost  float64
	Output1Amount    float64
	Area             float64
	AreaPerOutput    float64
	RunsPerDay       float64
	BuildCost        float64
	Inputs           []MadeInputDetail
}

// NewMakeOption creates an immutable production option with validation.
// Base and final profit and the 7-day input buffer are derived here so the
// decomposition invariants hold by construction:
//
//	baseProfit  = totalOutputValue - (inputCost + workforceCost + depreciationCost)
//	finalProfit = baseProfit - opportunityCost
//	inputBuffer7 = 7 * (inputCost + workforceCost) * runsPerDay
func NewMakeOption(spec MakeOptionSpec) (*MakeOption, error) {
	if spec.Ticker == "" {
		return nil, errors.New("ticker required")
	}
	if spec.RecipeID == "" {
		return nil, errors.New("recipe id required")
	}
	if spec.Output1Amount <= 0 {
		return nil, fmt.Errorf("option for %s has non-positive primary output", spec.Ticker)
	}
	for _, in := range spec.Inputs {
		if in.amount < 0 {
			return nil, fmt.Errorf("option for %s has a negative input amount", spec.Ticker)
		}
		if in.made && in.child == nil {
			return nil, fmt.Errorf("option for %s has a MAKE input without a child plan", spec.Ticker)
		}
	}

	inputsCopy := make([]MadeInputDetail, len(spec.Inputs))
	copy(inputsCopy, spec.Inputs)

	base := spec.TotalOutputValue - (spec.InputCost + spec.WorkforceCost + spec.DepreciationCost)

	return &MakeOption{
		recipeID:         spec.RecipeID,
		ticker:           spec.Ticker,
		scenario:         spec.Scenario,
		inputCost:        spec.InputCost,
		workforceCost:    spec.WorkforceCost,
		depreciationCost: spec.DepreciationCost,
		totalOutputValue: spec.TotalOutputValue,
		baseProfit:       base,
		opportunityCost:  spec.OpportunityCost,
		finalProfit:      base - spec.OpportunityCost,
		output1Amount:    spec.Output1Amount,
		area:             spec.Area,
		areaPerOutput:    spec.AreaPerOutput,
		runsPerDay:       spec.RunsPerDay,
		buildCost:        spec.BuildCost,
		inputBuffer7:     7 * (spec.InputCost + spec.WorkforceCost) * spec.RunsPerDay,
		inputs:           inputsCopy,
	}, nil
}

func (o *MakeOption) RecipeID() string         { return o.recipeID }
func (o *MakeOption) Ticker() string           { return o.ticker }
func (o *MakeOption) Scenario() string         { return o.scenario }
func (o *MakeOption) InputCost() float64       { return o.inputCost }
func (o *MakeOption) WorkforceCost() float64   { return o.workforceCost }
func (o *MakeOption) DepreciationCost() float64 { return o.depreciationCost }
func (o *MakeOption) TotalOutputValue() float64 { return o.totalOutputValue }
func (o *MakeOption) BaseProfit() float64      { return o.baseProfit }
func (o *MakeOption) OpportunityCost() float64 { return o.opportunityCost }
func (o *MakeOption) FinalProfit() float64     { return o.finalProfit }
func (o *MakeOption) Output1Amount() float64   { return o.output1Amount }
func (o *MakeOption) Area() float64            { return o.area }
func (o *MakeOption) AreaPerOutput() float64   { return o.areaPerOutput }
func (o *MakeOption) RunsPerDay() float64      { return o.runsPerDay }
func (o *MakeOption) BuildCost() float64       { return o.buildCost }
func (o *MakeOption) InputBuffer7() float64    { return o.inputBuffer7 }

// Inputs returns a defensive copy of the per-slot sourcing details.
func (o *MakeOption) Inputs() []MadeInputDetail {
	out := make([]MadeInputDetail, len(o.inputs))
	copy(out, o.inputs)
	return out
}

// BaseProfitPerOutput is the base profit per primary output unit.
func (o *MakeOption) BaseProfitPerOutput() float64 {
	return o.baseProfit / o.output1Amount
}

// FinalProfitPerOutput is the adjusted profit per primary output unit.
func (o *MakeOption) FinalProfitPerOutput() float64 {
	return o.finalProfit / o.output1Amount
}

// BaseProfitPerDay is the base profit at full capacity.
func (o *MakeOption) BaseProfitPerDay() float64 {
	return o.baseProfit * o.runsPerDay
}

// FinalProfitPerDay is the adjusted profit at full capacity.
func (o *MakeOption) FinalProfitPerDay() float64 {
	return o.finalProfit * o.runsPerDay
}

// OutputPerDay is the primary output volume at full capacity.
func (o *MakeOption) OutputPerDay() float64 {
	return o.output1Amount * o.runsPerDay
}

// COGM is the fully-loaded cost of goods made per primary output unit. It is
// the input cost a parent recipe pays when it consumes this option's output.
func (o *MakeOption) COGM() float64 {
	return (o.inputCost + o.workforceCost + o.depreciationCost) / o.output1Amount
}

// String returns a human-readable representation.
func (o *MakeOption) String() string {
	return fmt.Sprintf("MakeOption{%s via %s, final=%.2f/batch, scenario=%q}",
		o.ticker, o.recipeID, o.finalProfit, o.scenario)
}

// MadeInputDetail records how one input slot was sourced: bought at a market
// price, or made via a nested child option the detail exclusively owns.
type MadeInputDetail struct {
	ticker string
	amount float64
	made   bool
	cost   float64
	child  *MakeOption
}

// NewBoughtInput records an input slot sourced from the market.
func NewBoughtInput(ticker string, amount, cost float64) MadeInputDetail {
	return MadeInputDetail{ticker: ticker, amount: amount, cost: cost}
}

// NewMadeInput records an input slot produced internally via a child plan.
// cost is the child's COGM times the amount consumed.
func NewMadeInput(ticker string, amount, cost float64, child *MakeOption) MadeInputDetail {
	return MadeInputDetail{ticker: ticker, amount: amount, made: true, cost: cost, child: child}
}

func (d MadeInputDetail) Ticker() string     { return d.ticker }
func (d MadeInputDetail) Amount() float64    { return d.amount }
func (d MadeInputDetail) Made() bool         { return d.made }
func (d MadeInputDetail) Cost() float64      { return d.cost }
func (d MadeInputDetail) Child() *MakeOption { return d.child }

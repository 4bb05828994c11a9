package recipe

import (
	"errors"
	"fmt"
)

// MaxInputSlots and MaxOutputSlots bound the slot counts a recipe row may
// carry. The flat-file schema reserves exactly this many column pairs.
const (
	MaxInputSlots  = 10
	MaxOutputSlots = 3
)

// Slot is one material requirement or yield of a recipe row.
type Slot struct {
	Ticker string
	Amount float64
}

// Row is one way to produce a good: a building, its input and output slots,
// and the fixed per-run economics. Rows are immutable reference data loaded
// from an external table; nothing downstream ever mutates them.
type Row struct {
	recipeID         string
	building         string
	inputs           []Slot
	outputs          []Slot
	area             float64
	areaPerOutput    float64
	runsPerDay       float64
	workforceCost    float64
	depreciationCost float64
	buildCost        float64
}

// NewRow creates a recipe row with validation. Slot 0 of outputs is the
// primary output; its amount must be positive for the row to be usable.
func NewRow(
	recipeID string,
	building string,
	inputs []Slot,
	outputs []Slot,
	area float64,
	areaPerOutput float64,
	runsPerDay float64,
	workforceCost float64,
	depreciationCost float64,
	buildCost float64,
) (*Row, error) {
	if recipeID == "" {
		return nil, errors.New("recipe id cannot be empty")
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("recipe %s has no output slots", recipeID)
	}
	if len(inputs) > MaxInputSlots {
		return nil, fmt.Errorf("recipe %s exceeds %d input slots", recipeID, MaxInputSlots)
	}
	if len(outputs) > MaxOutputSlots {
		return nil, fmt.Errorf("recipe %s exceeds %d output slots", recipeID, MaxOutputSlots)
	}
	if outputs[0].Ticker == "" || outputs[0].Amount <= 0 {
		return nil, fmt.Errorf("recipe %s primary output is invalid", recipeID)
	}
	for _, in := range inputs {
		if in.Ticker == "" || in.Amount < 0 {
			return nil, fmt.Errorf("recipe %s has an invalid input slot", recipeID)
		}
	}

	inputsCopy := make([]Slot, len(inputs))
	copy(inputsCopy, inputs)
	outputsCopy := make([]Slot, len(outputs))
	copy(outputsCopy, outputs)

	return &Row{
		recipeID:         recipeID,
		building:         building,
		inputs:           inputsCopy,
		outputs:          outputsCopy,
		area:             area,
		areaPerOutput:    areaPerOutput,
		runsPerDay:       runsPerDay,
		workforceCost:    workforceCost,
		depreciationCost: depreciationCost,
		buildCost:        buildCost,
	}, nil
}

func (r *Row) RecipeID() string { return r.recipeID }
func (r *Row) Building() string { return r.building }

// Ticker is the primary output good this row produces.
func (r *Row) Ticker() string { return r.outputs[0].Ticker }

// PrimaryOutput returns output slot 0.
func (r *Row) PrimaryOutput() Slot { return r.outputs[0] }

// Inputs returns a defensive copy of the input slots.
func (r *Row) Inputs() []Slot {
	out := make([]Slot, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Outputs returns a defensive copy of the output slots. Slots past index 0
// are byproducts.
func (r *Row) Outputs() []Slot {
	out := make([]Slot, len(r.outputs))
	copy(out, r.outputs)
	return out
}

func (r *Row) Area() float64             { return r.area }
func (r *Row) AreaPerOutput() float64    { return r.areaPerOutput }
func (r *Row) RunsPerDay() float64       { return r.runsPerDay }
func (r *Row) WorkforceCost() float64    { return r.workforceCost }
func (r *Row) DepreciationCost() float64 { return r.depreciationCost }
func (r *Row) BuildCost() float64        { return r.buildCost }

// String returns a human-readable representation.
func (r *Row) String() string {
	return fmt.Sprintf("Row{id=%s, building=%s, inputs=%d, outputs=%d, runs/d=%.2f}",
		r.recipeID, r.building, len(r.inputs), len(r.outputs), r.runsPerDay)
}

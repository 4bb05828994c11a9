package resolver

import "prodplan/internal/domain/plan"

// Aggregate summarizes a production subtree's footprint and financing needs.
//
// The scaling contract is deliberately mixed: demand-scaled figures answer
// "how much do I need to build to satisfy demandPerDay units", while
// ProfitPerArea is computed at the option's own native capacity — one full
// copy of the recipe chain at its natural scale — and is therefore
// independent of the demand argument.
type Aggregate struct {
	// ProfitPerArea is the option's adjusted daily profit at full capacity
	// divided by the whole subtree's footprint at full capacity. Zero when
	// the subtree has no footprint.
	ProfitPerArea float64

	// AreaNative is the subtree footprint (self plus every MADE descendant,
	// each scaled to what this option consumes) at native capacity.
	AreaNative float64

	// AreaForDemand is the subtree footprint scaled to satisfy demandPerDay
	// units of the primary output. Linear in the demand argument.
	AreaForDemand float64

	// BuildCostNative and BuildCostForDemand aggregate one-time build cost
	// the same two ways, for broad ROI figures.
	BuildCostNative    float64
	BuildCostForDemand float64

	// InputBufferNative and InputBufferForDemand aggregate the 7-day input
	// cash buffer the same two ways, for payback figures.
	InputBufferNative    float64
	InputBufferForDemand float64

	// RunsPerDayRequired is how many production runs per day satisfy the
	// demand.
	RunsPerDayRequired float64
}

// Aggregate walks an option's production tree and computes the subtree
// figures described on the Aggregate type. demandPerDay is the required
// daily quantity of the option's primary output.
func (e *Engine) Aggregate(opt *plan.MakeOption, demandPerDay float64) Aggregate {
	nativeOutput := opt.OutputPerDay()
	if nativeOutput <= 0 {
		// Guard: a zero-rate option has no per-unit metrics. Surfaced as a
		// zero aggregate rather than Inf/NaN.
		return Aggregate{}
	}

	area, build, buffer := e.nativeSubtree(opt)

	agg := Aggregate{
		AreaNative:        area,
		BuildCostNative:   build,
		InputBufferNative: buffer,
	}
	if area > 0 {
		agg.ProfitPerArea = opt.FinalProfitPerDay() / area
	}

	factor := demandPerDay / nativeOutput
	agg.AreaForDemand = area * factor
	agg.BuildCostForDemand = build * factor
	agg.InputBufferForDemand = buffer * factor
	if opt.Output1Amount() > 0 {
		agg.RunsPerDayRequired = demandPerDay / opt.Output1Amount()
	}

	return agg
}

// nativeSubtree sums footprint, build cost and input buffer for one full
// copy of the option plus every MADE descendant scaled to the quantity this
// option consumes at its own full capacity.
func (e *Engine) nativeSubtree(opt *plan.MakeOption) (area, build, buffer float64) {
	area = opt.Area()
	build = opt.BuildCost()
	buffer = opt.InputBuffer7()

	for _, detail := range opt.Inputs() {
		if !detail.Made() {
			continue
		}
		child := detail.Child()
		childOutput := child.OutputPerDay()
		if childOutput <= 0 {
			continue
		}

		childArea, childBuild, childBuffer := e.nativeSubtree(child)
		// Scale the child's full-capacity subtree down (or up) to the rate
		// at which this option consumes it.
		factor := (detail.Amount() * opt.RunsPerDay()) / childOutput
		area += childArea * factor
		build += childBuild * factor
		buffer += childBuffer * factor
	}

	return area, build, buffer
}

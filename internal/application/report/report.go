package report

import (
	"time"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
)

// RankedOption is one production option annotated with the financial
// figures the report ranks by. Derived figures live here rather than on the
// option itself so cached options stay immutable.
type RankedOption struct {
	Option *plan.MakeOption

	// ProfitPerArea at the option's native capacity; the ranking metric.
	ProfitPerArea float64

	// DailyProfit is the adjusted profit per day at full capacity.
	DailyProfit float64

	// AreaNative is the whole subtree footprint at native capacity.
	AreaNative float64

	// AreaForDemand is the footprint scaled to the requested daily demand.
	AreaForDemand float64

	// ROINarrowDays counts days of daily profit to repay the option's own
	// build cost; ROIBroadDays uses the whole subtree's aggregated build
	// cost. Zero when the option is unprofitable.
	ROINarrowDays float64
	ROIBroadDays  float64

	// PaybackNarrowDays and PaybackBroadDays additionally front the 7-day
	// input purchasing buffer. Zero when the option is unprofitable.
	PaybackNarrowDays float64
	PaybackBroadDays  float64
}

// ScenarioGroup is a deduplicated view: all options sharing one canonical
// scenario, represented by the group's best.
type ScenarioGroup struct {
	Scenario string
	Count    int
	Best     RankedOption
}

// Report is the structured answer to one query. It is always well-formed:
// error states carry a message in Error alongside empty result slices, so
// callers never branch on partially-populated shapes.
type Report struct {
	Ticker       string
	ExchangeCode string
	Kind         exchange.PriceKind
	GeneratedAt  time.Time

	// Error is non-empty when the query was invalid or produced nothing.
	Error string

	// Best is the top option by profit-per-area, nil when Error is set.
	Best *RankedOption

	// Options are the top-N ranked options, best first.
	Options []RankedOption

	// Scenarios groups every returned option by canonical scenario.
	Scenarios []ScenarioGroup

	// BuyAllProfitPerArea is the pure-trading baseline: the best
	// profit-per-area achievable buying every input on the market. Zero
	// when no all-buy plan is priceable.
	BuyAllProfitPerArea float64
}

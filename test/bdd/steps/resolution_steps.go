package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"prodplan/internal/application/report"
	"prodplan/internal/application/resolver"
	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
	"prodplan/internal/domain/recipe"
)

type resolutionContext struct {
	rows    []*recipe.Row
	entries []*exchange.Entry

	forceMake     []string
	forceBuy      []string
	excludeRecipe []string

	options    []*plan.MakeOption
	session    *resolver.Session
	baseline   *plan.MakeOption
	baselineOK bool
	report     *report.Report
}

func (ctx *resolutionContext) reset() {
	ctx.rows = nil
	ctx.entries = nil
	ctx.forceMake = nil
	ctx.forceBuy = nil
	ctx.excludeRecipe = nil
	ctx.options = nil
	ctx.session = nil
	ctx.baseline = nil
	ctx.baselineOK = false
	ctx.report = nil
}

func (ctx *resolutionContext) engine() *resolver.Engine {
	return resolver.NewEngine(
		recipe.NewTable(ctx.rows),
		exchange.NewPriceBook(ctx.entries),
		resolver.DefaultOptions(),
	)
}

func (ctx *resolutionContext) constraints() resolver.Constraints {
	c := resolver.Constraints{
		ForceMake:     make(map[string]bool),
		ForceBuy:      make(map[string]bool),
		ExcludeRecipe: make(map[string]bool),
	}
	for _, t := range ctx.forceMake {
		c.ForceMake[t] = true
	}
	for _, t := range ctx.forceBuy {
		c.ForceBuy[t] = true
	}
	for _, id := range ctx.excludeRecipe {
		c.ExcludeRecipe[id] = true
	}
	return c
}

// parseSlots parses "HAL:3, LI:2" into recipe slots.
func parseSlots(raw string) ([]recipe.Slot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var slots []recipe.Slot
	for _, part := range strings.Split(raw, ",") {
		fields := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed slot %q", part)
		}
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed slot amount %q: %w", part, err)
		}
		slots = append(slots, recipe.Slot{Ticker: fields[0], Amount: amount})
	}
	return slots, nil
}

// ============================================================================
// Setup Steps
// ============================================================================

func (ctx *resolutionContext) aRecipeTableWith(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		cells := row.Cells
		inputs, err := parseSlots(cells[2].Value)
		if err != nil {
			return err
		}
		outputs, err := parseSlots(cells[3].Value)
		if err != nil {
			return err
		}
		floats := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(cells[4+j].Value, 64)
			if err != nil {
				return fmt.Errorf("malformed number %q: %w", cells[4+j].Value, err)
			}
			floats[j] = v
		}

		area := floats[0]
		r, err := recipe.NewRow(cells[0].Value, cells[1].Value, inputs, outputs,
			area, area/outputs[0].Amount, floats[1], floats[2], floats[3], floats[4])
		if err != nil {
			return err
		}
		ctx.rows = append(ctx.rows, r)
	}
	return nil
}

func (ctx *resolutionContext) exchangeQuotes(exchangeCode string, table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		ask, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return err
		}
		bid, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		entry, err := exchange.NewEntry(row.Cells[0].Value, exchangeCode, &ask, &bid, nil, nil)
		if err != nil {
			return err
		}
		ctx.entries = append(ctx.entries, entry)
	}
	return nil
}

func (ctx *resolutionContext) isForcedToBeBought(ticker string) error {
	ctx.forceBuy = append(ctx.forceBuy, ticker)
	return nil
}

func (ctx *resolutionContext) isForcedToBeMade(ticker string) error {
	ctx.forceMake = append(ctx.forceMake, ticker)
	return nil
}

func (ctx *resolutionContext) recipeIsExcluded(recipeID string) error {
	ctx.excludeRecipe = append(ctx.excludeRecipe, recipeID)
	return nil
}

// ============================================================================
// Action Steps
// ============================================================================

func (ctx *resolutionContext) iResolveAllOptions(ticker, exchangeCode, kindName string) error {
	kind := exchange.PriceKind(strings.ToUpper(kindName))
	if !kind.Valid() {
		return fmt.Errorf("unknown price kind %q", kindName)
	}
	ctx.session = ctx.engine().NewSession(exchangeCode, kind, nil, ctx.constraints())
	ctx.options = ctx.session.ResolveAll(ticker, 0, true, true)
	return nil
}

func (ctx *resolutionContext) iResolveTheAllBuyBaseline(ticker, exchangeCode, kindName string) error {
	kind := exchange.PriceKind(strings.ToUpper(kindName))
	if !kind.Valid() {
		return fmt.Errorf("unknown price kind %q", kindName)
	}
	ctx.session = ctx.engine().NewSession(exchangeCode, kind, nil, ctx.constraints())
	ctx.baseline, ctx.baselineOK = ctx.session.ResolveBuyAll(ticker)
	return nil
}

func (ctx *resolutionContext) iRequestAReport(ticker, exchangeCode, kindName string) error {
	req := report.QueryRequest{
		Ticker:       ticker,
		ExchangeCode: exchangeCode,
		Kind:         exchange.PriceKind(strings.ToUpper(kindName)),
		ForceMake:    ctx.forceMake,
		ForceBuy:     ctx.forceBuy,
	}
	ctx.report = report.NewBuilder(ctx.engine()).Build(req, nil)
	return nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (ctx *resolutionContext) iShouldGetOptions(count int) error {
	if len(ctx.options) != count {
		return fmt.Errorf("expected %d options, got %d", count, len(ctx.options))
	}
	return nil
}

func (ctx *resolutionContext) oneOptionShouldHaveScenario(scenario string) error {
	for _, opt := range ctx.options {
		if plan.SameScenario(opt.Scenario(), scenario) {
			return nil
		}
	}
	return fmt.Errorf("no option with scenario %q", scenario)
}

func (ctx *resolutionContext) theOptionShouldHaveFinalProfit(scenario string, expected float64) error {
	for _, opt := range ctx.options {
		if plan.SameScenario(opt.Scenario(), scenario) {
			if diff := opt.FinalProfit() - expected; diff > 1e-6 || diff < -1e-6 {
				return fmt.Errorf("option %q has final profit %.2f, expected %.2f", scenario, opt.FinalProfit(), expected)
			}
			return nil
		}
	}
	return fmt.Errorf("no option with scenario %q", scenario)
}

func (ctx *resolutionContext) theBaselineProfitPerAreaShouldBe(expected float64) error {
	if !ctx.baselineOK {
		return fmt.Errorf("no all-buy baseline was found")
	}
	pa := ctx.session.ProfitPerArea(ctx.baseline)
	if diff := pa - expected; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("baseline profit per area is %.2f, expected %.2f", pa, expected)
	}
	return nil
}

func (ctx *resolutionContext) theReportShouldSucceed() error {
	if ctx.report == nil {
		return fmt.Errorf("no report was built")
	}
	if ctx.report.Error != "" {
		return fmt.Errorf("report failed: %s", ctx.report.Error)
	}
	return nil
}

func (ctx *resolutionContext) theBestScenarioShouldBe(scenario string) error {
	if ctx.report == nil || ctx.report.Best == nil {
		return fmt.Errorf("report has no best option")
	}
	got := ctx.report.Best.Option.Scenario()
	if !plan.SameScenario(got, scenario) {
		return fmt.Errorf("best scenario is %q, expected %q", got, scenario)
	}
	return nil
}

func (ctx *resolutionContext) theBestProfitPerAreaShouldBe(expected float64) error {
	if ctx.report == nil || ctx.report.Best == nil {
		return fmt.Errorf("report has no best option")
	}
	pa := ctx.report.Best.ProfitPerArea
	if diff := pa - expected; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("best profit per area is %.2f, expected %.2f", pa, expected)
	}
	return nil
}

func (ctx *resolutionContext) theReportShouldFailWith(fragment string) error {
	if ctx.report == nil {
		return fmt.Errorf("no report was built")
	}
	if ctx.report.Error == "" {
		return fmt.Errorf("report unexpectedly succeeded")
	}
	if !strings.Contains(ctx.report.Error, fragment) {
		return fmt.Errorf("report error %q does not contain %q", ctx.report.Error, fragment)
	}
	return nil
}

// InitializeResolutionScenario registers the resolution and report steps.
func InitializeResolutionScenario(sc *godog.ScenarioContext) {
	ctx := &resolutionContext{}

	sc.Before(func(c context.Context, sn *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a recipe table with:$`, ctx.aRecipeTableWith)
	sc.Step(`^exchange "([^"]*)" quotes:$`, ctx.exchangeQuotes)
	sc.Step(`^"([^"]*)" is forced to be bought$`, ctx.isForcedToBeBought)
	sc.Step(`^"([^"]*)" is forced to be made$`, ctx.isForcedToBeMade)
	sc.Step(`^recipe "([^"]*)" is excluded$`, ctx.recipeIsExcluded)

	sc.Step(`^I resolve all options for "([^"]*)" on "([^"]*)" using "([^"]*)" prices$`, ctx.iResolveAllOptions)
	sc.Step(`^I resolve the all-buy baseline for "([^"]*)" on "([^"]*)" using "([^"]*)" prices$`, ctx.iResolveTheAllBuyBaseline)
	sc.Step(`^I request a report for "([^"]*)" on "([^"]*)" using "([^"]*)" prices$`, ctx.iRequestAReport)

	sc.Step(`^I should get (\d+) options$`, ctx.iShouldGetOptions)
	sc.Step(`^one option should have scenario "([^"]*)"$`, ctx.oneOptionShouldHaveScenario)
	sc.Step(`^the option "([^"]*)" should have final profit (\d+\.\d+)$`, ctx.theOptionShouldHaveFinalProfit)
	sc.Step(`^the baseline profit per area should be (\d+\.\d+)$`, ctx.theBaselineProfitPerAreaShouldBe)
	sc.Step(`^the report should succeed$`, ctx.theReportShouldSucceed)
	sc.Step(`^the best scenario should be "([^"]*)"$`, ctx.theBestScenarioShouldBe)
	sc.Step(`^the best profit per area should be (\d+\.\d+)$`, ctx.theBestProfitPerAreaShouldBe)
	sc.Step(`^the report should fail with a message containing "([^"]*)"$`, ctx.theReportShouldFailWith)
}

package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"prodplan/internal/adapters/persistence"
	"prodplan/internal/application/report"
	"prodplan/internal/domain/plan"
	"prodplan/internal/infrastructure/config"
	"prodplan/internal/infrastructure/database"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	var (
		ticker        string
		exchangeCode  string
		kindFlag      string
		forceMake     []string
		forceBuy      []string
		forceRecipe   []string
		excludeRecipe []string
		demand        float64
		topN          int
		useBestMap    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rank production scenarios for a good by profit per area",
		Long: `Rank the BUY-vs-MAKE production scenarios for one good on one exchange.

Each scenario decides, per input down the recipe chain, whether to buy it on
the market or craft it in-house. Scenarios are scored by adjusted profit per
unit of factory area and compared against the all-buy trading baseline.

Examples:
  prodplan report --ticker POW --exchange AI1 --kind ask
  prodplan report --ticker HAL --exchange NC1 --kind avg7 --demand 250
  prodplan report --ticker POW --exchange AI1 --force-make LI --top 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			cfg := config.LoadConfigOrDefault(configPath)
			applyLogging(cfg)
			engine, err := loadEngine(cfg, exchangeCode, kind)
			if err != nil {
				return err
			}

			bestMap := plan.BestMap{}
			if useBestMap {
				db, err := database.NewConnection(&cfg.Database)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close(db)

				repo := persistence.NewBestMapRepository(db)
				bestMap, err = repo.LoadLatest(context.Background(), exchangeCode, kind)
				if err != nil {
					return fmt.Errorf("failed to load best map: %w", err)
				}
				if verbose {
					log.Printf("loaded best map with %d entries", len(bestMap))
				}
			}

			req := report.QueryRequest{
				Ticker:        ticker,
				ExchangeCode:  exchangeCode,
				Kind:          kind,
				ForceMake:     forceMake,
				ForceBuy:      forceBuy,
				ForceRecipe:   forceRecipe,
				ExcludeRecipe: excludeRecipe,
				DemandPerDay:  demand,
				TopN:          topN,
			}

			rep := report.NewBuilder(engine).Build(req, bestMap)
			printReport(rep)
			if rep.Error != "" {
				return fmt.Errorf("report failed: %s", rep.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "", "Good to plan production for (required)")
	cmd.Flags().StringVar(&exchangeCode, "exchange", "", "Exchange code, or UNIVERSE for reference prices (required)")
	cmd.Flags().StringVar(&kindFlag, "kind", "ask", "Price kind: ask, bid, avg7, avg30")
	cmd.Flags().StringSliceVar(&forceMake, "force-make", nil, "Tickers that must be crafted in-house")
	cmd.Flags().StringSliceVar(&forceBuy, "force-buy", nil, "Tickers that must be bought on the market")
	cmd.Flags().StringSliceVar(&forceRecipe, "force-recipe", nil, "Recipe ids that pin their good to one recipe")
	cmd.Flags().StringSliceVar(&excludeRecipe, "exclude-recipe", nil, "Recipe ids removed from consideration")
	cmd.Flags().Float64Var(&demand, "demand", 0, "Units per day to scale footprint figures to (default: native output)")
	cmd.Flags().IntVar(&topN, "top", 0, "How many ranked options to show (default 10)")
	cmd.Flags().BoolVar(&useBestMap, "use-best-map", false, "Seed pruning from the latest precomputed best map")
	cmd.MarkFlagRequired("ticker")
	cmd.MarkFlagRequired("exchange")

	return cmd
}

// printReport renders a report to stdout.
func printReport(rep *report.Report) {
	fmt.Printf("\nProduction report: %s on %s (%s)\n", rep.Ticker, rep.ExchangeCode, rep.Kind)

	if rep.Error != "" {
		fmt.Printf("  %s\n", rep.Error)
		return
	}

	fmt.Printf("\nTop options by profit/area:\n")
	for i, opt := range rep.Options {
		fmt.Printf("\n%2d. %s\n", i+1, opt.Option.Scenario())
		fmt.Printf("    recipe:        %s\n", opt.Option.RecipeID())
		fmt.Printf("    profit/area:   %.2f\n", opt.ProfitPerArea)
		fmt.Printf("    daily profit:  %.2f\n", opt.DailyProfit)
		fmt.Printf("    COGM:          %.2f\n", opt.Option.COGM())
		fmt.Printf("    area:          %.1f native, %.1f for demand\n", opt.AreaNative, opt.AreaForDemand)
		if opt.ROINarrowDays > 0 {
			fmt.Printf("    ROI:           %.1fd narrow, %.1fd broad\n", opt.ROINarrowDays, opt.ROIBroadDays)
			fmt.Printf("    payback:       %.1fd narrow, %.1fd broad\n", opt.PaybackNarrowDays, opt.PaybackBroadDays)
		}
	}

	if len(rep.Scenarios) > 0 {
		fmt.Printf("\nScenario groups:\n")
		for _, group := range rep.Scenarios {
			fmt.Printf("  %4dx  %.2f/area  %s\n", group.Count, group.Best.ProfitPerArea, group.Scenario)
		}
	}

	if rep.BuyAllProfitPerArea != 0 {
		fmt.Printf("\nAll-buy baseline: %.2f profit/area\n", rep.BuyAllProfitPerArea)
	}
	fmt.Println()
}

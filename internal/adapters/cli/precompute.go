package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"prodplan/internal/adapters/metrics"
	"prodplan/internal/adapters/persistence"
	"prodplan/internal/application/precompute"
	"prodplan/internal/infrastructure/config"
	"prodplan/internal/infrastructure/database"
)

// NewPrecomputeCommand creates the precompute command
func NewPrecomputeCommand() *cobra.Command {
	var (
		exchangeCode string
		kindFlag     string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "precompute",
		Short: "Precompute and store the best scenario for every producible good",
		Long: `Walk every producible good leaves-first and record its best production
scenario plus up to 3 alternatives. Later report runs can seed their pruning
from this map with --use-best-map.

Examples:
  prodplan precompute --exchange AI1 --kind ask
  prodplan precompute --exchange UNIVERSE --kind avg7
  prodplan precompute --exchange AI1 --kind ask --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			cfg := config.LoadConfigOrDefault(configPath)
			applyLogging(cfg)

			if cfg.Metrics.Enabled {
				metrics.InitRegistry()
				collector := metrics.NewResolutionMetricsCollector()
				if err := collector.Register(metrics.GetRegistry()); err != nil {
					return fmt.Errorf("failed to register metrics: %w", err)
				}
				metrics.SetGlobalResolutionCollector(collector)
				go serveMetrics(cfg.Metrics)
			}

			engine, err := loadEngine(cfg, exchangeCode, kind)
			if err != nil {
				return err
			}

			var service *precompute.Service
			if dryRun {
				service = precompute.NewService(engine, nil)
			} else {
				db, err := database.NewConnection(&cfg.Database)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close(db)

				if err := database.AutoMigrate(db); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
				service = precompute.NewService(engine, persistence.NewBestMapRepository(db))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := service.Run(ctx, exchangeCode, kind)
			if err != nil {
				return err
			}

			fmt.Printf("Precompute run %s finished: %d entries, %d skipped, took %s\n",
				result.RunID, len(result.Entries), len(result.Failed),
				result.FinishedAt.Sub(result.StartedAt).Round(1e6))
			if len(result.Failed) > 0 && verbose {
				fmt.Printf("Skipped tickers: %v\n", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exchangeCode, "exchange", "", "Exchange code, or UNIVERSE for reference prices (required)")
	cmd.Flags().StringVar(&kindFlag, "kind", "ask", "Price kind: ask, bid, avg7, avg30")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the map without persisting it")
	cmd.MarkFlagRequired("exchange")

	return cmd
}

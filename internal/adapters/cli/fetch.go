package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prodplan/internal/adapters/feed"
	"prodplan/internal/adapters/flatfile"
	"prodplan/internal/adapters/persistence"
	"prodplan/internal/infrastructure/config"
	"prodplan/internal/infrastructure/database"
)

// NewFetchCommand creates the fetch command
func NewFetchCommand() *cobra.Command {
	var (
		exchangeCodes []string
		outPath       string
		persist       bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a fresh price snapshot from the remote feed",
		Long: `Fetch current price records for one or more exchanges and write them to
the snapshot file the other commands read from.

Examples:
  prodplan fetch --exchange AI1
  prodplan fetch --exchange AI1 --exchange NC1 --exchange UNIVERSE
  prodplan fetch --exchange AI1 --out data/prices.json --persist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configPath)
			applyLogging(cfg)
			if outPath == "" {
				outPath = cfg.Data.PriceJSON
			}

			client := feed.NewClient(cfg.Feed)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			var all []flatfile.PriceRecord
			for _, code := range exchangeCodes {
				records, err := client.FetchPrices(ctx, code)
				if err != nil {
					return err
				}
				fmt.Printf("Fetched %d price records for %s\n", len(records), code)
				all = append(all, records...)
			}

			if err := flatfile.WritePriceJSON(outPath, all); err != nil {
				return err
			}
			fmt.Printf("Wrote %d records to %s\n", len(all), outPath)

			if persist {
				db, err := database.NewConnection(&cfg.Database)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close(db)

				if err := database.AutoMigrate(db); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}

				repo := persistence.NewPriceSnapshotRepository(db)
				if err := repo.Upsert(ctx, all, time.Now()); err != nil {
					return err
				}
				fmt.Println("Persisted snapshot to database")
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exchangeCodes, "exchange", nil, "Exchange codes to fetch (repeatable, required)")
	cmd.Flags().StringVar(&outPath, "out", "", "Snapshot file to write (default: configured data.price_json)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Also upsert the records into the database")
	cmd.MarkFlagRequired("exchange")

	return cmd
}

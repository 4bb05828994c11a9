package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prodplan/internal/adapters/flatfile"
	"prodplan/internal/adapters/metrics"
	"prodplan/internal/application/resolver"
	"prodplan/internal/domain/exchange"
	"prodplan/internal/infrastructure/config"
)

// loadEngine builds a resolution engine from the configured flat files. The
// exchange and kind are needed up front because cost columns in the recipe
// table are exchange-dependent.
func loadEngine(cfg *config.Config, exchangeCode string, kind exchange.PriceKind) (*resolver.Engine, error) {
	table, err := flatfile.LoadRecipeCSV(cfg.Data.RecipeCSV, exchangeCode, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe table: %w", err)
	}

	book, err := flatfile.LoadPriceJSON(cfg.Data.PriceJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to load price snapshot: %w", err)
	}

	if verbose {
		log.Printf("loaded %d recipe rows, %d price entries", table.RowCount(), book.Size())
	}

	opts := resolver.Options{
		MaxDepth:           cfg.Resolver.MaxDepth,
		ExploreDepth:       cfg.Resolver.ExploreDepth,
		KeepRootChildren:   cfg.Resolver.KeepRootChildren,
		KeepDeepChildren:   cfg.Resolver.KeepDeepChildren,
		MaxScenariosPerRow: cfg.Resolver.MaxScenariosPerRow,
	}

	return resolver.NewEngine(table, book, opts), nil
}

// applyLogging points the standard logger at the configured destination.
func applyLogging(cfg *config.Config) {
	switch cfg.Logging.Output {
	case "stderr":
		log.SetOutput(os.Stderr)
	case "file":
		if cfg.Logging.FilePath != "" {
			f, err := os.OpenFile(cfg.Logging.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				log.Printf("failed to open log file %s, falling back to stdout: %v", cfg.Logging.FilePath, err)
				return
			}
			log.SetOutput(f)
		}
	default:
		log.SetOutput(os.Stdout)
	}
	if cfg.Logging.Level == "debug" || verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
}

// serveMetrics exposes the Prometheus registry over HTTP. Runs until the
// process exits.
func serveMetrics(cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("metrics: serving %s on %s", cfg.Path, addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics: server stopped: %v", err)
	}
}

// parseKind validates the user-supplied price kind flag. Input is
// case-insensitive.
func parseKind(raw string) (exchange.PriceKind, error) {
	kind := exchange.PriceKind(strings.ToUpper(raw))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown price kind %q (one of: ask, bid, avg7, avg30)", raw)
	}
	return kind, nil
}

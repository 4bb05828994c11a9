package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
)

// BestMapRepositoryGORM implements best-map persistence using GORM
type BestMapRepositoryGORM struct {
	db *gorm.DB
}

// NewBestMapRepository creates a new GORM-based best-map repository
func NewBestMapRepository(db *gorm.DB) *BestMapRepositoryGORM {
	return &BestMapRepositoryGORM{db: db}
}

// alternativeRecord is the JSON shape of one stored alternative scenario.
type alternativeRecord struct {
	Scenario      string  `json:"scenario"`
	ProfitPerArea float64 `json:"profit_per_area"`
}

// SaveRun persists a full batch run atomically. Runs accumulate; nothing is
// replaced or deleted here.
func (r *BestMapRepositoryGORM) SaveRun(ctx context.Context, run *plan.BestMapRun) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		runModel := BestMapRunModel{
			RunID:        run.RunID,
			ExchangeCode: run.ExchangeCode,
			Kind:         string(run.Kind),
			StartedAt:    run.StartedAt,
			FinishedAt:   run.FinishedAt,
		}
		if err := tx.Create(&runModel).Error; err != nil {
			return fmt.Errorf("failed to insert best-map run: %w", err)
		}

		if len(run.Entries) == 0 {
			return nil
		}

		entries := make([]BestMapEntryModel, 0, len(run.Entries))
		for ticker, entry := range run.Entries {
			alternatives := make([]alternativeRecord, 0, len(entry.Alternatives))
			for _, alt := range entry.Alternatives {
				alternatives = append(alternatives, alternativeRecord{
					Scenario:      alt.Scenario,
					ProfitPerArea: alt.ProfitPerArea,
				})
			}
			encoded, err := json.Marshal(alternatives)
			if err != nil {
				return fmt.Errorf("failed to encode alternatives for %s: %w", ticker, err)
			}

			entries = append(entries, BestMapEntryModel{
				RunID:               run.RunID,
				Ticker:              ticker,
				RecipeID:            entry.RecipeID,
				Scenario:            entry.Scenario,
				Alternatives:        string(encoded),
				BuyAllProfitPerArea: entry.BuyAllProfitPerArea,
			})
		}

		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to insert best-map entries: %w", err)
		}
		return nil
	})
}

// LoadLatest returns the newest stored map for the (exchange, kind) pair, or
// an empty map when no run exists yet.
func (r *BestMapRepositoryGORM) LoadLatest(ctx context.Context, exchangeCode string, kind exchange.PriceKind) (plan.BestMap, error) {
	var runModel BestMapRunModel
	err := r.db.WithContext(ctx).
		Where("exchange_code = ? AND kind = ?", exchangeCode, string(kind)).
		Order("finished_at DESC").
		First(&runModel).Error
	if err == gorm.ErrRecordNotFound {
		return plan.BestMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest best-map run: %w", err)
	}

	var entryModels []BestMapEntryModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runModel.RunID).Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load best-map entries: %w", err)
	}

	bestMap := make(plan.BestMap, len(entryModels))
	for _, model := range entryModels {
		var records []alternativeRecord
		if model.Alternatives != "" {
			if err := json.Unmarshal([]byte(model.Alternatives), &records); err != nil {
				return nil, fmt.Errorf("corrupt alternatives for %s in run %s: %w", model.Ticker, model.RunID, err)
			}
		}
		alternatives := make([]plan.Alternative, 0, len(records))
		for _, rec := range records {
			alternatives = append(alternatives, plan.Alternative{
				Scenario:      rec.Scenario,
				ProfitPerArea: rec.ProfitPerArea,
			})
		}

		bestMap[model.Ticker] = plan.BestEntry{
			RecipeID:            model.RecipeID,
			Scenario:            model.Scenario,
			Alternatives:        alternatives,
			BuyAllProfitPerArea: model.BuyAllProfitPerArea,
		}
	}

	return bestMap, nil
}

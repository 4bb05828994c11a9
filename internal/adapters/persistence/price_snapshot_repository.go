package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prodplan/internal/adapters/flatfile"
)

// PriceSnapshotRepositoryGORM persists fetched price records so queries can
// run against the last known snapshot without hitting the feed.
type PriceSnapshotRepositoryGORM struct {
	db *gorm.DB
}

// NewPriceSnapshotRepository creates a new GORM-based price snapshot repository
func NewPriceSnapshotRepository(db *gorm.DB) *PriceSnapshotRepositoryGORM {
	return &PriceSnapshotRepositoryGORM{db: db}
}

// Upsert replaces the stored quotes for every record's (ticker, exchange)
// pair. One row per pair; newer fetches overwrite in place.
func (r *PriceSnapshotRepositoryGORM) Upsert(ctx context.Context, records []flatfile.PriceRecord, fetchedAt time.Time) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]PriceSnapshotModel, len(records))
	for i, rec := range records {
		models[i] = PriceSnapshotModel{
			Ticker:       rec.Ticker,
			ExchangeCode: rec.ExchangeCode,
			Ask:          rec.Ask,
			Bid:          rec.Bid,
			Avg7:         rec.Avg7,
			Avg30:        rec.Avg30,
			FetchedAt:    fetchedAt,
		}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}, {Name: "exchange_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ask", "bid", "avg7", "avg30", "fetched_at", "updated_at",
		}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("failed to upsert price snapshots: %w", err)
	}
	return nil
}

// LoadAll returns every stored price record.
func (r *PriceSnapshotRepositoryGORM) LoadAll(ctx context.Context) ([]flatfile.PriceRecord, error) {
	var models []PriceSnapshotModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load price snapshots: %w", err)
	}

	records := make([]flatfile.PriceRecord, len(models))
	for i, model := range models {
		records[i] = flatfile.PriceRecord{
			Ticker:       model.Ticker,
			ExchangeCode: model.ExchangeCode,
			Ask:          model.Ask,
			Bid:          model.Bid,
			Avg7:         model.Avg7,
			Avg30:        model.Avg30,
		}
	}
	return records, nil
}

package migrations

import (
	"github.com/TroHub/ListingGuard/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250601_create_moderation_results",
		Name: "Create moderation_results table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS moderation_results (
					id                     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					listing_id             TEXT NOT NULL,
					decision               TEXT NOT NULL,
					overall_score          DOUBLE PRECISION NOT NULL,
					rule_score             DOUBLE PRECISION NOT NULL,
					price_score            DOUBLE PRECISION NOT NULL,
					predicted_price        DOUBLE PRECISION NOT NULL DEFAULT 0,
					actual_price           DOUBLE PRECISION NOT NULL DEFAULT 0,
					deviation_pct          DOUBLE PRECISION NOT NULL DEFAULT 0,
					is_anomaly             BOOLEAN NOT NULL DEFAULT FALSE,
					reasons                TEXT[] NOT NULL DEFAULT '{}',
					suggestions            TEXT[] NOT NULL DEFAULT '{}',
					auto_approve_threshold DOUBLE PRECISION NOT NULL,
					reject_threshold       DOUBLE PRECISION NOT NULL,
					created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_results_listing_created
				ON moderation_results (listing_id, created_at DESC);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS moderation_results;`).Error
		},
	})
}

package migrations

import (
	"github.com/TroHub/ListingGuard/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250615_add_decision_index",
		Name: "Index moderation_results by decision for the review queue",

		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_results_decision
				ON moderation_results (decision, created_at DESC)
				WHERE decision = 'pending_review';
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_moderation_results_decision;`).Error
		},
	})
}

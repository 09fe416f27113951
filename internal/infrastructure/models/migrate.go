package models

import (
	"gorm.io/gorm"
)

// activeDomainIndex enforces the one real invariant of the system: at most
// one domain row per full_domain may hold an active status at a time.
// Concurrent purchase attempts that both pass the advisory pre-check are
// serialized here; the loser gets a duplicate-key error.
const activeDomainIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_domains_active_full_domain
ON domains (full_domain)
WHERE status IN ('registered', 'pending', 'payment_completed')
  AND deleted_at IS NULL`

// Migrate creates all tables and the partial unique index on active domains
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Domain{},
		&Transaction{},
		&AIConversation{},
	); err != nil {
		return err
	}
	return db.Exec(activeDomainIndex).Error
}

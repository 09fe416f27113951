package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction rows are append-only; no soft delete column on purpose.
type Transaction struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index"`
	DomainID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Type                  string    `gorm:"type:varchar(20);not null;index"`
	Status                string    `gorm:"type:varchar(20);not null;index"`
	AmountValue           float64   `gorm:"not null"`
	AmountCurrency        string    `gorm:"type:varchar(3);not null;default:'USD'"`
	PaymentMethod         string    `gorm:"type:varchar(20);not null;default:'stripe'"`
	StripePaymentIntentID *string   `gorm:"type:varchar(255);index"`
	StripeChargeID        *string   `gorm:"type:varchar(255)"`
	CardBrand             *string   `gorm:"type:varchar(20)"`
	CardLast4             *string   `gorm:"type:varchar(4)"`
	Years                 int       `gorm:"not null;default:1"`
	Notes                 *string   `gorm:"type:text"`
	CreatedAt             time.Time `gorm:"index"`
	UpdatedAt             time.Time
}

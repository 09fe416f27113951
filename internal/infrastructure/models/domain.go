package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Domain struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"type:varchar(253);not null;index"`
	Extension        string     `gorm:"type:varchar(63);not null"`
	FullDomain       string     `gorm:"type:varchar(253);not null;index"`
	Status           string     `gorm:"type:varchar(32);not null;index"`
	OwnerID          *uuid.UUID `gorm:"type:uuid;index"`
	Registrar        string     `gorm:"type:varchar(50);not null;default:'namecheap'"`
	Cost             float64    `gorm:"not null"`
	Markup           float64    `gorm:"not null;default:0"`
	SellingPrice     float64    `gorm:"not null"`
	Currency         string     `gorm:"type:varchar(3);not null;default:'USD'"`
	DNSRecords       string     `gorm:"type:jsonb;default:'[]'"`
	RegistrationDate *time.Time
	ExpirationDate   *time.Time
	AutoRenew        bool `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

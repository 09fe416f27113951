package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AIConversation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionID       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Messages        string    `gorm:"type:jsonb;default:'[]'"`
	Recommendations string    `gorm:"type:jsonb;default:'[]'"`
	Status          string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

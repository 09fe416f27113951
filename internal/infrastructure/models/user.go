package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name                 string    `gorm:"type:varchar(100);not null"`
	PasswordHash         string    `gorm:"type:varchar(255);not null"`
	Role                 string    `gorm:"type:varchar(20);not null;default:'USER'"`
	IsActive             bool      `gorm:"not null;default:true"`
	StripeCustomerID     *string   `gorm:"type:varchar(255)"`
	ResetPasswordToken   *string   `gorm:"type:varchar(64);index"`
	ResetPasswordExpires *time.Time
	Phone                string `gorm:"type:varchar(50)"`
	Street               string `gorm:"type:varchar(255)"`
	City                 string `gorm:"type:varchar(100)"`
	State                string `gorm:"type:varchar(100)"`
	PostalCode           string `gorm:"type:varchar(20)"`
	Country              string `gorm:"type:varchar(2)"`
	Currency             string `gorm:"type:varchar(3);not null;default:'USD'"`
	EmailNotifications   bool   `gorm:"not null;default:true"`
	SMSNotifications     bool   `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

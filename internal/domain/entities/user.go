package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

// UserProfile holds contact fields used as registrant defaults
type UserProfile struct {
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// UserPreferences holds per-user settings
type UserPreferences struct {
	Currency           string `json:"currency"`
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
}

// User represents a user entity
type User struct {
	ID                   uuid.UUID       `json:"id"`
	Email                string          `json:"email"`
	Name                 string          `json:"name"`
	PasswordHash         string          `json:"-"`
	Role                 UserRole        `json:"role"`
	IsActive             bool            `json:"isActive"`
	StripeCustomerID     null.String     `json:"-"`
	ResetPasswordToken   null.String     `json:"-"`
	ResetPasswordExpires null.Time       `json:"-"`
	Profile              UserProfile     `json:"profile"`
	Preferences          UserPreferences `json:"preferences"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileInput represents allowed profile updates
type UpdateProfileInput struct {
	Name    string       `json:"name" binding:"omitempty,min=2,max=100"`
	Profile *UserProfile `json:"profile"`
}

// UpdatePreferencesInput represents allowed preference updates
type UpdatePreferencesInput struct {
	Currency      string `json:"currency" binding:"omitempty,oneof=USD EUR GBP"`
	Notifications *struct {
		Email *bool `json:"email"`
		SMS   *bool `json:"sms"`
	} `json:"notifications"`
}

// ForgotPasswordInput represents a password reset request
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput carries the reset token and new password
type ResetPasswordInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// DeleteAccountInput requires explicit confirmation
type DeleteAccountInput struct {
	ConfirmDelete string `json:"confirmDelete" binding:"required"`
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := r.toModel(user)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByResetToken gets a user by hashed reset token, ignoring expired ones
func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires > ?", tokenHash, time.Now()).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists mutable user fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":                user.Name,
		"password_hash":       user.PasswordHash,
		"is_active":           user.IsActive,
		"phone":               user.Profile.Phone,
		"street":              user.Profile.Street,
		"city":                user.Profile.City,
		"state":               user.Profile.State,
		"postal_code":         user.Profile.PostalCode,
		"country":             user.Profile.Country,
		"currency":            user.Preferences.Currency,
		"email_notifications": user.Preferences.EmailNotifications,
		"sms_notifications":   user.Preferences.SMSNotifications,
		"updated_at":          time.Now(),
	}

	// Nullable columns are written explicitly so clearing them works.
	if user.StripeCustomerID.Valid {
		updates["stripe_customer_id"] = user.StripeCustomerID.String
	} else {
		updates["stripe_customer_id"] = nil
	}
	if user.ResetPasswordToken.Valid {
		updates["reset_password_token"] = user.ResetPasswordToken.String
	} else {
		updates["reset_password_token"] = nil
	}
	if user.ResetPasswordExpires.Valid {
		updates["reset_password_expires"] = user.ResetPasswordExpires.Time
	} else {
		updates["reset_password_expires"] = nil
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Deactivate disables the account and frees the email address for reuse.
// The mangled email keeps the unique index satisfied while making the
// original address available for a fresh registration.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID, mangledEmail string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"email":      mangledEmail,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) toModel(u *entities.User) *models.User {
	m := &models.User{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		IsActive:           u.IsActive,
		Phone:              u.Profile.Phone,
		Street:             u.Profile.Street,
		City:               u.Profile.City,
		State:              u.Profile.State,
		PostalCode:         u.Profile.PostalCode,
		Country:            u.Profile.Country,
		Currency:           u.Preferences.Currency,
		EmailNotifications: u.Preferences.EmailNotifications,
		SMSNotifications:   u.Preferences.SMSNotifications,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if u.StripeCustomerID.Valid {
		m.StripeCustomerID = &u.StripeCustomerID.String
	}
	if u.ResetPasswordToken.Valid {
		m.ResetPasswordToken = &u.ResetPasswordToken.String
	}
	if u.ResetPasswordExpires.Valid {
		t := u.ResetPasswordExpires.Time
		m.ResetPasswordExpires = &t
	}
	return m
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		IsActive:     m.IsActive,
		Profile: entities.UserProfile{
			Phone:      m.Phone,
			Street:     m.Street,
			City:       m.City,
			State:      m.State,
			PostalCode: m.PostalCode,
			Country:    m.Country,
		},
		Preferences: entities.UserPreferences{
			Currency:           m.Currency,
			EmailNotifications: m.EmailNotifications,
			SMSNotifications:   m.SMSNotifications,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	u.StripeCustomerID = null.StringFromPtr(m.StripeCustomerID)
	u.ResetPasswordToken = null.StringFromPtr(m.ResetPasswordToken)
	u.ResetPasswordExpires = null.TimeFromPtr(m.ResetPasswordExpires)
	return u
}

package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/repositories"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/pkg/crypto"
	"domain-agent.backend/pkg/jwt"
	"domain-agent.backend/pkg/logger"

	"github.com/google/uuid"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	payments   services.PaymentProcessor
	mailer     services.Mailer
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	payments services.PaymentProcessor,
	mailer services.Mailer,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		payments:   payments,
		mailer:     mailer,
		jwtService: jwtService,
	}
}

// Register creates a new account and returns a signed token. The payment
// customer and the welcome email are both best-effort; the account exists
// even when either of them fails.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("an account with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
		IsActive:     true,
		Preferences: entities.UserPreferences{
			Currency:           "USD",
			EmailNotifications: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if customerID, err := u.payments.CreateCustomer(ctx, user.ID.String(), user.Email, user.Name); err != nil {
		logger.Warn(ctx, "could not create payment customer at signup", zap.Error(err))
	} else {
		user.StripeCustomerID = null.StringFrom(customerID)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("an account with this email already exists")
		}
		return nil, err
	}

	runAsync(func() {
		ctx := context.Background()
		if err := u.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
			logger.Warn(ctx, "failed to send welcome email",
				zap.String("email", user.Email), zap.Error(err))
		}
	})

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, domainerrors.Forbidden("this account has been deactivated")
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: user}, nil
}

// GetCurrentUser returns the authenticated user's record
func (u *AuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's name and contact fields
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Profile != nil {
		user.Profile = *input.Profile
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a one-hour reset token and mails it. Only the
// sha256 of the token is stored; the plaintext goes out in the email. If
// the email cannot be sent the token is cleared again so no orphaned
// token stays valid.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Indistinguishable from success on purpose.
			return nil
		}
		return err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}

	user.ResetPasswordToken = null.StringFrom(crypto.HashToken(token))
	user.ResetPasswordExpires = null.TimeFrom(time.Now().Add(time.Hour))
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := u.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
		logger.Error(ctx, "failed to send password reset email",
			zap.String("email", user.Email), zap.Error(err))
		user.ResetPasswordToken = null.String{}
		user.ResetPasswordExpires = null.Time{}
		if clearErr := u.userRepo.Update(ctx, user); clearErr != nil {
			logger.Error(ctx, "failed to clear reset token after email failure", zap.Error(clearErr))
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByResetToken(ctx, crypto.HashToken(input.Token))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("reset token is invalid or has expired")
		}
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = passwordHash
	user.ResetPasswordToken = null.String{}
	user.ResetPasswordExpires = null.Time{}
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: user}, nil
}

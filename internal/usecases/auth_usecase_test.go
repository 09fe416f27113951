package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/pkg/crypto"
	"domain-agent.backend/pkg/jwt"
)

func runAsyncInline(t *testing.T) {
	t.Helper()
	orig := runAsync
	runAsync = func(fn func()) { fn() }
	t.Cleanup(func() { runAsync = orig })
}

func newAuthFixture() (*AuthUsecase, *MockUserRepository, *MockPaymentProcessor, *MockMailer) {
	userRepo := new(MockUserRepository)
	processor := new(MockPaymentProcessor)
	mailer := new(MockMailer)
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthUsecase(userRepo, processor, mailer, jwtService), userRepo, processor, mailer
}

func activeUser(email, password string) *entities.User {
	hash, _ := crypto.HashPassword(password)
	return &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Jane Doe",
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		IsActive:     true,
	}
}

func TestRegister_Success(t *testing.T) {
	runAsyncInline(t)
	uc, userRepo, processor, mailer := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domainerrors.ErrNotFound)
	processor.On("CreateCustomer", ctx, mock.Anything, "jane@example.com", "Jane Doe").Return("cus_123", nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	mailer.On("SendWelcome", mock.Anything, "jane@example.com", "Jane Doe").Return(nil)

	resp, err := uc.Register(ctx, &entities.RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "cus_123", resp.User.StripeCustomerID.String)
	require.True(t, resp.User.IsActive)
	require.NotEqual(t, "supersecret", resp.User.PasswordHash)
	mailer.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "taken@example.com").Return(activeUser("taken@example.com", "x"), nil)

	_, err := uc.Register(ctx, &entities.RegisterInput{
		Name:     "Jane",
		Email:    "taken@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestRegister_PaymentCustomerFailureIsNotFatal(t *testing.T) {
	runAsyncInline(t)
	uc, userRepo, processor, mailer := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domainerrors.ErrNotFound)
	processor.On("CreateCustomer", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", domainerrors.ErrUpstreamFailure)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	mailer.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := uc.Register(ctx, &entities.RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.False(t, resp.User.StripeCustomerID.Valid)
}

func TestLogin_Success(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	user := activeUser("jane@example.com", "supersecret")
	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	resp, err := uc.Login(ctx, &entities.LoginInput{Email: "jane@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, user.ID, resp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(activeUser("jane@example.com", "supersecret"), nil)

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "jane@example.com", Password: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	user := activeUser("gone@example.com", "supersecret")
	user.IsActive = false
	userRepo.On("GetByEmail", ctx, "gone@example.com").Return(user, nil)

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "gone@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestForgotPassword_StoresHashedTokenAndMailsPlaintext(t *testing.T) {
	uc, userRepo, _, mailer := newAuthFixture()
	ctx := context.Background()

	user := activeUser("jane@example.com", "supersecret")
	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

	var mailedToken string
	mailer.On("SendPasswordReset", ctx, "jane@example.com", "Jane Doe", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { mailedToken = args.String(3) }).
		Return(nil)
	userRepo.On("Update", ctx, user).Return(nil)

	require.NoError(t, uc.ForgotPassword(ctx, "jane@example.com"))
	require.NotEmpty(t, mailedToken)
	// The stored token is the hash of the mailed one, never the plaintext.
	require.Equal(t, crypto.HashToken(mailedToken), user.ResetPasswordToken.String)
	require.True(t, user.ResetPasswordExpires.Valid)
	require.WithinDuration(t, time.Now().Add(time.Hour), user.ResetPasswordExpires.Time, time.Minute)
}

func TestForgotPassword_EmailFailureClearsToken(t *testing.T) {
	uc, userRepo, _, mailer := newAuthFixture()
	ctx := context.Background()

	user := activeUser("jane@example.com", "supersecret")
	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)
	mailer.On("SendPasswordReset", ctx, mock.Anything, mock.Anything, mock.Anything).Return(domainerrors.ErrUpstreamFailure)

	err := uc.ForgotPassword(ctx, "jane@example.com")
	require.Error(t, err)
	require.False(t, user.ResetPasswordToken.Valid)
	require.False(t, user.ResetPasswordExpires.Valid)
	userRepo.AssertNumberOfCalls(t, "Update", 2)
}

func TestForgotPassword_UnknownEmailReportsSuccess(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domainerrors.ErrNotFound)
	require.NoError(t, uc.ForgotPassword(ctx, "nobody@example.com"))
}

func TestResetPassword_Success(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	user := activeUser("jane@example.com", "oldpassword")
	user.ResetPasswordToken = null.StringFrom(crypto.HashToken("plain-token"))
	user.ResetPasswordExpires = null.TimeFrom(time.Now().Add(time.Hour))

	userRepo.On("GetByResetToken", ctx, crypto.HashToken("plain-token")).Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	resp, err := uc.ResetPassword(ctx, &entities.ResetPasswordInput{Token: "plain-token", Password: "newpassword"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.True(t, crypto.CheckPassword("newpassword", user.PasswordHash))
	require.False(t, user.ResetPasswordToken.Valid)
	require.False(t, user.ResetPasswordExpires.Valid)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	userRepo.On("GetByResetToken", ctx, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.ResetPassword(ctx, &entities.ResetPasswordInput{Token: "bogus", Password: "newpassword"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestUpdateProfile(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	user := activeUser("jane@example.com", "supersecret")
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	updated, err := uc.UpdateProfile(ctx, user.ID, &entities.UpdateProfileInput{
		Name:    "Jane Smith",
		Profile: &entities.UserProfile{Country: "US", City: "Portland"},
	})
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", updated.Name)
	require.Equal(t, "Portland", updated.Profile.City)
}

package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/repositories"
)

// UserStats summarizes an account for the dashboard
type UserStats struct {
	DomainsByStatus    map[string]int64        `json:"domainsByStatus"`
	TotalSpent         float64                 `json:"totalSpent"`
	PendingPayments    int64                   `json:"pendingPayments"`
	RecentDomains      []*entities.Domain      `json:"recentDomains"`
	RecentTransactions []*entities.Transaction `json:"recentTransactions"`
}

// UserUsecase handles account management business logic
type UserUsecase struct {
	userRepo   repositories.UserRepository
	domainRepo repositories.DomainRepository
	txRepo     repositories.TransactionRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	domainRepo repositories.DomainRepository,
	txRepo repositories.TransactionRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		domainRepo: domainRepo,
		txRepo:     txRepo,
	}
}

// GetProfile returns the caller's account record
func (u *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdatePreferences updates currency and notification settings
func (u *UserUsecase) UpdatePreferences(ctx context.Context, userID uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Currency != "" {
		user.Preferences.Currency = input.Currency
	}
	if input.Notifications != nil {
		if input.Notifications.Email != nil {
			user.Preferences.EmailNotifications = *input.Notifications.Email
		}
		if input.Notifications.SMS != nil {
			user.Preferences.SMSNotifications = *input.Notifications.SMS
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount soft-deactivates an account. Blocked while the user still
// holds active domains or has payments in flight. The stored email is
// mangled so the address can be registered again.
func (u *UserUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID, input *entities.DeleteAccountInput) error {
	if input.ConfirmDelete != "DELETE" {
		return domainerrors.BadRequest(`account deletion must be confirmed with "DELETE"`)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	activeDomains, err := u.domainRepo.CountByOwnerAndStatuses(ctx, userID, []entities.DomainStatus{
		entities.DomainStatusRegistered,
		entities.DomainStatusPending,
	})
	if err != nil {
		return err
	}
	if activeDomains > 0 {
		return domainerrors.BadRequest("transfer or release your domains before deleting the account")
	}

	pendingTxs, err := u.txRepo.CountByUserAndStatus(ctx, userID, entities.TransactionStatusPending)
	if err != nil {
		return err
	}
	if pendingTxs > 0 {
		return domainerrors.BadRequest("wait for pending payments to settle before deleting the account")
	}

	mangled := fmt.Sprintf("deleted_%d_%s", time.Now().Unix(), user.Email)
	return u.userRepo.Deactivate(ctx, userID, mangled)
}

// GetStats aggregates the caller's domains and spending
func (u *UserUsecase) GetStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	stats := &UserStats{DomainsByStatus: make(map[string]int64)}

	for _, status := range []entities.DomainStatus{
		entities.DomainStatusRegistered,
		entities.DomainStatusPending,
		entities.DomainStatusPaymentCompleted,
		entities.DomainStatusExpired,
		entities.DomainStatusRefunded,
	} {
		count, err := u.domainRepo.CountByOwnerAndStatuses(ctx, userID, []entities.DomainStatus{status})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			stats.DomainsByStatus[string(status)] = count
		}
	}

	completed, _, err := u.txRepo.ListByUser(ctx, userID, entities.TransactionListFilter{
		Status: entities.TransactionStatusCompleted,
		Limit:  100,
	})
	if err != nil {
		return nil, err
	}
	for _, tx := range completed {
		stats.TotalSpent += tx.Amount.Value
	}

	pending, err := u.txRepo.CountByUserAndStatus(ctx, userID, entities.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingPayments = pending

	recentDomains, _, err := u.domainRepo.ListByOwner(ctx, userID, entities.DomainListFilter{Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.RecentDomains = recentDomains

	recentTxs, _, err := u.txRepo.ListByUser(ctx, userID, entities.TransactionListFilter{Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.RecentTransactions = recentTxs

	return stats, nil
}

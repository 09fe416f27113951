package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"domain-agent.backend/internal/domain/entities"
	"domain-agent.backend/internal/domain/repositories"
	"domain-agent.backend/pkg/logger"
)

const expiryBatchSize = 100

// PendingPurchaseExpiryJob releases domains whose purchase was started but
// never paid for. Stale pending rows go back to available so the name can
// be sold again, and their pending transactions are cancelled.
type PendingPurchaseExpiryJob struct {
	domains  repositories.DomainRepository
	txs      repositories.TransactionRepository
	uow      repositories.UnitOfWork
	ttl      time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewPendingPurchaseExpiryJob(
	domains repositories.DomainRepository,
	txs repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	ttl time.Duration,
	interval time.Duration,
) *PendingPurchaseExpiryJob {
	return &PendingPurchaseExpiryJob{
		domains:  domains,
		txs:      txs,
		uow:      uow,
		ttl:      ttl,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *PendingPurchaseExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting pending purchase expiry job",
		zap.Duration("ttl", j.ttl), zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "pending purchase expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "pending purchase expiry job stopped")
			return
		case <-ticker.C:
			j.ProcessStalePurchases(ctx)
		}
	}
}

func (j *PendingPurchaseExpiryJob) Stop() {
	close(j.stop)
}

// ProcessStalePurchases runs one expiry sweep
func (j *PendingPurchaseExpiryJob) ProcessStalePurchases(ctx context.Context) {
	cutoff := time.Now().Add(-j.ttl)
	stale, err := j.domains.ListStalePending(ctx, cutoff, expiryBatchSize)
	if err != nil {
		logger.Error(ctx, "failed to list stale pending purchases", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(stale))
	err = j.uow.Do(ctx, func(ctx context.Context) error {
		for _, domain := range stale {
			domain.Status = entities.DomainStatusAvailable
			domain.OwnerID = null.String{}
			if err := j.domains.Update(ctx, domain); err != nil {
				return err
			}
			ids = append(ids, domain.ID)
		}
		return j.txs.CancelPendingForDomains(ctx, ids)
	})
	if err != nil {
		logger.Error(ctx, "failed to expire stale pending purchases", zap.Error(err))
		return
	}

	logger.Info(ctx, "released stale pending purchases", zap.Int("count", len(ids)))
}

package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// CreateRequest carries data for granting a new credit package.
type CreateRequest struct {
	UserID       string
	Name         string
	CreditsTotal int
	ExpiresAt    time.Time
}

// Ledger serializes credit consumption and refunds per package. Consume and
// Refund lock the package row, so concurrent bookings against the same
// package never break used + remaining = total.
type Ledger interface {
	Create(ctx context.Context, req CreateRequest) (*UserPackage, error)
	GetByID(ctx context.Context, id string) (*UserPackage, error)
	ListByUser(ctx context.Context, userID string) ([]*UserPackage, error)
	// Consume deducts amount credits inside its own transaction.
	Consume(ctx context.Context, packageID string, amount int) (*UserPackage, error)
	// Refund returns amount credits inside its own transaction.
	Refund(ctx context.Context, packageID string, amount int) (*UserPackage, error)
	// WithTx returns a Ledger whose Consume and Refund run on the given
	// transaction instead of opening their own.
	WithTx(q db.Querier) Ledger
}

type ledger struct {
	pool   *pgxpool.Pool
	repo   Repository
	tx     db.Querier // non-nil when bound to an outer transaction
	logger *zap.Logger
	now    func() time.Time
}

func NewLedger(pool *pgxpool.Pool, repo Repository, logger *zap.Logger) Ledger {
	return &ledger{
		pool:   pool,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (l *ledger) WithTx(q db.Querier) Ledger {
	return &ledger{
		pool:   l.pool,
		repo:   l.repo,
		tx:     q,
		logger: l.logger,
		now:    l.now,
	}
}

func (l *ledger) Create(ctx context.Context, req CreateRequest) (*UserPackage, error) {
	if req.CreditsTotal <= 0 {
		return nil, ErrInvalidTotal
	}

	p := &UserPackage{
		UserID:           req.UserID,
		Name:             req.Name,
		CreditsTotal:     req.CreditsTotal,
		CreditsUsed:      0,
		CreditsRemaining: req.CreditsTotal,
		ExpiresAt:        req.ExpiresAt,
	}
	p.Status = ComputeStatus(p.CreditsRemaining, p.ExpiresAt, l.now())

	if err := l.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	l.logger.Info("credit package granted",
		zap.String("package_id", p.ID),
		zap.String("user_id", p.UserID),
		zap.Int("credits_total", p.CreditsTotal),
		zap.Time("expires_at", p.ExpiresAt),
	)
	return p, nil
}

func (l *ledger) GetByID(ctx context.Context, id string) (*UserPackage, error) {
	return l.repo.GetByID(ctx, id)
}

func (l *ledger) ListByUser(ctx context.Context, userID string) ([]*UserPackage, error) {
	return l.repo.ListByUser(ctx, userID)
}

func (l *ledger) Consume(ctx context.Context, packageID string, amount int) (*UserPackage, error) {
	return l.mutate(ctx, packageID, amount, "consume", func(p *UserPackage, now time.Time) error {
		if ComputeStatus(p.CreditsRemaining, p.ExpiresAt, now) == StatusExpired {
			return ErrPackageExpired
		}
		if p.CreditsRemaining < amount {
			return ErrInsufficientCredits
		}
		p.CreditsUsed += amount
		p.CreditsRemaining -= amount
		return nil
	})
}

func (l *ledger) Refund(ctx context.Context, packageID string, amount int) (*UserPackage, error) {
	return l.mutate(ctx, packageID, amount, "refund", func(p *UserPackage, now time.Time) error {
		if amount > p.CreditsUsed {
			return ErrRefundExceedsUsage
		}
		p.CreditsUsed -= amount
		p.CreditsRemaining += amount
		return nil
	})
}

func (l *ledger) mutate(ctx context.Context, packageID string, amount int, op string, apply func(*UserPackage, time.Time) error) (*UserPackage, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	run := func(repo Repository) (*UserPackage, error) {
		p, err := repo.GetByIDForUpdate(ctx, packageID)
		if err != nil {
			return nil, err
		}

		now := l.now()
		if err := apply(p, now); err != nil {
			return nil, err
		}
		p.Status = ComputeStatus(p.CreditsRemaining, p.ExpiresAt, now)

		if err := repo.UpdateCounts(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	var p *UserPackage
	var err error
	if l.tx != nil {
		p, err = run(l.repo.WithTx(l.tx))
	} else {
		tx, txErr := l.pool.Begin(ctx)
		if txErr != nil {
			return nil, fmt.Errorf("begin %s transaction: %w", op, txErr)
		}
		defer tx.Rollback(ctx)

		p, err = run(l.repo.WithTx(tx))
		if err == nil {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				return nil, fmt.Errorf("commit %s transaction: %w", op, commitErr)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("credit package "+op,
		zap.String("package_id", p.ID),
		zap.Int("amount", amount),
		zap.Int("credits_remaining", p.CreditsRemaining),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

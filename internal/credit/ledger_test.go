package credit

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/db"
)

type fakeRepository struct {
	pkg *UserPackage
}

func (f *fakeRepository) Create(ctx context.Context, p *UserPackage) error {
	p.ID = "pkg-1"
	f.pkg = p
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*UserPackage, error) {
	if f.pkg == nil || f.pkg.ID != id {
		return nil, ErrNotFound
	}
	cp := *f.pkg
	return &cp, nil
}

func (f *fakeRepository) GetByIDForUpdate(ctx context.Context, id string) (*UserPackage, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID string) ([]*UserPackage, error) {
	if f.pkg == nil {
		return nil, nil
	}
	return []*UserPackage{f.pkg}, nil
}

func (f *fakeRepository) UpdateCounts(ctx context.Context, p *UserPackage) error {
	if f.pkg == nil || f.pkg.ID != p.ID {
		return ErrNotFound
	}
	cp := *p
	f.pkg = &cp
	return nil
}

func (f *fakeRepository) WithTx(q db.Querier) Repository { return f }

type stubTx struct{}

func (stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func newTestLedger(repo Repository, now time.Time) *ledger {
	return &ledger{
		repo:   repo,
		tx:     stubTx{},
		logger: zap.NewNop(),
		now:    func() time.Time { return now },
	}
}

func TestLedgerConsumeAndRefundRoundTrip(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{pkg: &UserPackage{
		ID:               "pkg-1",
		UserID:           "user-1",
		CreditsTotal:     10,
		CreditsUsed:      0,
		CreditsRemaining: 10,
		ExpiresAt:        now.Add(30 * 24 * time.Hour),
		Status:           StatusActive,
	}}
	l := newTestLedger(repo, now)

	p, err := l.Consume(context.Background(), "pkg-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.CreditsUsed)
	assert.Equal(t, 7, p.CreditsRemaining)
	assert.Equal(t, StatusActive, p.Status)

	p, err = l.Refund(context.Background(), "pkg-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CreditsUsed)
	assert.Equal(t, 9, p.CreditsRemaining)
	assert.Equal(t, 10, p.CreditsUsed+p.CreditsRemaining)
}

func TestLedgerConsumeToDepletion(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{pkg: &UserPackage{
		ID:               "pkg-1",
		CreditsTotal:     2,
		CreditsRemaining: 2,
		ExpiresAt:        now.Add(time.Hour),
		Status:           StatusActive,
	}}
	l := newTestLedger(repo, now)

	p, err := l.Consume(context.Background(), "pkg-1", 2)
	require.NoError(t, err)
	assert.Equal(t, StatusDepleted, p.Status)

	_, err = l.Consume(context.Background(), "pkg-1", 1)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestLedgerConsumeExpiredPackage(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{pkg: &UserPackage{
		ID:               "pkg-1",
		CreditsTotal:     5,
		CreditsRemaining: 5,
		ExpiresAt:        now.Add(-time.Minute),
		Status:           StatusActive,
	}}
	l := newTestLedger(repo, now)

	_, err := l.Consume(context.Background(), "pkg-1", 1)
	assert.ErrorIs(t, err, ErrPackageExpired)
	assert.Equal(t, 5, repo.pkg.CreditsRemaining, "counts untouched on failure")
}

func TestLedgerRefundCappedAtConsumed(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{pkg: &UserPackage{
		ID:               "pkg-1",
		CreditsTotal:     5,
		CreditsUsed:      1,
		CreditsRemaining: 4,
		ExpiresAt:        now.Add(time.Hour),
		Status:           StatusActive,
	}}
	l := newTestLedger(repo, now)

	_, err := l.Refund(context.Background(), "pkg-1", 2)
	assert.ErrorIs(t, err, ErrRefundExceedsUsage)
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	l := newTestLedger(&fakeRepository{}, time.Now())

	_, err := l.Consume(context.Background(), "pkg-1", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.Refund(context.Background(), "pkg-1", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestLedgerCreateValidatesTotal(t *testing.T) {
	l := newTestLedger(&fakeRepository{}, time.Now())

	_, err := l.Create(context.Background(), CreateRequest{UserID: "u", Name: "starter", CreditsTotal: 0})
	assert.ErrorIs(t, err, ErrInvalidTotal)
}

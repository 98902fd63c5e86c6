package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for user credit packages.
type Repository interface {
	Create(ctx context.Context, p *UserPackage) error
	GetByID(ctx context.Context, id string) (*UserPackage, error)
	// GetByIDForUpdate locks the package row for the duration of the
	// enclosing transaction. Call only on a tx-bound repository.
	GetByIDForUpdate(ctx context.Context, id string) (*UserPackage, error)
	ListByUser(ctx context.Context, userID string) ([]*UserPackage, error)
	// UpdateCounts persists the used/remaining counters and status.
	UpdateCounts(ctx context.Context, p *UserPackage) error
	// WithTx returns a Repository bound to the given transaction.
	WithTx(q db.Querier) Repository
}

type pgxRepository struct {
	db db.Querier
}

func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{db: q}
}

func (r *pgxRepository) WithTx(q db.Querier) Repository {
	return &pgxRepository{db: q}
}

const packageColumns = "id, user_id, name, credits_total, credits_used, credits_remaining, expires_at, status, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, p *UserPackage) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.user_packages").
		Columns("user_id", "name", "credits_total", "credits_used", "credits_remaining", "expires_at", "status").
		Values(p.UserID, p.Name, p.CreditsTotal, p.CreditsUsed, p.CreditsRemaining, p.ExpiresAt, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create package query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create package failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*UserPackage, error) {
	return r.getByID(ctx, id, false)
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, id string) (*UserPackage, error) {
	return r.getByID(ctx, id, true)
}

func (r *pgxRepository) getByID(ctx context.Context, id string, forUpdate bool) (*UserPackage, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(packageColumns).
		From("public.user_packages").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get package query failed: %w", err)
	}

	var p UserPackage
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.UserID, &p.Name, &p.CreditsTotal, &p.CreditsUsed,
		&p.CreditsRemaining, &p.ExpiresAt, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get package failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*UserPackage, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(packageColumns).
		From("public.user_packages").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list packages query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages failed: %w", err)
	}
	defer rows.Close()

	var packages []*UserPackage
	for rows.Next() {
		var p UserPackage
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.CreditsTotal, &p.CreditsUsed,
			&p.CreditsRemaining, &p.ExpiresAt, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan package failed: %w", err)
		}
		packages = append(packages, &p)
	}
	return packages, nil
}

func (r *pgxRepository) UpdateCounts(ctx context.Context, p *UserPackage) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.user_packages").
		Set("credits_used", p.CreditsUsed).
		Set("credits_remaining", p.CreditsRemaining).
		Set("status", p.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update package counts query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update package counts failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

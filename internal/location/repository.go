package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for branches.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, int, error)
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	db db.Querier
}

func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{db: q}
}

func (r *pgxRepository) Create(ctx context.Context, loc *Location) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.locations").
		Columns("name", "address", "phone", "active").
		Values(loc.Name, loc.Address, loc.Phone, loc.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create branch query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&loc.ID, &loc.CreatedAt); err != nil {
		return fmt.Errorf("create branch failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Location, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "address", "phone", "active", "created_at").
		From("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get branch query failed: %w", err)
	}

	var l Location
	err = r.db.QueryRow(ctx, query, args...).Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.Active, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get branch failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Location, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "address", "phone", "active", "created_at",
		"count(*) OVER() as total_count",
	).From("public.locations")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": kw},
			squirrel.ILike{"address": kw},
		})
	}
	if filter.Active != nil {
		query = query.Where(squirrel.Eq{"active": *filter.Active})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("name ASC").
		Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list branches query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches failed: %w", err)
	}
	defer rows.Close()

	var locations []*Location
	var total int
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.Active, &l.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan branch failed: %w", err)
		}
		locations = append(locations, &l)
	}
	return locations, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, loc *Location) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.locations").
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("phone", loc.Phone).
		Set("active", loc.Active).
		Where(squirrel.Eq{"id": loc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update branch query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update branch failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete branch query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete branch failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

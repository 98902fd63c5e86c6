package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for vehicles.
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	db db.Querier
}

func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{db: q}
}

func (r *pgxRepository) Create(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.vehicles").
		Columns("location_id", "name", "plate", "transmission", "active").
		Values(v.LocationID, v.Name, v.Plate, v.Transmission, v.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create vehicle query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&v.ID, &v.CreatedAt); err != nil {
		return fmt.Errorf("create vehicle failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "location_id", "name", "plate", "transmission", "active", "created_at").
		From("public.vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vehicle query failed: %w", err)
	}

	var v Vehicle
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.LocationID, &v.Name, &v.Plate, &v.Transmission, &v.Active, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "location_id", "name", "plate", "transmission", "active", "created_at",
		"count(*) OVER() as total_count",
	).From("public.vehicles")

	if filter.LocationID != "" {
		query = query.Where(squirrel.Eq{"location_id": filter.LocationID})
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
		return nil, 0, fmt.Errorf("build list vehicles query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles failed: %w", err)
	}
	defer rows.Close()

	var vehicles []*Vehicle
	var total int
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.LocationID, &v.Name, &v.Plate, &v.Transmission, &v.Active, &v.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan vehicle failed: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.vehicles").
		Set("location_id", v.LocationID).
		Set("name", v.Name).
		Set("plate", v.Plate).
		Set("transmission", v.Transmission).
		Set("active", v.Active).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update vehicle query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update vehicle failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete vehicle query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete vehicle failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

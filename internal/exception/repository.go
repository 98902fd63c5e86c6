package exception

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for schedule exceptions.
type Repository interface {
	Create(ctx context.Context, e *Exception) error
	GetByID(ctx context.Context, id string) (*Exception, error)
	// ListOverlapping returns the instructor's exceptions intersecting
	// the [from, to] date range, ordered by start date.
	ListOverlapping(ctx context.Context, instructorID string, from, to time.Time) ([]*Exception, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*Exception, error)
	Delete(ctx context.Context, id string) error
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

const exceptionColumns = "id, instructor_id, type, start_date, end_date, all_day, start_time::text, end_time::text, reason, created_at"

func (r *pgxRepository) Create(ctx context.Context, e *Exception) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.schedule_exceptions").
		Columns("instructor_id", "type", "start_date", "end_date", "all_day", "start_time", "end_time", "reason").
		Values(e.InstructorID, e.Type, e.StartDate, e.EndDate, e.AllDay, e.StartTime, e.EndTime, e.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create exception query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("create exception failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Exception, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(exceptionColumns).
		From("public.schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get exception query failed: %w", err)
	}

	e, err := scanException(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get exception failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, instructorID string, from, to time.Time) ([]*Exception, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(exceptionColumns).
		From("public.schedule_exceptions").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list overlapping exceptions query failed: %w", err)
	}

	return r.queryMany(ctx, query, args)
}

func (r *pgxRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*Exception, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(exceptionColumns).
		From("public.schedule_exceptions").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list exceptions query failed: %w", err)
	}

	return r.queryMany(ctx, query, args)
}

func (r *pgxRepository) queryMany(ctx context.Context, query string, args []any) ([]*Exception, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exceptions failed: %w", err)
	}
	defer rows.Close()

	var exceptions []*Exception
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exception failed: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	return exceptions, nil
}

func scanException(row pgx.Row) (*Exception, error) {
	var e Exception
	err := row.Scan(
		&e.ID, &e.InstructorID, &e.Type, &e.StartDate, &e.EndDate,
		&e.AllDay, &e.StartTime, &e.EndTime, &e.Reason, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete exception query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete exception failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

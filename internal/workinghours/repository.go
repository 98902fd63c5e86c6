package workinghours

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for working-hours entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
	// HasAnyForInstructor reports whether the instructor already has entries.
	// Used by template apply to detect conflicts without overwrite.
	HasAnyForInstructor(ctx context.Context, instructorID string) (bool, error)
	// ReplaceForInstructor deletes all entries of the instructor and inserts
	// the given ones. Callers run it inside a transaction via WithTx.
	ReplaceForInstructor(ctx context.Context, instructorID string, entries []*Entry) error
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

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.working_hours").
		Columns("instructor_id", "day_of_week", "start_time", "end_time", "is_available").
		Values(e.InstructorID, e.DayOfWeek, e.StartTime, e.EndTime, e.IsAvailable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create working hours query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("create working hours failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "instructor_id", "day_of_week", "start_time::text", "end_time::text", "is_available").
		From("public.working_hours").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get working hours query failed: %w", err)
	}

	var e Entry
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.InstructorID, &e.DayOfWeek, &e.StartTime, &e.EndTime, &e.IsAvailable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get working hours failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "instructor_id", "day_of_week", "start_time::text", "end_time::text", "is_available").
		From("public.working_hours").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list working hours query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list working hours failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.InstructorID, &e.DayOfWeek, &e.StartTime, &e.EndTime, &e.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan working hours failed: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.working_hours").
		Set("day_of_week", e.DayOfWeek).
		Set("start_time", e.StartTime).
		Set("end_time", e.EndTime).
		Set("is_available", e.IsAvailable).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update working hours query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update working hours failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.working_hours").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete working hours query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete working hours failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasAnyForInstructor(ctx context.Context, instructorID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.working_hours").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build has working hours query failed: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check working hours exist failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ReplaceForInstructor(ctx context.Context, instructorID string, entries []*Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	delQuery, delArgs, err := psql.Delete("public.working_hours").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear working hours query failed: %w", err)
	}
	if _, err := r.db.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("clear working hours failed: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	insert := psql.Insert("public.working_hours").
		Columns("instructor_id", "day_of_week", "start_time", "end_time", "is_available")
	for _, e := range entries {
		insert = insert.Values(instructorID, e.DayOfWeek, e.StartTime, e.EndTime, e.IsAvailable)
	}

	insQuery, insArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert working hours query failed: %w", err)
	}
	if _, err := r.db.Exec(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("insert working hours failed: %w", err)
	}
	return nil
}

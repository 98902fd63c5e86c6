package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for schedule templates.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
	// MarkApplied stamps the template as applied from the given date on.
	MarkApplied(ctx context.Context, id string, validFrom, appliedAt time.Time) error
	// GetActiveForDate returns the most recently applied template whose
	// validity window covers the date, or ErrNotFound.
	GetActiveForDate(ctx context.Context, instructorID string, date time.Time) (*Template, error)
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

const templateColumns = "id, instructor_id, name, valid_from, valid_to, applied_at, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, t *Template) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.schedule_templates").
		Columns("instructor_id", "name").
		Values(t.InstructorID, t.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create template query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create template failed: %w", err)
	}

	return r.replaceDays(ctx, t.ID, t.Days)
}

func (r *pgxRepository) replaceDays(ctx context.Context, templateID string, days []Day) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	delQuery, delArgs, err := psql.Delete("public.schedule_template_days").
		Where(squirrel.Eq{"template_id": templateID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear template days query failed: %w", err)
	}
	if _, err := r.db.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("clear template days failed: %w", err)
	}

	if len(days) == 0 {
		return nil
	}

	insert := psql.Insert("public.schedule_template_days").
		Columns("template_id", "day_of_week", "start_time", "end_time")
	for _, d := range days {
		insert = insert.Values(templateID, d.DayOfWeek, d.StartTime, d.EndTime)
	}
	insQuery, insArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert template days query failed: %w", err)
	}
	if _, err := r.db.Exec(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("insert template days failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) loadDays(ctx context.Context, templateID string) ([]Day, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("day_of_week", "start_time::text", "end_time::text").
		From("public.schedule_template_days").
		Where(squirrel.Eq{"template_id": templateID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load template days query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load template days failed: %w", err)
	}
	defer rows.Close()

	var days []Day
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.DayOfWeek, &d.StartTime, &d.EndTime); err != nil {
			return nil, fmt.Errorf("scan template day failed: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(templateColumns).
		From("public.schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get template query failed: %w", err)
	}

	var t Template
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.InstructorID, &t.Name, &t.ValidFrom, &t.ValidTo,
		&t.AppliedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get template failed: %w", err)
	}

	if t.Days, err = r.loadDays(ctx, t.ID); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *pgxRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(templateColumns).
		From("public.schedule_templates").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list templates query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates failed: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(
			&t.ID, &t.InstructorID, &t.Name, &t.ValidFrom, &t.ValidTo,
			&t.AppliedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template failed: %w", err)
		}
		templates = append(templates, &t)
	}

	for _, t := range templates {
		var err error
		if t.Days, err = r.loadDays(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Template) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.schedule_templates").
		Set("name", t.Name).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update template query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update template failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return r.replaceDays(ctx, t.ID, t.Days)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete template query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete template failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) MarkApplied(ctx context.Context, id string, validFrom, appliedAt time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.schedule_templates").
		Set("valid_from", validFrom).
		Set("applied_at", appliedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark applied query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark template applied failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetActiveForDate(ctx context.Context, instructorID string, date time.Time) (*Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(templateColumns).
		From("public.schedule_templates").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.NotEq{"applied_at": nil}).
		Where(squirrel.LtOrEq{"valid_from": date}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_to": nil},
			squirrel.GtOrEq{"valid_to": date},
		}).
		OrderBy("applied_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get active template query failed: %w", err)
	}

	var t Template
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.InstructorID, &t.Name, &t.ValidFrom, &t.ValidTo,
		&t.AppliedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get active template failed: %w", err)
	}

	if t.Days, err = r.loadDays(ctx, t.ID); err != nil {
		return nil, err
	}
	return &t, nil
}

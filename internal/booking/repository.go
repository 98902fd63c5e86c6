package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/drivelane/driving-school-backend/internal/availability"
	"github.com/drivelane/driving-school-backend/internal/db"
)

// Filter narrows booking listings.
type Filter struct {
	InstructorID string
	StudentID    string
	Status       Status
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

// Repository defines data access methods for bookings.
type Repository interface {
	// Create inserts the booking. A concurrent overlapping booking for
	// the same instructor trips the exclusion constraint and surfaces as
	// ErrSlotConflict.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetByIDForUpdate locks the booking row for the enclosing
	// transaction. Call only on a tx-bound repository.
	GetByIDForUpdate(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	// ListBusy returns the occupied ranges for confirmed or in-progress
	// bookings intersecting [from, to).
	ListBusy(ctx context.Context, instructorID string, from, to time.Time) ([]availability.Busy, error)
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

const bookingColumns = "id, instructor_id, student_id, start_time, end_time, duration_minutes, lesson_type, status, vehicle_id, location_id, notes, is_paid, used_credits, package_id, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"instructor_id", "student_id", "start_time", "end_time",
			"duration_minutes", "lesson_type", "status", "vehicle_id",
			"location_id", "notes", "is_paid", "used_credits", "package_id",
		).
		Values(
			b.InstructorID, b.StudentID, b.StartTime, b.EndTime,
			b.DurationMinutes, b.LessonType, b.Status, b.VehicleID,
			b.LocationID, b.Notes, b.IsPaid, b.UsedCredits, b.PackageID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrSlotConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.getByID(ctx, id, false)
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *pgxRepository) getByID(ctx context.Context, id string, forUpdate bool) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(bookingColumns).
		From("public.bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(bookingColumns + ", count(*) OVER() as total_count").
		From("public.bookings")

	if filter.InstructorID != "" {
		builder = builder.Where(squirrel.Eq{"instructor_id": filter.InstructorID})
	}
	if filter.StudentID != "" {
		builder = builder.Where(squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"end_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query, args, err := builder.
		OrderBy("start_time ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.InstructorID, &b.StudentID, &b.StartTime, &b.EndTime,
			&b.DurationMinutes, &b.LessonType, &b.Status, &b.VehicleID,
			&b.LocationID, &b.Notes, &b.IsPaid, &b.UsedCredits, &b.PackageID,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListBusy(ctx context.Context, instructorID string, from, to time.Time) ([]availability.Busy, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("start_time", "end_time").
		From("public.bookings").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"status": []Status{StatusConfirmed, StatusInProgress}}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list busy query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list busy failed: %w", err)
	}
	defer rows.Close()

	var busy []availability.Busy
	for rows.Next() {
		var b availability.Busy
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scan busy range failed: %w", err)
		}
		busy = append(busy, b)
	}
	return busy, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.InstructorID, &b.StudentID, &b.StartTime, &b.EndTime,
		&b.DurationMinutes, &b.LessonType, &b.Status, &b.VehicleID,
		&b.LocationID, &b.Notes, &b.IsPaid, &b.UsedCredits, &b.PackageID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

package event

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/drivelane/driving-school-backend/internal/db"
)

// Repository defines data access methods for booking lifecycle events.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	ListByBooking(ctx context.Context, bookingID string) ([]*Record, error)
}

type pgxRepository struct {
	db db.Querier
}

func NewPgxRepository(q db.Querier) Repository {
	return &pgxRepository{db: q}
}

const eventColumns = "id, booking_id, from_status, to_status, actor, occurred_at, created_at"

func (r *pgxRepository) Create(ctx context.Context, rec *Record) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.booking_events").
		Columns("booking_id", "from_status", "to_status", "actor", "occurred_at").
		Values(rec.BookingID, rec.FromStatus, rec.ToStatus, rec.Actor, rec.OccurredAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create event query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("create event failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByBooking(ctx context.Context, bookingID string) ([]*Record, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(eventColumns).
		From("public.booking_events").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("occurred_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events failed: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.BookingID, &rec.FromStatus, &rec.ToStatus,
			&rec.Actor, &rec.OccurredAt, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event failed: %w", err)
		}
		records = append(records, &rec)
	}
	return records, nil
}

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/availability"
	"github.com/drivelane/driving-school-backend/internal/credit"
	"github.com/drivelane/driving-school-backend/internal/db"
	"github.com/drivelane/driving-school-backend/internal/exception"
	"github.com/drivelane/driving-school-backend/internal/payment"
	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
	"github.com/drivelane/driving-school-backend/internal/template"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

// creditsPerLesson is how many package credits one booking consumes.
const creditsPerLesson = 1

// CreateRequest carries data for a new booking. Exactly one funding source
// is used: PackageID for credit funding, PaymentRef for external payment.
type CreateRequest struct {
	StudentID       string
	InstructorID    string
	Start           time.Time
	DurationMinutes int
	LessonType      LessonType
	PackageID       *string
	PaymentRef      string
	LocationID      *string
	VehicleID       *string
	Notes           string
}

// CancelResult reports what happened to the booking's credits.
type CancelResult struct {
	Booking         *Booking
	CreditsRefunded int
}

// CreditsForfeited reports whether consumed credits stayed consumed, which
// is what a late cancellation of a credit-funded booking does.
func (r *CancelResult) CreditsForfeited() bool {
	return r.Booking != nil && r.Booking.UsedCredits > 0 && r.CreditsRefunded == 0
}

type Service interface {
	// Create books a lesson: re-checks availability, funds it, and
	// inserts the booking, all in one transaction.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// Cancel moves a confirmed booking to cancelled. Credits are refunded
	// only when cancelling earlier than the configured window before start.
	Cancel(ctx context.Context, id, actor string) (*CancelResult, error)
	// CheckIn moves confirmed to in_progress on the lesson day.
	CheckIn(ctx context.Context, id, actor string) (*Booking, error)
	// CheckOut moves in_progress to completed.
	CheckOut(ctx context.Context, id, actor string) (*Booking, error)
	// MarkNoShow moves confirmed to no_show once start has passed. No refund.
	MarkNoShow(ctx context.Context, id, actor string) (*Booking, error)
}

type service struct {
	pool         *pgxpool.Pool
	repo         Repository
	whRepo       workinghours.Repository
	tplRepo      template.Repository
	excRepo      exception.Repository
	availability availability.Service
	ledger       credit.Ledger
	payments     payment.Processor
	sink         EventSink
	logger       *zap.Logger
	cancelWindow time.Duration
	loc          *time.Location
	now          func() time.Time
}

type Config struct {
	Pool           *pgxpool.Pool
	Repo           Repository
	WorkingHours   workinghours.Repository
	Templates      template.Repository
	Exceptions     exception.Repository
	Availability   availability.Service
	Ledger         credit.Ledger
	Payments       payment.Processor
	Sink           EventSink
	Logger         *zap.Logger
	CancelWindow   time.Duration
	BranchTimezone *time.Location
}

func NewService(cfg Config) Service {
	return &service{
		pool:         cfg.Pool,
		repo:         cfg.Repo,
		whRepo:       cfg.WorkingHours,
		tplRepo:      cfg.Templates,
		excRepo:      cfg.Exceptions,
		availability: cfg.Availability,
		ledger:       cfg.Ledger,
		payments:     cfg.Payments,
		sink:         cfg.Sink,
		logger:       cfg.Logger,
		cancelWindow: cfg.CancelWindow,
		loc:          cfg.BranchTimezone,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if !req.LessonType.IsValid() {
		return nil, ErrInvalidLesson
	}
	if req.PackageID == nil && req.PaymentRef == "" {
		return nil, ErrFundingRequired
	}

	start := req.Start.In(s.loc)
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// RangeFree only checks the schedule, not the clock; an elapsed start
	// is never bookable.
	if start.Before(s.now()) {
		return nil, ErrSlotUnavailable
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := s.repo.WithTx(tx)

	// Availability is re-resolved against transaction-visible state so a
	// stale client view cannot slip a booking into a window another
	// transaction just took.
	avail := s.availability.WithSources(
		s.whRepo.WithTx(tx),
		s.tplRepo.WithTx(tx),
		s.excRepo.WithTx(tx),
		txRepo,
	)
	dayCtx, err := avail.DayContextFor(ctx, req.InstructorID, start)
	if err != nil {
		return nil, err
	}
	if !dayCtx.RangeFree(start, end) {
		return nil, ErrSlotUnavailable
	}

	b := &Booking{
		InstructorID:    req.InstructorID,
		StudentID:       req.StudentID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: req.DurationMinutes,
		LessonType:      req.LessonType,
		Status:          StatusConfirmed,
		VehicleID:       req.VehicleID,
		LocationID:      req.LocationID,
		Notes:           req.Notes,
	}

	if req.PackageID != nil {
		if _, err := s.ledger.WithTx(tx).Consume(ctx, *req.PackageID, creditsPerLesson); err != nil {
			return nil, err
		}
		b.PackageID = req.PackageID
		b.UsedCredits = creditsPerLesson
		b.IsPaid = true
	} else {
		if err := s.payments.Charge(ctx, req.PaymentRef, creditsPerLesson); err != nil {
			return nil, err
		}
		b.IsPaid = true
	}

	// A losing race trips the instructor time-range exclusion constraint
	// here and rolls back the consumed credit with the transaction.
	if err := txRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking transaction: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("instructor_id", b.InstructorID),
		zap.String("student_id", b.StudentID),
		zap.Time("start", b.StartTime),
		zap.Int("duration_minutes", b.DurationMinutes),
		zap.String("lesson_type", string(b.LessonType)),
	)
	s.sink.Publish(Event{
		BookingID:  b.ID,
		ToStatus:   StatusConfirmed,
		Actor:      req.StudentID,
		OccurredAt: s.now(),
	})
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// CreditsToRefund returns how many credits a cancellation at the given
// moment gives back. Cancelling at or inside the window before start
// forfeits the credits; only credit-funded bookings refund.
func CreditsToRefund(b *Booking, now time.Time, window time.Duration) int {
	if b.PackageID == nil || b.UsedCredits == 0 {
		return 0
	}
	if !now.Before(b.StartTime.Add(-window)) {
		return 0
	}
	return b.UsedCredits
}

func (s *service) Cancel(ctx context.Context, id, actor string) (*CancelResult, error) {
	var refunded int
	b, err := s.transition(ctx, id, actor, StatusCancelled, func(ctx context.Context, q db.Querier, b *Booking) error {
		amount := CreditsToRefund(b, s.now(), s.cancelWindow)
		if amount > 0 {
			if _, err := s.ledger.WithTx(q).Refund(ctx, *b.PackageID, amount); err != nil {
				return err
			}
			refunded = amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", b.ID),
		zap.String("actor", actor),
		zap.Int("credits_refunded", refunded),
	)
	return &CancelResult{Booking: b, CreditsRefunded: refunded}, nil
}

func (s *service) CheckIn(ctx context.Context, id, actor string) (*Booking, error) {
	return s.transition(ctx, id, actor, StatusInProgress, func(ctx context.Context, q db.Querier, b *Booking) error {
		if !clock.SameDay(b.StartTime.In(s.loc), s.now().In(s.loc)) {
			return ErrNotCheckInDay
		}
		return nil
	})
}

func (s *service) CheckOut(ctx context.Context, id, actor string) (*Booking, error) {
	return s.transition(ctx, id, actor, StatusCompleted, nil)
}

func (s *service) MarkNoShow(ctx context.Context, id, actor string) (*Booking, error) {
	return s.transition(ctx, id, actor, StatusNoShow, func(ctx context.Context, q db.Querier, b *Booking) error {
		if s.now().Before(b.StartTime) {
			return ErrNotStartedYet
		}
		return nil
	})
}

// transition locks the booking, validates the status change plus any extra
// guard, applies it, and commits. The event is published after commit.
func (s *service) transition(ctx context.Context, id, actor string, to Status, guard func(context.Context, db.Querier, *Booking) error) (*Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transition transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := s.repo.WithTx(tx)
	b, err := txRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if !CanTransition(from, to) {
		return nil, ErrInvalidStateTransition
	}
	if guard != nil {
		if err := guard(ctx, tx, b); err != nil {
			return nil, err
		}
	}

	if err := Transition(b, to); err != nil {
		return nil, err
	}
	if err := txRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transition transaction: %w", err)
	}

	s.sink.Publish(Event{
		BookingID:  b.ID,
		FromStatus: from,
		ToStatus:   to,
		Actor:      actor,
		OccurredAt: s.now(),
	})
	return b, nil
}

package exception

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
)

// CreateRequest carries data for a new schedule exception.
type CreateRequest struct {
	InstructorID string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	AllDay       bool
	StartTime    *string
	EndTime      *string
	Reason       string
	// AllowPast skips the past-start-date check for backfilling
	// historical records.
	AllowPast bool
}

// ListResult partitions exceptions for display. The split carries no
// business meaning; the resolver always sees all of them.
type ListResult struct {
	Current []*Exception // endDate >= today
	Past    []*Exception
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Exception, error)
	GetByID(ctx context.Context, id string) (*Exception, error)
	List(ctx context.Context, instructorID string) (*ListResult, error)
	// Delete removes the exception. Bookings made while it existed are
	// untouched; only future availability resolution changes.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Exception, error) {
	e := &Exception{
		InstructorID: req.InstructorID,
		Type:         req.Type,
		StartDate:    clock.DayStart(req.StartDate),
		EndDate:      clock.DayStart(req.EndDate),
		AllDay:       req.AllDay,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       req.Reason,
	}

	if err := e.Validate(s.now(), req.AllowPast); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("schedule exception created",
		zap.String("exception_id", e.ID),
		zap.String("instructor_id", e.InstructorID),
		zap.String("type", string(e.Type)),
		zap.Time("start_date", e.StartDate),
		zap.Time("end_date", e.EndDate),
		zap.Bool("all_day", e.AllDay),
	)
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Exception, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, instructorID string) (*ListResult, error) {
	all, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	today := clock.DayStart(s.now())
	result := &ListResult{}
	for _, e := range all {
		if e.EndDate.Before(today) {
			result.Past = append(result.Past, e)
		} else {
			result.Current = append(result.Current, e)
		}
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("schedule exception deleted",
		zap.String("exception_id", e.ID),
		zap.String("instructor_id", e.InstructorID),
	)
	return nil
}

package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/pkg/clock"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

// CreateRequest carries data for a new template draft.
type CreateRequest struct {
	InstructorID string
	Name         string
	Days         []Day
}

// UpdateRequest carries data for editing a draft.
type UpdateRequest struct {
	Name *string
	Days []Day // nil keeps the current pattern
}

// ApplyRequest materializes a template into working-hours rows.
type ApplyRequest struct {
	TemplateID        string
	EffectiveFrom     time.Time
	OverwriteExisting bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Template, error)
	GetByID(ctx context.Context, id string) (*Template, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*Template, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Template, error)
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, req ApplyRequest) (*Template, error)
}

type service struct {
	pool   *pgxpool.Pool
	repo   Repository
	whRepo workinghours.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(pool *pgxpool.Pool, repo Repository, whRepo workinghours.Repository, logger *zap.Logger) Service {
	return &service{
		pool:   pool,
		repo:   repo,
		whRepo: whRepo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Template, error) {
	t := &Template{
		InstructorID: req.InstructorID,
		Name:         req.Name,
		Days:         req.Days,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Template, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByInstructor(ctx context.Context, instructorID string) ([]*Template, error) {
	return s.repo.ListByInstructor(ctx, instructorID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Template, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsApplied() {
		return nil, ErrImmutable
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Days != nil {
		t.Days = req.Days
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.IsApplied() {
		return ErrImmutable
	}
	return s.repo.Delete(ctx, id)
}

// Apply writes the template's pattern into the instructor's working-hours
// rows and stamps the template as applied. The replace and the stamp commit
// together.
func (s *service) Apply(ctx context.Context, req ApplyRequest) (*Template, error) {
	t, err := s.repo.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin apply transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	whRepo := s.whRepo.WithTx(tx)

	if err := checkApplyConflict(ctx, whRepo, t.InstructorID, req.OverwriteExisting); err != nil {
		return nil, err
	}

	entries := make([]*workinghours.Entry, 0, len(t.Days))
	for _, d := range t.Days {
		entries = append(entries, &workinghours.Entry{
			InstructorID: t.InstructorID,
			DayOfWeek:    d.DayOfWeek,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			IsAvailable:  true,
		})
	}

	if err := whRepo.ReplaceForInstructor(ctx, t.InstructorID, entries); err != nil {
		return nil, err
	}

	now := s.now()
	effective := clock.DayStart(req.EffectiveFrom)
	if err := s.repo.WithTx(tx).MarkApplied(ctx, t.ID, effective, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit apply transaction: %w", err)
	}

	t.ValidFrom = &effective
	t.AppliedAt = &now

	s.logger.Info("schedule template applied",
		zap.String("template_id", t.ID),
		zap.String("instructor_id", t.InstructorID),
		zap.Time("effective_from", effective),
		zap.Int("ranges", len(t.Days)),
		zap.Bool("overwrite", req.OverwriteExisting),
	)
	return t, nil
}

// checkApplyConflict fails with ErrApplyConflict when the instructor already
// has working-hours rows and overwriting was not requested.
func checkApplyConflict(ctx context.Context, whRepo workinghours.Repository, instructorID string, overwrite bool) error {
	if overwrite {
		return nil
	}
	exists, err := whRepo.HasAnyForInstructor(ctx, instructorID)
	if err != nil {
		return err
	}
	if exists {
		return ErrApplyConflict
	}
	return nil
}

// IsNotFound reports whether err is the missing-template error. Convenience
// for callers that branch on it.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

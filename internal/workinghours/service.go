package workinghours

import (
	"context"
)

// CreateRequest carries data for a new working-hours entry.
type CreateRequest struct {
	InstructorID string
	DayOfWeek    int
	StartTime    string
	EndTime      string
	IsAvailable  bool
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	DayOfWeek   *int
	StartTime   *string
	EndTime     *string
	IsAvailable *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*Entry, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	e := &Entry{
		InstructorID: req.InstructorID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsAvailable:  req.IsAvailable,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByInstructor(ctx context.Context, instructorID string) ([]*Entry, error) {
	return s.repo.ListByInstructor(ctx, instructorID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		e.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if req.IsAvailable != nil {
		e.IsAvailable = *req.IsAvailable
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

package location

import (
	"context"
	"strings"
)

// CreateRequest carries data to create a branch.
type CreateRequest struct {
	Name    string
	Address string
	Phone   string
	Active  bool
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name    *string
	Address *string
	Phone   *string
	Active  *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Location, error)
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Location, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Location, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	loc := &Location{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
		Active:  req.Active,
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Location, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		loc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Active != nil {
		loc.Active = *req.Active
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

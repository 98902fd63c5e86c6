package vehicle

import (
	"context"
	"strings"

	"github.com/drivelane/driving-school-backend/internal/location"
)

// CreateRequest carries data to register a vehicle.
type CreateRequest struct {
	LocationID   string
	Name         string
	Plate        string
	Transmission Transmission
	Active       bool
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	LocationID   *string
	Name         *string
	Plate        *string
	Transmission *Transmission
	Active       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	locService location.Service
}

func NewService(repo Repository, locService location.Service) Service {
	return &service{repo: repo, locService: locService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !req.Transmission.IsValid() {
		return nil, ErrInvalidTransmission
	}

	// Verify the branch exists.
	if _, err := s.locService.GetByID(ctx, req.LocationID); err != nil {
		return nil, err
	}

	v := &Vehicle{
		LocationID:   req.LocationID,
		Name:         strings.TrimSpace(req.Name),
		Plate:        req.Plate,
		Transmission: req.Transmission,
		Active:       req.Active,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LocationID != nil {
		if _, err := s.locService.GetByID(ctx, *req.LocationID); err != nil {
			return nil, err
		}
		v.LocationID = *req.LocationID
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.Plate != nil {
		v.Plate = *req.Plate
	}
	if req.Transmission != nil {
		if !req.Transmission.IsValid() {
			return nil, ErrInvalidTransmission
		}
		v.Transmission = *req.Transmission
	}
	if req.Active != nil {
		v.Active = *req.Active
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

package area

import (
	"context"
	"errors"
)

var ErrInvalidCapacity = errors.New("capacity must be at least 1")

type Service interface {
	CreateArea(ctx context.Context, req CreateAreaRequest) (*Area, error)
	GetAllAreas(ctx context.Context, includeInactive bool) ([]Area, error)
	GetAreaByID(ctx context.Context, id int) (*Area, error)
	UpdateArea(ctx context.Context, id int, req UpdateAreaRequest) (*Area, error)
	DeactivateArea(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateArea(ctx context.Context, req CreateAreaRequest) (*Area, error) {
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return s.repo.CreateArea(ctx, req.Name, req.Capacity, req.IsExclusive)
}

func (s *service) GetAllAreas(ctx context.Context, includeInactive bool) ([]Area, error) {
	return s.repo.GetAllAreas(ctx, includeInactive)
}

func (s *service) GetAreaByID(ctx context.Context, id int) (*Area, error) {
	area, err := s.repo.GetAreaByID(ctx, id)
	if err != nil {
		return nil, ErrAreaNotFound
	}
	return area, nil
}

func (s *service) UpdateArea(ctx context.Context, id int, req UpdateAreaRequest) (*Area, error) {
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	area, err := s.repo.UpdateArea(ctx, id, req.Name, req.Capacity, req.IsExclusive)
	if err != nil {
		return nil, ErrAreaNotFound
	}
	return area, nil
}

func (s *service) DeactivateArea(ctx context.Context, id int) error {
	return s.repo.DeactivateArea(ctx, id)
}

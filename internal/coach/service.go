package coach

import (
	"context"
)

type Service interface {
	CreateCoach(ctx context.Context, req CreateCoachRequest) (*Coach, error)
	GetAllCoaches(ctx context.Context, includeInactive bool) ([]Coach, error)
	GetCoachByID(ctx context.Context, id int) (*Coach, error)
	UpdateCoach(ctx context.Context, id int, req UpdateCoachRequest) (*Coach, error)
	DeactivateCoach(ctx context.Context, id int) error
	QuoteFee(ctx context.Context, coachID int, basePriceCents int64, guestCount int) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateCoach(ctx context.Context, req CreateCoachRequest) (*Coach, error) {
	return s.repo.CreateCoach(ctx, req.Name, req.Email, req.FeeType, req.FeeValue, req.LinkedStaffID)
}

func (s *service) GetAllCoaches(ctx context.Context, includeInactive bool) ([]Coach, error) {
	return s.repo.GetAllCoaches(ctx, includeInactive)
}

func (s *service) GetCoachByID(ctx context.Context, id int) (*Coach, error) {
	coach, err := s.repo.GetCoachByID(ctx, id)
	if err != nil {
		return nil, ErrCoachNotFound
	}
	return coach, nil
}

func (s *service) UpdateCoach(ctx context.Context, id int, req UpdateCoachRequest) (*Coach, error) {
	coach, err := s.repo.UpdateCoach(ctx, id, req.Name, req.Email, req.FeeType, req.FeeValue)
	if err != nil {
		return nil, ErrCoachNotFound
	}
	return coach, nil
}

func (s *service) DeactivateCoach(ctx context.Context, id int) error {
	return s.repo.DeactivateCoach(ctx, id)
}

func (s *service) QuoteFee(ctx context.Context, coachID int, basePriceCents int64, guestCount int) (int64, error) {
	coach, err := s.repo.GetCoachByID(ctx, coachID)
	if err != nil {
		return 0, ErrCoachNotFound
	}
	return CalculateFee(coach, basePriceCents, guestCount), nil
}

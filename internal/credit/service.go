package credit

import (
	"context"
	"errors"
	"time"

	"github.com/ricore77995/strikehouse-sub000/internal/metrics"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientCredit = errors.New("insufficient credit balance")
)

type Service interface {
	Grant(ctx context.Context, coachID, amount int, reason Reason, rentalID *int, expiresAt *time.Time) (*Entry, error)
	Consume(ctx context.Context, coachID, amount int, rentalID *int) (*Entry, error)
	Adjust(ctx context.Context, coachID, delta int, note string) (*Entry, error)
	Balance(ctx context.Context, coachID int, includeExpired bool) (int, error)
	ListEntries(ctx context.Context, coachID int, limit, offset int) ([]Entry, error)
	Recompute(ctx context.Context, coachID int) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Grant(ctx context.Context, coachID, amount int, reason Reason, rentalID *int, expiresAt *time.Time) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry, err := s.repo.AddEntry(ctx, coachID, amount, reason, rentalID, "", expiresAt)
	if err != nil {
		return nil, err
	}

	metrics.RecordCoachCredit(string(reason))
	return entry, nil
}

// Consume spends credits. The balance guard lives here, not in storage:
// the ledger will accept a negative-producing insert if a caller skips this
// path, which is the documented non-guarantee of the data model.
func (s *service) Consume(ctx context.Context, coachID, amount int, rentalID *int) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := s.repo.Balance(ctx, coachID, false)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientCredit
	}

	entry, err := s.repo.AddEntry(ctx, coachID, -amount, ReasonUsed, rentalID, "", nil)
	if err != nil {
		return nil, err
	}

	metrics.RecordCoachCredit(string(ReasonUsed))
	return entry, nil
}

// Adjust is the admin correction tool. No floor at zero: admins may drive a
// balance negative on purpose.
func (s *service) Adjust(ctx context.Context, coachID, delta int, note string) (*Entry, error) {
	if delta == 0 {
		return nil, ErrInvalidAmount
	}

	entry, err := s.repo.AddEntry(ctx, coachID, delta, ReasonAdjustment, nil, note, nil)
	if err != nil {
		return nil, err
	}

	metrics.RecordCoachCredit(string(ReasonAdjustment))
	return entry, nil
}

func (s *service) Balance(ctx context.Context, coachID int, includeExpired bool) (int, error) {
	return s.repo.Balance(ctx, coachID, includeExpired)
}

func (s *service) ListEntries(ctx context.Context, coachID int, limit, offset int) ([]Entry, error) {
	return s.repo.ListEntries(ctx, coachID, limit, offset)
}

func (s *service) Recompute(ctx context.Context, coachID int) (int, error) {
	return s.repo.RecomputeBalance(ctx, coachID)
}

package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/ricore77995/strikehouse-sub000/internal/area"
	"github.com/ricore77995/strikehouse-sub000/internal/logger"
	"github.com/ricore77995/strikehouse-sub000/internal/member"
	"github.com/ricore77995/strikehouse-sub000/internal/metrics"
	"github.com/ricore77995/strikehouse-sub000/internal/rental"
)

type Service interface {
	CheckInMember(ctx context.Context, memberID, staffID int, now time.Time) (*Decision, error)
	CheckInGuest(ctx context.Context, rentalID int, guestName string, staffID int, now time.Time) (*Decision, error)
	ListRecords(ctx context.Context, limit, offset int) ([]CheckInRecord, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	rentalRepo rental.Repository
	areaRepo   area.Repository
}

func NewService(repo Repository, memberRepo member.Repository, rentalRepo rental.Repository, areaRepo area.Repository) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		rentalRepo: rentalRepo,
		areaRepo:   areaRepo,
	}
}

// accessExpired treats the expiry date as valid through its whole day, so
// a daily pass bought this morning still opens the door tonight.
func accessExpired(m *member.Member, now time.Time) bool {
	if m.AccessType != member.AccessSubscription && m.AccessType != member.AccessDailyPass {
		return false
	}
	if m.AccessExpiresAt == nil {
		return false
	}

	exp := *m.AccessExpiresAt
	endOfDay := time.Date(exp.Year(), exp.Month(), exp.Day(), 23, 59, 59, 0, now.Location())
	return endOfDay.Before(now)
}

// blockReason runs the member rules in order; first failing rule wins.
// The exclusive-area rule blocks facility-wide: any scheduled rental in
// any exclusive area covering now stops every member at the door.
func (s *service) blockReason(ctx context.Context, m *member.Member, now time.Time) (string, error) {
	if m.Status != member.StatusActivo {
		return ReasonStatusPrefix + string(m.Status), nil
	}

	if accessExpired(m, now) {
		return ReasonExpired, nil
	}

	if m.AccessType == member.AccessCredits && m.CreditsRemaining <= 0 {
		return ReasonNoCredits, nil
	}

	exclusive, err := s.repo.ExclusiveRentalActive(ctx, now)
	if err != nil {
		return "", err
	}
	if exclusive {
		return ReasonAreaExclusive, nil
	}

	return "", nil
}

func (s *service) CheckInMember(ctx context.Context, memberID, staffID int, now time.Time) (*Decision, error) {
	m, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	reason, err := s.blockReason(ctx, m, now)
	if err != nil {
		return nil, err
	}

	params := RecordParams{
		Type:        TypeMember,
		MemberID:    &m.ID,
		CheckedInBy: staffID,
		CheckedInAt: now,
	}

	if reason == "" {
		params.Result = ResultAllowed
		params.DecrementCredit = m.AccessType == member.AccessCredits

		record, err := s.repo.Record(ctx, params)
		if err == nil {
			metrics.RecordCheckIn(string(TypeMember), string(ResultAllowed))
			return &Decision{Record: record, Result: ResultAllowed}, nil
		}
		if !errors.Is(err, ErrNoCredits) {
			return nil, err
		}

		// Lost the race for the last credit: the ALLOWED write rolled
		// back, record the block instead.
		logger.Debug("member check-in lost last credit race", "member_id", m.ID)
		reason = ReasonNoCredits
	}

	params.Result = ResultBlocked
	params.Reason = &reason
	params.DecrementCredit = false

	record, err := s.repo.Record(ctx, params)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn(string(TypeMember), string(ResultBlocked))
	return &Decision{Record: record, Result: ResultBlocked, Reason: reason}, nil
}

func (s *service) CheckInGuest(ctx context.Context, rentalID int, guestName string, staffID int, now time.Time) (*Decision, error) {
	params := RecordParams{
		Type:        TypeGuest,
		GuestName:   &guestName,
		CheckedInBy: staffID,
		CheckedInAt: now,
	}

	rent, err := s.rentalRepo.GetRentalByID(ctx, rentalID)
	if err != nil {
		if !errors.Is(err, rental.ErrRentalNotFound) {
			return nil, err
		}
		// Audit is unconditional, but there is no rental row to
		// reference.
		return s.recordGuestBlock(ctx, params, ReasonRentalNotFound)
	}

	params.RentalID = &rent.ID

	// Guests attend the rental itself, so the window is closed on both
	// ends: arriving exactly at end time still counts.
	inWindow := !now.Before(rent.StartTime) && !now.After(rent.EndTime)
	if rent.Status != rental.StatusScheduled || !inWindow {
		return s.recordGuestBlock(ctx, params, ReasonRentalNotActive)
	}

	params.Result = ResultAllowed
	params.IncrementGuest = true

	record, err := s.repo.Record(ctx, params)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn(string(TypeGuest), string(ResultAllowed))

	// Over-capacity is a warning for the front desk, never a block.
	warning := false
	if a, err := s.areaRepo.GetAreaByID(ctx, rent.AreaID); err == nil {
		warning = rent.GuestCount+1 > a.Capacity
	}

	return &Decision{Record: record, Result: ResultAllowed, CapacityWarning: warning}, nil
}

func (s *service) recordGuestBlock(ctx context.Context, params RecordParams, reason string) (*Decision, error) {
	params.Result = ResultBlocked
	params.Reason = &reason

	record, err := s.repo.Record(ctx, params)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn(string(TypeGuest), string(ResultBlocked))
	return &Decision{Record: record, Result: ResultBlocked, Reason: reason}, nil
}

func (s *service) ListRecords(ctx context.Context, limit, offset int) ([]CheckInRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListRecords(ctx, limit, offset)
}

package rental

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ricore77995/strikehouse-sub000/internal/area"
	"github.com/ricore77995/strikehouse-sub000/internal/coach"
	"github.com/ricore77995/strikehouse-sub000/internal/credit"
	"github.com/ricore77995/strikehouse-sub000/internal/email"
	"github.com/ricore77995/strikehouse-sub000/internal/logger"
	"github.com/ricore77995/strikehouse-sub000/internal/metrics"
)

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidDate      = errors.New("invalid date or time format")
	ErrAreaInactive     = errors.New("area is not active")
	ErrCoachInactive    = errors.New("coach is not active")
)

// cancellationCreditSessions is minted per qualifying cancellation; credits
// are whole sessions, not cents.
const cancellationCreditSessions = 1

type Service interface {
	CreateRental(ctx context.Context, req CreateRentalRequest, createdBy int) (*Rental, *SeriesResult, error)
	GetRental(ctx context.Context, id int) (*Rental, error)
	ListByArea(ctx context.Context, areaID int, date string) ([]Rental, error)
	ListByCoach(ctx context.Context, coachID int) ([]RentalWithDetails, error)
	ListBySeries(ctx context.Context, seriesID string) ([]Rental, error)
	CancelRental(ctx context.Context, rentalID, actorID int, actorRole string, now time.Time) (*CancelResult, error)
	CancelSeries(ctx context.Context, seriesID string, actorID int, actorRole string, now time.Time) ([]CancelResult, error)
	CompleteRental(ctx context.Context, rentalID int) (*Rental, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	rentalRepo   Repository
	areaRepo     area.Repository
	coachRepo    coach.Repository
	emailService *email.Service

	coachNoticeHours int
	adminNoticeHours int
}

func NewService(rentalRepo Repository, areaRepo area.Repository, coachRepo coach.Repository, emailService *email.Service, coachNoticeHours, adminNoticeHours int) Service {
	if coachNoticeHours <= 0 {
		coachNoticeHours = DefaultCoachNoticeHours
	}
	if adminNoticeHours <= 0 {
		adminNoticeHours = DefaultAdminNoticeHours
	}
	return &service{
		rentalRepo:       rentalRepo,
		areaRepo:         areaRepo,
		coachRepo:        coachRepo,
		emailService:     emailService,
		coachNoticeHours: coachNoticeHours,
		adminNoticeHours: adminNoticeHours,
	}
}

func parseWindow(date, start, end string) (day, startAt, endAt time.Time, err error) {
	day, err = time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidDate
	}

	startClock, err := time.Parse("15:04", start)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidDate
	}

	endClock, err := time.Parse("15:04", end)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidDate
	}

	startAt = time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), 0, 0, time.Local)
	endAt = time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), 0, 0, time.Local)
	return day, startAt, endAt, nil
}

func (s *service) CreateRental(ctx context.Context, req CreateRentalRequest, createdBy int) (*Rental, *SeriesResult, error) {
	day, startAt, endAt, err := parseWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}

	// Strict: zero-duration and inverted windows are both rejected.
	if !endAt.After(startAt) {
		return nil, nil, ErrInvalidTimeRange
	}

	a, err := s.areaRepo.GetAreaByID(ctx, req.AreaID)
	if err != nil {
		return nil, nil, area.ErrAreaNotFound
	}
	if !a.Active {
		return nil, nil, ErrAreaInactive
	}

	c, err := s.coachRepo.GetCoachByID(ctx, req.CoachID)
	if err != nil {
		return nil, nil, coach.ErrCoachNotFound
	}
	if !c.Active {
		return nil, nil, ErrCoachInactive
	}

	fee := coach.CalculateFee(c, req.BasePriceCents, req.GuestCount)

	params := CreateParams{
		AreaID:          req.AreaID,
		CoachID:         req.CoachID,
		RentalDate:      day,
		StartTime:       startAt,
		EndTime:         endAt,
		FeeChargedCents: fee,
		GuestCount:      req.GuestCount,
		CreatedBy:       createdBy,
	}

	if req.Recurrence == nil {
		rental, err := s.rentalRepo.CreateRental(ctx, params)
		if err != nil {
			if errors.Is(err, ErrSlotConflict) {
				metrics.RecordRentalConflict()
			}
			return nil, nil, err
		}

		metrics.RecordRentalCreated(false)
		s.notifyConfirmation(ctx, c, a, rental)
		return rental, nil, nil
	}

	// Recurring: each occurrence validates and inserts on its own, so a
	// conflict on one fails only that occurrence. The caller gets both
	// lists.
	seriesID := uuid.NewString()
	result := &SeriesResult{SeriesID: seriesID}

	for i := 0; i < req.Recurrence.Occurrences; i++ {
		offset := i * req.Recurrence.IntervalDays
		occ := params
		occ.RentalDate = day.AddDate(0, 0, offset)
		occ.StartTime = startAt.AddDate(0, 0, offset)
		occ.EndTime = endAt.AddDate(0, 0, offset)
		occ.IsRecurring = true
		occ.SeriesID = &seriesID

		rental, err := s.rentalRepo.CreateRental(ctx, occ)
		if err != nil {
			if errors.Is(err, ErrSlotConflict) {
				metrics.RecordRentalConflict()
			}
			result.Failed = append(result.Failed, OccurrenceFailure{
				Date:  occ.RentalDate.Format("2006-01-02"),
				Error: err.Error(),
			})
			continue
		}

		metrics.RecordRentalCreated(true)
		result.Created = append(result.Created, *rental)
	}

	if len(result.Created) > 0 {
		s.notifyConfirmation(ctx, c, a, &result.Created[0])
	}

	return nil, result, nil
}

func (s *service) GetRental(ctx context.Context, id int) (*Rental, error) {
	return s.rentalRepo.GetRentalByID(ctx, id)
}

func (s *service) ListByArea(ctx context.Context, areaID int, date string) ([]Rental, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.rentalRepo.ListByArea(ctx, areaID, day)
}

func (s *service) ListByCoach(ctx context.Context, coachID int) ([]RentalWithDetails, error) {
	return s.rentalRepo.ListByCoach(ctx, coachID)
}

func (s *service) ListBySeries(ctx context.Context, seriesID string) ([]Rental, error) {
	return s.rentalRepo.ListBySeries(ctx, seriesID)
}

// noticeHours resolves the credit-eligibility threshold per actor role:
// admin-forced cancellations need more notice than staff cancelling on a
// coach's behalf.
func (s *service) noticeHours(actorRole string) float64 {
	if actorRole == "admin" {
		return float64(s.adminNoticeHours)
	}
	return float64(s.coachNoticeHours)
}

func (s *service) CancelRental(ctx context.Context, rentalID, actorID int, actorRole string, now time.Time) (*CancelResult, error) {
	rental, err := s.rentalRepo.GetRentalByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status != StatusScheduled {
		return nil, ErrAlreadyTerminal
	}

	var grant *CreditGrant
	hoursUntilStart := rental.StartTime.Sub(now).Hours()
	credited := hoursUntilStart >= s.noticeHours(actorRole) && rental.FeeChargedCents > 0
	if credited {
		grant = &CreditGrant{
			Amount:    cancellationCreditSessions,
			ExpiresAt: now.AddDate(0, 0, credit.CancellationCreditTTLDays),
		}
	}

	cancelled, err := s.rentalRepo.CancelRental(ctx, rentalID, actorID, now, grant)
	if err != nil {
		return nil, err
	}

	metrics.RecordRentalCancellation(credited)
	if credited {
		metrics.RecordCoachCredit(string(credit.ReasonCancellation))
	}
	s.notifyCancellation(ctx, cancelled, credited)

	return &CancelResult{Rental: cancelled, Credited: credited}, nil
}

func (s *service) CancelSeries(ctx context.Context, seriesID string, actorID int, actorRole string, now time.Time) ([]CancelResult, error) {
	scheduled, err := s.rentalRepo.ListScheduledBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if len(scheduled) == 0 {
		return nil, ErrRentalNotFound
	}

	// Series members have independent lifecycles: each cancellation
	// applies the credit policy on its own.
	results := make([]CancelResult, 0, len(scheduled))
	for _, r := range scheduled {
		res, err := s.CancelRental(ctx, r.ID, actorID, actorRole, now)
		if err != nil {
			logger.Error("series cancellation skipped occurrence", "rental_id", r.ID, "error", err)
			continue
		}
		results = append(results, *res)
	}

	return results, nil
}

func (s *service) CompleteRental(ctx context.Context, rentalID int) (*Rental, error) {
	return s.rentalRepo.CompleteRental(ctx, rentalID)
}

func (s *service) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	return s.rentalRepo.CompleteElapsed(ctx, now)
}

// Notifications are best-effort and must never block or fail the booking
// transaction; errors are logged and dropped.
func (s *service) notifyConfirmation(ctx context.Context, c *coach.Coach, a *area.Area, rental *Rental) {
	if s.emailService == nil || c.Email == "" {
		return
	}

	window := rental.StartTime.Format("15:04") + "-" + rental.EndTime.Format("15:04")
	if err := s.emailService.SendRentalConfirmation(ctx, c.Email, c.Name, a.Name, rental.RentalDate.Format("2006-01-02"), window); err != nil {
		logger.Error("rental confirmation email failed", "coach_id", c.ID, "error", err)
	}
}

func (s *service) notifyCancellation(ctx context.Context, rental *Rental, credited bool) {
	if s.emailService == nil {
		return
	}

	c, err := s.coachRepo.GetCoachByID(ctx, rental.CoachID)
	if err != nil || c.Email == "" {
		return
	}

	a, err := s.areaRepo.GetAreaByID(ctx, rental.AreaID)
	if err != nil {
		return
	}

	if err := s.emailService.SendRentalCancellation(ctx, c.Email, c.Name, a.Name, rental.RentalDate.Format("2006-01-02"), credited); err != nil {
		logger.Error("rental cancellation email failed", "rental_id", rental.ID, "error", err)
	}
}

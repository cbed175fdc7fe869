package rental

import (
	"context"
	"time"
)

// CreateParams is a validated, fee-priced rental ready for insertion.
type CreateParams struct {
	AreaID          int
	CoachID         int
	RentalDate      time.Time
	StartTime       time.Time
	EndTime         time.Time
	FeeChargedCents int64
	GuestCount      int
	IsRecurring     bool
	SeriesID        *string
	CreatedBy       int
}

// CreditGrant describes the cancellation credit minted inside the
// cancellation transaction.
type CreditGrant struct {
	Amount    int
	ExpiresAt time.Time
}

type Repository interface {
	// CreateRental checks the overlap window and inserts in one
	// transaction, serialized per (area, date) by a Postgres advisory
	// lock. The schema-level constraint trigger backs this up; either
	// path surfaces as ErrSlotConflict.
	CreateRental(ctx context.Context, p CreateParams) (*Rental, error)
	GetRentalByID(ctx context.Context, id int) (*Rental, error)
	ListByArea(ctx context.Context, areaID int, date time.Time) ([]Rental, error)
	ListByCoach(ctx context.Context, coachID int) ([]RentalWithDetails, error)
	ListBySeries(ctx context.Context, seriesID string) ([]Rental, error)
	ListScheduledBySeries(ctx context.Context, seriesID string) ([]Rental, error)

	// CancelRental transitions scheduled -> cancelled and, when grant is
	// non-nil, appends the coach credit and bumps the cached balance in
	// the same transaction so the balance cache cannot be half-applied.
	CancelRental(ctx context.Context, rentalID, actorID int, now time.Time, grant *CreditGrant) (*Rental, error)
	CompleteRental(ctx context.Context, rentalID int) (*Rental, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
}

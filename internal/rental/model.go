package rental

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

const (
	// Minimum cancellation notice for a credit, by actor role. Used when
	// the configured thresholds are absent.
	DefaultCoachNoticeHours = 24
	DefaultAdminNoticeHours = 48
)

// Rental is a reserved time window in an area, booked for a coach.
// start_time/end_time are full timestamps on rental_date; the overlap
// invariant treats the window as half-open [start, end) so back-to-back
// rentals touch without conflicting.
type Rental struct {
	ID              int        `db:"id" json:"id"`
	AreaID          int        `db:"area_id" json:"area_id"`
	CoachID         int        `db:"coach_id" json:"coach_id"`
	RentalDate      time.Time  `db:"rental_date" json:"rental_date"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         time.Time  `db:"end_time" json:"end_time"`
	Status          Status     `db:"status" json:"status"`
	FeeChargedCents int64      `db:"fee_charged_cents" json:"fee_charged_cents"`
	GuestCount      int        `db:"guest_count" json:"guest_count"`
	IsRecurring     bool       `db:"is_recurring" json:"is_recurring"`
	SeriesID        *string    `db:"series_id" json:"series_id,omitempty"`
	CreatedBy       int        `db:"created_by" json:"created_by"`
	CancelledBy     *int       `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	CancelledAt     *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// RentalWithDetails joins in area and coach names for listings.
type RentalWithDetails struct {
	Rental
	AreaName  string `db:"area_name" json:"area_name"`
	CoachName string `db:"coach_name" json:"coach_name"`
}

type Recurrence struct {
	Occurrences  int `json:"occurrences" binding:"required,min=2,max=52"`
	IntervalDays int `json:"interval_days" binding:"required,min=1"`
}

type CreateRentalRequest struct {
	AreaID         int         `json:"area_id" binding:"required"`
	CoachID        int         `json:"coach_id" binding:"required"`
	Date           string      `json:"date" binding:"required"`       // 2006-01-02
	StartTime      string      `json:"start_time" binding:"required"` // 15:04
	EndTime        string      `json:"end_time" binding:"required"`
	BasePriceCents int64       `json:"base_price_cents" binding:"min=0"`
	GuestCount     int         `json:"guest_count" binding:"min=0"`
	Recurrence     *Recurrence `json:"recurrence,omitempty"`
}

// OccurrenceFailure reports one failed occurrence of a recurring booking.
type OccurrenceFailure struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

// SeriesResult carries partial-success output of a recurring creation:
// occurrences insert independently, so some may conflict while siblings
// succeed.
type SeriesResult struct {
	SeriesID string              `json:"series_id"`
	Created  []Rental            `json:"created"`
	Failed   []OccurrenceFailure `json:"failed"`
}

type CancelResult struct {
	Rental   *Rental `json:"rental"`
	Credited bool    `json:"credited"`
}

package checkin

import (
	"context"
	"time"
)

// RecordParams is one audit row plus the side effect committed with it.
type RecordParams struct {
	Type        Type
	Result      Result
	Reason      *string
	MemberID    *int
	GuestName   *string
	RentalID    *int
	CheckedInBy int
	CheckedInAt time.Time

	// DecrementCredit spends one member credit in the same transaction
	// as the audit insert. ErrNoCredits when a concurrent swipe already
	// drained the balance.
	DecrementCredit bool

	// IncrementGuest bumps the referenced rental's guest_count in the
	// same transaction as the audit insert.
	IncrementGuest bool
}

type Repository interface {
	// ExclusiveRentalActive reports whether any scheduled rental in any
	// exclusive area covers now. The block is facility-wide.
	ExclusiveRentalActive(ctx context.Context, now time.Time) (bool, error)

	Record(ctx context.Context, p RecordParams) (*CheckInRecord, error)
	ListRecords(ctx context.Context, limit, offset int) ([]CheckInRecord, error)
}

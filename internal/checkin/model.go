package checkin

import "time"

type Type string

const (
	TypeMember Type = "MEMBER"
	TypeGuest  Type = "GUEST"
)

type Result string

const (
	ResultAllowed Result = "ALLOWED"
	ResultBlocked Result = "BLOCKED"
)

// Reason codes attached to BLOCKED decisions. Status blocks carry the
// member status itself: STATUS_BLOQUEADO, STATUS_CANCELADO, STATUS_LEAD.
const (
	ReasonStatusPrefix    = "STATUS_"
	ReasonExpired         = "EXPIRED"
	ReasonNoCredits       = "NO_CREDITS"
	ReasonAreaExclusive   = "AREA_EXCLUSIVE"
	ReasonRentalNotFound  = "RENTAL_NOT_FOUND"
	ReasonRentalNotActive = "RENTAL_NOT_ACTIVE"
)

// CheckInRecord is the append-only audit row written for every evaluation,
// allowed or blocked. Never mutated.
type CheckInRecord struct {
	ID          int       `db:"id" json:"id"`
	Type        Type      `db:"type" json:"type"`
	Result      Result    `db:"result" json:"result"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	MemberID    *int      `db:"member_id" json:"member_id,omitempty"`
	GuestName   *string   `db:"guest_name" json:"guest_name,omitempty"`
	RentalID    *int      `db:"rental_id" json:"rental_id,omitempty"`
	CheckedInBy int       `db:"checked_in_by" json:"checked_in_by"`
	CheckedInAt time.Time `db:"checked_in_at" json:"checked_in_at"`
}

type MemberCheckInRequest struct {
	MemberID int `json:"member_id" binding:"required"`
}

type GuestCheckInRequest struct {
	RentalID  int    `json:"rental_id" binding:"required"`
	GuestName string `json:"guest_name" binding:"required"`
}

// Decision is what the door sees. CapacityWarning is the soft signal that
// a guest check-in pushed the rental past the area's capacity; it never
// blocks.
type Decision struct {
	Record          *CheckInRecord `json:"record"`
	Result          Result         `json:"result"`
	Reason          string         `json:"reason,omitempty"`
	CapacityWarning bool           `json:"capacity_warning,omitempty"`
}

package coach

import "time"

type FeeType string

const (
	FeeTypeFixed      FeeType = "fixed"
	FeeTypePercentage FeeType = "percentage"
)

// Coach is an external coach who rents areas. CreditsBalance is a cached
// aggregate over the credit ledger; the ledger is the source of truth and
// the cache is rewritten in the same transaction as every ledger append.
type Coach struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	FeeType        FeeType   `db:"fee_type" json:"fee_type"`
	FeeValue       int64     `db:"fee_value" json:"fee_value"`
	CreditsBalance int       `db:"credits_balance" json:"credits_balance"`
	Active         bool      `db:"active" json:"active"`
	LinkedStaffID  *int      `db:"linked_staff_id" json:"linked_staff_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateCoachRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	FeeType       FeeType `json:"fee_type" binding:"required,oneof=fixed percentage"`
	FeeValue      int64   `json:"fee_value" binding:"required,min=0"`
	LinkedStaffID *int    `json:"linked_staff_id,omitempty"`
}

type UpdateCoachRequest struct {
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty" binding:"omitempty,email"`
	FeeType  *FeeType `json:"fee_type,omitempty" binding:"omitempty,oneof=fixed percentage"`
	FeeValue *int64   `json:"fee_value,omitempty" binding:"omitempty,min=0"`
}

package credit

import "time"

type Reason string

const (
	ReasonCancellation Reason = "cancellation"
	ReasonAdjustment   Reason = "adjustment"
	ReasonUsed         Reason = "used"
)

// CancellationCreditTTLDays is how long a cancellation-minted credit stays
// redeemable.
const CancellationCreditTTLDays = 90

// Entry is one append-only ledger record. Positive amounts are grants,
// negative amounts are consumption. Entries are never edited or deleted.
type Entry struct {
	ID        int        `db:"id" json:"id"`
	CoachID   int        `db:"coach_id" json:"coach_id"`
	Amount    int        `db:"amount" json:"amount"`
	Reason    Reason     `db:"reason" json:"reason"`
	RentalID  *int       `db:"rental_id" json:"rental_id,omitempty"`
	Note      string     `db:"note" json:"note,omitempty"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type AdjustRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Note  string `json:"note,omitempty"`
}

type ConsumeRequest struct {
	Amount   int  `json:"amount" binding:"required,min=1"`
	RentalID *int `json:"rental_id,omitempty"`
}

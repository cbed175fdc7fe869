package credit

import (
	"context"
	"time"
)

type Repository interface {
	// AddEntry appends a ledger entry and rewrites the coach's cached
	// balance in the same transaction. The ledger itself never rejects a
	// negative-producing insert; balance checks belong to callers.
	AddEntry(ctx context.Context, coachID, amount int, reason Reason, rentalID *int, note string, expiresAt *time.Time) (*Entry, error)
	Balance(ctx context.Context, coachID int, includeExpired bool) (int, error)
	ListEntries(ctx context.Context, coachID int, limit, offset int) ([]Entry, error)
	RecomputeBalance(ctx context.Context, coachID int) (int, error)
}

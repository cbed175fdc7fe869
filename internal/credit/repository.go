package credit

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AddEntry(ctx context.Context, coachID, amount int, reason Reason, rentalID *int, note string, expiresAt *time.Time) (*Entry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Serialize concurrent ledger writes per coach on the coach row.
	var currentBalance int
	err = tx.QueryRowxContext(ctx,
		`SELECT credits_balance FROM coaches WHERE id = $1 FOR UPDATE`,
		coachID,
	).Scan(&currentBalance)
	if err != nil {
		return nil, err
	}

	var entry Entry
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO coach_credit_entries (coach_id, amount, reason, rental_id, note, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, coach_id, amount, reason, rental_id, note, expires_at, created_at`,
		coachID, amount, reason, rentalID, note, expiresAt,
	).StructScan(&entry)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE coaches
		 SET credits_balance = credits_balance + $1, updated_at = NOW()
		 WHERE id = $2`,
		amount, coachID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *repository) Balance(ctx context.Context, coachID int, includeExpired bool) (int, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM coach_credit_entries
		WHERE coach_id = $1
	`
	if !includeExpired {
		query += " AND (expires_at IS NULL OR expires_at >= CURRENT_DATE)"
	}

	var balance int
	err := r.db.GetContext(ctx, &balance, query, coachID)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *repository) ListEntries(ctx context.Context, coachID int, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, coach_id, amount, reason, rental_id, note, expires_at, created_at
		FROM coach_credit_entries
		WHERE coach_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, coachID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// RecomputeBalance overwrites the cached balance from ledger truth. The
// cache can only drift through partial-failure bugs; the reconciliation job
// calls this periodically.
func (r *repository) RecomputeBalance(ctx context.Context, coachID int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var stale int
	err = tx.QueryRowxContext(ctx,
		`SELECT credits_balance FROM coaches WHERE id = $1 FOR UPDATE`,
		coachID,
	).Scan(&stale)
	if err != nil {
		return 0, err
	}

	var balance int
	err = tx.QueryRowxContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM coach_credit_entries
		WHERE coach_id = $1
		  AND (expires_at IS NULL OR expires_at >= CURRENT_DATE)
	`, coachID).Scan(&balance)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE coaches SET credits_balance = $1, updated_at = NOW() WHERE id = $2`,
		balance, coachID,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return balance, nil
}

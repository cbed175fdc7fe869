package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNoCredits = errors.New("member has no credits remaining")

const recordColumns = `id, type, result, reason, member_id, guest_name, rental_id, checked_in_by, checked_in_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExclusiveRentalActive(ctx context.Context, now time.Time) (bool, error) {
	var active bool
	err := r.db.QueryRowxContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM rentals r
			JOIN areas a ON r.area_id = a.id
			WHERE a.is_exclusive
			  AND r.status = 'scheduled'
			  AND r.rental_date = $1::date
			  AND r.start_time <= $1
			  AND r.end_time >= $1
		)
	`, now).Scan(&active)
	if err != nil {
		return false, err
	}

	return active, nil
}

func (r *repository) Record(ctx context.Context, p RecordParams) (*CheckInRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The credit spend commits with the audit row or not at all; the
	// guarded UPDATE stops two near-simultaneous swipes from spending
	// the same last credit.
	if p.DecrementCredit {
		result, err := tx.ExecContext(ctx, `
			UPDATE members
			SET credits_remaining = credits_remaining - 1
			WHERE id = $1 AND credits_remaining > 0
		`, p.MemberID)
		if err != nil {
			return nil, err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if rowsAffected == 0 {
			return nil, ErrNoCredits
		}
	}

	if p.IncrementGuest {
		_, err := tx.ExecContext(ctx, `
			UPDATE rentals
			SET guest_count = guest_count + 1
			WHERE id = $1
		`, p.RentalID)
		if err != nil {
			return nil, err
		}
	}

	var record CheckInRecord
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO check_in_records (type, result, reason, member_id, guest_name, rental_id, checked_in_by, checked_in_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+recordColumns,
		p.Type, p.Result, p.Reason, p.MemberID, p.GuestName, p.RentalID,
		p.CheckedInBy, p.CheckedInAt,
	).StructScan(&record)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *repository) ListRecords(ctx context.Context, limit, offset int) ([]CheckInRecord, error) {
	var records []CheckInRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT `+recordColumns+`
		FROM check_in_records
		ORDER BY checked_in_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}

	return records, nil
}

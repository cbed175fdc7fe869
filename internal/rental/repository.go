package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ricore77995/strikehouse-sub000/internal/credit"
)

var (
	ErrSlotConflict    = errors.New("slot conflicts with an existing rental")
	ErrRentalNotFound  = errors.New("rental not found")
	ErrAlreadyTerminal = errors.New("rental is already completed or cancelled")
)

const rentalColumns = `id, area_id, coach_id, rental_date, start_time, end_time, status, fee_charged_cents, guest_count, is_recurring, series_id, created_by, cancelled_by, created_at, cancelled_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// exclusion_violation: raised by the overlap constraint trigger.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01"
	}
	return false
}

func (r *repository) CreateRental(ctx context.Context, p CreateParams) (*Rental, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Serialize concurrent bookers for the same area/date. Two inserts
	// for overlapping windows must not both pass the check below; the
	// schema trigger is the backstop if anything bypasses this path.
	_, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2::text))`,
		p.AreaID, p.RentalDate.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	var conflict bool
	err = tx.QueryRowxContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM rentals
			WHERE area_id = $1
			  AND rental_date = $2
			  AND status <> 'cancelled'
			  AND start_time < $4
			  AND end_time > $3
		)
	`, p.AreaID, p.RentalDate, p.StartTime, p.EndTime).Scan(&conflict)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	var rental Rental
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO rentals (area_id, coach_id, rental_date, start_time, end_time, status, fee_charged_cents, guest_count, is_recurring, series_id, created_by)
		VALUES ($1, $2, $3, $4, $5, 'scheduled', $6, $7, $8, $9, $10)
		RETURNING `+rentalColumns,
		p.AreaID, p.CoachID, p.RentalDate, p.StartTime, p.EndTime,
		p.FeeChargedCents, p.GuestCount, p.IsRecurring, p.SeriesID, p.CreatedBy,
	).StructScan(&rental)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rental, nil
}

func (r *repository) GetRentalByID(ctx context.Context, id int) (*Rental, error) {
	var rental Rental
	err := r.db.GetContext(ctx, &rental,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}

	return &rental, nil
}

func (r *repository) ListByArea(ctx context.Context, areaID int, date time.Time) ([]Rental, error) {
	var rentals []Rental
	err := r.db.SelectContext(ctx, &rentals, `
		SELECT `+rentalColumns+`
		FROM rentals
		WHERE area_id = $1 AND rental_date = $2
		ORDER BY start_time ASC
	`, areaID, date)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *repository) ListByCoach(ctx context.Context, coachID int) ([]RentalWithDetails, error) {
	var rentals []RentalWithDetails
	err := r.db.SelectContext(ctx, &rentals, `
		SELECT
			r.id, r.area_id, r.coach_id, r.rental_date, r.start_time, r.end_time,
			r.status, r.fee_charged_cents, r.guest_count, r.is_recurring, r.series_id,
			r.created_by, r.cancelled_by, r.created_at, r.cancelled_at,
			a.name AS area_name,
			c.name AS coach_name
		FROM rentals r
		JOIN areas a ON r.area_id = a.id
		JOIN coaches c ON r.coach_id = c.id
		WHERE r.coach_id = $1
		ORDER BY r.start_time DESC
	`, coachID)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *repository) ListBySeries(ctx context.Context, seriesID string) ([]Rental, error) {
	var rentals []Rental
	err := r.db.SelectContext(ctx, &rentals, `
		SELECT `+rentalColumns+`
		FROM rentals
		WHERE series_id = $1
		ORDER BY start_time ASC
	`, seriesID)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *repository) ListScheduledBySeries(ctx context.Context, seriesID string) ([]Rental, error) {
	var rentals []Rental
	err := r.db.SelectContext(ctx, &rentals, `
		SELECT `+rentalColumns+`
		FROM rentals
		WHERE series_id = $1 AND status = 'scheduled'
		ORDER BY start_time ASC
	`, seriesID)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *repository) CancelRental(ctx context.Context, rentalID, actorID int, now time.Time, grant *CreditGrant) (*Rental, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Rental
	err = tx.QueryRowxContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = $1 FOR UPDATE`,
		rentalID,
	).StructScan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}

	if current.Status != StatusScheduled {
		return nil, ErrAlreadyTerminal
	}

	var cancelled Rental
	err = tx.QueryRowxContext(ctx, `
		UPDATE rentals
		SET status = 'cancelled', cancelled_at = $2, cancelled_by = $3
		WHERE id = $1
		RETURNING `+rentalColumns,
		rentalID, now, actorID,
	).StructScan(&cancelled)
	if err != nil {
		return nil, err
	}

	if grant != nil {
		var balance int
		err = tx.QueryRowxContext(ctx,
			`SELECT credits_balance FROM coaches WHERE id = $1 FOR UPDATE`,
			current.CoachID,
		).Scan(&balance)
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO coach_credit_entries (coach_id, amount, reason, rental_id, expires_at)
			VALUES ($1, $2, $3, $4, $5)
		`, current.CoachID, grant.Amount, credit.ReasonCancellation, rentalID, grant.ExpiresAt)
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE coaches
			SET credits_balance = credits_balance + $1, updated_at = NOW()
			WHERE id = $2
		`, grant.Amount, current.CoachID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &cancelled, nil
}

func (r *repository) CompleteRental(ctx context.Context, rentalID int) (*Rental, error) {
	var rental Rental
	err := r.db.QueryRowxContext(ctx, `
		UPDATE rentals
		SET status = 'completed'
		WHERE id = $1 AND status = 'scheduled'
		RETURNING `+rentalColumns,
		rentalID,
	).StructScan(&rental)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Distinguish a missing rental from a terminal one.
			if _, getErr := r.GetRentalByID(ctx, rentalID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyTerminal
		}
		return nil, err
	}

	return &rental, nil
}

func (r *repository) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE rentals
		SET status = 'completed'
		WHERE status = 'scheduled' AND end_time < $1
	`, now)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}

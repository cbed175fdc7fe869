package coach

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCoachNotFound = errors.New("coach not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCoach(ctx context.Context, name, email string, feeType FeeType, feeValue int64, linkedStaffID *int) (*Coach, error) {
	query := `
		INSERT INTO coaches (name, email, fee_type, fee_value, linked_staff_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, fee_type, fee_value, credits_balance, active, linked_staff_id, created_at, updated_at
	`

	var coach Coach
	err := r.db.GetContext(ctx, &coach, query, name, email, feeType, feeValue, linkedStaffID)
	if err != nil {
		return nil, err
	}

	return &coach, nil
}

func (r *repository) GetAllCoaches(ctx context.Context, includeInactive bool) ([]Coach, error) {
	query := `
		SELECT id, name, email, fee_type, fee_value, credits_balance, active, linked_staff_id, created_at, updated_at
		FROM coaches
	`
	if !includeInactive {
		query += " WHERE active"
	}
	query += " ORDER BY name ASC"

	var coaches []Coach
	err := r.db.SelectContext(ctx, &coaches, query)
	if err != nil {
		return nil, err
	}

	return coaches, nil
}

func (r *repository) GetCoachByID(ctx context.Context, id int) (*Coach, error) {
	query := `
		SELECT id, name, email, fee_type, fee_value, credits_balance, active, linked_staff_id, created_at, updated_at
		FROM coaches
		WHERE id = $1
	`

	var coach Coach
	err := r.db.GetContext(ctx, &coach, query, id)
	if err != nil {
		return nil, err
	}

	return &coach, nil
}

func (r *repository) UpdateCoach(ctx context.Context, id int, name, email *string, feeType *FeeType, feeValue *int64) (*Coach, error) {
	query := `
		UPDATE coaches
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    fee_type = COALESCE($4, fee_type),
		    fee_value = COALESCE($5, fee_value),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, fee_type, fee_value, credits_balance, active, linked_staff_id, created_at, updated_at
	`

	var coach Coach
	err := r.db.GetContext(ctx, &coach, query, id, name, email, feeType, feeValue)
	if err != nil {
		return nil, err
	}

	return &coach, nil
}

func (r *repository) DeactivateCoach(ctx context.Context, id int) error {
	query := `
		UPDATE coaches
		SET active = false, updated_at = NOW()
		WHERE id = $1 AND active
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCoachNotFound
	}

	return nil
}

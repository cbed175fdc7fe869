package area

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrAreaNotFound = errors.New("area not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateArea(ctx context.Context, name string, capacity int, isExclusive bool) (*Area, error) {
	query := `
		INSERT INTO areas (name, capacity, is_exclusive)
		VALUES ($1, $2, $3)
		RETURNING id, name, capacity, is_exclusive, active, created_at
	`

	var area Area
	err := r.db.GetContext(ctx, &area, query, name, capacity, isExclusive)
	if err != nil {
		return nil, err
	}

	return &area, nil
}

func (r *repository) GetAllAreas(ctx context.Context, includeInactive bool) ([]Area, error) {
	query := `
		SELECT id, name, capacity, is_exclusive, active, created_at
		FROM areas
	`
	if !includeInactive {
		query += " WHERE active"
	}
	query += " ORDER BY name ASC"

	var areas []Area
	err := r.db.SelectContext(ctx, &areas, query)
	if err != nil {
		return nil, err
	}

	return areas, nil
}

func (r *repository) GetAreaByID(ctx context.Context, id int) (*Area, error) {
	query := `
		SELECT id, name, capacity, is_exclusive, active, created_at
		FROM areas
		WHERE id = $1
	`

	var area Area
	err := r.db.GetContext(ctx, &area, query, id)
	if err != nil {
		return nil, err
	}

	return &area, nil
}

func (r *repository) UpdateArea(ctx context.Context, id int, name *string, capacity *int, isExclusive *bool) (*Area, error) {
	query := `
		UPDATE areas
		SET name = COALESCE($2, name),
		    capacity = COALESCE($3, capacity),
		    is_exclusive = COALESCE($4, is_exclusive)
		WHERE id = $1
		RETURNING id, name, capacity, is_exclusive, active, created_at
	`

	var area Area
	err := r.db.GetContext(ctx, &area, query, id, name, capacity, isExclusive)
	if err != nil {
		return nil, err
	}

	return &area, nil
}

func (r *repository) DeactivateArea(ctx context.Context, id int) error {
	query := `
		UPDATE areas
		SET active = false
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
		return ErrAreaNotFound
	}

	return nil
}

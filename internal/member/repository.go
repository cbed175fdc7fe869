package member

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

const memberColumns = `id, name, email, status, access_type, access_expires_at, credits_remaining, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	query := `
		INSERT INTO members (name, email, access_type, access_expires_at, credits_remaining)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query,
		req.Name, req.Email, req.AccessType, req.AccessExpiresAt, req.CreditsRemaining)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetAllMembers(ctx context.Context) ([]Member, error) {
	var members []Member
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) GetMemberByID(ctx context.Context, id int) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) UpdateMember(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE members
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    status = COALESCE($4, status),
		    access_type = COALESCE($5, access_type),
		    access_expires_at = COALESCE($6, access_expires_at),
		    credits_remaining = COALESCE($7, credits_remaining),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, id,
		req.Name, req.Email, req.Status, req.AccessType, req.AccessExpiresAt, req.CreditsRemaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

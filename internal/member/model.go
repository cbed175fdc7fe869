package member

import "time"

// Status values are stored as the business uses them (Spanish). LEAD is a
// prospect who has never activated and cannot check in.
type Status string

const (
	StatusActivo    Status = "ACTIVO"
	StatusBloqueado Status = "BLOQUEADO"
	StatusCancelado Status = "CANCELADO"
	StatusLead      Status = "LEAD"
)

type AccessType string

const (
	AccessSubscription AccessType = "subscription"
	AccessDailyPass    AccessType = "daily_pass"
	AccessCredits      AccessType = "credits"
)

type Member struct {
	ID               int        `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Status           Status     `db:"status" json:"status"`
	AccessType       AccessType `db:"access_type" json:"access_type"`
	AccessExpiresAt  *time.Time `db:"access_expires_at" json:"access_expires_at,omitempty"`
	CreditsRemaining int        `db:"credits_remaining" json:"credits_remaining"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateMemberRequest struct {
	Name             string     `json:"name" binding:"required"`
	Email            string     `json:"email" binding:"required,email"`
	AccessType       AccessType `json:"access_type" binding:"required,oneof=subscription daily_pass credits"`
	AccessExpiresAt  *time.Time `json:"access_expires_at,omitempty"`
	CreditsRemaining int        `json:"credits_remaining" binding:"min=0"`
}

type UpdateMemberRequest struct {
	Name             *string     `json:"name,omitempty"`
	Email            *string     `json:"email,omitempty" binding:"omitempty,email"`
	Status           *Status     `json:"status,omitempty" binding:"omitempty,oneof=ACTIVO BLOQUEADO CANCELADO LEAD"`
	AccessType       *AccessType `json:"access_type,omitempty" binding:"omitempty,oneof=subscription daily_pass credits"`
	AccessExpiresAt  *time.Time  `json:"access_expires_at,omitempty"`
	CreditsRemaining *int        `json:"credits_remaining,omitempty" binding:"omitempty,min=0"`
}

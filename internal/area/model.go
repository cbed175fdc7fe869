package area

import "time"

// Area is a bookable physical space. Areas are never deleted, only
// deactivated, so historical rentals keep a valid reference.
type Area struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Capacity    int       `db:"capacity" json:"capacity"`
	IsExclusive bool      `db:"is_exclusive" json:"is_exclusive"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateAreaRequest struct {
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	IsExclusive bool   `json:"is_exclusive"`
}

type UpdateAreaRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	IsExclusive *bool   `json:"is_exclusive,omitempty"`
}

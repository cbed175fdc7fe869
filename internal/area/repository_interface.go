package area

import "context"

type Repository interface {
	CreateArea(ctx context.Context, name string, capacity int, isExclusive bool) (*Area, error)
	GetAllAreas(ctx context.Context, includeInactive bool) ([]Area, error)
	GetAreaByID(ctx context.Context, id int) (*Area, error)
	UpdateArea(ctx context.Context, id int, name *string, capacity *int, isExclusive *bool) (*Area, error)
	DeactivateArea(ctx context.Context, id int) error
}

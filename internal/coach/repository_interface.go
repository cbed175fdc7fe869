package coach

import "context"

type Repository interface {
	CreateCoach(ctx context.Context, name, email string, feeType FeeType, feeValue int64, linkedStaffID *int) (*Coach, error)
	GetAllCoaches(ctx context.Context, includeInactive bool) ([]Coach, error)
	GetCoachByID(ctx context.Context, id int) (*Coach, error)
	UpdateCoach(ctx context.Context, id int, name, email *string, feeType *FeeType, feeValue *int64) (*Coach, error)
	DeactivateCoach(ctx context.Context, id int) error
}

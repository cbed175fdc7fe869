package member

import "context"

type Repository interface {
	CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error)
	GetAllMembers(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, id int) (*Member, error)
	UpdateMember(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
}

package users

import "context"

type Repository interface {
	Upsert(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	ListAll(ctx context.Context) ([]User, error)
}

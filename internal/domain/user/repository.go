package user

import "context"

// UserRepository is the directory store.
type UserRepository interface {
	// Create inserts a user. Returns ErrEmailExists or ErrEmployeeCodeExists on a unique clash.
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

package memory

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) user.UserRepository {
	return &userRepository{store: store}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newUser.Email = strings.ToLower(newUser.Email)
	for _, u := range r.store.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrEmailExists
		}
		if u.EmployeeCode == newUser.EmployeeCode {
			return user.User{}, user.ErrEmployeeCodeExists
		}
	}

	if newUser.ID == "" {
		newUser.ID = uuid.New().String()
	}
	if newUser.UpdatedAt.IsZero() {
		newUser.UpdatedAt = newUser.CreatedAt
	}
	r.store.users[newUser.ID] = newUser
	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

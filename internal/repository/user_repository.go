package repository

import (
	"context"
	"time"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// UserRepository provides database access for dashboard accounts.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// FindByEmail returns a user by email address, ignoring case.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, name, role, active, last_login, created_at FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var user models.User
	if err := r.store.Get(ctx, "users_find_email", &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin updates the last_login timestamp for a user.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_login = $2 WHERE id = $1`
	return r.store.Exec(ctx, "users_update_last_login", query, id, ts)
}

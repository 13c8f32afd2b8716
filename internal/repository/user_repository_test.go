package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

func TestUserRepositoryFindByEmail(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewUserRepository(store)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "active", "last_login", "created_at"}).
		AddRow("1", "guru@sekolah.id", "hash", "Bu Guru", string(models.RoleGuru), true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, role, active, last_login, created_at FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("guru@sekolah.id").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "guru@sekolah.id")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuru, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewUserRepository(store)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_login = $2 WHERE id = $1")).
		WithArgs("1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), "1", time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateUser_Duplicate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(anyArgs(10)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "asha"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("Asha@Example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "first_name", "last_name", "password",
			"role", "is_active", "created_at", "updated_at",
		}).AddRow(id, "asha", "asha@example.com", "Asha", "Rao", "hash",
			entity.RoleCustomer, true, now, now))

	user, err := repo.FindByEmail(context.Background(), "Asha@Example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Asha Rao", user.FullName())

	mock.ExpectQuery(`FROM users WHERE username`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	user, err = repo.FindByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

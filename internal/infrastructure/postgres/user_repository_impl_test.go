package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
)

const testID = "0b6a4d3e-6a53-4c2b-9f57-7f0d7f0d1a11"

func newRepoWithMock(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func userRows(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "confirmed", "settings_mode", "created_at", "updated_at"}).
		AddRow(testID, "Juan Mata", "jo.mata@gmail.com", "$2a$10$hash", false, "light", now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Juan Mata", "jo.mata@gmail.com", "$2a$10$hash", false, "light").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(testID, now, now))

	u := &entity.User{Name: "Juan Mata", Email: "jo.mata@gmail.com", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, testID, u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationMapsToDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &entity.User{Name: "a", Email: "a@b.c", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE id = \$1`).
		WithArgs(testID).
		WillReturnRows(userRows(now))

	u, err := repo.GetByID(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, "jo.mata@gmail.com", u.Email)
	assert.Equal(t, entity.ModeLight, u.Settings.Mode)
	assert.False(t, u.Confirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE id = \$1`).
		WithArgs(testID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), testID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetByID_MalformedIDSkipsQuery(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE email = \$1`).
		WithArgs("x@y.z").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByEmail(context.Background(), "x@y.z")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "db down")
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("Juan", "jo.mata@gmail.com", "h", true, "dark", pgxmock.AnyArg(), testID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	u := &entity.User{ID: testID, Name: "Juan", Email: "jo.mata@gmail.com", PasswordHash: "h", Confirmed: true, Settings: entity.Settings{Mode: entity.ModeDark}}
	require.NoError(t, repo.Update(context.Background(), u))
	assert.False(t, u.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.User{ID: testID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Update(context.Background(), &entity.User{ID: testID, Email: "taken@x.y"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(testID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), testID))

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(testID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), testID), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users\s+ORDER BY created_at`).
		WillReturnRows(userRows(now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, testID, users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// AngelaMos | 2026
// repository_test.go

package user_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/user"
)

func newMockRepo(t *testing.T) (user.Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return user.NewRepository(db), mock
}

func TestGetByIDFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "role",
		"token_version", "created_at", "updated_at", "deleted_at",
	}).AddRow(
		"user-1", "reefdiver", "reef@diving.local", "hash", "user",
		0, now, now, nil,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("user-1").
		WillReturnRows(rows)

	u, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "reefdiver", u.Username)
	assert.Equal(t, "user", u.Role)
	assert.False(t, u.IsDeleted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsUniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username", "users_username_unique", user.ErrUsernameTaken},
		{"email", "users_email_unique", user.ErrEmailTaken},
		{"other", "users_pkey", core.ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
				WillReturnError(&pgconn.PgError{
					Code:           "23505",
					ConstraintName: tt.constraint,
				})

			err := repo.Create(context.Background(), &user.User{
				ID:           "user-1",
				Username:     "reefdiver",
				Email:        "reef@diving.local",
				PasswordHash: "hash",
				Role:         "user",
			})
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, core.ErrDuplicateKey)
		})
	}
}

func TestCreateReturnsServerFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("user-1", "reefdiver", "reef@diving.local", "hash", "user").
		WillReturnRows(sqlmock.NewRows(
			[]string{"created_at", "updated_at", "token_version"},
		).AddRow(now, now, 0))

	u := &user.User{
		ID:           "user-1",
		Username:     "reefdiver",
		Email:        "reef@diving.local",
		PasswordHash: "hash",
		Role:         "user",
	}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.WithinDuration(t, now, u.CreatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("missing", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "missing", "newhash")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSoftDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithSearchAndRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs("%reef%", "user").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("%reef%", "user", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "role", "token_version",
			"created_at", "updated_at", "deleted_at",
		}).AddRow(
			"user-1", "reefdiver", "reef@diving.local", "user",
			0, now, now, nil,
		))

	users, total, err := repo.List(context.Background(), user.ListUsersParams{
		Search: "reef",
		Role:   "user",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "reefdiver", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

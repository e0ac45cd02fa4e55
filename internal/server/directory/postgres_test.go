package directory

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestPostgres_FindByEmail_Found(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "full_name", "created_at"}).
		AddRow("u1", "a@b.com", "$2a$10$hash", "USER", "Ada", createdAt)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, role, full_name, created_at FROM users")).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	p := NewPostgres(db)
	got, err := p.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, createdAt, got.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindByEmail_NoRows(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, role, full_name, created_at FROM users")).
		WithArgs("missing@b.com").
		WillReturnError(sql.ErrNoRows)

	p := NewPostgres(db)
	_, err := p.FindByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	user := &models.User{
		ID: "u1", Email: "a@b.com", PasswordHash: "h",
		Role: models.RoleUser, FullName: "Ada", CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Role, user.FullName, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := NewPostgres(db)
	require.NoError(t, p.Insert(context.Background(), user))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_UniqueViolation(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	p := NewPostgres(db)
	user := &models.User{ID: "u1", Email: "a@b.com", PasswordHash: "h", Role: models.RoleUser, CreatedAt: time.Now()}

	err := p.Insert(context.Background(), user)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_InsufficientPrivilege(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "42501", Message: "permission denied for table users"})

	p := NewPostgres(db)
	user := &models.User{ID: "u1", Email: "a@b.com", PasswordHash: "h", Role: models.RoleUser, CreatedAt: time.Now()}

	err := p.Insert(context.Background(), user)
	assert.ErrorIs(t, err, common.ErrorAccessDenied)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

// Postgres is the SQL-backed Directory. Uniqueness is enforced by the
// unique index on users.email; a violation maps to ErrorAlreadyExists.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, role, full_name, created_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := p.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.FullName, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", mapPostgresError(err))
	}

	return user, nil
}

func (p *Postgres) Insert(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, email, password_hash, role, full_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := p.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.FullName, user.CreatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", mapPostgresError(err))
	}

	return nil
}

func mapPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.Message)
	case pgerrcode.InsufficientPrivilege:
		return fmt.Errorf("%w: %s", common.ErrorAccessDenied, pgErr.Message)
	default:
		return err
	}
}

// Package directory defines the identity store consumed by the auth
// service and its backing adapters. The service needs exactly two
// operations: an equality lookup by email and a uniqueness-enforcing
// insert. Range queries, transactions, and retries are out of scope;
// each adapter pushes conflict detection down to its store's native
// conditional-write primitive.
package directory

import (
	"context"

	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

// Directory is the abstract identity store.
//
// FindByEmail returns common.ErrorNotFound when no record matches.
// Insert returns common.ErrorAlreadyExists when a record with the same
// email is already present, including when a concurrent insert wins the
// race. Emails are compared exactly as stored; no normalization.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

func testUser(email string) *models.User {
	return &models.User{
		ID:           "id-" + email,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMemory_InsertAndFind(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, testUser("a@b.com")))

	got, err := m.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, "id-a@b.com", got.ID)
}

func TestMemory_FindUnknown(t *testing.T) {
	t.Parallel()

	m := NewMemory()

	_, err := m.FindByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_InsertDuplicate(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, testUser("a@b.com")))

	err := m.Insert(ctx, testUser("a@b.com"))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestMemory_EmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, testUser("a@b.com")))

	// Emails are compared exactly as provided, so a different casing is a
	// different record.
	require.NoError(t, m.Insert(ctx, testUser("A@b.com")))

	_, err := m.FindByEmail(ctx, "A@B.COM")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

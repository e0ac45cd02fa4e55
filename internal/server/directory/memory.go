package directory

import (
	"context"
	"sync"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
)

// Memory is a mutex-guarded in-memory Directory used in tests and local
// development. Existence check and insert happen under one lock, so the
// uniqueness invariant holds even for concurrent registrations.
type Memory struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

func NewMemory() *Memory {
	return &Memory{byEmail: make(map[string]models.User)}
}

func (m *Memory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &user, nil
}

func (m *Memory) Insert(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return common.ErrorAlreadyExists
	}
	m.byEmail[user.Email] = *user
	return nil
}

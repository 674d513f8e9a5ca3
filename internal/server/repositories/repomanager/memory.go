package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/repositories/categories"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in one memstore.Store for the
// lifetime of the process.
type MemoryRepositoryManager struct {
	store *memstore.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memstore.New()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Users() users.Repository             { return m.store.Users() }
func (m *MemoryRepositoryManager) Categories() categories.Repository   { return m.store.Categories() }
func (m *MemoryRepositoryManager) Tasks() tasks.Repository             { return m.store.Tasks() }
func (m *MemoryRepositoryManager) Close() error                        { return nil }

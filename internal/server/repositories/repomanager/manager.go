// Package repomanager selects and builds the storage backend. A
// RepositoryManager vends the three repositories over one shared
// connection (or one in-memory store) and owns its lifecycle.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/categories"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Categories() categories.Repository
	Tasks() tasks.Repository
	Close() error
}

// Backend names returned by BackendFor.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// BackendFor maps a DSN onto a backend name:
//
//	""                                   memory
//	postgres://..., postgresql://...     postgres
//	sqlite://path, file:path, *.db       sqlite
func BackendFor(dsn string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case lower == "":
		return BackendMemory, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, nil
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"):
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database DSN %q", redact(dsn))
	}
}

// Open builds the manager for dsn and applies its schema migrations.
func Open(ctx context.Context, dsn string, log logging.Logger) (RepositoryManager, error) {
	backend, err := BackendFor(dsn)
	if err != nil {
		return nil, err
	}

	var m RepositoryManager
	switch backend {
	case BackendPostgres:
		m, err = OpenPostgres(ctx, dsn)
	case BackendSQLite:
		m, err = OpenSQLite(dsn, log)
	default:
		m = NewMemoryRepositoryManager()
	}
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Info(ctx, "storage ready", "backend", backend)
	return m, nil
}

// redact hides the password part of a URL-style DSN.
func redact(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, _ := strings.Cut(creds, ":")
	return scheme + "://" + user + ":***@" + host
}

package repomanager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/categories"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteRepositoryManager serves the repositories from a gorm connection to
// a SQLite file.
type SQLiteRepositoryManager struct {
	db *gorm.DB
}

// gormWriter routes gorm's own log lines into the application logger.
type gormWriter struct {
	log logging.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn(context.Background(), strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "gorm")
}

// OpenSQLite opens the SQLite database named by dsn ("sqlite://path",
// "file:path?opts" or "path.db").
func OpenSQLite(dsn string, log logging.Logger) (*SQLiteRepositoryManager, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")

	if err := ensureDirForSQLite(path); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		gormWriter{log: log},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	return NewSQLiteRepositoryManager(db), nil
}

func NewSQLiteRepositoryManager(db *gorm.DB) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{db: db}
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&users.Row{}, &categories.Row{}, &tasks.Row{}); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return users.NewGormRepository(m.db)
}

func (m *SQLiteRepositoryManager) Categories() categories.Repository {
	return categories.NewGormRepository(m.db)
}

func (m *SQLiteRepositoryManager) Tasks() tasks.Repository {
	return tasks.NewGormRepository(m.db)
}

func (m *SQLiteRepositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

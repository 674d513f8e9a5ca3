package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	m          repomanager.RepositoryManager
	cfg        *config.Config
	pub        *recordingPublisher
	users      *UserService
	categories *CategoryService
	tasks      *TaskService
	transfer   *TransferService
}

// failingTasks fails the failAt-th Create (1-based) with errStorage.
type failingTasks struct {
	tasks.Repository
	failAt int
	calls  int
}

var errStorage = errors.New("storage unavailable")

func (r *failingTasks) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	r.calls++
	if r.calls == r.failAt {
		return nil, errStorage
	}
	return r.Repository.Create(ctx, t)
}

type failingManager struct {
	repomanager.RepositoryManager
	tasks *failingTasks
}

func (m *failingManager) Tasks() tasks.Repository { return m.tasks }

func withFailingTaskCreate(m repomanager.RepositoryManager, failAt int) *failingManager {
	return &failingManager{RepositoryManager: m, tasks: &failingTasks{Repository: m.Tasks(), failAt: failAt}}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, repomanager.NewMemoryRepositoryManager())
}

func newFixtureOn(t *testing.T, m repomanager.RepositoryManager) *fixture {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	pub := &recordingPublisher{}
	log := logging.Nop{}

	return &fixture{
		m:          m,
		cfg:        cfg,
		pub:        pub,
		users:      NewUserService(m, cfg, pub, log),
		categories: NewCategoryService(m, pub, log),
		tasks:      NewTaskService(m, cfg, pub, log),
		transfer:   NewTransferService(m, cfg, pub, log),
	}
}

func (f *fixture) register(t *testing.T, name string) *models.User {
	t.Helper()
	res, err := f.users.Register(context.Background(), &validation.RegisterInput{
		Email:    name + "@example.com",
		Username: name,
		FullName: name,
		Password: "password",
	})
	require.NoError(t, err)

	u, err := f.m.Users().GetByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	return u
}

func (f *fixture) category(t *testing.T, userID int64, name string) *models.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), userID, &validation.CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) task(t *testing.T, userID, categoryID int64, title string) *models.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), userID, &validation.TaskInput{Title: title, CategoryID: categoryID})
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

func TestCategoryPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	bob := f.register(t, "bob")
	c := f.category(t, ann.ID, "Work")

	lenient := categoryPolicy{categories: f.m.Categories(), log: logging.Nop{}}
	strict := categoryPolicy{categories: f.m.Categories(), strict: true, log: logging.Nop{}}

	assert.NoError(t, lenient.check(ctx, ann.ID, c.ID, "categoryId"))
	assert.NoError(t, lenient.check(ctx, bob.ID, c.ID, "categoryId"))

	err := strict.check(ctx, bob.ID, c.ID, "categoryId")
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "categoryId", ve.Issues[0].Field)

	err = lenient.check(ctx, ann.ID, 999, "categoryId")
	ve, ok = validation.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "category does not exist", ve.Issues[0].Message)
}

func TestConflictError(t *testing.T) {
	var err error = &ConflictError{Message: "Email already exists"}
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists))
	assert.Equal(t, "Email already exists", err.Error())
}

// Package memstore keeps users, categories and tasks in process memory. All
// three repositories share one Store so that a category delete and its task
// cascade happen under a single lock. Values are copied on the way in and
// out; callers never alias stored records.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/categories"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

type Store struct {
	mu sync.RWMutex

	users      map[int64]*models.User
	categories map[int64]*models.Category
	tasks      map[int64]*models.Task

	nextUserID     int64
	nextCategoryID int64
	nextTaskID     int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:      make(map[int64]*models.User),
		categories: make(map[int64]*models.Category),
		tasks:      make(map[int64]*models.Task),
		now:        time.Now,
	}
}

func (s *Store) Users() users.Repository           { return &userRepo{s} }
func (s *Store) Categories() categories.Repository { return &categoryRepo{s} }
func (s *Store) Tasks() tasks.Repository           { return &taskRepo{s} }

// --- users ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, common.ErrorAlreadyExists
		}
	}

	r.s.nextUserID++
	u.ID = r.s.nextUserID
	stored := *u
	r.s.users[u.ID] = &stored
	return u, nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *userRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- categories ---

type categoryRepo struct{ s *Store }

func (r *categoryRepo) ListByUser(_ context.Context, userID int64) ([]*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Category, 0)
	for _, c := range r.s.categories {
		if c.UserID == userID {
			out := *c
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *categoryRepo) Get(_ context.Context, id int64) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (r *categoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCategoryID++
	c.ID = r.s.nextCategoryID
	stored := *c
	r.s.categories[c.ID] = &stored
	return c, nil
}

func (r *categoryRepo) Update(_ context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(c)
	out := *c
	return &out, nil
}

func (r *categoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return common.ErrorNotFound
	}
	for tid, t := range r.s.tasks {
		if t.CategoryID == id {
			delete(r.s.tasks, tid)
		}
	}
	delete(r.s.categories, id)
	return nil
}

// --- tasks ---

type taskRepo struct{ s *Store }

func (r *taskRepo) filter(match func(*models.Task) bool) []*models.Task {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, t := range r.s.tasks {
		if match(t) {
			result = append(result, t.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (r *taskRepo) ListByUser(_ context.Context, userID int64) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.UserID == userID }), nil
}

func (r *taskRepo) ListByCategoryAndUser(_ context.Context, categoryID, userID int64) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool {
		return t.UserID == userID && t.CategoryID == categoryID
	}), nil
}

func (r *taskRepo) SearchByUser(_ context.Context, userID int64, q string) ([]*models.Task, error) {
	needle := strings.ToLower(q)
	return r.filter(func(t *models.Task) bool {
		return t.UserID == userID &&
			(strings.Contains(strings.ToLower(t.Title), needle) ||
				strings.Contains(strings.ToLower(t.Description), needle))
	}), nil
}

func (r *taskRepo) Get(_ context.Context, id int64) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t.Clone(), nil
}

func (r *taskRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextTaskID++
	t.ID = r.s.nextTaskID
	t.Completed = false
	t.CreatedAt = r.s.now()
	r.s.tasks[t.ID] = t.Clone()
	return t, nil
}

func (r *taskRepo) Update(_ context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(t)
	return t.Clone(), nil
}

func (r *taskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

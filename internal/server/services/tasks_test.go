package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(list []*models.Task) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Title)
	}
	return out
}

func TestTaskService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	c := f.category(t, ann.ID, "Work")

	task, err := f.tasks.Create(ctx, ann.ID, &validation.TaskInput{Title: "Report", CategoryID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPriority, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, ann.ID, task.UserID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestTaskService_CreateUnknownCategory(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "ann")

	_, err := f.tasks.Create(context.Background(), ann.ID, &validation.TaskInput{Title: "x", CategoryID: 42})
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "categoryId", ve.Issues[0].Field)
}

func TestTaskService_ForeignCategoryPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	bob := f.register(t, "bob")
	annCat := f.category(t, ann.ID, "Ann")

	// lenient: allowed
	task, err := f.tasks.Create(ctx, bob.ID, &validation.TaskInput{Title: "sneaky", CategoryID: annCat.ID})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, task.UserID)

	strictCfg := *f.cfg
	strictCfg.StrictCategoryOwnership = true
	strict := NewTaskService(f.m, &strictCfg, f.pub, logging.Nop{})

	_, err = strict.Create(ctx, bob.ID, &validation.TaskInput{Title: "sneaky", CategoryID: annCat.ID})
	_, ok := validation.AsValidationError(err)
	assert.True(t, ok)

	bobCat := f.category(t, bob.ID, "Bob")
	own, err := strict.Create(ctx, bob.ID, &validation.TaskInput{Title: "mine", CategoryID: bobCat.ID})
	require.NoError(t, err)

	moved := annCat.ID
	_, err = strict.Update(ctx, bob.ID, own.ID, &validation.TaskUpdateInput{CategoryID: &moved})
	_, ok = validation.AsValidationError(err)
	assert.True(t, ok)
}

func TestTaskService_ListModes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	bob := f.register(t, "bob")
	work := f.category(t, ann.ID, "Work")
	home := f.category(t, ann.ID, "Home")

	f.task(t, ann.ID, work.ID, "Write report")
	_, err := f.tasks.Create(ctx, ann.ID, &validation.TaskInput{Title: "Groceries", Description: strPtr("buy milk and REPORT cards"), CategoryID: home.ID})
	require.NoError(t, err)
	f.task(t, ann.ID, home.ID, "Laundry")
	bobCat := f.category(t, bob.ID, "Bob")
	f.task(t, bob.ID, bobCat.ID, "Bob's report")

	all, err := f.tasks.List(ctx, ann.ID, TaskQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Laundry", "Groceries", "Write report"}, titles(all))

	byCat, err := f.tasks.List(ctx, ann.ID, TaskQuery{CategoryID: &home.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Laundry", "Groceries"}, titles(byCat))

	found, err := f.tasks.List(ctx, ann.ID, TaskQuery{Search: "report", CategoryID: &work.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Write report"}, titles(found), "search wins over category and matches descriptions")

	spaced, err := f.tasks.List(ctx, ann.ID, TaskQuery{Search: " ", CategoryID: &home.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Write report"}, titles(spaced), "a blank but non-empty term is still a search")

	none, err := f.tasks.List(ctx, ann.ID, TaskQuery{Search: "nothing-like-this"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTaskService_UpdateDueDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	c := f.category(t, ann.ID, "Work")
	task, err := f.tasks.Create(ctx, ann.ID, &validation.TaskInput{Title: "Report", CategoryID: c.ID, DueDate: strPtr("2024-06-01")})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2024-06-01", *task.DueDate)

	title := "Final report"
	updated, err := f.tasks.Update(ctx, ann.ID, task.ID, &validation.TaskUpdateInput{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)

	cleared, err := f.tasks.Update(ctx, ann.ID, task.ID, &validation.TaskUpdateInput{DueDate: validation.NullableString{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
	assert.Equal(t, "Final report", cleared.Title)
	assert.Equal(t, task.CreatedAt, cleared.CreatedAt)
}

func TestTaskService_Isolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	bob := f.register(t, "bob")
	c := f.category(t, ann.ID, "Work")
	task := f.task(t, ann.ID, c.ID, "Report")

	_, err := f.tasks.Get(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	done := true
	_, err = f.tasks.Update(ctx, bob.ID, task.ID, &validation.TaskUpdateInput{Completed: &done})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, f.tasks.Delete(ctx, bob.ID, task.ID), common.ErrorNotFound)

	list, err := f.tasks.List(ctx, bob.ID, TaskQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, f.tasks.Delete(ctx, ann.ID, task.ID))
	assert.ErrorIs(t, f.tasks.Delete(ctx, ann.ID, task.ID), common.ErrorNotFound)
}

func TestTaskService_Stats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann := f.register(t, "ann")
	c := f.category(t, ann.ID, "Work")

	stats, err := f.tasks.Stats(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStats{}, stats)

	a := f.task(t, ann.ID, c.ID, "a")
	f.task(t, ann.ID, c.ID, "b")
	f.task(t, ann.ID, c.ID, "c")

	done := true
	_, err = f.tasks.Update(ctx, ann.ID, a.ID, &validation.TaskUpdateInput{Completed: &done})
	require.NoError(t, err)

	stats, err = f.tasks.Stats(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStats{Total: 3, Completed: 1, Pending: 2}, stats)
}

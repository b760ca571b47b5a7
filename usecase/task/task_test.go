package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository/memory"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newUseCase(t *testing.T) (*UseCase, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	store := memory.NewStore(memory.WithClock(clock.Now))
	return New(store.Tasks(), clock.Now, nil), clock
}

func input(title string, status domain.TaskStatus) domain.TaskInput {
	return domain.TaskInput{Title: title, Status: status, Priority: domain.PriorityMedium}
}

func TestListTasksPaginatesFilteredTotal(t *testing.T) {
	uc, clock := newUseCase(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		clock.now = clock.now.Add(time.Minute)
		_, err := uc.CreateTask(ctx, "u1", input(fmt.Sprintf("task %02d", i), domain.TaskTodo))
		require.NoError(t, err)
	}

	page, err := uc.ListTasks(ctx, "u1", domain.TaskFilter{}, domain.NewPageRequest(2, 10))
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	// Newest first: the last page holds the oldest tasks.
	assert.Equal(t, "task 04", page.Items[0].Title)
	assert.Equal(t, "task 00", page.Items[4].Title)
}

func TestListTasksFiltersByStatusAndSearch(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateTask(ctx, "u1", input("Buy milk", domain.TaskTodo))
	require.NoError(t, err)
	_, err = uc.CreateTask(ctx, "u1", input("Buy bread", domain.TaskDone))
	require.NoError(t, err)
	_, err = uc.CreateTask(ctx, "u2", input("Buy milk too", domain.TaskTodo))
	require.NoError(t, err)

	page, err := uc.ListTasks(ctx, "u1", domain.TaskFilter{Search: "BUY"}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = uc.ListTasks(ctx, "u1", domain.TaskFilter{Status: domain.TaskDone}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Buy bread", page.Items[0].Title)

	_, err = uc.ListTasks(ctx, "u1", domain.TaskFilter{Status: "LATER"}, domain.NewPageRequest(1, 10))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdateTaskKeepsFirstCompletion(t *testing.T) {
	uc, clock := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, "u1", input("Ship it", domain.TaskTodo))
	require.NoError(t, err)
	assert.Nil(t, created.CompletedAt)

	doneAt := clock.now.Add(time.Hour)
	clock.now = doneAt
	done, err := uc.UpdateTask(ctx, "u1", created.ID, input("Ship it", domain.TaskDone))
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, doneAt, *done.CompletedAt)

	clock.now = doneAt.Add(time.Hour)
	reopened, err := uc.UpdateTask(ctx, "u1", created.ID, input("Ship it", domain.TaskInProgress))
	require.NoError(t, err)
	require.NotNil(t, reopened.CompletedAt)
	assert.Equal(t, doneAt, *reopened.CompletedAt)

	stored, err := uc.GetTask(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, stored.Status)
	assert.Equal(t, doneAt, *stored.CompletedAt)
}

func TestForeignTaskIsNotFound(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, "owner", input("Private", domain.TaskTodo))
	require.NoError(t, err)

	_, err = uc.GetTask(ctx, "intruder", created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = uc.UpdateTask(ctx, "intruder", created.ID, input("Mine now", domain.TaskDone))
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, uc.DeleteTask(ctx, "intruder", created.ID), domain.ErrTaskNotFound)

	stored, err := uc.GetTask(ctx, "owner", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", stored.Title)

	require.NoError(t, uc.DeleteTask(ctx, "owner", created.ID))
	_, err = uc.GetTask(ctx, "owner", created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCreateTaskRejectsInvalidInput(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.CreateTask(context.Background(), "u1", input("x", domain.TaskTodo))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

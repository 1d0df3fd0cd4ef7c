package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store"
	"github.com/aussiebroadwan/tasktrack/pkg/slogx"
)

type TaskService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewTask is validated create input.
type NewTask struct {
	Title       string
	Description *string
	Status      *domain.Status
}

func (s *TaskService) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	// Both drivers store microsecond precision.
	return t.UTC().Truncate(time.Microsecond)
}

// ResolveOwnedTask loads a task and checks it belongs to userID. A missing
// task is reported before ownership so a 404 and a 403 never mix.
func (s *TaskService) ResolveOwnedTask(ctx context.Context, taskID, userID int64) (domain.Task, error) {
	t, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, domain.NotFound(domain.MsgTaskNotFound)
		}
		return domain.Task{}, domain.Internal(fmt.Errorf("get task %d: %w", taskID, err))
	}

	if t.UserID != userID {
		slogx.FromContext(ctx).Warn("task ownership mismatch", slog.Int64("task_id", taskID))
		return domain.Task{}, domain.Forbidden(domain.MsgTaskForbidden)
	}
	return t, nil
}

// Create stores a task owned by userID. Status defaults to todo.
func (s *TaskService) Create(ctx context.Context, userID int64, in NewTask) (domain.Task, error) {
	status := domain.StatusTodo
	if in.Status != nil {
		status = *in.Status
	}

	now := s.now()
	t, err := s.Store.Tasks().CreateTask(ctx, domain.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Task{}, domain.Internal(fmt.Errorf("create task: %w", err))
	}

	slogx.FromContext(ctx).Info("task created", slog.Int64("task_id", t.ID))
	return t, nil
}

// List returns one page of the caller's tasks.
func (s *TaskService) List(ctx context.Context, q domain.TaskQuery) (domain.TaskPage, error) {
	total, tasks, err := s.Store.Tasks().ListTasks(ctx, q)
	if err != nil {
		return domain.TaskPage{}, domain.Internal(fmt.Errorf("list tasks: %w", err))
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	return domain.TaskPage{
		Data:       tasks,
		Pagination: domain.NewPagination(total, q.Page, q.Limit),
	}, nil
}

// Get returns a task owned by userID.
func (s *TaskService) Get(ctx context.Context, taskID, userID int64) (domain.Task, error) {
	return s.ResolveOwnedTask(ctx, taskID, userID)
}

// UpdateOwned applies p to a task already returned by ResolveOwnedTask.
// updated_at always moves forward, even when the patch changes nothing.
func (s *TaskService) UpdateOwned(ctx context.Context, owned domain.Task, p domain.TaskPatch) (domain.Task, error) {
	t, err := s.Store.Tasks().UpdateTask(ctx, owned.ID, owned.UserID, p, s.now())
	if err != nil {
		// Deleted between the ownership check and the update.
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, domain.NotFound(domain.MsgTaskNotFound)
		}
		return domain.Task{}, domain.Internal(fmt.Errorf("update task %d: %w", owned.ID, err))
	}
	return t, nil
}

// Delete removes a task owned by userID.
func (s *TaskService) Delete(ctx context.Context, taskID, userID int64) error {
	if _, err := s.ResolveOwnedTask(ctx, taskID, userID); err != nil {
		return err
	}

	if err := s.Store.Tasks().DeleteTask(ctx, taskID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NotFound(domain.MsgTaskNotFound)
		}
		return domain.Internal(fmt.Errorf("delete task %d: %w", taskID, err))
	}

	slogx.FromContext(ctx).Info("task deleted", slog.Int64("task_id", taskID))
	return nil
}

package services

import (
	"context"
	"errors"

	"github.com/aymanElshayeb/reactExampleBackend/internal/models"
	"github.com/aymanElshayeb/reactExampleBackend/internal/repositories"
)

// ErrTaskNotFound is returned when an operation references a task that does
// not exist in storage.
var ErrTaskNotFound = errors.New("task not found")

type TaskService interface {
	AddTask(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (*models.Task, error)
	RemoveTasks(ctx context.Context, ids []uint) error
	SearchByDescription(ctx context.Context, substring string, page, size int) (*models.TaskPage, error)
}

type TaskServiceImpl struct {
	tasks repositories.TaskRepository
}

func NewTaskService(tasks repositories.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks}
}

// AddTask persists a new task. Storage assigns the id; no field validation is
// performed, empty fields are stored as given.
func (s *TaskServiceImpl) AddTask(ctx context.Context, task models.Task) (*models.Task, error) {
	task.ID = 0
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask overwrites an existing task with the given record. The task must
// already exist; a missing id is not an upsert.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.ID == 0 {
		return nil, ErrTaskNotFound
	}

	exists, err := s.tasks.ExistsByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	if err := s.tasks.Save(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// RemoveTasks deletes exactly the tasks whose ids are supplied, atomically.
// Ids with no matching record are silently skipped. Callers must not pass an
// empty set; the HTTP boundary rejects it first.
func (s *TaskServiceImpl) RemoveTasks(ctx context.Context, ids []uint) error {
	return s.tasks.DeleteByIDs(ctx, ids)
}

func (s *TaskServiceImpl) SearchByDescription(ctx context.Context, substring string, page, size int) (*models.TaskPage, error) {
	tasks, total, err := s.tasks.SearchByDescription(ctx, substring, page, size)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return &models.TaskPage{
		Content:       tasks,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

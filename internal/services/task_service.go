package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-app/taskflow/internal/constants"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("unknown priority")
	ErrInvalidStatus   = errors.New("unknown status")
	ErrQueryRequired   = errors.New("search query is required")
)

// TaskService handles task business rules for the server variant. Every
// operation is scoped to the acting user; a task owned by someone else is
// reported as not found, never as forbidden.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.Priority
	Category    string
}

// UpdateTaskInput represents a partial update. Nil fields are unchanged;
// ClearDueDate removes the deadline. Completed is the boolean view of
// Status; when both are present, Status wins.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *models.Priority
	Category     *string
	Status       *models.TaskStatus
	Completed    *bool
}

// ListTasks returns the user's tasks sorted ascending by due date.
func (s *TaskService) ListTasks(userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks returns the user's tasks whose title or description contains
// the query substring.
func (s *TaskService) SearchTasks(userID, query string) ([]models.Task, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}
	tasks, err := s.taskRepo.Search(userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns one of the user's tasks.
func (s *TaskService) GetTask(userID, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input, applies defaults, and stores the task.
func (s *TaskService) CreateTask(userID string, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	} else if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	category := input.Category
	if category == "" {
		category = constants.DefaultCategory
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Category:    category,
		Status:      models.TaskStatusTodo,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask shallow-merges the input into an existing task and persists it.
func (s *TaskService) UpdateTask(userID, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = *input.Category
	}

	now := time.Now()
	switch {
	case input.Status != nil:
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.SetStatus(*input.Status, now)
	case input.Completed != nil && *input.Completed:
		task.SetStatus(models.TaskStatusCompleted, now)
	case input.Completed != nil:
		task.SetStatus(models.TaskStatusTodo, now)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes one of the user's tasks.
func (s *TaskService) DeleteTask(userID, taskID string) error {
	removed, err := s.taskRepo.Delete(userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !removed {
		return ErrTaskNotFound
	}
	return nil
}

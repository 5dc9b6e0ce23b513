// Package planner implements the local-first task core: repositories over the
// key-value store, the session manager, and on-demand analytics. Everything is
// synchronous; the store mirror is updated before a mutating call returns.
package planner

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow-app/taskflow/internal/constants"
	apperrors "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
	"github.com/taskflow-app/taskflow/internal/utils"
)

// TaskInput is the payload for creating a task. Zero values fall back to the
// documented defaults (medium priority, general category, todo status).
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.Priority
	Category    string
	Status      models.TaskStatus
}

// TaskPatch is a partial update. Nil fields are left unchanged. ClearDueDate
// distinguishes "remove the deadline" from "leave it alone". Completed is the
// boolean view of Status; when both are set, Status wins.
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *models.Priority
	Category     *string
	Status       *models.TaskStatus
	Completed    *bool
}

// Filter narrows a listing query. Predicates compose with AND semantics; a
// zero Filter matches everything. DueOn matches on the calendar day only.
type Filter struct {
	Completed *bool
	Category  *string
	Status    *models.TaskStatus
	DueOn     *time.Time
}

func (f Filter) matches(t *models.Task) bool {
	if f.Completed != nil && t.Completed() != *f.Completed {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.DueOn != nil {
		if t.DueDate == nil || !utils.SameDay(*t.DueDate, *f.DueOn) {
			return false
		}
	}
	return true
}

// TaskRepository owns the task collection and its persisted mirror. The
// collection plus the mirror form one resource: every read-modify-write runs
// under a single mutex so concurrent mutations cannot lose updates.
type TaskRepository struct {
	mu    sync.Mutex
	store storage.Store
	tasks []models.Task
	now   func() time.Time
}

// NewTaskRepository loads the persisted collection, starting empty when
// nothing has been stored yet.
func NewTaskRepository(store storage.Store) *TaskRepository {
	r := &TaskRepository{
		store: store,
		tasks: []models.Task{},
		now:   time.Now,
	}
	store.Get(constants.StorageKeyTasks, &r.tasks)
	return r
}

// persistLocked writes the whole collection through to the store. Storage
// failures have already been logged by the adapter; the in-memory state
// remains authoritative for the session.
func (r *TaskRepository) persistLocked() {
	r.store.Set(constants.StorageKeyTasks, r.tasks)
}

func (r *TaskRepository) indexLocked(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add validates and appends a new task, persists, and returns the created
// record.
func (r *TaskRepository) Add(input TaskInput) (models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Task{}, apperrors.Validationf("title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	} else if !priority.Valid() {
		return models.Task{}, apperrors.Validationf("unknown priority %q", priority)
	}

	category := input.Category
	if category == "" {
		category = constants.DefaultCategory
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	} else if !status.Valid() {
		return models.Task{}, apperrors.Validationf("unknown status %q", status)
	}

	now := r.now()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Category:    category,
		Status:      models.TaskStatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SetStatus(status, now)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	r.persistLocked()
	return task, nil
}

// Update shallow-merges the patch into an existing task, recomputes
// updatedAt, persists, and returns the updated record.
func (r *TaskRepository) Update(id string, patch TaskPatch) (models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, apperrors.Validationf("title cannot be empty")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return models.Task{}, apperrors.Validationf("unknown priority %q", *patch.Priority)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Task{}, apperrors.Validationf("unknown status %q", *patch.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return models.Task{}, apperrors.NotFoundf("task %s", id)
	}

	task := &r.tasks[i]
	now := r.now()

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	switch {
	case patch.Status != nil:
		task.SetStatus(*patch.Status, now)
	case patch.Completed != nil && *patch.Completed:
		task.SetStatus(models.TaskStatusCompleted, now)
	case patch.Completed != nil:
		task.SetStatus(models.TaskStatusTodo, now)
	}
	task.UpdatedAt = now

	r.persistLocked()
	return *task, nil
}

// Delete removes the matching record and reports whether anything was
// removed. Deleting an absent id is not an error.
func (r *TaskRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return false
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.persistLocked()
	return true
}

// Get returns the task with the given id.
func (r *TaskRepository) Get(id string) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return models.Task{}, apperrors.NotFoundf("task %s", id)
	}
	return r.tasks[i], nil
}

// List returns the tasks matching the filter, in insertion order. The
// returned slice is a copy; filtering never mutates the collection.
func (r *TaskRepository) List(filter Filter) []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Task{}
	for i := range r.tasks {
		if filter.matches(&r.tasks[i]) {
			out = append(out, r.tasks[i])
		}
	}
	return out
}

// ToggleCompletion flips the task between todo and completed.
func (r *TaskRepository) ToggleCompletion(id string) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return models.Task{}, apperrors.NotFoundf("task %s", id)
	}

	now := r.now()
	task := &r.tasks[i]
	task.ToggleStatus(now)
	task.UpdatedAt = now

	r.persistLocked()
	return *task, nil
}

// DueToday returns tasks whose due date falls on the current calendar day.
func (r *TaskRepository) DueToday() []models.Task {
	now := r.now()
	return r.List(Filter{DueOn: &now})
}

// Upcoming returns tasks due between today at midnight and the end of the
// day `days` from now, inclusive, sorted ascending by due date. Tasks
// without a due date are excluded.
func (r *TaskRepository) Upcoming(days int) []models.Task {
	now := r.now()
	from := utils.StartOfDay(now)
	to := utils.EndOfDay(now.AddDate(0, 0, days))

	r.mu.Lock()
	out := []models.Task{}
	for i := range r.tasks {
		t := &r.tasks[i]
		if t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		out = append(out, *t)
	}
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(*out[j].DueDate)
	})
	return out
}

// Overdue returns incomplete tasks whose due date is strictly before now.
func (r *TaskRepository) Overdue() []models.Task {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Task{}
	for i := range r.tasks {
		t := &r.tasks[i]
		if t.DueDate == nil || t.Completed() {
			continue
		}
		if t.DueDate.Before(now) {
			out = append(out, *t)
		}
	}
	return out
}

// snapshot returns a copy of the full collection for read-only consumers.
func (r *TaskRepository) snapshot() []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

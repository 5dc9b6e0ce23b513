package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single actionable item. The status enum is the source of truth
// for completion; the boolean view is derived so the two cannot drift.
type Task struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      string     `gorm:"type:varchar(36);index;not null" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Category    string     `gorm:"type:varchar(100);not null;default:'general'" json:"category"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Completed reports whether the task has reached the completed status.
func (t *Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}

// SetStatus transitions the task and keeps the completion timestamp in sync:
// set when entering completed, cleared when leaving it. All status mutations
// must go through here.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	if status == TaskStatusCompleted && t.Status != TaskStatusCompleted {
		completedAt := now
		t.CompletedAt = &completedAt
	} else if status != TaskStatusCompleted {
		t.CompletedAt = nil
	}
	t.Status = status
}

// ToggleStatus flips between todo and completed. An in_progress task is
// treated as not completed, so toggling it completes it.
func (t *Task) ToggleStatus(now time.Time) {
	if t.Completed() {
		t.SetStatus(TaskStatusTodo, now)
	} else {
		t.SetStatus(TaskStatusCompleted, now)
	}
}

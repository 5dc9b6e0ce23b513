package repository

import (
	"github.com/taskflow-app/taskflow/internal/models"
)

// TaskRepository defines the interface for server-side task data access.
// Every query is scoped to the owning user; a task belonging to someone else
// behaves exactly like a missing one.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID within the user's collection
	FindByID(userID, id string) (*models.Task, error)

	// List retrieves the user's tasks sorted ascending by due date,
	// tasks without a due date last
	List(userID string) ([]models.Task, error)

	// Search retrieves the user's tasks whose title or description
	// contains the query substring, in due-date order
	Search(userID, query string) ([]models.Task, error)

	// Update persists a modified task
	Update(task *models.Task) error

	// Delete removes a task from the user's collection, reporting
	// whether a record was removed
	Delete(userID, id string) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists a modified user
	Update(user *models.User) error
}

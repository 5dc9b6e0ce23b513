package repository

import (
	"gorm.io/gorm"

	"github.com/taskflow-app/taskflow/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// dueDateOrder sorts ascending by due date with NULL due dates last.
const dueDateOrder = "CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC"

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID within the user's collection
func (r *GormTaskRepository) FindByID(userID, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the user's tasks sorted by due date
func (r *GormTaskRepository) List(userID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("user_id = ?", userID).
		Order(dueDateOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Search retrieves the user's tasks matching the query substring in title or
// description. Case sensitivity follows the underlying store's collation.
func (r *GormTaskRepository) Search(userID, query string) ([]models.Task, error) {
	var tasks []models.Task
	pattern := "%" + query + "%"
	if err := r.db.Where("user_id = ?", userID).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Order(dueDateOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists a modified task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task from the user's collection
func (r *GormTaskRepository) Delete(userID, id string) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/taskflow-app/taskflow/internal/models"
)

// AddIndexes adds the query-path indexes AutoMigrate does not cover. Every
// task query is scoped by user_id and most of them filter or sort on due
// date or status, so those get composite indexes.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
		table   string
	}{
		{&models.Task{}, "idx_tasks_user_id_due_date", "user_id, due_date", "tasks"},
		{&models.Task{}, "idx_tasks_user_id_status", "user_id, status", "tasks"},
		{&models.Task{}, "idx_tasks_user_id_category", "user_id, category", "tasks"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

func TestComputeStats_EmptyCollection(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	stats := ComputeStats(nil, now)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 0, stats.CompletionRate)
	assert.Equal(t, 0, stats.CompletedThisWeek)
	assert.Empty(t, stats.TasksByCategory)
	require.Len(t, stats.CompletionTrend, 7)
	for _, point := range stats.CompletionTrend {
		assert.Equal(t, 0, point.Count)
	}
}

func TestComputeStats_CountsAndRate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)

	tasks := []models.Task{
		{ID: "1", Category: "Work", Status: models.TaskStatusCompleted, CompletedAt: &done},
		{ID: "2", Category: "Work", Status: models.TaskStatusTodo},
		{ID: "3", Category: "Personal", Status: models.TaskStatusInProgress},
	}

	stats := ComputeStats(tasks, now)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	// round(1/3 * 100) = 33
	assert.Equal(t, 33, stats.CompletionRate)
	assert.Equal(t, map[string]int{"Work": 2, "Personal": 1}, stats.TasksByCategory)
}

func TestComputeStats_RateRoundsHalfUp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)

	// 2 of 3 completed: round(66.67) = 67.
	tasks := []models.Task{
		{ID: "1", Status: models.TaskStatusCompleted, CompletedAt: &done},
		{ID: "2", Status: models.TaskStatusCompleted, CompletedAt: &done},
		{ID: "3", Status: models.TaskStatusTodo},
	}
	assert.Equal(t, 67, ComputeStats(tasks, now).CompletionRate)
}

func TestComputeStats_UncategorizedLabel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tasks := []models.Task{{ID: "1", Status: models.TaskStatusTodo}}
	stats := ComputeStats(tasks, now)

	assert.Equal(t, map[string]int{"Uncategorized": 1}, stats.TasksByCategory)
}

func TestComputeStats_CompletedThisWeekWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	within := now.Add(-6 * 24 * time.Hour)
	outside := now.Add(-8 * 24 * time.Hour)

	tasks := []models.Task{
		{ID: "1", Status: models.TaskStatusCompleted, CompletedAt: &within},
		{ID: "2", Status: models.TaskStatusCompleted, CompletedAt: &outside},
	}

	stats := ComputeStats(tasks, now)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.CompletedThisWeek)
}

func TestComputeStats_TrendLabelsAndCounts(t *testing.T) {
	// A Tuesday, so the trend runs Wed..Tue oldest first.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, now.Weekday())

	today := now.Add(-time.Hour)
	twoDaysAgo := now.AddDate(0, 0, -2)
	lastWeek := now.AddDate(0, 0, -9)

	tasks := []models.Task{
		{ID: "1", Status: models.TaskStatusCompleted, CompletedAt: &today},
		{ID: "2", Status: models.TaskStatusCompleted, CompletedAt: &today},
		{ID: "3", Status: models.TaskStatusCompleted, CompletedAt: &twoDaysAgo},
		{ID: "4", Status: models.TaskStatusCompleted, CompletedAt: &lastWeek},
		{ID: "5", Status: models.TaskStatusTodo},
	}

	trend := ComputeStats(tasks, now).CompletionTrend
	require.Len(t, trend, 7)

	labels := make([]string, 0, 7)
	counts := make([]int, 0, 7)
	for _, point := range trend {
		labels = append(labels, point.Date)
		counts = append(counts, point.Count)
	}
	assert.Equal(t, []string{"Wed", "Thu", "Fri", "Sat", "Sun", "Mon", "Tue"}, labels)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 0, 2}, counts)
}

func TestAnalytics_RecomputesPerCall(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewTaskRepository(store)
	analytics := NewAnalytics(repo)

	assert.Equal(t, 0, analytics.Stats().Total)

	task, err := repo.Add(TaskInput{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.Stats().Total)
	assert.Equal(t, 0, analytics.Stats().Completed)

	_, err = repo.ToggleCompletion(task.ID)
	require.NoError(t, err)
	got := analytics.Stats()
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 100, got.CompletionRate)
}

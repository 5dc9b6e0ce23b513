package planner

import (
	"math"
	"time"

	"github.com/taskflow-app/taskflow/internal/constants"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/utils"
)

// TrendPoint is one day in the completion trend: a short weekday label and
// the number of tasks completed that day.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats is the derived view of the task collection at a point in time.
type Stats struct {
	Total             int            `json:"total"`
	Completed         int            `json:"completed"`
	Pending           int            `json:"pending"`
	CompletionRate    int            `json:"completionRate"`
	CompletedThisWeek int            `json:"completedThisWeek"`
	TasksByCategory   map[string]int `json:"tasksByCategory"`
	CompletionTrend   []TrendPoint   `json:"completionTrend"`
}

// Analytics derives statistics from the task collection. Results are a pure
// function of the collection at call time; nothing is cached across
// mutations.
type Analytics struct {
	tasks *TaskRepository
	now   func() time.Time
}

// NewAnalytics creates an Analytics reader over the repository.
func NewAnalytics(tasks *TaskRepository) *Analytics {
	return &Analytics{tasks: tasks, now: time.Now}
}

// Stats recomputes the full statistics snapshot.
func (a *Analytics) Stats() Stats {
	return ComputeStats(a.tasks.snapshot(), a.now())
}

// ComputeStats derives statistics from a task snapshot relative to now.
func ComputeStats(tasks []models.Task, now time.Time) Stats {
	stats := Stats{
		TasksByCategory: map[string]int{},
		CompletionTrend: make([]TrendPoint, 0, 7),
	}

	oneWeekAgo := now.Add(-7 * 24 * time.Hour)

	stats.Total = len(tasks)
	for i := range tasks {
		t := &tasks[i]

		category := t.Category
		if category == "" {
			category = constants.UncategorizedLabel
		}
		stats.TasksByCategory[category]++

		if !t.Completed() {
			continue
		}
		stats.Completed++
		if t.CompletedAt != nil && !t.CompletedAt.Before(oneWeekAgo) {
			stats.CompletedThisWeek++
		}
	}
	stats.Pending = stats.Total - stats.Completed

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	// Trailing 7 calendar days, oldest first.
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		count := 0
		for j := range tasks {
			t := &tasks[j]
			if t.Completed() && t.CompletedAt != nil && utils.SameDay(*t.CompletedAt, day) {
				count++
			}
		}
		stats.CompletionTrend = append(stats.CompletionTrend, TrendPoint{
			Date:  day.Format("Mon"),
			Count: count,
		})
	}

	return stats
}

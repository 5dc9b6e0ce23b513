package planner

import (
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

// App is the composition root for the local variant: the single operation set
// the presentation layer calls into. It is constructed explicitly and passed
// by reference; the presentation layer never touches the storage adapter.
type App struct {
	Tasks    *TaskRepository
	Settings *SettingsRepository
	Session  *SessionManager
	Stats    *Analytics
}

// NewApp wires the repositories over one shared store. A nil provider gets
// the stock local dev identity.
func NewApp(store storage.Store, provider IdentityProvider) *App {
	if provider == nil {
		provider = NewLocalProvider()
	}
	tasks := NewTaskRepository(store)
	return &App{
		Tasks:    tasks,
		Settings: NewSettingsRepository(store),
		Session:  NewSessionManager(store, provider),
		Stats:    NewAnalytics(tasks),
	}
}

// ListTasks returns tasks matching the filter.
func (a *App) ListTasks(filter Filter) []models.Task {
	return a.Tasks.List(filter)
}

// AddTask creates a task.
func (a *App) AddTask(input TaskInput) (models.Task, error) {
	return a.Tasks.Add(input)
}

// UpdateTask applies a partial update to a task.
func (a *App) UpdateTask(id string, patch TaskPatch) (models.Task, error) {
	return a.Tasks.Update(id, patch)
}

// DeleteTask removes a task, reporting whether one was removed.
func (a *App) DeleteTask(id string) bool {
	return a.Tasks.Delete(id)
}

// ToggleCompletion flips a task between todo and completed.
func (a *App) ToggleCompletion(id string) (models.Task, error) {
	return a.Tasks.ToggleCompletion(id)
}

// GetTasksDueToday returns tasks due on the current calendar day.
func (a *App) GetTasksDueToday() []models.Task {
	return a.Tasks.DueToday()
}

// GetUpcomingTasks returns tasks due within the next n days.
func (a *App) GetUpcomingTasks(days int) []models.Task {
	return a.Tasks.Upcoming(days)
}

// GetSettings returns the current settings.
func (a *App) GetSettings() models.Settings {
	return a.Settings.Get()
}

// UpdateSettings merges a partial settings update.
func (a *App) UpdateSettings(patch models.SettingsPatch) models.Settings {
	return a.Settings.Update(patch)
}

// GetStats recomputes analytics over the current collection.
func (a *App) GetStats() Stats {
	return a.Stats.Stats()
}

// Login authenticates and persists the session identity.
func (a *App) Login(email, password string) (models.User, error) {
	return a.Session.Login(email, password)
}

// Logout clears the session identity.
func (a *App) Logout() {
	a.Session.Logout()
}

// IsAuthenticated reports whether a session identity is held.
func (a *App) IsAuthenticated() bool {
	return a.Session.IsAuthenticated()
}

package planner

import (
	"sync"

	"github.com/taskflow-app/taskflow/internal/constants"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

// SettingsRepository owns the per-user preference record. Updates are a
// shallow merge over the existing settings, never a replacement.
type SettingsRepository struct {
	mu    sync.Mutex
	store storage.Store
}

// NewSettingsRepository creates a SettingsRepository over the given store.
func NewSettingsRepository(store storage.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the current settings, seeding the documented defaults when
// nothing has been persisted yet.
func (r *SettingsRepository) Get() models.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked()
}

func (r *SettingsRepository) getLocked() models.Settings {
	settings := models.DefaultSettings()
	r.store.Get(constants.StorageKeySettings, &settings)
	return settings
}

// Update merges the patch over the current settings (or the defaults when
// none exist), persists, and returns the merged result. The generic merge
// path does not validate field values; callers needing theme validation use
// SetTheme.
func (r *SettingsRepository) Update(patch models.SettingsPatch) models.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := r.getLocked().Merge(patch)
	r.store.Set(constants.StorageKeySettings, merged)
	return merged
}

// SetTheme validates and applies a theme, reporting whether it was accepted.
// Unknown themes are rejected without touching the stored settings. The bare
// theme key is kept alongside the settings record so a front end can read it
// before deserializing the full settings shape.
func (r *SettingsRepository) SetTheme(theme models.Theme) bool {
	if !theme.Valid() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	merged := r.getLocked().Merge(models.SettingsPatch{Theme: &theme})
	if !r.store.Set(constants.StorageKeySettings, merged) {
		return false
	}
	r.store.Set(constants.StorageKeyTheme, theme)
	return true
}

package models

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Notifications holds the per-channel notification toggles.
type Notifications struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	Sound bool `json:"sound"`
}

// Settings are per-user preferences. StartOfWeek follows the usual weekday
// numbering: 0 = Sunday, 1 = Monday.
type Settings struct {
	Theme         Theme         `json:"theme"`
	Notifications Notifications `json:"notifications"`
	DateFormat    string        `json:"dateFormat"`
	TimeFormat    string        `json:"timeFormat"`
	StartOfWeek   int           `json:"startOfWeek"`
}

// DefaultSettings seeds a settings record when none has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		Theme: ThemeLight,
		Notifications: Notifications{
			Email: true,
			Push:  true,
			Sound: true,
		},
		DateFormat:  "MM/DD/YYYY",
		TimeFormat:  "12h",
		StartOfWeek: 0,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged;
// the merge is shallow, so a non-nil Notifications replaces all three toggles.
type SettingsPatch struct {
	Theme         *Theme         `json:"theme"`
	Notifications *Notifications `json:"notifications"`
	DateFormat    *string        `json:"dateFormat"`
	TimeFormat    *string        `json:"timeFormat"`
	StartOfWeek   *int           `json:"startOfWeek"`
}

// Merge applies the patch over s and returns the result.
func (s Settings) Merge(patch SettingsPatch) Settings {
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.Notifications != nil {
		s.Notifications = *patch.Notifications
	}
	if patch.DateFormat != nil {
		s.DateFormat = *patch.DateFormat
	}
	if patch.TimeFormat != nil {
		s.TimeFormat = *patch.TimeFormat
	}
	if patch.StartOfWeek != nil {
		s.StartOfWeek = *patch.StartOfWeek
	}
	return s
}

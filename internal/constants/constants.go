package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Token settings. Tokens carry only the user id as subject, no roles or claims.
const (
	TokenExpiry     = 5 * 24 * time.Hour
	BearerPrefix    = "Bearer "
	AuthTokenHeader = "x-auth-token"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// Storage keys for the local key-value store. The prefix matches the
// original browser-profile namespace so existing exports stay readable.
const (
	StorageKeyTasks    = "taskflow_tasks"
	StorageKeySettings = "taskflow_settings"
	StorageKeyUser     = "taskflow_user"
	StorageKeyTheme    = "taskflow_theme"
)

// Default task bucket for tasks created without a category.
const DefaultCategory = "general"

// UncategorizedLabel groups tasks without a category in analytics output.
const UncategorizedLabel = "Uncategorized"

// DefaultCategories is the curated starter set offered by the UI layer.
var DefaultCategories = []string{"Work", "Personal", "Health", "Learning"}

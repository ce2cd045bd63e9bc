package constants

// Session and context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "planner_session"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Ordering
const (
	// OrderGap is the spacing between consecutive order values of daily tasks.
	OrderGap = 10
)

// Labels
const (
	MaxLabelNameLength = 50
	DefaultLabelColor  = "#E5E7EB"
)

// Titles
const (
	MaxTitleLength = 255
)

// AI
const (
	MaxAIGeneratedTasks = 20
)

// DateLayout is the calendar date format used in URLs and payloads.
const DateLayout = "2006-01-02"

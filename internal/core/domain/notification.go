package domain

// Level is the severity of a user-facing notification.
type Level int

// Notification levels.
const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a transient message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

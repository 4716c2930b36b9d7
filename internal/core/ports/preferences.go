package ports

import "context"

// PreferenceStore persists string preferences across runs.
//
//go:generate mockgen -source=preferences.go -destination=mocks/mock_preferences.go -package=mocks
type PreferenceStore interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)

	// Set stores the value and persists it before returning.
	Set(key, value string) error

	// Watch calls fn after the backing file changes outside this process.
	// It blocks until ctx is done.
	Watch(ctx context.Context, fn func()) error
}

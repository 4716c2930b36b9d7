package domain

import "go.trai.ch/zerr"

// Request failures. *APIError values match these through errors.Is.
var (
	// ErrNetwork is returned when a request never produced an HTTP response.
	ErrNetwork = zerr.New("network error")

	// ErrHTTPStatus is returned when the server answered with a non-2xx status.
	ErrHTTPStatus = zerr.New("unexpected http status")

	// ErrNotFound is returned when the addressed record does not exist on the server.
	ErrNotFound = zerr.New("resource not found")

	// ErrValidation is returned when the server rejects a payload.
	ErrValidation = zerr.New("validation failed")

	// ErrDecode is returned when a response body does not match the expected shape.
	ErrDecode = zerr.New("failed to decode response")
)

var (
	// ErrInvalidID is returned when a record id is empty or cannot be placed in a URL path.
	ErrInvalidID = zerr.New("invalid id")

	// ErrInvalidPriority is returned when a priority is not one of high, medium or low.
	ErrInvalidPriority = zerr.New("invalid priority, expected 'high', 'medium' or 'low'")

	// ErrInvalidTheme is returned when a theme is not one of light, dark or system.
	ErrInvalidTheme = zerr.New("invalid theme, expected 'light', 'dark' or 'system'")

	// ErrInvalidDueDate is returned when a due date cannot be parsed.
	ErrInvalidDueDate = zerr.New("invalid due date, expected YYYY-MM-DD")

	// ErrInvalidOutputMode is returned for an unknown --output value.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected auto, tui or linear")

	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = zerr.New("update has no fields")

	// ErrQueryCanceled is returned to waiters of a request the cache dropped.
	ErrQueryCanceled = zerr.New("query canceled")

	// ErrQueryClosed is returned when a query handle is used after Close.
	ErrQueryClosed = zerr.New("query is closed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the loaded configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrPreferencesReadFailed is returned when the preference file cannot be read.
	ErrPreferencesReadFailed = zerr.New("failed to read preferences")

	// ErrPreferencesWriteFailed is returned when the preference file cannot be written.
	ErrPreferencesWriteFailed = zerr.New("failed to write preferences")

	// ErrPreferencesCorrupt is returned when the preference file is not a JSON object of strings.
	ErrPreferencesCorrupt = zerr.New("preferences file is corrupt")

	// ErrListFailed is returned by listings whose error was already rendered.
	ErrListFailed = zerr.New("listing failed")

	// ErrServerFailed is returned when the reference API server stops unexpectedly.
	ErrServerFailed = zerr.New("api server failed")
)

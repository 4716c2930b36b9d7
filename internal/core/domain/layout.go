package domain

// Default file names and environment variables.
const (
	// AppName is used for the config directory and the User-Agent.
	AppName = "smartmate"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "smartmate.yaml"

	// PreferencesFileName is the name of the preference file inside the config directory.
	PreferencesFileName = "preferences.json"

	// EnvAPIURL overrides the configured API base URL.
	EnvAPIURL = "SMARTMATE_API_URL"

	// EnvToken overrides the configured API token.
	EnvToken = "SMARTMATE_TOKEN"

	// EnvConfig points at an explicit config file, skipping discovery.
	EnvConfig = "SMARTMATE_CONFIG"
)

// Resource names as they appear in URLs and query keys.
const (
	ResourceTasks = "tasks"
	ResourceUsers = "users"
)

package ports

import "go.trai.ch/smartmate/internal/core/domain"

// ConfigLoader defines the interface for loading the client configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads smartmate.yaml from the given working directory, falling back
	// to the user config directory and then to defaults.
	Load(cwd string) (*domain.Config, error)
}

package ports

import "go.trai.ch/sho/internal/core/domain"

// ConfigLoader defines the interface for loading the session configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the config file at path. When path is empty it walks up from
	// cwd looking for sho.yaml and falls back to defaults if none is found.
	Load(path, cwd string) (domain.Config, error)
}

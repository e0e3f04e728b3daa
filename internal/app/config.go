package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PackagePath string // directory of .hcl package files
	SearchPath  string // directory extended packages are looked up under

	// Component, when set, names the component to flatten and emit.
	// Empty means validate the package and emit the build order instead.
	Component string

	// Variants holds axis=value selections applied to the emitted
	// component.
	Variants map[string]string

	// TokenContext selects the context for contextual tokens.
	TokenContext string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PackagePath == "" {
		return nil, errors.New("PackagePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

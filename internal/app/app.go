package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/weftui/weft/internal/ctxlog"
	"github.com/weftui/weft/internal/hcl"
	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry

	// loadDiags are warnings produced while loading package files.
	loadDiags model.Diagnostics
}

// New is the constructor for the main application. It loads the primary
// package and every package it extends, and returns a fully initialized
// App with its own isolated logger and merged registry.
//
// A failure to load or merge the primary package is a fatal startup error
// and panics; the CLI entrypoint recovers it into a clean exit. A failed
// load of an extended package only produces a warning: the reference is
// optional and its token paths surface individually at resolution time.
func New(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	loader := hcl.NewLoader()
	primary, err := loader.LoadDir(ctx, cfg.PackagePath)
	if err != nil {
		panic(fmt.Errorf("failed to load package: %w", err))
	}
	logger.Debug("Primary package loaded.", "package", primary.Name)

	searchPath := cfg.SearchPath
	if searchPath == "" {
		searchPath = filepath.Dir(cfg.PackagePath)
	}

	var extended []*model.Package
	for _, name := range primary.Extends {
		dir := filepath.Join(searchPath, name)
		pkg, err := loader.LoadDir(ctx, dir)
		if err != nil {
			logger.Warn("Extended package could not be loaded; continuing without it.",
				"package", name, "path", dir, "error", err)
			continue
		}
		extended = append(extended, pkg)
	}

	reg, err := registry.New(primary, extended...)
	if err != nil {
		panic(fmt.Errorf("failed to build registry: %w", err))
	}
	logger.Debug("Registry built.", "components", len(reg.Components), "tokens", len(reg.Tokens))

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		loadDiags: loader.Diagnostics(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weftui/weft/internal/compose"
	"github.com/weftui/weft/internal/ctxlog"
	"github.com/weftui/weft/internal/dag"
	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/validate"
)

// Run executes the main application logic based on the provided
// configuration: validate the merged package, then either emit the build
// order or flatten and emit the requested component.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, d := range a.loadDiags {
		a.logger.Warn("Load finding.", "finding", d.String())
	}

	pkgResult := validate.Package(a.registry)
	propsResult := validate.Props(a.registry)
	warnings := append(pkgResult.Warnings, propsResult.Warnings...)
	errors := append(pkgResult.Errors, propsResult.Errors...)

	for _, d := range warnings {
		a.logger.Warn("Validation finding.", "finding", d.String())
	}
	if len(errors) > 0 {
		for _, d := range errors {
			fmt.Fprintln(a.outW, d.String())
		}
		return fmt.Errorf("validation failed with %d error(s)", len(errors))
	}
	a.logger.Info("Package is valid.",
		"components", len(a.registry.Components),
		"warnings", len(warnings),
	)

	if cfg.Component == "" {
		return a.emitOrder(ctx)
	}
	return a.emitComponent(ctx, cfg)
}

// emitOrder writes the dependency-respecting build order as JSON.
func (a *App) emitOrder(ctx context.Context) error {
	order := dag.Order(a.registry)
	a.logger.Debug("Build order computed.", "count", len(order))

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"package": a.registry.Package.Name,
		"order":   order,
	})
}

// emitComponent flattens one component with its declared defaults and the
// requested variant selection, and writes the reference-free tree as JSON.
func (a *App) emitComponent(ctx context.Context, cfg *Config) error {
	resolver := &compose.Resolver{
		Registry:     a.registry,
		TokenContext: cfg.TokenContext,
	}

	inst := &model.Instance{Target: cfg.Component, Variants: cfg.Variants}
	def, props, slots, err := resolver.ResolveInstance(inst, nil, nil)
	if err != nil {
		return err
	}
	tree, err := resolver.Flatten(def.Name, props, slots)
	if err != nil {
		return err
	}
	for _, d := range resolver.Diagnostics() {
		a.logger.Warn("Resolution finding.", "finding", d.String())
	}
	a.logger.Info("Component flattened.", "component", def.Name)

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"package":   a.registry.Package.Name,
		"component": def.Name,
		"tree":      nodeJSON(tree),
	})
}

// Package hcl loads .hcl package files and translates them into the
// format-agnostic model. This is the only package that knows the
// authoring syntax; everything downstream works on the model alone.
package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/weftui/weft/internal/ctxlog"
	"github.com/weftui/weft/internal/fsutil"
	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/schema"
	"github.com/weftui/weft/internal/tokens"
)

// Loader parses package files and assembles them into one model.Package.
// Parse and decode failures are fatal; data-quality findings accumulate
// as warnings retrievable from Diagnostics.
type Loader struct {
	diags model.Diagnostics
}

func NewLoader() *Loader { return &Loader{} }

// Diagnostics returns the warnings accumulated across loads.
func (l *Loader) Diagnostics() model.Diagnostics { return l.diags }

// LoadDir loads every .hcl file under dir, in sorted path order, into one
// package.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*model.Package, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		logger.Error("Failed to walk package directory", "path", dir, "error", err)
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl package files under %s", dir)
	}
	logger.Debug("Found package files to load", "files", paths)

	return l.LoadFiles(ctx, paths...)
}

// LoadFiles loads the given files, in order, into one package. Exactly
// one package block must appear across the set; components and tokens
// from every file merge into it.
func (l *Loader) LoadFiles(ctx context.Context, paths ...string) (*model.Package, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()
	pkg := &model.Package{Components: make(map[string]*model.ComponentDef)}

	for _, path := range paths {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
		}

		var file schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
		}

		if err := l.merge(pkg, &file, path); err != nil {
			return nil, err
		}
		logger.Debug("Loaded package file", "file", path)
	}

	if pkg.Name == "" {
		return nil, fmt.Errorf("no package block found in %v", paths)
	}
	logger.Info("Package loaded.",
		"package", pkg.Name,
		"components", len(pkg.Components),
		"token_sources", len(pkg.TokenSources),
	)
	return pkg, nil
}

func (l *Loader) merge(pkg *model.Package, file *schema.File, path string) error {
	if file.Package != nil {
		switch {
		case pkg.Name == "":
			pkg.Name = file.Package.Name
			pkg.Version = file.Package.Version
			pkg.Extends = file.Package.Extends
		case pkg.Name != file.Package.Name:
			return fmt.Errorf("%s declares package %q, expected %q",
				path, file.Package.Name, pkg.Name)
		}
	}

	for _, block := range file.Tokens {
		l.mergeTokens(pkg, block, path)
	}

	tr := &translator{filename: path}
	for _, sc := range file.Components {
		def := tr.component(sc)
		if _, exists := pkg.Components[def.Name]; exists {
			l.diags = append(l.diags, model.Diagnostic{
				Severity: model.SeverityWarning,
				Kind:     model.DiagDuplicateComponent,
				Path:     path,
				Message:  fmt.Sprintf("component %q redefined; the later definition wins", def.Name),
			})
		}
		pkg.Components[def.Name] = def
	}
	l.diags = append(l.diags, tr.diags...)
	return nil
}

// mergeTokens folds one tokens block into the package's raw token tree.
// An unreadable source file is a warning, not a failure: the package
// stays loadable and its token references surface individually at
// resolution time.
func (l *Loader) mergeTokens(pkg *model.Package, block *schema.Tokens, path string) {
	if block.Source != "" {
		sourcePath := filepath.Join(filepath.Dir(path), block.Source)
		tree, err := tokens.LoadSource(sourcePath)
		if err != nil {
			l.diags = append(l.diags, model.Diagnostic{
				Severity: model.SeverityWarning,
				Kind:     model.DiagUnreadableSource,
				Path:     path,
				Message:  err.Error(),
			})
		} else {
			pkg.Tokens = tokens.MergeTree(pkg.Tokens, tree)
			pkg.TokenSources = append(pkg.TokenSources, sourcePath)
		}
	}

	if block.Body == nil {
		return
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		l.diags = append(l.diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Kind:     model.DiagUnreadableSource,
			Path:     path,
			Message:  diags.Error(),
		})
		return
	}
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			l.diags = append(l.diags, model.Diagnostic{
				Severity: model.SeverityWarning,
				Kind:     model.DiagUnreadableSource,
				Path:     path,
				Message:  fmt.Sprintf("token group %q must be constant: %s", name, diags.Error()),
			})
			continue
		}
		pkg.Tokens = tokens.MergeTree(pkg.Tokens, map[string]any{name: ctyToGo(value)})
	}
}

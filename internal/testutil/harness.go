// Package testutil provides shared helpers for package and integration
// tests: an inline-HCL harness that stands up a full app run against a
// temporary package directory, and a loader shortcut for tests that only
// need the parsed model.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weftui/weft/internal/app"
	"github.com/weftui/weft/internal/hcl"
	"github.com/weftui/weft/internal/model"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunIntegrationTest stands up a full app run against inline package
// files. File keys are paths relative to a temporary root; the primary
// package lives under "pkg/" and extended packages under their own
// package-name directories, which the app finds through the search path.
//
// Startup panics are recovered into the result's Err so tests can assert
// on fatal load failures the same way as on run errors.
func RunIntegrationTest(t *testing.T, files map[string]string, component string, variants map[string]string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		PackagePath: filepath.Join(tmpDir, "pkg"),
		SearchPath:  tmpDir,
		Component:   component,
		Variants:    variants,
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	buf := &SafeBuffer{}
	result := &HarnessResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked: %v", r)
			}
		}()
		a := app.New(buf, cfg)
		result.App = a
		result.Err = a.Run(context.Background(), cfg)
	}()
	result.Output = buf.String()
	return result
}

// LoadPackage parses inline HCL file contents into one model.Package.
// File keys are file names within a single temporary package directory.
func LoadPackage(t *testing.T, files map[string]string) *model.Package {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	loader := hcl.NewLoader()
	pkg, err := loader.LoadDir(context.Background(), tmpDir)
	require.NoError(t, err)
	return pkg
}

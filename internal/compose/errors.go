package compose

import (
	"fmt"
	"strings"
)

// ComponentNotFoundError reports an instance node whose target component
// does not exist in the registry. This is a structural failure the caller
// must handle; it is never swallowed into diagnostics.
type ComponentNotFoundError struct {
	Name string
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q not found", e.Name)
}

// CycleError reports that flattening re-entered a component already being
// expanded. The mandatory dependency-graph pre-check catches this earlier;
// the error exists so a skipped pre-check fails fast with a clear message
// instead of recursing without bound.
type CycleError struct {
	// Path is the expansion chain, ending with the re-entered component.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular composition: %s", strings.Join(e.Path, " -> "))
}

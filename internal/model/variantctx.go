package model

// VariantContext is the caller-chosen axis selection for one resolution
// pass. It preserves insertion order because merge semantics depend on it:
// when two active axes set the same style key, the axis set later wins.
//
// A context is ephemeral and belongs to a single resolution request; it is
// never stored on the package model.
type VariantContext struct {
	axes   []string
	values map[string]string
}

// NewVariantContext builds a context from ordered axis=value pairs.
func NewVariantContext(pairs ...[2]string) *VariantContext {
	vc := &VariantContext{values: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		vc.Set(p[0], p[1])
	}
	return vc
}

// Set records a selection for an axis. Re-setting an axis updates the value
// in place without changing its position in the iteration order.
func (vc *VariantContext) Set(axis, value string) {
	if vc.values == nil {
		vc.values = make(map[string]string)
	}
	if _, ok := vc.values[axis]; !ok {
		vc.axes = append(vc.axes, axis)
	}
	vc.values[axis] = value
}

// Get returns the selected value for an axis.
func (vc *VariantContext) Get(axis string) (string, bool) {
	if vc == nil {
		return "", false
	}
	v, ok := vc.values[axis]
	return v, ok
}

// Axes returns the axis names in iteration order. The returned slice is
// shared; callers must not modify it.
func (vc *VariantContext) Axes() []string {
	if vc == nil {
		return nil
	}
	return vc.axes
}

// Len returns the number of selected axes.
func (vc *VariantContext) Len() int {
	if vc == nil {
		return 0
	}
	return len(vc.axes)
}

// Matches reports whether every axis=value condition in when is satisfied
// by this context.
func (vc *VariantContext) Matches(when map[string]string) bool {
	for axis, want := range when {
		got, ok := vc.Get(axis)
		if !ok || got != want {
			return false
		}
	}
	return true
}

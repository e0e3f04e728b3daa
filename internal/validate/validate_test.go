package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/registry"
)

func newRegistry(t *testing.T, pkg *model.Package) *registry.Registry {
	t.Helper()
	reg, err := registry.New(pkg)
	require.NoError(t, err)
	return reg
}

func kinds(diags model.Diagnostics) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}

func TestPackage_Valid(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name:   "app",
		Tokens: map[string]any{"color": map[string]any{"primary": "#00f"}},
		Components: map[string]*model.ComponentDef{
			"button": {
				Name: "button",
				Variants: []*model.VariantAxis{
					{Name: "intent", Values: []string{"primary", "danger"}, Default: "primary"},
				},
				Props: []*model.PropDef{{Name: "label", Type: "string"}},
				Root: &model.Node{
					Kind:   "box",
					Text:   &model.PropRef{Name: "label"},
					Styles: model.StyleSet{"color": &model.TokenRef{Path: "color.primary"}},
				},
			},
		},
	})

	res := Package(reg)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestPackage_MissingToken(t *testing.T) {
	t.Parallel()

	t.Run("without fallback is an error", func(t *testing.T) {
		reg := newRegistry(t, &model.Package{
			Name: "app",
			Components: map[string]*model.ComponentDef{
				"box": {Name: "box", Root: &model.Node{
					Kind:   "box",
					Styles: model.StyleSet{"color": &model.TokenRef{Path: "color.ghost"}},
				}},
			},
		})

		res := Package(reg)
		assert.False(t, res.Valid)
		assert.Contains(t, kinds(res.Errors), model.DiagMissingToken)
	})

	t.Run("with fallback degrades to a warning", func(t *testing.T) {
		reg := newRegistry(t, &model.Package{
			Name: "app",
			Components: map[string]*model.ComponentDef{
				"box": {Name: "box", Root: &model.Node{
					Kind: "box",
					Styles: model.StyleSet{"color": &model.TokenRef{
						Path:     "color.ghost",
						Fallback: model.Str("#ccc"),
					}},
				}},
			},
		})

		res := Package(reg)
		assert.True(t, res.Valid)
		assert.Contains(t, kinds(res.Warnings), model.DiagMissingToken)
	})
}

func TestPackage_UndeclaredProp(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"box": {
				Name:  "box",
				Props: []*model.PropDef{{Name: "label"}},
				Root: &model.Node{
					Kind: "box",
					Text: &model.Computed{
						Kind: model.ComputedTernary,
						Inputs: []model.Expr{
							&model.PropRef{Name: "ghost"},
							model.Str("a"),
							model.Str("b"),
						},
					},
				},
			},
		},
	})

	res := Package(reg)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, model.DiagMissingProp, res.Errors[0].Kind)
	assert.Contains(t, res.Errors[0].Message, `"ghost"`)
}

func TestPackage_AxisNamesCountAsDeclared(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"box": {
				Name: "box",
				Variants: []*model.VariantAxis{
					{Name: "intent", Values: []string{"primary"}, Default: "primary"},
				},
				LegacyProps: map[string]model.Expr{"tone": model.Str("x")},
				Root: &model.Node{
					Kind: "box",
					Styles: model.StyleSet{
						"a": &model.PropRef{Name: "intent"},
						"b": &model.PropRef{Name: "tone"},
					},
				},
			},
		},
	})

	res := Package(reg)
	assert.True(t, res.Valid, "axis names and legacy props are referenceable")
}

func TestPackage_InvalidVariantDefault(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"box": {
				Name: "box",
				Variants: []*model.VariantAxis{
					{Name: "intent", Values: []string{"primary", "danger"}, Default: "shiny"},
				},
				Root: &model.Node{Kind: "box"},
			},
		},
	})

	res := Package(reg)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1, "an invalid default is exactly one finding")
	assert.Equal(t, model.DiagInvalidVariantDefault, res.Errors[0].Kind)
}

func TestPackage_MissingComponentReference(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"page": {Name: "page", Root: &model.Node{
				Kind:     "box",
				Children: []*model.Node{{Instance: &model.Instance{Target: "ghost"}}},
			}},
		},
	})

	res := Package(reg)
	assert.False(t, res.Valid)
	assert.Contains(t, kinds(res.Errors), model.DiagMissingComponent)
}

func TestPackage_CircularReference(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"a": {Name: "a", Root: &model.Node{
				Kind:     "box",
				Children: []*model.Node{{Instance: &model.Instance{Target: "b"}}},
			}},
			"b": {Name: "b", Root: &model.Node{
				Kind:     "box",
				Children: []*model.Node{{Instance: &model.Instance{Target: "a"}}},
			}},
		},
	})

	res := Package(reg)
	assert.False(t, res.Valid)

	var circular int
	for _, d := range res.Errors {
		if d.Kind == model.DiagCircularReference {
			circular++
		}
	}
	assert.Equal(t, 1, circular, "one loop is one finding")
}

func TestPackage_InvalidVariantOverrideWarns(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"button": {
				Name: "button",
				Variants: []*model.VariantAxis{
					{Name: "intent", Values: []string{"primary"}, Default: "primary"},
				},
				Root: &model.Node{Kind: "box"},
			},
			"page": {Name: "page", Root: &model.Node{
				Kind: "box",
				Children: []*model.Node{{
					Instance: &model.Instance{
						Target:   "button",
						Variants: map[string]string{"intent": "sparkly"},
					},
				}},
			}},
		},
	})

	res := Package(reg)
	assert.True(t, res.Valid, "an out-of-set override is usage advice, not an error")
	assert.Contains(t, kinds(res.Warnings), model.DiagInvalidVariantValue)
}

func TestPackage_UnknownExternalPackage(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"box": {Name: "box", Root: &model.Node{
				Kind:   "box",
				Styles: model.StyleSet{"color": &model.ExternalRef{Package: "ghost", Path: "color.bg"}},
			}},
		},
	})

	res := Package(reg)
	assert.False(t, res.Valid)
	assert.Contains(t, kinds(res.Errors), model.DiagMissingPackage)
}

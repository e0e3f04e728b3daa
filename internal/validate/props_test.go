package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft/internal/model"
)

func usageRegistry(t *testing.T, inst *model.Instance) *model.Package {
	t.Helper()
	return &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"button": {
				Name: "button",
				Variants: []*model.VariantAxis{
					{Name: "intent", Values: []string{"primary", "danger"}, Default: "primary"},
				},
				Props: []*model.PropDef{
					{Name: "label", Type: "string", Required: true},
					{Name: "size", Type: "string", Enum: []string{"sm", "md", "lg"}},
					{Name: "legacyTone", Type: "string", Deprecated: "use intent instead"},
				},
				Slots: []*model.SlotDef{{Name: "icon", Required: true}},
				Root:  &model.Node{Kind: "box"},
			},
			"page": {Name: "page", Root: &model.Node{
				Kind:     "box",
				Children: []*model.Node{{Instance: inst}},
			}},
		},
	}
}

func boundInstance() *model.Instance {
	return &model.Instance{
		Target: "button",
		Props:  map[string]model.Expr{"label": model.Str("Save")},
		Slots: map[string]*model.SlotBinding{
			"icon": {Text: "star", HasText: true},
		},
	}
}

func TestProps_Valid(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, usageRegistry(t, boundInstance()))
	res := Props(reg)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestProps_MissingRequiredProp(t *testing.T) {
	t.Parallel()

	inst := boundInstance()
	delete(inst.Props, "label")

	res := Props(newRegistry(t, usageRegistry(t, inst)))
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, model.DiagMissingRequiredProp, res.Errors[0].Kind)
}

func TestProps_RequiredPropSatisfiedByDefault(t *testing.T) {
	t.Parallel()

	pkg := usageRegistry(t, &model.Instance{
		Target: "button",
		Slots: map[string]*model.SlotBinding{
			"icon": {Text: "star", HasText: true},
		},
	})
	pkg.Components["button"].Props[0].Default = model.Str("OK")

	res := Props(newRegistry(t, pkg))
	assert.True(t, res.Valid, "a target-side default satisfies a required prop")
}

func TestProps_EnumViolation(t *testing.T) {
	t.Parallel()

	t.Run("static out-of-set value is an error", func(t *testing.T) {
		inst := boundInstance()
		inst.Props["size"] = model.Str("gigantic")

		res := Props(newRegistry(t, usageRegistry(t, inst)))
		assert.False(t, res.Valid)
		assert.Contains(t, kinds(res.Errors), model.DiagInvalidEnumValue)
	})

	t.Run("static in-set value passes", func(t *testing.T) {
		inst := boundInstance()
		inst.Props["size"] = model.Str("md")

		res := Props(newRegistry(t, usageRegistry(t, inst)))
		assert.True(t, res.Valid)
	})

	t.Run("dynamic binding is not checked", func(t *testing.T) {
		inst := boundInstance()
		inst.Props["size"] = &model.PropRef{Name: "whatever"}

		res := Props(newRegistry(t, usageRegistry(t, inst)))
		assert.True(t, res.Valid)
	})
}

func TestProps_DeprecatedPropWarns(t *testing.T) {
	t.Parallel()

	inst := boundInstance()
	inst.Props["legacyTone"] = model.Str("loud")

	res := Props(newRegistry(t, usageRegistry(t, inst)))
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, model.DiagDeprecated, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Message, "use intent instead")
}

func TestProps_DeprecatedComponentWarns(t *testing.T) {
	t.Parallel()

	pkg := usageRegistry(t, boundInstance())
	pkg.Components["button"].Deprecated = "superseded by action-button"

	res := Props(newRegistry(t, pkg))
	assert.True(t, res.Valid)
	assert.Contains(t, kinds(res.Warnings), model.DiagDeprecated)
}

func TestProps_MissingRequiredSlot(t *testing.T) {
	t.Parallel()

	inst := boundInstance()
	inst.Slots = nil

	res := Props(newRegistry(t, usageRegistry(t, inst)))
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, model.DiagMissingRequiredSlot, res.Errors[0].Kind)
}

func TestProps_MissingTargetSkipped(t *testing.T) {
	t.Parallel()

	pkg := &model.Package{
		Name: "app",
		Components: map[string]*model.ComponentDef{
			"page": {Name: "page", Root: &model.Node{
				Kind:     "box",
				Children: []*model.Node{{Instance: &model.Instance{Target: "ghost"}}},
			}},
		},
	}

	res := Props(newRegistry(t, pkg))
	assert.True(t, res.Valid, "missing targets are Package's finding, not Props's")
}

package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSource_YAML(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "tokens.yaml", `
color:
  primary:
    base: "#0055ff"
spacing:
  md: 16
`)

	tree, err := LoadSource(path)
	require.NoError(t, err)

	table := Flatten(tree)
	assert.Equal(t, cty.StringVal("#0055ff"), table["color.primary.base"].Value)
	assert.Equal(t, cty.NumberIntVal(16), table["spacing.md"].Value)
}

func TestLoadSource_JSON(t *testing.T) {
	t.Parallel()

	// YAML is a superset of JSON, so .json sources go through the same path.
	path := writeSource(t, "tokens.json", `{"color": {"accent": {"value": "#ff00aa"}}}`)

	tree, err := LoadSource(path)
	require.NoError(t, err)

	table := Flatten(tree)
	assert.Equal(t, cty.StringVal("#ff00aa"), table["color.accent"].Value)
}

func TestLoadSource_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadSource(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading token source")
}

func TestLoadSource_Malformed(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "bad.yaml", "color: [unclosed")

	_, err := LoadSource(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing token source")
}

func TestMergeTree(t *testing.T) {
	t.Parallel()

	dst := map[string]any{
		"color": map[string]any{
			"primary": "#111111",
			"accent":  "#222222",
		},
	}
	src := map[string]any{
		"color": map[string]any{
			"primary": "#999999",
		},
		"spacing": map[string]any{"md": 16},
	}

	merged := MergeTree(dst, src)

	colors := merged["color"].(map[string]any)
	assert.Equal(t, "#999999", colors["primary"], "source leaf wins a collision")
	assert.Equal(t, "#222222", colors["accent"], "untouched siblings survive")
	assert.Contains(t, merged, "spacing")
}

func TestMergeTree_NilDestination(t *testing.T) {
	t.Parallel()

	merged := MergeTree(nil, map[string]any{"a": 1})
	assert.Equal(t, map[string]any{"a": 1}, merged)
}

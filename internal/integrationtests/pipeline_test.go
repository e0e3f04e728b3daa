package integrationtests

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft/internal/testutil"
)

const buttonPackage = `
package "acme" {
  version = "1.0.0"
}

tokens {
  color = {
    primary = "#0055ff"
    bg = {
      contexts = { light = "#ffffff", dark = "#000000" }
      default  = "light"
    }
  }
}

component "button" {
  variant "intent" {
    values  = ["primary", "danger"]
    default = "primary"
  }

  prop "label" {
    type    = "string"
    default = "Button"
  }

  slot "icon" {}

  node "root" {
    kind = "box"

    styles {
      background = token.color.primary
      surface    = token.color.bg
    }

    node "caption" {
      kind = "text"
      text = prop.label
    }
    node "icon-slot" {
      slot = "icon"
    }
  }
}

component "toolbar" {
  node "root" {
    kind = "box"

    node "save" {
      component = "button"
      props     = { label = "Save" }
    }
  }
}
`

// emitted unwraps the JSON document the run wrote to its output. Log lines
// go to the same writer, so the document is located by its opening brace.
func emitted(t *testing.T, output string) map[string]any {
	t.Helper()
	i := strings.Index(output, "{\n")
	require.GreaterOrEqual(t, i, 0, "no JSON document in output:\n%s", output)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(output[i:]), &doc))
	return doc
}

func TestPipeline_ValidateAndOrder(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"pkg/main.hcl": buttonPackage,
	}, "", nil)
	require.NoError(t, result.Err)

	doc := emitted(t, result.Output)
	assert.Equal(t, "acme", doc["package"])
	assert.Equal(t, []any{"button", "toolbar"}, doc["order"], "dependencies come first")
}

func TestPipeline_FlattenComponent(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"pkg/main.hcl": buttonPackage,
	}, "toolbar", nil)
	require.NoError(t, result.Err)

	doc := emitted(t, result.Output)
	assert.Equal(t, "toolbar", doc["component"])

	tree := doc["tree"].(map[string]any)
	children := tree["children"].([]any)
	require.Len(t, children, 1)

	buttonRoot := children[0].(map[string]any)
	styles := buttonRoot["styles"].(map[string]any)
	assert.Equal(t, "#0055ff", styles["background"], "token reference resolved")
	assert.Equal(t, "#ffffff", styles["surface"], "contextual token resolved to its default")

	caption := buttonRoot["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "Save", caption["text"], "instance binding flowed into the subtree")
}

func TestPipeline_TokenContextSelection(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"pkg/main.hcl": buttonPackage,
	}, "button", nil)
	require.NoError(t, result.Err)

	doc := emitted(t, result.Output)
	tree := doc["tree"].(map[string]any)
	styles := tree["styles"].(map[string]any)
	assert.Equal(t, "#ffffff", styles["surface"])
}

func TestPipeline_ValidationFailureStopsRun(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"pkg/main.hcl": `
package "acme" {}
component "box" {
  node "root" {
    kind = "box"
    styles { color = token.color.ghost }
  }
}
`,
	}, "box", nil)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "validation failed")
	assert.Contains(t, result.Output, "missing-token")
}

func TestPipeline_ExtendedPackage(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"base/main.hcl": `
package "base" {}
tokens {
  color = { accent = "#ff00aa" }
}
component "badge" {
  node "root" { kind = "box" }
}
`,
		"pkg/main.hcl": `
package "acme" {
  extends = ["base"]
}
component "card" {
  node "root" {
    kind = "box"
    styles {
      highlight = token.color.accent
      pinned    = pkg.base.color.accent
    }
    node "status" { component = "badge" }
  }
}
`,
	}

	result := testutil.RunIntegrationTest(t, files, "card", nil)
	require.NoError(t, result.Err)

	doc := emitted(t, result.Output)
	tree := doc["tree"].(map[string]any)
	styles := tree["styles"].(map[string]any)
	assert.Equal(t, "#ff00aa", styles["highlight"], "extended tokens merge into the main table")
	assert.Equal(t, "#ff00aa", styles["pinned"], "qualified references hit the package's own table")
}

func TestPipeline_MissingExtendedPackageIsNotFatal(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"pkg/main.hcl": `
package "acme" {
  extends = ["ghost"]
}
component "box" {
  node "root" { kind = "box" }
}
`,
	}, "", nil)

	require.NoError(t, result.Err, "a missing extended package only warns")
	assert.Contains(t, result.Output, "ghost")
}

package tokens

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSource reads a token-source file into the raw nested table. YAML is
// a superset of JSON, so .json sources parse through the same decoder.
func LoadSource(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token source %s: %w", path, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing token source %s: %w", path, err)
	}
	return tree, nil
}

// MergeTree deep-merges src into dst and returns dst. Groups merge
// recursively; on a leaf collision src wins. dst may be nil.
func MergeTree(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		srcGroup, srcIsGroup := value.(map[string]any)
		dstGroup, dstIsGroup := dst[key].(map[string]any)
		if srcIsGroup && dstIsGroup {
			dst[key] = MergeTree(dstGroup, srcGroup)
			continue
		}
		dst[key] = value
	}
	return dst
}

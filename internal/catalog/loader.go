package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the layout of a categories override file:
//
//	video: [mp4, webm]
//	code: [go, rs]
type fileFormat map[Category][]string

// LoadTable reads extension lists from a YAML file. Categories missing from the
// file keep their built-in lists. An empty path returns the default table.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse categories file %s: %w", path, err)
	}

	lists := DefaultExtensions()
	for cat, exts := range parsed {
		if !isKnown(cat) {
			return nil, fmt.Errorf("categories file %s: unknown category %q", path, cat)
		}
		lists[cat] = exts
	}

	return NewTable(lists), nil
}

func isKnown(cat Category) bool {
	for _, c := range Priority {
		if c == cat {
			return true
		}
	}
	return false
}

// Package seed reads the starter content new boards are created with.
package seed

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads a seed file from disk.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the seed file. Both the native layout and a
// Homepage bookmarks.yaml are accepted.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML. A top-level mapping is the native layout, a
// top-level sequence a Homepage bookmarks file.
func Parse(data []byte) (File, error) {
	data = stripTemplateVariables(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return File{}, nil
	}

	switch top := root.Content[0]; top.Kind {
	case yaml.MappingNode:
		var f File
		if err := top.Decode(&f); err != nil {
			return File{}, fmt.Errorf("failed to decode seed: %w", err)
		}
		return f, nil
	case yaml.SequenceNode:
		var h HomepageBookmarks
		if err := top.Decode(&h); err != nil {
			return File{}, fmt.Errorf("failed to decode homepage bookmarks: %w", err)
		}
		return h.toFile(), nil
	default:
		return File{}, fmt.Errorf("unexpected seed layout at line %d", top.Line)
	}
}

// stripTemplateVariables blanks Homepage template variables
// ({{HOMEPAGE_VAR_...}}) so the YAML stays parseable.
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}

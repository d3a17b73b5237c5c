package report

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gxpassess/pkg/pathutil"
)

// GuidanceFile is the YAML layout of a guidance override file. Entries
// replace the built-in guidance of the same area; areas not listed keep the
// built-in text.
type GuidanceFile struct {
	Default *Guidance           `yaml:"default,omitempty"`
	Areas   map[string]Guidance `yaml:"areas"`
}

// LoadGuidance reads a guidance override file and merges it over
// BuiltinGuidance and DefaultGuidance.
func LoadGuidance(path string) (map[string]Guidance, Guidance, error) {
	validPath, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, Guidance{}, fmt.Errorf("invalid guidance path: %w", err)
	}
	data, err := os.ReadFile(validPath) //nolint:gosec // path validated above
	if err != nil {
		return nil, Guidance{}, fmt.Errorf("reading guidance file: %w", err)
	}
	return ParseGuidance(data)
}

// ParseGuidance decodes a guidance override document.
func ParseGuidance(data []byte) (map[string]Guidance, Guidance, error) {
	var file GuidanceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, Guidance{}, fmt.Errorf("parsing guidance YAML: %w", err)
	}

	table := maps.Clone(BuiltinGuidance)
	for id, g := range file.Areas {
		if err := g.validate(); err != nil {
			return nil, Guidance{}, fmt.Errorf("guidance for %s: %w", id, err)
		}
		table[id] = g
	}

	fallback := DefaultGuidance
	if file.Default != nil {
		fallback = *file.Default
	}
	return table, fallback, nil
}

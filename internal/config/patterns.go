package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Patterns extends the built-in recognition grammar with project-specific
// markers. Loaded from .archview/patterns.toml when present.
type Patterns struct {
	// ServiceMarkers are extra decorator literals recognized as services,
	// e.g. "@Processor".
	ServiceMarkers []string `toml:"serviceMarkers"`
	// GatewayMarkers are extra decorator literals recognized as gateways.
	GatewayMarkers []string `toml:"gatewayMarkers"`
	// PersistenceServices are extra service identifiers treated as
	// persistence access, searched for as raw substrings.
	PersistenceServices []string `toml:"persistenceServices"`
}

// LoadPatterns reads .archview/patterns.toml under the project root. A
// missing file yields empty patterns, not an error.
func LoadPatterns(root string) (*Patterns, error) {
	return LoadPatternsFrom(Dir(root))
}

// LoadPatternsFrom reads patterns.toml from an explicit state directory.
func LoadPatternsFrom(dir string) (*Patterns, error) {
	path := filepath.Join(dir, "patterns.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Patterns{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p Patterns
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

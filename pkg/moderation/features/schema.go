package features

import (
	"errors"
	"fmt"
	"strings"
)

const FallbackSchemaVersion = "fallback"

// Schema is the ordered list of feature names a model set was trained with.
type Schema struct {
	Version string
	Names   []string
}

func NewSchema(version string, names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, errors.New("feature schema is empty")
	}
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New("feature schema contains an empty name")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("feature schema lists %q twice", name)
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return &Schema{Version: version, Names: cleaned}, nil
}

// Unknown returns the schema names the extractor cannot produce; they are emitted as 0.
func (s *Schema) Unknown() []string {
	known := make(map[string]struct{}, len(FallbackOrder))
	for _, name := range FallbackOrder {
		known[name] = struct{}{}
	}
	var unknown []string
	for _, name := range s.Names {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

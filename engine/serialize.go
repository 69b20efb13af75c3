package engine

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode serializes result per cfg.Format ("json", the default, or
// "yaml"). Both Finding and Result carry matching json/yaml tags, so
// the wire shape is identical in content, differing only in syntax.
func Encode(result *Result, cfg RunConfig) ([]byte, error) {
	switch cfg.Format {
	case "", "json":
		return json.MarshalIndent(result, "", "  ")
	case "yaml":
		return yaml.Marshal(result)
	default:
		return nil, fmt.Errorf("engine: unknown output format %q", cfg.Format)
	}
}

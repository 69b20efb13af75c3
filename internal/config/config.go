// Package config loads the a11yscan run configuration from a TOML
// file, layering the file's values over the engine defaults
// (emergent-company-specmcp's internal/config.Load). There is no
// per-field flag layer on top.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/a11yscan/engine/engine"
)

// DefaultFileName is the config file a11yscan looks for in the
// current directory when no --config flag is given.
const DefaultFileName = ".a11yscan.toml"

// Load builds an engine.RunConfig starting from engine.DefaultRunConfig,
// layering values from path on top. path may be empty, in which case
// DefaultFileName is tried in the current directory; a missing file in
// that case is not an error, since the config file is optional.
func Load(path string) (engine.RunConfig, error) {
	cfg := engine.DefaultRunConfig()

	resolved := path
	if resolved == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			resolved = DefaultFileName
		}
	}
	if resolved == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(resolved, &cfg); err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", resolved, err)
	}
	return cfg, nil
}

package engine

import "github.com/a11yscan/engine/finding"

// RunConfig configures one engine.Run invocation. Every field is
// loaded from a TOML file by internal/config; no CLI flag overrides
// an individual field. It carries yaml tags too so a run's effective
// configuration can be echoed back in a report alongside its findings.
type RunConfig struct {
	// IncludePatterns/ExcludePatterns are doublestar glob patterns
	// evaluated against a source's path relative to the bundle root.
	// A source matching any ExcludePatterns entry is dropped even if
	// it also matches IncludePatterns.
	IncludePatterns []string `json:"include_patterns,omitempty" toml:"include_patterns" yaml:"include_patterns,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty" toml:"exclude_patterns" yaml:"exclude_patterns,omitempty"`

	// Scope selects whether DocumentModel integration runs (page/
	// workspace) or every script is analyzed independently (file).
	Scope finding.Scope `json:"scope" toml:"scope" yaml:"scope"`

	// MinSeverity drops findings below this severity from the result.
	MinSeverity finding.Severity `json:"min_severity" toml:"min_severity" yaml:"min_severity"`

	// DisabledKinds removes specific detectors by name from the
	// default registry (rules.Detector.Name()), letting a project
	// silence one check without raising MinSeverity for everything.
	DisabledKinds []string `json:"disabled_detectors,omitempty" toml:"disabled_detectors" yaml:"disabled_detectors,omitempty"`

	// Format selects the serialization used by Encode: "json"
	// (default) or "yaml".
	Format string `json:"format" toml:"format" yaml:"format"`
}

// DefaultRunConfig mirrors the defaults a caller gets with no
// .a11yscan.toml file present; internal/config layers the file's
// values on top of these.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		IncludePatterns: []string{"**/*.html", "**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"},
		ExcludePatterns: []string{"**/node_modules/**", "**/vendor/**"},
		Scope:           finding.ScopePage,
		MinSeverity:     finding.SeverityInfo,
		Format:          "json",
	}
}

// Package finding defines the accessibility analyzer's output record
// types: Finding, Confidence, Location, Fix, and the closed catalogue
// of finding kinds a detector is allowed to emit.
package finding

// Severity ranks a Finding for display and minimum-severity filtering.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// severityRank orders Severity values from most to least urgent; lower
// is more urgent. Used by SortBySeverity and by the rule registry's
// min-severity filter.
var severityRank = map[Severity]int{
	SeverityError:   0,
	SeverityWarning: 1,
	SeverityInfo:    2,
}

// Rank returns s's sort position (0 = most urgent). Unknown severities
// sort last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// ConfidenceLevel expresses how sure a detector is about a Finding,
// derived from tree completeness and analysis scope (spec.md §4.5).
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// Scope is the analysis scope that produced a Finding, tracking the
// bundle-level scope a SourceBundle declares.
type Scope string

const (
	ScopeFile      Scope = "file"
	ScopePage      Scope = "page"
	ScopeWorkspace Scope = "workspace"
)

// Confidence records a detector's confidence level, the human-readable
// reason behind it, and the scope of analysis that produced it.
type Confidence struct {
	Level  ConfidenceLevel `json:"level" yaml:"level"`
	Reason string          `json:"reason" yaml:"reason"`
	Scope  Scope           `json:"scope" yaml:"scope"`
}

// Location is a source position, grounded on CodeLocation's
// file/line/column shape with an optional span length.
type Location struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Length int    `json:"length,omitempty" yaml:"length,omitempty"`
}

// Fix is an optional, non-applied suggested remediation: a description,
// replacement code, and the location it would replace.
type Fix struct {
	Description string   `json:"description" yaml:"description"`
	Code        string   `json:"code" yaml:"code"`
	Location    Location `json:"location" yaml:"location"`
}

// Finding is one accessibility analyzer result.
type Finding struct {
	Kind             Kind       `json:"kind" yaml:"kind"`
	Severity         Severity   `json:"severity" yaml:"severity"`
	Message          string     `json:"message" yaml:"message"`
	Location         Location   `json:"location" yaml:"location"`
	RelatedLocations []Location `json:"related_locations,omitempty" yaml:"related_locations,omitempty"`
	WCAGCriteria     []string   `json:"wcag_criteria,omitempty" yaml:"wcag_criteria,omitempty"`
	Confidence       Confidence `json:"confidence" yaml:"confidence"`
	Fix              *Fix       `json:"fix,omitempty" yaml:"fix,omitempty"`

	// RunID correlates this Finding with the engine run that produced
	// it; stamped by the engine, not by the detector.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// KindValidator is the fixed kind used by the Diagnostics stream
// (DOM/CSS/model validator warnings), distinct from the rule-engine
// catalogue in kind.go.
const KindValidator Kind = "validator"

// NewValidatorDiagnostic builds a Finding for the Diagnostics sidecar
// stream: always kind=validator, always file-scope, confidence derived
// from the originating ErrorKind rather than tree completeness.
func NewValidatorDiagnostic(severity Severity, message string, loc Location, reason string) Finding {
	return Finding{
		Kind:     KindValidator,
		Severity: severity,
		Message:  message,
		Location: loc,
		Confidence: Confidence{
			Level:  ConfidenceLow,
			Reason: reason,
			Scope:  ScopeFile,
		},
	}
}

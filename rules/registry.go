// Package rules implements the analyzer framework (spec.md §4.5): a
// Detector interface, a functional-options Registry that accumulates
// detectors the way analyzer.Option accumulates plugins onto
// *analyzer.Analyzer, and the concrete rule families that walk a
// DocumentModel or a bare HandlerModel to emit Findings.
package rules

import (
	"context"
	"fmt"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/docmodel"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/transform"
)

// AnalyzerContext is the input every Detector receives (spec.md §4.5):
// a document-scope model when available, a file-scope fallback action
// model otherwise, and the scope label to stamp onto emitted findings'
// confidence. Programs carries the full tagged Action tree (post
// transform.TagCallPatterns) for every JavaScript/TypeScript file in
// this scope, for detectors that need whole-file call-site analysis
// (e.g. matching a setInterval call against any clearInterval call)
// rather than just the addEventListener bindings HandlerModel indexes.
type AnalyzerContext struct {
	DocumentModel *docmodel.DocumentModel
	ActionModel   *transform.HandlerModel
	Programs      []*actionir.Action
	Scope         finding.Scope
}

// DocumentScope reports whether ac prefers document-scope analysis
// (spec.md §4.5's dual-mode pattern): document_model supplied.
func (ac *AnalyzerContext) DocumentScope() bool {
	return ac != nil && ac.DocumentModel != nil
}

// Detector is one accessibility rule. Detect returns an ordered list
// of findings for the given context; a non-nil error means the
// detector could not run at all for this context (distinct from
// running and finding nothing), and the caller attaches it to the
// Diagnostics sidecar stream rather than failing the whole run
// (spec.md §7's "bounded to the smallest failing unit" policy).
type Detector interface {
	Name() string
	Detect(ctx context.Context, ac *AnalyzerContext) ([]finding.Finding, error)
}

// Option configures a Registry, following analyzer.Option's functional-
// options convention (WithPlugin, WithMacher, ...).
type Option func(*Registry)

// WithDetector registers one or more detectors.
func WithDetector(d ...Detector) Option {
	return func(r *Registry) { r.detectors = append(r.detectors, d...) }
}

// WithMinSeverity drops findings less urgent than sev (error is most
// urgent, then warning, then info) from Run's output.
func WithMinSeverity(sev finding.Severity) Option {
	return func(r *Registry) { r.minSeverity = sev }
}

// Registry accumulates Detectors and runs them over one
// AnalyzerContext, mirroring analyzer.Analyzer's plugin accumulation.
type Registry struct {
	detectors   []Detector
	minSeverity finding.Severity
}

// NewRegistry constructs a Registry with no minimum severity filter
// (everything from info up is kept) unless overridden by WithMinSeverity.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{minSeverity: finding.SeverityInfo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Detectors returns the registered detectors, in registration order.
func (r *Registry) Detectors() []Detector { return r.detectors }

// Run executes every registered detector against ac, in registration
// order, collecting findings and diagnostics. A detector error never
// aborts the run: it is recorded as a validator diagnostic and the
// remaining detectors still run (spec.md §7 propagation policy).
func (r *Registry) Run(ctx context.Context, ac *AnalyzerContext) ([]finding.Finding, []finding.Finding, error) {
	var findings, diagnostics []finding.Finding
	for _, d := range r.detectors {
		if err := ctx.Err(); err != nil {
			return findings, diagnostics, err
		}
		results, err := d.Detect(ctx, ac)
		if err != nil {
			diagnostics = append(diagnostics, finding.NewValidatorDiagnostic(
				finding.SeverityWarning,
				fmt.Sprintf("detector %q failed: %v", d.Name(), err),
				finding.Location{},
				finding.ModelError.DowngradeReason(d.Name()),
			))
			continue
		}
		for _, f := range results {
			if f.Severity.Rank() > r.minSeverity.Rank() {
				continue
			}
			findings = append(findings, f)
		}
	}
	finding.Sort(findings)
	finding.Sort(diagnostics)
	return findings, diagnostics, nil
}

// locationFromSpan adapts an actionir.Span (or any file/line/col
// triple) into a finding.Location.
func locationFromSpan(file string, line, col, length int) finding.Location {
	return finding.Location{File: file, Line: line, Column: col, Length: length}
}

package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"go.uber.org/zap"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/docmodel"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/rules"
	"github.com/a11yscan/engine/transform"
)

// Result is the outcome of one engine.Run invocation.
type Result struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	Findings    []finding.Finding `json:"findings" yaml:"findings"`
	Diagnostics []finding.Finding `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Option configures a Run invocation, following the teacher's
// functional-options convention (analyzer.Option).
type Option func(*runOptions)

type runOptions struct {
	logger   *zap.Logger
	registry *rules.Registry
}

// WithLogger attaches a logger; Run defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *runOptions) { o.logger = l }
}

// WithRegistry overrides the default detector registry, letting a
// caller test against a subset of detectors without rebuilding the
// rest of Run.
func WithRegistry(r *rules.Registry) Option {
	return func(o *runOptions) { o.registry = r }
}

// Run transforms every script in bundle into Action IR, integrates it
// with bundle's DOM fragments and CSS models into a DocumentModel
// (unless cfg.Scope is file-scope), and runs the detector registry
// over the result. A context.Context cancellation is checked between
// scripts, mirroring analyzer/package.go's ctx-threaded AnalyzeDir.
func Run(ctx context.Context, bundle *SourceBundle, cfg RunConfig, opts ...Option) (*Result, error) {
	o := &runOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	registry := o.registry
	if registry == nil {
		registry = defaultRegistryFor(cfg)
	}

	runID := uuid.NewString()
	result := &Result{RunID: runID}

	handlerModels := make([]*transform.HandlerModel, 0, len(bundle.Scripts))
	programs := make([]*actionir.Action, 0, len(bundle.Scripts))

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	for _, script := range bundle.Scripts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		tree, err := parser.ParseCtx(ctx, nil, script.Src)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, finding.NewValidatorDiagnostic(
				finding.SeverityWarning,
				fmt.Sprintf("failed to parse %s: %v", script.File, err),
				finding.Location{File: script.File},
				finding.ParseError.DowngradeReason(script.File),
			))
			continue
		}

		tr := transform.New(script.File, script.Src)
		actionTree, warnings := tr.Transform(tree.RootNode())
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, w.String())
		}
		transform.TagCallPatterns(actionTree.Root)

		handlerModels = append(handlerModels, transform.BuildHandlerModel(script.File, actionTree.Root))
		programs = append(programs, actionTree.Root)

		o.logger.Debug("transformed script", zap.String("file", script.File))
	}

	var contexts []*rules.AnalyzerContext
	if cfg.Scope == finding.ScopeFile {
		// File-scope: one AnalyzerContext per script, mirroring the
		// teacher's AnalyzeSourceCode (per-file) entry point. Each
		// script sees only its own Program for whole-tree call-site
		// detectors, and no DocumentModel is built.
		for i, hm := range handlerModels {
			contexts = append(contexts, &rules.AnalyzerContext{
				ActionModel: hm,
				Programs:    []*actionir.Action{programs[i]},
				Scope:       cfg.Scope,
			})
		}
	} else {
		// Page/workspace scope: a single merged DocumentModel pass,
		// mirroring AnalyzeFile's aggregate entry point.
		ac := &rules.AnalyzerContext{Programs: programs, Scope: cfg.Scope}
		if len(handlerModels) > 0 || len(bundle.Fragments) > 0 || len(bundle.Styles) > 0 {
			dm := docmodel.New(docmodel.Scope(cfg.Scope), bundle.Fragments, handlerModels, bundle.Styles)
			dm.Merge()
			ac.DocumentModel = dm
		}
		contexts = append(contexts, ac)
	}

	for _, ac := range contexts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		findings, diagnostics, err := registry.Run(ctx, ac)
		if err != nil {
			return result, err
		}
		for i := range findings {
			findings[i].RunID = runID
		}
		for i := range diagnostics {
			diagnostics[i].RunID = runID
		}
		result.Findings = append(result.Findings, findings...)
		result.Diagnostics = append(result.Diagnostics, diagnostics...)
	}

	finding.Sort(result.Findings)
	finding.Sort(result.Diagnostics)
	return result, nil
}

// defaultRegistryFor builds the standard registry, applying cfg's
// severity floor and stripping any detector named in DisabledKinds.
func defaultRegistryFor(cfg RunConfig) *rules.Registry {
	disabled := make(map[string]bool, len(cfg.DisabledKinds))
	for _, name := range cfg.DisabledKinds {
		disabled[name] = true
	}

	minSeverity := cfg.MinSeverity
	if minSeverity == "" {
		minSeverity = finding.SeverityInfo
	}

	var kept []rules.Detector
	for _, d := range rules.DefaultDetectors() {
		if !disabled[d.Name()] {
			kept = append(kept, d)
		}
	}
	return rules.NewRegistry(rules.WithDetector(kept...), rules.WithMinSeverity(minSeverity))
}

package rules

import (
	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/finding"
)

// spanLocation adapts an actionir.Span into a finding.Location.
func spanLocation(span actionir.Span) finding.Location {
	return finding.Location{File: span.File, Line: span.StartLine, Column: span.StartCol}
}

// documentConfidence implements spec.md §4.5's completeness-to-
// confidence mapping for a document-scope finding.
func documentConfidence(ac *AnalyzerContext, reason string) finding.Confidence {
	completeness := ac.DocumentModel.TreeCompleteness()
	return finding.ConfidenceForCompleteness(completeness, reason, finding.ScopePage)
}

// fileConfidence is the fixed MEDIUM confidence a detector reports
// when it falls back to file-scope analysis over a bare HandlerModel
// (spec.md §4.5's dual-mode pattern).
func fileConfidence(reason string) finding.Confidence {
	return finding.Confidence{Level: finding.ConfidenceMedium, Reason: reason, Scope: finding.ScopeFile}
}

// heuristicConfidence is the LOW confidence a detector reports when it
// can only apply a static heuristic with no structural backing
// (spec.md §4.5: "heuristic-only detectors downgrade to LOW").
func heuristicConfidence(reason string, scope finding.Scope) finding.Confidence {
	return finding.Confidence{Level: finding.ConfidenceLow, Reason: reason, Scope: scope}
}

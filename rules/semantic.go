package rules

import (
	"context"

	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/transform"
)

// nonSemanticTags are generic containers commonly repurposed as
// interactive controls instead of the native element with the right
// semantics built in.
var nonSemanticTags = map[string]bool{"div": true, "span": true}

// NonSemanticButtonDetector flags a div/span with a click handler and
// no role="button", which screen readers announce as plain text
// instead of an actionable control (WCAG 4.1.2).
type NonSemanticButtonDetector struct{}

func (NonSemanticButtonDetector) Name() string { return "non-semantic-button" }

func (d NonSemanticButtonDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ectx := range ac.DocumentModel.Contexts() {
		el := ectx.Ref.Element
		if !nonSemanticTags[el.TagName] || !ectx.HasClickHandler {
			continue
		}
		if role, ok := el.Attr("role"); ok && role == "button" {
			continue
		}
		if navigatesHandlers(ectx.Handlers) {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindNonSemanticButton,
			Severity:     finding.SeverityWarning,
			Message:      "clickable " + el.TagName + " has no role=\"button\"",
			Location:     domLocation(el.Loc),
			WCAGCriteria: []string{"4.1.2"},
			Confidence:   documentConfidence(ac, "div/span carries a click handler with no role=\"button\" attribute"),
		})
	}
	return out, nil
}

// NonSemanticLinkDetector flags a non-anchor element whose click
// handler navigates the page, which should be a real <a href> so
// assistive tech exposes it as a link with the usual keyboard/context-
// menu affordances (WCAG 4.1.2).
type NonSemanticLinkDetector struct{}

func (NonSemanticLinkDetector) Name() string { return "non-semantic-link" }

func (d NonSemanticLinkDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ectx := range ac.DocumentModel.Contexts() {
		el := ectx.Ref.Element
		if el.TagName == "a" || !ectx.HasClickHandler {
			continue
		}
		if !navigatesHandlers(ectx.Handlers) {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindNonSemanticLink,
			Severity:     finding.SeverityWarning,
			Message:      "element navigates the page on click but is not an <a> element",
			Location:     domLocation(el.Loc),
			WCAGCriteria: []string{"4.1.2"},
			Confidence:   documentConfidence(ac, "click handler assigns window.location/location.href on a non-anchor element"),
		})
	}
	return out, nil
}

func navigatesHandlers(handlers []transform.HandlerBinding) bool {
	for _, h := range handlers {
		if h.Event == "click" && h.Handler != nil && navigatesUnconditionally(h.Handler) {
			return true
		}
	}
	return false
}

// OrphanedEventHandlerDetector flags a statically-resolvable handler
// selector that matches zero elements in the merged document: the
// handler can never fire (spec.md §7's ReferenceError, surfaced as a
// finding rather than an engine error).
type OrphanedEventHandlerDetector struct{}

func (OrphanedEventHandlerDetector) Name() string { return "orphaned-event-handler" }

func (d OrphanedEventHandlerDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() || ac.ActionModel == nil {
		return nil, nil
	}
	var out []finding.Finding
	for _, b := range ac.ActionModel.Bindings() {
		if b.Selector == "" {
			continue
		}
		if len(ac.DocumentModel.QuerySelectorAll(b.Selector)) > 0 {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindOrphanedEventHandler,
			Severity:     finding.SeverityWarning,
			Message:      "handler target selector " + b.Selector + " matches no element in the document",
			Location:     spanLocation(b.Span),
			WCAGCriteria: []string{"4.1.2"},
			Confidence:   documentConfidence(ac, "selector resolved statically from the handler call site matches zero elements in the merged document"),
		})
	}
	return out, nil
}

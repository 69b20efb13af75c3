package rules

import (
	"context"
	"fmt"

	"github.com/a11yscan/engine/finding"
)

// ariaRefAttrs mirrors docmodel's cross-fragment reference attributes.
var ariaRefAttrs = []string{"aria-labelledby", "aria-describedby", "aria-controls"}

// AriaReferenceNotFoundDetector flags an aria-labelledby/describedby/
// controls value that names no element id anywhere in the document
// (WCAG 4.1.2). Document-scope only: resolving a reference requires
// seeing every fragment at once.
type AriaReferenceNotFoundDetector struct{}

func (AriaReferenceNotFoundDetector) Name() string { return "aria-reference-not-found" }

func (d AriaReferenceNotFoundDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ref := range ac.DocumentModel.GetAllElements() {
		el := ref.Element
		for _, attr := range ariaRefAttrs {
			v, ok := el.Attr(attr)
			if !ok || v == "" {
				continue
			}
			if ac.DocumentModel.GetElementByID(v) != nil {
				continue
			}
			out = append(out, finding.Finding{
				Kind:         finding.KindAriaReferenceNotFound,
				Severity:     finding.SeverityError,
				Message:      fmt.Sprintf("%s references id %q which does not exist", attr, v),
				Location:     domLocation(el.Loc),
				WCAGCriteria: []string{"4.1.2"},
				Confidence:   documentConfidence(ac, "reference attribute value does not match any element id across the merged document"),
			})
		}
	}
	return out, nil
}

// MissingAriaConnectionDetector flags a toggle-style element
// (aria-expanded present) with no aria-controls pointing to the region
// it expands/collapses, leaving assistive tech unable to discover the
// relationship (WCAG 1.3.1, 4.1.2).
type MissingAriaConnectionDetector struct{}

func (MissingAriaConnectionDetector) Name() string { return "missing-aria-connection" }

func (d MissingAriaConnectionDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ref := range ac.DocumentModel.GetAllElements() {
		el := ref.Element
		if _, hasExpanded := el.Attr("aria-expanded"); !hasExpanded {
			continue
		}
		if controls, ok := el.Attr("aria-controls"); ok && controls != "" {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindMissingAriaConnection,
			Severity:     finding.SeverityWarning,
			Message:      "element toggles aria-expanded but has no aria-controls pointing to the controlled region",
			Location:     domLocation(el.Loc),
			WCAGCriteria: []string{"1.3.1", "4.1.2"},
			Confidence:   documentConfidence(ac, "aria-expanded present with no aria-controls attribute on the same element"),
		})
	}
	return out, nil
}

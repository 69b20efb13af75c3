package rules

import (
	"context"
	"strings"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/finding"
)

// dynamicContentSuffixes are callee/assignment-target suffixes that
// mutate an element's rendered text content.
var dynamicContentSuffixes = []string{".textContent", ".innerHTML", ".innerText"}

// MissingLiveRegionDetector flags an element whose content is mutated
// from a handler or timer callback but that carries no aria-live
// attribute, so assistive tech never announces the update (WCAG 4.1.3).
type MissingLiveRegionDetector struct{}

func (MissingLiveRegionDetector) Name() string { return "missing-live-region" }

func (d MissingLiveRegionDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, p := range ac.Programs {
		actionir.Walk(p, func(a *actionir.Action) bool {
			if a.Kind != actionir.KindAssign {
				return true
			}
			left := a.ChildByRole(actionir.RoleLeft)
			if left.Kind != actionir.KindMemberAccess {
				return true
			}
			chain := resolvedMemberChain(left)
			if !hasDynamicContentSuffix(chain) {
				return true
			}
			target := resolvedMemberChain(left.ChildByRole(actionir.RoleObject))
			if target == "" {
				return true
			}
			if ac.DocumentScope() && elementHasAriaLive(ac, target) {
				return true
			}
			out = append(out, finding.Finding{
				Kind:         finding.KindMissingLiveRegion,
				Severity:     finding.SeverityWarning,
				Message:      "element content is updated dynamically with no aria-live region to announce it",
				Location:     spanLocation(a.Span),
				WCAGCriteria: []string{"4.1.3"},
				Confidence:   bindingConfidence(ac, "textContent/innerHTML assignment found with no resolvable aria-live ancestor"),
			})
			return true
		})
	}
	return out, nil
}

func hasDynamicContentSuffix(chain string) bool {
	for _, suf := range dynamicContentSuffixes {
		if strings.HasSuffix(chain, suf) {
			return true
		}
	}
	return false
}

// elementHasAriaLive reports whether some element in the document
// whose selector set includes target (as an id or class) carries
// aria-live itself. aria-live on an ancestor is not considered.
func elementHasAriaLive(ac *AnalyzerContext, target string) bool {
	for _, ref := range ac.DocumentModel.GetAllElements() {
		if _, ok := ref.Element.Attr("aria-live"); !ok {
			continue
		}
		for _, sel := range ref.Element.SelectorSet() {
			if strings.TrimLeft(sel, "#.") == target {
				return true
			}
		}
	}
	return false
}

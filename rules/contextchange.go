package rules

import (
	"context"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/transform"
)

// navigationTargets are assignment targets that move the browser to a
// new location.
var navigationTargets = map[string]bool{
	"window.location": true, "location.href": true, "document.location": true, "location": true,
}

// UnexpectedNavigationDetector flags a change/input handler that
// navigates the page as a side effect, which is disorienting when it
// happens without the user submitting anything (spec.md §8 scenario 4,
// WCAG 3.2.2).
type UnexpectedNavigationDetector struct{}

func (UnexpectedNavigationDetector) Name() string { return "unexpected-navigation" }

func (d UnexpectedNavigationDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, b := range allBindings(ac) {
		if b.Event != "change" && b.Event != "input" || b.Handler == nil {
			continue
		}
		if !navigatesUnconditionally(b.Handler) {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindUnexpectedNavigation,
			Severity:     finding.SeverityWarning,
			Message:      "change handler navigates the page without user-initiated submission",
			Location:     spanLocation(b.Span),
			WCAGCriteria: []string{"3.2.2"},
			Confidence:   bindingConfidence(ac, "handler assigns window.location/location.href as a direct side effect of a change event"),
		})
	}
	return out, nil
}

func navigatesUnconditionally(body *actionir.Action) bool {
	found := false
	actionir.Walk(body, func(a *actionir.Action) bool {
		if found || a.Kind != actionir.KindAssign {
			return !found
		}
		left := a.ChildByRole(actionir.RoleLeft)
		chain := identifierOrMemberChain(left)
		if navigationTargets[chain] {
			found = true
		}
		return !found
	})
	return found
}

func identifierOrMemberChain(n *actionir.Action) string {
	if n == nil {
		return ""
	}
	if n.Kind == actionir.KindIdentifier {
		return identifierName(n)
	}
	return resolvedMemberChain(n)
}

// UnexpectedFormSubmitDetector flags a button with no explicit type
// attribute inside a form, wired with a click handler that never calls
// preventDefault: the handler's custom behavior fires and then the
// button's native type=submit behavior also fires, submitting the form
// unexpectedly (WCAG 3.2.2).
type UnexpectedFormSubmitDetector struct{}

func (UnexpectedFormSubmitDetector) Name() string { return "unexpected-form-submit" }

func (d UnexpectedFormSubmitDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, frag := range ac.DocumentModel.Fragments {
		for _, form := range frag.QuerySelectorAll("form") {
			for _, el := range frag.GetAllElements() {
				if el.TagName != "button" || !isDescendantOf(frag, form, el) {
					continue
				}
				if _, ok := el.Attr("type"); ok {
					continue
				}
				ectx := ac.DocumentModel.Context(frag, el)
				if ectx == nil || !ectx.HasClickHandler {
					continue
				}
				if anyClickHandlerCallsPreventDefault(ectx.Handlers) {
					continue
				}
				out = append(out, finding.Finding{
					Kind:         finding.KindUnexpectedFormSubmit,
					Severity:     finding.SeverityWarning,
					Message:      "button defaults to type=submit and its click handler never calls preventDefault",
					Location:     domLocation(el.Loc),
					WCAGCriteria: []string{"3.2.2"},
					Confidence:   documentConfidence(ac, "button inside a form has no type attribute and its click handler does not call preventDefault"),
				})
			}
		}
	}
	return out, nil
}

func anyClickHandlerCallsPreventDefault(handlers []transform.HandlerBinding) bool {
	for _, h := range handlers {
		if h.Event == "click" && h.Handler != nil && callsPreventDefault(h.Handler) {
			return true
		}
	}
	return false
}

// isDescendantOf walks el's ancestor chain looking for ancestor.
func isDescendantOf(frag *domtree.Fragment, ancestor, el *domtree.Element) bool {
	for cur := frag.Parent(el); cur != nil; cur = frag.Parent(cur) {
		if cur == ancestor {
			return true
		}
	}
	return false
}

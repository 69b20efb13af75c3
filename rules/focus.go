package rules

import (
	"context"

	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/transform"
)

// dialogRoles are roles that establish a modal focus context.
var dialogRoles = map[string]bool{"dialog": true, "alertdialog": true}

// FocusOrderConflictDetector flags a positive tabindex, which removes
// the element from natural DOM tab order and almost always produces a
// focus sequence that doesn't match the visual layout (WCAG 2.4.3).
type FocusOrderConflictDetector struct{}

func (FocusOrderConflictDetector) Name() string { return "focus-order-conflict" }

func (d FocusOrderConflictDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ref := range ac.DocumentModel.GetAllElements() {
		el := ref.Element
		if ti, ok := el.TabIndex(); !ok || ti <= 0 {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindFocusOrderConflict,
			Severity:     finding.SeverityWarning,
			Message:      "positive tabindex overrides natural document focus order",
			Location:     domLocation(el.Loc),
			WCAGCriteria: []string{"2.4.3"},
			Confidence:   documentConfidence(ac, "tabindex attribute parses as a positive integer"),
		})
	}
	return out, nil
}

// VisibilityFocusConflictDetector flags a focusable element the CSS
// model resolves as hidden (display:none/visibility:hidden), which
// leaves a dead stop in the tab order (WCAG 2.4.3, 4.1.2).
type VisibilityFocusConflictDetector struct{}

func (VisibilityFocusConflictDetector) Name() string { return "visibility-focus-conflict" }

func (d VisibilityFocusConflictDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for i, frag := range ac.DocumentModel.Fragments {
		if i >= len(ac.DocumentModel.CSSModels) {
			continue
		}
		css := ac.DocumentModel.CSSModels[i]
		for _, el := range frag.GetFocusableElements() {
			if !css.IsElementHidden(el) {
				continue
			}
			out = append(out, finding.Finding{
				Kind:         finding.KindVisibilityFocusConflict,
				Severity:     finding.SeverityWarning,
				Message:      "focusable element is hidden via CSS, leaving a dead stop in the tab order",
				Location:     domLocation(el.Loc),
				WCAGCriteria: []string{"2.4.3", "4.1.2"},
				Confidence:   documentConfidence(ac, "element is focusable and the matched CSS rules resolve it to display:none/visibility:hidden"),
			})
		}
	}
	return out, nil
}

// FocusManagementIssueDetector flags a role="dialog"/"alertdialog"
// element whose bound handlers never call .focus() on anything,
// meaning opening the dialog never moves focus into it (WCAG 2.4.3).
type FocusManagementIssueDetector struct{}

func (FocusManagementIssueDetector) Name() string { return "focus-management-issue" }

func (d FocusManagementIssueDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ectx := range ac.DocumentModel.Contexts() {
		el := ectx.Ref.Element
		role, ok := el.Attr("role")
		if !ok || !dialogRoles[role] {
			continue
		}
		if anyHandlerCallsFocus(ectx.Handlers) {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindFocusManagementIssue,
			Severity:     finding.SeverityWarning,
			Message:      "dialog element has no handler that moves focus into it",
			Location:     domLocation(el.Loc),
			WCAGCriteria: []string{"2.4.3"},
			Confidence:   documentConfidence(ac, "role=\"dialog\"/\"alertdialog\" element has no bound handler calling .focus()"),
		})
	}
	return out, nil
}

func anyHandlerCallsFocus(handlers []transform.HandlerBinding) bool {
	for _, h := range handlers {
		if h.Handler != nil && len(findCallsBySuffix(h.Handler, ".focus")) > 0 {
			return true
		}
	}
	return false
}

// KeyboardNavigationIssueDetector flags a native interactive element
// (button/a[href]/input/select/textarea) pulled out of the tab order
// with tabindex="-1" and no keydown handler providing an alternate
// focus-management strategy, leaving it unreachable by keyboard
// (WCAG 2.1.1, 2.4.3).
type KeyboardNavigationIssueDetector struct{}

func (KeyboardNavigationIssueDetector) Name() string { return "keyboard-navigation-issue" }

func (d KeyboardNavigationIssueDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ectx := range ac.DocumentModel.Contexts() {
		el := ectx.Ref.Element
		if !nativeInteractiveTags[el.TagName] {
			continue
		}
		if el.TagName == "a" {
			if _, hasHref := el.Attr("href"); !hasHref {
				continue
			}
		}
		ti, ok := el.TabIndex()
		if !ok || ti != -1 {
			continue
		}
		if ectx.HasKeyboardHandler {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindKeyboardNavigationIssue,
			Severity:     finding.SeverityWarning,
			Message:      "native interactive element has tabindex=\"-1\" and no keyboard handler restoring reachability",
			Location:     domLocation(el.Loc),
			WCAGCriteria: []string{"2.1.1", "2.4.3"},
			Confidence:   documentConfidence(ac, "natively interactive element removed from tab order with no compensating keydown handler"),
		})
	}
	return out, nil
}

var nativeInteractiveTags = map[string]bool{"a": true, "button": true, "input": true, "select": true, "textarea": true}

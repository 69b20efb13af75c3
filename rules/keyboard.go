package rules

import (
	"context"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/transform"
)

// MouseOnlyClickDetector flags elements reachable only by click: a
// click handler with no keydown/keyup/keypress handler on the same
// element (spec.md §8 scenario 1, WCAG 2.1.1).
type MouseOnlyClickDetector struct{}

func (MouseOnlyClickDetector) Name() string { return "mouse-only-click" }

func (d MouseOnlyClickDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if ac.DocumentScope() {
		var out []finding.Finding
		for _, ectx := range ac.DocumentModel.GetElementsWithIssues() {
			if !ectx.HasClickHandler || ectx.HasKeyboardHandler {
				continue
			}
			loc := clickHandlerLocation(ectx.Handlers)
			out = append(out, finding.Finding{
				Kind:       finding.KindMouseOnlyClick,
				Severity:   finding.SeverityWarning,
				Message:    "element responds to click but has no keyboard handler",
				Location:   loc,
				WCAGCriteria: []string{"2.1.1"},
				Confidence: documentConfidence(ac, "click handler bound with no sibling keydown/keyup/keypress handler on the same element"),
			})
		}
		return out, nil
	}
	if ac.ActionModel == nil {
		return nil, nil
	}
	return fileScopeMouseOnlyClick(ac.ActionModel), nil
}

// fileScopeMouseOnlyClick groups bindings by resolved selector and
// flags any selector with a click binding and no keyboard binding,
// reporting at most one finding per selector (spec.md §8 boundary:
// "at most one in file-scope").
func fileScopeMouseOnlyClick(model *transform.HandlerModel) []finding.Finding {
	bySelector := map[string][]transform.HandlerBinding{}
	for _, b := range model.Bindings() {
		if b.Selector == "" {
			continue
		}
		bySelector[b.Selector] = append(bySelector[b.Selector], b)
	}
	var out []finding.Finding
	for _, bindings := range bySelector {
		hasClick, hasKeyboard := false, false
		for _, b := range bindings {
			switch b.Event {
			case "click":
				hasClick = true
			case "keydown", "keyup", "keypress":
				hasKeyboard = true
			}
		}
		if !hasClick || hasKeyboard {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindMouseOnlyClick,
			Severity:     finding.SeverityWarning,
			Message:      "element responds to click but has no keyboard handler",
			Location:     spanLocation(clickSpan(bindings)),
			WCAGCriteria: []string{"2.1.1"},
			Confidence:   fileConfidence("click handler bound with no matching keydown/keyup/keypress binding for the same selector in this file"),
		})
	}
	return out
}

func clickSpan(bindings []transform.HandlerBinding) actionir.Span {
	for _, b := range bindings {
		if b.Event == "click" {
			return b.Span
		}
	}
	return actionir.Span{}
}

func clickHandlerLocation(handlers []transform.HandlerBinding) finding.Location {
	for _, h := range handlers {
		if h.Event == "click" {
			return spanLocation(h.Span)
		}
	}
	if len(handlers) > 0 {
		return spanLocation(handlers[0].Span)
	}
	return finding.Location{}
}

// MissingEscapeHandlerDetector flags a keydown handler that traps Tab
// (focus-trap idiom) without also handling Escape to let the user
// leave the trap (spec.md §8 scenario 2, WCAG 2.1.2).
type MissingEscapeHandlerDetector struct{}

func (MissingEscapeHandlerDetector) Name() string { return "missing-escape-handler" }

func (d MissingEscapeHandlerDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	bindings := allBindings(ac)
	var out []finding.Finding
	for _, b := range bindings {
		if b.Event != "keydown" && b.Event != "keyup" || b.Handler == nil {
			continue
		}
		if !hasKeyComparison(b.Handler, "Tab") || hasKeyComparison(b.Handler, "Escape", "Esc") {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindMissingEscapeHandler,
			Severity:     finding.SeverityWarning,
			Message:      "keydown handler traps Tab but never handles Escape",
			Location:     spanLocation(b.Span),
			WCAGCriteria: []string{"2.1.2"},
			Confidence:   bindingConfidence(ac, "handler branches on Tab key comparison with no Escape comparison anywhere in its body"),
		})
	}
	return out, nil
}

// IncompleteActivationKeysDetector flags a custom interactive element
// whose keydown handler checks only one of Enter/Space instead of
// both, which native buttons activate on (WCAG 2.1.1).
type IncompleteActivationKeysDetector struct{}

func (IncompleteActivationKeysDetector) Name() string { return "incomplete-activation-keys" }

func (d IncompleteActivationKeysDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, b := range allBindings(ac) {
		if b.Event != "keydown" && b.Event != "keypress" || b.Handler == nil {
			continue
		}
		keys := keyComparisonLiterals(b.Handler)
		hasEnter, hasSpace := false, false
		for _, k := range keys {
			switch k {
			case "Enter":
				hasEnter = true
			case " ", "Space", "Spacebar":
				hasSpace = true
			}
		}
		if len(keys) == 0 || (hasEnter && hasSpace) || (!hasEnter && !hasSpace) {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindIncompleteActivation,
			Severity:     finding.SeverityWarning,
			Message:      "keyboard handler activates on only one of Enter/Space",
			Location:     spanLocation(b.Span),
			WCAGCriteria: []string{"2.1.1"},
			Confidence:   bindingConfidence(ac, "handler branches on exactly one of the two native button activation keys"),
		})
	}
	return out, nil
}

// TouchWithoutClickDetector flags an element with a touchstart/
// touchend handler but no click handler. Document-scope only: with no
// analyzer-supplied event table (file-scope), this detector reports
// nothing rather than guess (DESIGN.md Open Question resolution).
type TouchWithoutClickDetector struct{}

func (TouchWithoutClickDetector) Name() string { return "touch-without-click" }

func (d TouchWithoutClickDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	var out []finding.Finding
	for _, ectx := range ac.DocumentModel.Contexts() {
		hasTouch, hasClick := false, false
		var touchSpan finding.Location
		for _, h := range ectx.Handlers {
			switch h.Event {
			case "touchstart", "touchend":
				if !hasTouch {
					touchSpan = spanLocation(h.Span)
				}
				hasTouch = true
			case "click":
				hasClick = true
			}
		}
		if !hasTouch || hasClick {
			continue
		}
		out = append(out, finding.Finding{
			Kind:         finding.KindTouchWithoutClick,
			Severity:     finding.SeverityWarning,
			Message:      "element responds to touch but has no click handler",
			Location:     touchSpan,
			WCAGCriteria: []string{"2.1.1"},
			Confidence:   documentConfidence(ac, "touchstart/touchend handler bound with no click handler on the same element"),
		})
	}
	return out, nil
}

// allBindings returns every handler binding visible to ac, preferring
// the merged document model's per-element bindings and falling back to
// the bare file-scope HandlerModel.
func allBindings(ac *AnalyzerContext) []transform.HandlerBinding {
	if ac.DocumentScope() {
		var out []transform.HandlerBinding
		for _, ectx := range ac.DocumentModel.Contexts() {
			out = append(out, ectx.Handlers...)
		}
		return out
	}
	if ac.ActionModel != nil {
		return ac.ActionModel.Bindings()
	}
	return nil
}

func bindingConfidence(ac *AnalyzerContext, reason string) finding.Confidence {
	if ac.DocumentScope() {
		return documentConfidence(ac, reason)
	}
	return fileConfidence(reason)
}

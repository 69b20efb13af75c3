package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/transform"
)

// StaticAriaStateDetector flags an aria-* attribute set once outside
// any handler and never written again from within a handler bound to
// the same element, even though the element does have a click handler
// that mutates some other observable state (e.g. a CSS class) — a
// strong signal the ARIA attribute was meant to track that state but
// was wired to the wrong thing (spec.md §8 scenario 5, WCAG 4.1.2).
type StaticAriaStateDetector struct{}

func (StaticAriaStateDetector) Name() string { return "static-aria-state" }

func (d StaticAriaStateDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, p := range ac.Programs {
		for _, setup := range findCallsBySuffix(p, ".setAttribute") {
			if patternOf(setup) != "ariaChange" {
				continue
			}
			attr := firstArgLiteral(setup)
			if !strings.HasPrefix(attr, "aria-") {
				continue
			}
			target := resolvedMemberChain(setup.ChildByRole(actionir.RoleCallee).ChildByRole(actionir.RoleObject))
			if target == "" || isInsideHandler(p, setup) {
				continue
			}
			if attributeRewrittenInAnyHandler(p, target, attr) {
				continue
			}
			if !targetHasObservableStateMutation(p, target) {
				continue
			}
			out = append(out, finding.Finding{
				Kind:         finding.KindStaticAriaState,
				Severity:     finding.SeverityWarning,
				Message:      fmt.Sprintf("%s is set once and never updated even though the element's visible state changes", attr),
				Location:     spanLocation(setup.Span),
				WCAGCriteria: []string{"4.1.2"},
				Confidence:   fileConfidence("aria attribute write found outside any handler with no matching write inside a handler bound to the same target"),
			})
		}
	}
	return out, nil
}

func firstArgLiteral(call *actionir.Action) string {
	return transform.FirstStringArg(call, 0)
}

// isInsideHandler reports whether n is a descendant of any function
// body passed as the second argument to an eventHandler-pattern call
// within program.
func isInsideHandler(program, n *actionir.Action) bool {
	found := false
	actionir.Walk(program, func(a *actionir.Action) bool {
		if found || patternOf(a) != "eventHandler" {
			return !found
		}
		args := a.ChildrenByRole(actionir.RoleArgument)
		if len(args) < 2 {
			return true
		}
		actionir.Walk(args[1], func(b *actionir.Action) bool {
			if b == n {
				found = true
			}
			return !found
		})
		return true
	})
	return found
}

// attributeRewrittenInAnyHandler reports whether any handler bound to
// target calls target.setAttribute(attr, ...) or target.removeAttribute(attr).
func attributeRewrittenInAnyHandler(program *actionir.Action, target, attr string) bool {
	found := false
	actionir.Walk(program, func(a *actionir.Action) bool {
		if found || patternOf(a) != "eventHandler" {
			return !found
		}
		args := a.ChildrenByRole(actionir.RoleArgument)
		calleeNode := a.ChildByRole(actionir.RoleCallee)
		if len(args) < 2 || calleeNode == nil {
			return true
		}
		boundTarget := resolvedMemberChain(calleeNode.ChildByRole(actionir.RoleObject))
		if boundTarget != target {
			return true
		}
		actionir.Walk(args[1], func(b *actionir.Action) bool {
			callee := calleeOf(b)
			if strings.HasSuffix(callee, ".setAttribute") || strings.HasSuffix(callee, ".removeAttribute") {
				if firstArgLiteral(b) == attr {
					found = true
				}
			}
			return !found
		})
		return true
	})
	return found
}

// targetHasObservableStateMutation reports whether any handler bound
// to target mutates some other visible state (classList add/remove/
// toggle), the signal that the element's aria state genuinely changes
// even though the ARIA attribute never follows it.
func targetHasObservableStateMutation(program *actionir.Action, target string) bool {
	found := false
	actionir.Walk(program, func(a *actionir.Action) bool {
		if found || patternOf(a) != "eventHandler" {
			return !found
		}
		args := a.ChildrenByRole(actionir.RoleArgument)
		calleeNode := a.ChildByRole(actionir.RoleCallee)
		if len(args) < 2 || calleeNode == nil {
			return true
		}
		boundTarget := resolvedMemberChain(calleeNode.ChildByRole(actionir.RoleObject))
		if boundTarget != target {
			return true
		}
		actionir.Walk(args[1], func(b *actionir.Action) bool {
			callee := calleeOf(b)
			if strings.Contains(callee, ".classList.") {
				found = true
			}
			return !found
		})
		return true
	})
	return found
}

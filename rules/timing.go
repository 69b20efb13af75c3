package rules

import (
	"context"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/finding"
)

// UnannouncedTimeoutDetector flags a setTimeout callback that mutates
// visible content with no accompanying live-region announcement
// (WCAG 2.2.1, 4.1.3) — the timing-specific counterpart of
// MissingLiveRegionDetector, scoped to deferred callbacks rather than
// direct event handlers.
type UnannouncedTimeoutDetector struct{}

func (UnannouncedTimeoutDetector) Name() string { return "unannounced-timeout" }

func (d UnannouncedTimeoutDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, p := range ac.Programs {
		for _, call := range findCalls(p, "setTimeout") {
			args := call.ChildrenByRole(actionir.RoleArgument)
			if len(args) == 0 {
				continue
			}
			callback := args[0]
			var mutated string
			actionir.Walk(callback, func(a *actionir.Action) bool {
				if mutated != "" || a.Kind != actionir.KindAssign {
					return mutated == ""
				}
				left := a.ChildByRole(actionir.RoleLeft)
				if left.Kind != actionir.KindMemberAccess {
					return true
				}
				chain := resolvedMemberChain(left)
				if hasDynamicContentSuffix(chain) {
					mutated = resolvedMemberChain(left.ChildByRole(actionir.RoleObject))
				}
				return mutated == ""
			})
			if mutated == "" {
				continue
			}
			if ac.DocumentScope() && elementHasAriaLive(ac, mutated) {
				continue
			}
			out = append(out, finding.Finding{
				Kind:         finding.KindUnannouncedTimeout,
				Severity:     finding.SeverityWarning,
				Message:      "setTimeout callback updates content with no live region to announce the change",
				Location:     spanLocation(call.Span),
				WCAGCriteria: []string{"2.2.1", "4.1.3"},
				Confidence:   bindingConfidence(ac, "deferred content mutation found with no resolvable aria-live ancestor"),
			})
		}
	}
	return out, nil
}

// UncontrolledAutoUpdateDetector flags a setInterval call whose return
// value is never passed to clearInterval anywhere in the same file,
// meaning the auto-update can never be paused (spec.md §8 scenario 3,
// WCAG 2.2.2).
type UncontrolledAutoUpdateDetector struct{}

func (UncontrolledAutoUpdateDetector) Name() string { return "uncontrolled-auto-update" }

func (d UncontrolledAutoUpdateDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	var out []finding.Finding
	for _, p := range ac.Programs {
		clearedIDs := clearIntervalArgNames(p)
		for _, call := range findCalls(p, "setInterval") {
			if intervalIDIsCleared(p, call, clearedIDs) {
				continue
			}
			out = append(out, finding.Finding{
				Kind:         finding.KindUncontrolledAutoUpdate,
				Severity:     finding.SeverityWarning,
				Message:      "setInterval is never paired with a clearInterval call",
				Location:     spanLocation(call.Span),
				WCAGCriteria: []string{"2.2.2"},
				Confidence:   bindingConfidence(ac, "no clearInterval call in this file references the identifier the setInterval result was assigned to"),
			})
		}
	}
	return out, nil
}

// clearIntervalArgNames returns the identifier name passed as the
// first argument to every clearInterval call in program.
func clearIntervalArgNames(program *actionir.Action) map[string]bool {
	out := map[string]bool{}
	for _, call := range findCalls(program, "clearInterval") {
		args := call.ChildrenByRole(actionir.RoleArgument)
		if len(args) == 0 {
			continue
		}
		if name := identifierName(args[0]); name != "" {
			out[name] = true
		}
	}
	return out
}

// intervalIDIsCleared reports whether setIntervalCall's result is ever
// assigned or declared into an identifier present in clearedIDs.
func intervalIDIsCleared(program, setIntervalCall *actionir.Action, clearedIDs map[string]bool) bool {
	if len(clearedIDs) == 0 {
		return false
	}
	found := false
	actionir.Walk(program, func(a *actionir.Action) bool {
		if found {
			return false
		}
		switch a.Kind {
		case actionir.KindDeclareVar, actionir.KindDeclareConst:
			value := a.ChildByRole(actionir.RoleValue)
			if value != setIntervalCall {
				return true
			}
			nameNode := a.ChildByRole(actionir.RoleVariable)
			if clearedIDs[identifierName(nameNode)] {
				found = true
			}
		case actionir.KindAssign:
			right := a.ChildByRole(actionir.RoleRight)
			if right != setIntervalCall {
				return true
			}
			left := a.ChildByRole(actionir.RoleLeft)
			if clearedIDs[identifierName(left)] {
				found = true
			}
		}
		return !found
	})
	return found
}

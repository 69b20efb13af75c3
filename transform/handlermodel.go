package transform

import (
	"strings"

	"github.com/a11yscan/engine/actionir"
)

// HandlerBinding is one statically-resolved JS event registration: a
// target selector, the event name, and the call-pattern
// classification from spec.md §4.1's closed set.
type HandlerBinding struct {
	Selector   string
	Event      string
	ActionType string
	Handler    *actionir.Action
	Span       actionir.Span
}

// HandlerModel is the action-language model docmodel.Merge joins
// against DOM fragments (spec.md §4.4 step 2): a flat index of
// HandlerBindings extracted from one file's Action IR, queryable by
// selector.
type HandlerModel struct {
	File     string
	bindings []HandlerBinding
}

// BuildHandlerModel requires tree to already have call patterns
// tagged (see TagCallPatterns) and walks it for "eventHandler"-tagged
// calls, indexing each by the statically-resolvable selector of its
// target.
func BuildHandlerModel(file string, tree *actionir.Action) *HandlerModel {
	m := &HandlerModel{File: file}
	actionir.Walk(tree, func(a *actionir.Action) bool {
		if a.Kind != actionir.KindCall {
			return true
		}
		pattern, ok := a.Attr("pattern")
		if !ok || pattern.AsString() != "eventHandler" {
			return true
		}
		calleeAttr, _ := a.Attr("callee")
		if strings.HasSuffix(calleeAttr.AsString(), ".removeEventListener") {
			return true
		}
		calleeNode := a.ChildByRole(actionir.RoleCallee)
		if calleeNode == nil || calleeNode.Kind != actionir.KindMemberAccess {
			return true
		}
		event := FirstStringArg(a, 0)
		if event == "" {
			return true
		}
		args := a.ChildrenByRole(actionir.RoleArgument)
		var handler *actionir.Action
		if len(args) > 1 {
			handler = args[1]
		}
		target := calleeNode.ChildByRole(actionir.RoleObject)
		m.bindings = append(m.bindings, HandlerBinding{
			Selector:   resolveTargetSelector(target),
			Event:      event,
			ActionType: "eventHandler",
			Handler:    handler,
			Span:       a.Span,
		})
		return true
	})
	return m
}

// resolveTargetSelector derives the CSS selector an addEventListener
// target resolves to when it is a statically-derivable
// document.getElementById/querySelector[All] call; returns "" for a
// bare variable or other dynamic expression, which spec.md §4.4 does
// not require resolving.
func resolveTargetSelector(target *actionir.Action) string {
	if target == nil || target.Kind != actionir.KindCall {
		return ""
	}
	calleeAttr, ok := target.Attr("callee")
	if !ok {
		return ""
	}
	callee := calleeAttr.AsString()
	arg := FirstStringArg(target, 0)
	if arg == "" {
		return ""
	}
	switch {
	case strings.HasSuffix(callee, ".getElementById"):
		return "#" + arg
	case strings.HasSuffix(callee, ".querySelector"), strings.HasSuffix(callee, ".querySelectorAll"):
		return arg
	default:
		return ""
	}
}

// FindBySelector returns every handler registered against selector.
// An empty selector never matches, mirroring that unresolved
// bindings carry no addressable target.
func (m *HandlerModel) FindBySelector(selector string) []HandlerBinding {
	if selector == "" {
		return nil
	}
	var out []HandlerBinding
	for _, b := range m.bindings {
		if b.Selector == selector {
			out = append(out, b)
		}
	}
	return out
}

// Bindings returns every extracted handler binding, resolved or not.
func (m *HandlerModel) Bindings() []HandlerBinding { return m.bindings }

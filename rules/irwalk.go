package rules

import (
	"strings"

	"github.com/a11yscan/engine/actionir"
)

// calleeOf returns the "callee" attribute TagCallPatterns stamped onto
// a KindCall node, or "" if the node isn't a recognized call.
func calleeOf(n *actionir.Action) string {
	if n == nil || n.Kind != actionir.KindCall {
		return ""
	}
	v, _ := n.Attr("callee")
	return v.AsString()
}

// patternOf returns the "pattern" attribute TagCallPatterns stamped
// onto a KindCall node, or "" if it matched no known idiom.
func patternOf(n *actionir.Action) string {
	if n == nil || n.Kind != actionir.KindCall {
		return ""
	}
	v, _ := n.Attr("pattern")
	return v.AsString()
}

// findCalls returns every KindCall node under root whose "callee"
// attribute equals one of names, in pre-order.
func findCalls(root *actionir.Action, names ...string) []*actionir.Action {
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []*actionir.Action
	actionir.Walk(root, func(a *actionir.Action) bool {
		if callee := calleeOf(a); callee != "" && want[callee] {
			out = append(out, a)
		}
		return true
	})
	return out
}

// findCallsBySuffix returns every KindCall node under root whose
// "callee" attribute ends in suffix (e.g. ".preventDefault").
func findCallsBySuffix(root *actionir.Action, suffix string) []*actionir.Action {
	var out []*actionir.Action
	actionir.Walk(root, func(a *actionir.Action) bool {
		if callee := calleeOf(a); callee != "" && strings.HasSuffix(callee, suffix) {
			out = append(out, a)
		}
		return true
	})
	return out
}

// callsPreventDefault reports whether body calls *.preventDefault()
// anywhere in its subtree.
func callsPreventDefault(body *actionir.Action) bool {
	return len(findCallsBySuffix(body, ".preventDefault")) > 0
}

// memberName returns the static property name of a KindMemberAccess
// node (e.g. "key" for `e.key`), or "" if it is computed or not a
// member access.
func memberName(n *actionir.Action) string {
	if n == nil || n.Kind != actionir.KindMemberAccess {
		return ""
	}
	prop := n.ChildByRole(actionir.RoleProperty)
	if prop == nil || prop.Kind != actionir.KindIdentifier {
		return ""
	}
	name, _ := prop.Attr("name")
	return name.AsString()
}

// literalString returns n's literal string value if n is a KindLiteral
// string literal, or "" otherwise.
func literalString(n *actionir.Action) (string, bool) {
	if n == nil || n.Kind != actionir.KindLiteral {
		return "", false
	}
	raw, _ := n.Attr("raw")
	if len(raw.AsString()) == 0 {
		return "", false
	}
	c := raw.AsString()[0]
	if c != '"' && c != '\'' && c != '`' {
		return "", false
	}
	lit, _ := n.Attr("literal")
	return lit.AsString(), true
}

// keyComparisonLiterals walks body for `<member>.key === "<Literal>"`
// or `<member>.code === "<Literal>"` comparisons (either operand
// order, `===` or `==`) and returns the distinct literal values
// compared against, e.g. ["Escape", "Tab"]. Used by the keyboard rule
// family and the widget validator to detect which keys a handler
// actually branches on, per spec.md §9's "IR-based, never text-
// substring matching on source" resolution.
func keyComparisonLiterals(body *actionir.Action) []string {
	seen := map[string]bool{}
	var out []string
	actionir.Walk(body, func(a *actionir.Action) bool {
		if a.Kind != actionir.KindBinaryOp {
			return true
		}
		op, _ := a.Attr("operator")
		if op.AsString() != "===" && op.AsString() != "==" {
			return true
		}
		left := a.ChildByRole(actionir.RoleLeft)
		right := a.ChildByRole(actionir.RoleRight)
		for _, pair := range [][2]*actionir.Action{{left, right}, {right, left}} {
			member, lit := pair[0], pair[1]
			name := memberName(member)
			if name != "key" && name != "code" {
				continue
			}
			if v, ok := literalString(lit); ok && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		return true
	})
	return out
}

// hasKeyComparison reports whether body branches on e.key/e.code
// equal to any of wantKeys.
func hasKeyComparison(body *actionir.Action, wantKeys ...string) bool {
	want := map[string]bool{}
	for _, k := range wantKeys {
		want[k] = true
	}
	for _, k := range keyComparisonLiterals(body) {
		if want[k] {
			return true
		}
	}
	return false
}

// identifierName returns n's identifier name, or "" if n is not a
// KindIdentifier.
func identifierName(n *actionir.Action) string {
	if n == nil || n.Kind != actionir.KindIdentifier {
		return ""
	}
	name, _ := n.Attr("name")
	return name.AsString()
}

// assignmentTargets returns the identifier/member-access names that
// root assigns into anywhere in its subtree (e.g. "window.location",
// "id").
func assignmentTargets(root *actionir.Action) []string {
	var out []string
	actionir.Walk(root, func(a *actionir.Action) bool {
		if a.Kind != actionir.KindAssign {
			return true
		}
		left := a.ChildByRole(actionir.RoleLeft)
		switch left.Kind {
		case actionir.KindIdentifier:
			out = append(out, identifierName(left))
		case actionir.KindMemberAccess:
			out = append(out, resolvedMemberChain(left))
		}
		return true
	})
	return out
}

// resolvedMemberChain mirrors transform.ResolveCallee for a plain
// member-access (non-call) chain, returning "" when not statically
// resolvable.
func resolvedMemberChain(n *actionir.Action) string {
	var parts []string
	var walk func(n *actionir.Action) bool
	walk = func(n *actionir.Action) bool {
		switch n.Kind {
		case actionir.KindIdentifier:
			parts = append(parts, identifierName(n))
			return true
		case actionir.KindMemberAccess:
			obj := n.ChildByRole(actionir.RoleObject)
			prop := n.ChildByRole(actionir.RoleProperty)
			if prop == nil || prop.Kind != actionir.KindIdentifier || !walk(obj) {
				return false
			}
			parts = append(parts, identifierName(prop))
			return true
		default:
			return false
		}
	}
	if !walk(n) {
		return ""
	}
	return strings.Join(parts, ".")
}

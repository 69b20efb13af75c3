package transform

import (
	"strings"

	"github.com/a11yscan/engine/actionir"
)

// patternMatcher tests a resolved dotted callee name and reports the
// call-pattern attribute value to attach, if any.
type patternMatcher struct {
	name    string
	matches func(callee string) bool
}

// patternTable is the closed set of accessibility-relevant callee
// idioms from spec.md §4.1, generalized from analyzer.handleCall's
// single-purpose WaitGroup-suffix check into a table of matchers.
var patternTable = []patternMatcher{
	{name: "eventHandler", matches: func(c string) bool { return strings.HasSuffix(c, ".addEventListener") || strings.HasSuffix(c, ".removeEventListener") }},
	{name: "ariaChange", matches: func(c string) bool {
		return strings.HasSuffix(c, ".setAttribute") // refined to aria-* by the call's first literal argument, see TagCallPatterns
	}},
	{name: "domAccess", matches: func(c string) bool {
		return c == "document.getElementById" || c == "document.querySelector" || c == "document.querySelectorAll" ||
			strings.HasSuffix(c, ".getElementById") || strings.HasSuffix(c, ".querySelector") || strings.HasSuffix(c, ".querySelectorAll") ||
			strings.HasSuffix(c, ".createElement") || strings.HasSuffix(c, ".getAttribute") || strings.HasSuffix(c, ".setAttribute") ||
			strings.HasSuffix(c, ".removeAttribute") || strings.HasSuffix(c, ".appendChild") || strings.HasSuffix(c, ".removeChild") ||
			strings.HasSuffix(c, ".remove") || strings.HasSuffix(c, ".classList.toggle") || strings.HasSuffix(c, ".classList.add") ||
			strings.HasSuffix(c, ".classList.remove")
	}},
	{name: "timer", matches: func(c string) bool {
		return c == "setTimeout" || c == "setInterval" || c == "clearTimeout" || c == "clearInterval" ||
			c == "requestAnimationFrame" || c == "cancelAnimationFrame"
	}},
	{name: "focusOp", matches: func(c string) bool { return strings.HasSuffix(c, ".focus") || strings.HasSuffix(c, ".blur") }},
}

// ResolveCallee walks a call's callee subtree (role RoleCallee) and,
// when it is a chain of identifiers/member accesses with no dynamic
// computed property, returns the dotted name (e.g.
// "document.getElementById"). A call inside the chain contributes its
// own callee's name, so document.getElementById('x').addEventListener
// resolves to "document.getElementById.addEventListener". Returns ""
// when not statically derivable (spec.md §4.1: "when statically
// derivable").
func ResolveCallee(callee *actionir.Action) string {
	var parts []string
	var walk func(n *actionir.Action) bool
	walk = func(n *actionir.Action) bool {
		if n == nil {
			return false
		}
		switch n.Kind {
		case actionir.KindIdentifier:
			name, _ := n.Attr("name")
			parts = append(parts, name.AsString())
			return true
		case actionir.KindMemberAccess:
			obj := n.ChildByRole(actionir.RoleObject)
			prop := n.ChildByRole(actionir.RoleProperty)
			if prop == nil || prop.Kind != actionir.KindIdentifier {
				return false
			}
			if !walk(obj) {
				return false
			}
			name, _ := prop.Attr("name")
			parts = append(parts, name.AsString())
			return true
		case actionir.KindCall:
			return walk(n.ChildByRole(actionir.RoleCallee))
		default:
			return false
		}
	}
	if !walk(callee) {
		return ""
	}
	return strings.Join(parts, ".")
}

// TagCallPatterns inspects every KindCall node in tree and, when its
// callee matches a known accessibility-relevant idiom, attaches a
// "pattern" attribute and a "callee" attribute with the resolved
// dotted name.
func TagCallPatterns(tree *actionir.Action) {
	actionir.Walk(tree, func(a *actionir.Action) bool {
		if a.Kind != actionir.KindCall {
			return true
		}
		callee := a.ChildByRole(actionir.RoleCallee)
		name := ResolveCallee(callee)
		if name == "" {
			return true
		}
		if a.Attributes == nil {
			a.Attributes = map[string]actionir.Attr{}
		}
		a.Attributes["callee"] = actionir.StringAttr(name)
		for _, m := range patternTable {
			if !m.matches(name) {
				continue
			}
			pattern := m.name
			if pattern == "ariaChange" && !isAriaSetAttribute(a) {
				continue
			}
			a.Attributes["pattern"] = actionir.StringAttr(pattern)
			break
		}
		return true
	})
}

// isAriaSetAttribute reports whether a *.setAttribute(...) call's
// first argument is an aria-* (or "role") string literal.
func isAriaSetAttribute(call *actionir.Action) bool {
	args := call.ChildrenByRole(actionir.RoleArgument)
	if len(args) == 0 || args[0].Kind != actionir.KindLiteral {
		return false
	}
	lit, _ := args[0].Attr("literal")
	v := lit.AsString()
	return strings.HasPrefix(v, "aria-") || v == "role"
}

// FirstStringArg returns the literal string value of the i-th
// argument of call, or "" if it is absent or not a literal.
func FirstStringArg(call *actionir.Action, i int) string {
	args := call.ChildrenByRole(actionir.RoleArgument)
	if i < 0 || i >= len(args) || args[i].Kind != actionir.KindLiteral {
		return ""
	}
	lit, _ := args[i].Attr("literal")
	return lit.AsString()
}

package widget

import (
	"strings"

	"github.com/a11yscan/engine/actionir"
)

// calleeOf, findCallsBySuffix, memberName, literalString, and
// keyComparisonLiterals mirror the rules package's IR-walking helpers
// of the same name; duplicated here (rather than imported) since
// rules imports widget to build its WidgetPatternDetector, and widget
// must not import rules back.

func calleeOf(n *actionir.Action) string {
	if n == nil || n.Kind != actionir.KindCall {
		return ""
	}
	v, _ := n.Attr("callee")
	return v.AsString()
}

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

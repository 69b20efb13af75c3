// Package transform lowers a parser's syntax tree into the
// language-neutral actionir.ActionTree. Only JS/TS/JSX grammar node
// type strings are recognized directly; HTML/JSX element nodes are
// handled by domtree's own ingestion path (spec.md treats concrete
// parsers as external, so this package only owns the "already have a
// *sitter.Node tree" -> Action IR step).
package transform

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/a11yscan/engine/actionir"
)

// Warning records a non-fatal TransformError: an AST node kind this
// transformer does not recognize. The offending subtree still lowers
// to a generic Action so the rest of the tree is usable.
type Warning struct {
	File    string
	NodeType string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: unrecognized node kind %q: %s", w.File, w.NodeType, w.Message)
}

// Transformer lowers tree-sitter syntax trees into Action IR.
type Transformer struct {
	file string
	src  []byte
	warn []Warning
}

// New creates a Transformer for one source file. src is the full text
// the tree-sitter nodes index into.
func New(file string, src []byte) *Transformer {
	return &Transformer{file: file, src: src}
}

// Transform lowers root (expected to be a tree-sitter "program" node)
// into an ActionTree plus any transform warnings collected along the
// way.
func (t *Transformer) Transform(root *sitter.Node) (*actionir.ActionTree, []Warning) {
	action := t.lower(root, actionir.RoleNone)
	if action.Kind != actionir.KindProgram {
		action = &actionir.Action{Kind: actionir.KindProgram, Span: action.Span, Children: []*actionir.Action{action}}
	}
	return actionir.NewActionTree(action), t.warn
}

func (t *Transformer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(t.src[n.StartByte():n.EndByte()])
}

func (t *Transformer) span(n *sitter.Node) actionir.Span {
	start := n.StartPoint()
	return actionir.Span{
		File:      t.file,
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
	}
}

// addWarning records a TransformError-class warning without aborting
// the tree build, matching spec.md §7's propagation policy.
func (t *Transformer) addWarning(n *sitter.Node, message string) {
	t.warn = append(t.warn, Warning{File: t.file, NodeType: n.Type(), Message: message})
}

// generic lowers an unrecognized node kind verbatim into a
// KindUnknown Action, recursing into children so descendants that ARE
// recognized still get lowered correctly (spec.md §4.1 failure mode).
func (t *Transformer) generic(n *sitter.Node) *actionir.Action {
	t.addWarning(n, "falling back to generic node, recursing into children")
	a := &actionir.Action{Kind: actionir.KindUnknown, Span: t.span(n), Attributes: map[string]actionir.Attr{
		"rawKind": actionir.StringAttr(n.Type()),
	}}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		a.Children = append(a.Children, t.lower(n.NamedChild(i), actionir.RoleNone))
	}
	return a
}

func (t *Transformer) lowerChild(n *sitter.Node, field string, role actionir.Role) *actionir.Action {
	c := n.ChildByFieldName(field)
	if c == nil {
		return nil
	}
	return t.lower(c, role)
}

func (t *Transformer) lowerMany(n *sitter.Node, role actionir.Role) []*actionir.Action {
	var out []*actionir.Action
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, t.lower(n.NamedChild(i), role))
	}
	return out
}

// lower dispatches on n.Type() exactly the way analyzer.walk in the
// teacher repo dispatches on tree-sitter Go node types: an explicit
// switch, falling back to generic recursion for anything unmatched.
func (t *Transformer) lower(n *sitter.Node, role actionir.Role) *actionir.Action {
	if n == nil {
		return nil
	}
	span := t.span(n)
	switch n.Type() {
	case "program":
		a := &actionir.Action{Kind: actionir.KindProgram, Span: span}
		a.Children = t.statementList(n)
		return a

	case "statement_block":
		a := &actionir.Action{Kind: actionir.KindBlock, Span: span, Role: role}
		a.Children = t.statementList(n)
		return a

	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return t.generic(n)
		}
		child := t.lower(n.NamedChild(0), role)
		return child

	case "variable_declaration", "lexical_declaration":
		kind := actionir.KindDeclareVar
		if t.text(n.Child(0)) == "const" {
			kind = actionir.KindDeclareConst
		}
		var decls []*actionir.Action
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() != "variable_declarator" {
				continue
			}
			decls = append(decls, t.declarator(child, kind))
		}
		if len(decls) == 1 {
			decls[0].Role = role
			return decls[0]
		}
		return &actionir.Action{Kind: actionir.KindSeq, Span: span, Role: role, Children: decls}

	case "function_declaration", "function_expression", "function", "generator_function_declaration", "generator_function":
		return t.function(n, role, actionir.KindDeclareFunction)

	case "arrow_function":
		return t.function(n, role, actionir.KindArrowFunction)

	case "class_declaration":
		a := &actionir.Action{Kind: actionir.KindDeclareClass, Span: span, Role: role}
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			a.Attributes = map[string]actionir.Attr{"name": actionir.StringAttr(t.text(nameNode))}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				member := body.NamedChild(i)
				if member.Type() == "method_definition" {
					a.Children = append(a.Children, t.method(member))
				}
			}
		}
		return a

	case "method_definition":
		return t.method(n)

	case "if_statement":
		a := &actionir.Action{Kind: actionir.KindIf, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "condition", actionir.RoleCondition))
		a.Children = append(a.Children, t.lowerChild(n, "consequence", actionir.RoleThen))
		if alt := t.lowerChild(n, "alternative", actionir.RoleElse); alt != nil {
			a.Children = append(a.Children, alt)
		}
		return a

	case "for_statement":
		a := &actionir.Action{Kind: actionir.KindFor, Span: span, Role: role}
		for _, f := range []struct {
			field string
			role  actionir.Role
		}{{"initializer", actionir.RoleInit}, {"condition", actionir.RoleTest}, {"increment", actionir.RoleUpdate}, {"body", actionir.RoleBody}} {
			if c := n.ChildByFieldName(f.field); c != nil && c.Type() == "empty_statement" {
				continue
			}
			if c := t.lowerChild(n, f.field, f.role); c != nil {
				a.Children = append(a.Children, c)
			}
		}
		return a

	case "for_in_statement":
		kind := actionir.KindForIn
		if t.text(n.ChildByFieldName("operator")) == "of" {
			kind = actionir.KindForOf
		}
		a := &actionir.Action{Kind: kind, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "left", actionir.RoleVariable))
		a.Children = append(a.Children, t.lowerChild(n, "right", actionir.RoleIterable))
		a.Children = append(a.Children, t.lowerChild(n, "body", actionir.RoleBody))
		return a

	case "while_statement":
		a := &actionir.Action{Kind: actionir.KindWhile, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "condition", actionir.RoleCondition))
		a.Children = append(a.Children, t.lowerChild(n, "body", actionir.RoleBody))
		return a

	case "do_statement":
		a := &actionir.Action{Kind: actionir.KindDoWhile, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "body", actionir.RoleBody))
		a.Children = append(a.Children, t.lowerChild(n, "condition", actionir.RoleCondition))
		return a

	case "switch_statement":
		a := &actionir.Action{Kind: actionir.KindSwitch, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "value", actionir.RoleDiscriminant))
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				a.Children = append(a.Children, t.lower(body.NamedChild(i), actionir.RoleNone))
			}
		}
		return a

	case "switch_case":
		a := &actionir.Action{Kind: actionir.KindCase, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "value", actionir.RoleTest))
		body := &actionir.Action{Kind: actionir.KindBlock, Span: span, Role: actionir.RoleBody}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c == n.ChildByFieldName("value") {
				continue
			}
			body.Children = append(body.Children, t.lower(c, actionir.RoleNone))
		}
		a.Children = append(a.Children, body)
		return a

	case "switch_default":
		a := &actionir.Action{Kind: actionir.KindDefault, Span: span, Role: role}
		body := &actionir.Action{Kind: actionir.KindBlock, Span: span, Role: actionir.RoleBody}
		body.Children = t.statementList(n)
		a.Children = append(a.Children, body)
		return a

	case "try_statement":
		a := &actionir.Action{Kind: actionir.KindTry, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "body", actionir.RoleTry))
		if handler := n.ChildByFieldName("handler"); handler != nil {
			a.Children = append(a.Children, t.lower(handler, actionir.RoleNone))
		}
		if final := n.ChildByFieldName("finalizer"); final != nil {
			a.Children = append(a.Children, &actionir.Action{Kind: actionir.KindFinally, Span: t.span(final), Children: []*actionir.Action{t.lower(final, actionir.RoleBody)}})
		}
		return a

	case "catch_clause":
		a := &actionir.Action{Kind: actionir.KindCatch, Span: span}
		if param := n.ChildByFieldName("parameter"); param != nil {
			a.Children = append(a.Children, t.lower(param, actionir.RoleVariable))
		}
		a.Children = append(a.Children, t.lowerChild(n, "body", actionir.RoleBody))
		return a

	case "return_statement":
		a := &actionir.Action{Kind: actionir.KindReturn, Span: span, Role: role}
		if n.NamedChildCount() > 0 {
			a.Children = append(a.Children, t.lower(n.NamedChild(0), actionir.RoleArgument))
		}
		return a

	case "throw_statement":
		a := &actionir.Action{Kind: actionir.KindThrow, Span: span, Role: role}
		if n.NamedChildCount() > 0 {
			a.Children = append(a.Children, t.lower(n.NamedChild(0), actionir.RoleArgument))
		}
		return a

	case "break_statement":
		return &actionir.Action{Kind: actionir.KindBreak, Span: span, Role: role}

	case "continue_statement":
		return &actionir.Action{Kind: actionir.KindContinue, Span: span, Role: role}

	case "call_expression":
		return t.call(n, role)

	case "new_expression":
		a := &actionir.Action{Kind: actionir.KindNew, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "constructor", actionir.RoleCallee))
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				a.Children = append(a.Children, t.lower(args.NamedChild(i), actionir.RoleArgument))
			}
		}
		return a

	case "member_expression", "subscript_expression":
		a := &actionir.Action{Kind: actionir.KindMemberAccess, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "object", actionir.RoleObject))
		if prop := n.ChildByFieldName("property"); prop != nil {
			a.Children = append(a.Children, t.lower(prop, actionir.RoleProperty))
		} else if idx := n.ChildByFieldName("index"); idx != nil {
			a.Children = append(a.Children, t.lower(idx, actionir.RoleProperty))
		}
		return a

	case "assignment_expression", "augmented_assignment_expression":
		// Only augmented_assignment_expression exposes an "operator"
		// field in the grammar (+=, -=, ...); plain "=" has no field
		// since the token itself is the only possibility.
		opText := "="
		if op := n.ChildByFieldName("operator"); op != nil {
			opText = t.text(op)
		}
		a := &actionir.Action{Kind: actionir.KindAssign, Span: span, Role: role, Attributes: map[string]actionir.Attr{"operator": actionir.StringAttr(opText)}}
		a.Children = append(a.Children, t.lowerChild(n, "left", actionir.RoleLeft))
		a.Children = append(a.Children, t.lowerChild(n, "right", actionir.RoleRight))
		return a

	case "binary_expression":
		op := t.operatorToken(n)
		a := &actionir.Action{Kind: actionir.KindBinaryOp, Span: span, Role: role, Attributes: map[string]actionir.Attr{"operator": actionir.StringAttr(op)}}
		a.Children = append(a.Children, t.lowerChild(n, "left", actionir.RoleLeft))
		a.Children = append(a.Children, t.lowerChild(n, "right", actionir.RoleRight))
		return a

	case "logical_expression":
		op := t.operatorToken(n)
		a := &actionir.Action{Kind: actionir.KindLogicalOp, Span: span, Role: role, Attributes: map[string]actionir.Attr{"operator": actionir.StringAttr(op)}}
		a.Children = append(a.Children, t.lowerChild(n, "left", actionir.RoleLeft))
		a.Children = append(a.Children, t.lowerChild(n, "right", actionir.RoleRight))
		return a

	case "unary_expression", "update_expression":
		op := t.operatorToken(n)
		isPrefix := true
		if n.Type() == "update_expression" {
			first := n.Child(0)
			if first != nil && (first.Type() == "identifier" || strings.Contains(first.Type(), "expression")) {
				isPrefix = false
			}
		}
		a := &actionir.Action{Kind: actionir.KindUnaryOp, Span: span, Role: role, Attributes: map[string]actionir.Attr{
			"operator": actionir.StringAttr(op),
			"prefix":   actionir.BoolAttr(isPrefix),
		}}
		arg := n.ChildByFieldName("argument")
		if arg != nil {
			a.Children = append(a.Children, t.lower(arg, actionir.RoleArgument))
		}
		return a

	case "ternary_expression":
		a := &actionir.Action{Kind: actionir.KindConditional, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "condition", actionir.RoleCondition))
		a.Children = append(a.Children, t.lowerChild(n, "consequence", actionir.RoleThen))
		a.Children = append(a.Children, t.lowerChild(n, "alternative", actionir.RoleElse))
		return a

	case "await_expression":
		a := &actionir.Action{Kind: actionir.KindAwait, Span: span, Role: role}
		if n.NamedChildCount() > 0 {
			a.Children = append(a.Children, t.lower(n.NamedChild(0), actionir.RoleArgument))
		}
		return a

	case "yield_expression":
		a := &actionir.Action{Kind: actionir.KindYield, Span: span, Role: role}
		if n.NamedChildCount() > 0 {
			a.Children = append(a.Children, t.lower(n.NamedChild(0), actionir.RoleArgument))
		}
		return a

	case "identifier", "property_identifier", "shorthand_property_identifier", "private_property_identifier", "this":
		return &actionir.Action{Kind: actionir.KindIdentifier, Span: span, Role: role, Attributes: map[string]actionir.Attr{"name": actionir.StringAttr(t.text(n))}}

	case "string", "number", "true", "false", "null", "undefined", "regex":
		return &actionir.Action{Kind: actionir.KindLiteral, Span: span, Role: role, Attributes: map[string]actionir.Attr{
			"raw":     actionir.StringAttr(t.text(n)),
			"literal": actionir.StringAttr(literalValue(n, t.text(n))),
		}}

	case "array":
		a := &actionir.Action{Kind: actionir.KindArray, Span: span, Role: role}
		a.Children = t.lowerMany(n, actionir.RoleArgument)
		return a

	case "object":
		a := &actionir.Action{Kind: actionir.KindObject, Span: span, Role: role}
		a.Children = t.lowerMany(n, actionir.RoleNone)
		return a

	case "pair", "pair_pattern":
		a := &actionir.Action{Kind: actionir.KindProperty, Span: span, Role: role}
		a.Children = append(a.Children, t.lowerChild(n, "key", actionir.RoleKey))
		a.Children = append(a.Children, t.lowerChild(n, "value", actionir.RoleValue))
		return a

	case "template_string":
		a := &actionir.Action{Kind: actionir.KindTemplate, Span: span, Role: role}
		a.Children = t.lowerMany(n, actionir.RoleNone)
		return a

	case "string_fragment":
		text := t.text(n)
		return &actionir.Action{Kind: actionir.KindLiteral, Span: span, Role: role, Attributes: map[string]actionir.Attr{
			"raw":     actionir.StringAttr(`"` + text + `"`),
			"literal": actionir.StringAttr(text),
		}}

	case "template_substitution":
		if n.NamedChildCount() > 0 {
			return t.lower(n.NamedChild(0), role)
		}
		return t.generic(n)

	case "spread_element":
		a := &actionir.Action{Kind: actionir.KindSpread, Span: span, Role: role}
		if n.NamedChildCount() > 0 {
			a.Children = append(a.Children, t.lower(n.NamedChild(0), actionir.RoleArgument))
		}
		return a

	case "import_statement", "import_declaration":
		a := &actionir.Action{Kind: actionir.KindImport, Span: span, Attributes: map[string]actionir.Attr{}}
		if src := n.ChildByFieldName("source"); src != nil {
			a.Attributes["source"] = actionir.StringAttr(strings.Trim(t.text(src), "'\""))
		}
		return a

	case "export_statement":
		if n.ChildByFieldName("declaration") == nil {
			for i := 0; i < int(n.ChildCount()); i++ {
				if n.Child(i).Type() == "default" {
					a := &actionir.Action{Kind: actionir.KindExportDefault, Span: span}
					if n.NamedChildCount() > 0 {
						a.Children = append(a.Children, t.lower(n.NamedChild(int(n.NamedChildCount())-1), actionir.RoleNone))
					}
					return a
				}
			}
			return &actionir.Action{Kind: actionir.KindExport, Span: span}
		}
		a := &actionir.Action{Kind: actionir.KindExport, Span: span}
		a.Children = append(a.Children, t.lowerChild(n, "declaration", actionir.RoleNone))
		return a

	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return t.lower(n.NamedChild(0), role)
		}
		return t.generic(n)

	case "sequence_expression":
		a := &actionir.Action{Kind: actionir.KindSeq, Span: span, Role: role}
		a.Children = t.lowerMany(n, actionir.RoleNone)
		return a

	case "jsx_expression":
		if n.NamedChildCount() > 0 {
			return t.lower(n.NamedChild(0), role)
		}
		return t.generic(n)

	default:
		return t.generic(n)
	}
}

// call lowers a call_expression into a KindCall Action with a
// RoleCallee child (the "function" field) and one RoleArgument child
// per named node in the "arguments" field, mirroring
// analyzer.handleCall's function+argument_list extraction.
func (t *Transformer) call(n *sitter.Node, role actionir.Role) *actionir.Action {
	a := &actionir.Action{Kind: actionir.KindCall, Span: t.span(n), Role: role}
	if callee := t.lowerChild(n, "function", actionir.RoleCallee); callee != nil {
		a.Children = append(a.Children, callee)
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			a.Children = append(a.Children, t.lower(args.NamedChild(i), actionir.RoleArgument))
		}
	}
	return a
}

func (t *Transformer) statementList(n *sitter.Node) []*actionir.Action {
	var out []*actionir.Action
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, t.lower(n.NamedChild(i), actionir.RoleNone))
	}
	return out
}

func (t *Transformer) declarator(n *sitter.Node, kind actionir.Kind) *actionir.Action {
	a := &actionir.Action{Kind: kind, Span: t.span(n)}
	a.Children = append(a.Children, t.lowerChild(n, "name", actionir.RoleVariable))
	if val := n.ChildByFieldName("value"); val != nil {
		a.Children = append(a.Children, t.lower(val, actionir.RoleValue))
	}
	return a
}

func (t *Transformer) function(n *sitter.Node, role actionir.Role, kind actionir.Kind) *actionir.Action {
	a := &actionir.Action{Kind: kind, Span: t.span(n), Role: role, Attributes: map[string]actionir.Attr{}}
	if name := n.ChildByFieldName("name"); name != nil {
		a.Attributes["name"] = actionir.StringAttr(t.text(name))
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			pname := p
			if p.Type() == "required_parameter" || p.Type() == "optional_parameter" {
				if id := p.ChildByFieldName("pattern"); id != nil {
					pname = id
				}
			}
			a.Children = append(a.Children, &actionir.Action{
				Kind: actionir.KindDeclareParam, Span: t.span(p), Role: actionir.RoleNone,
				Attributes: map[string]actionir.Attr{"name": actionir.StringAttr(t.text(pname))},
			})
		}
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return a
	}
	if body.Type() == "statement_block" {
		a.Children = append(a.Children, t.lower(body, actionir.RoleBody))
	} else {
		// concise arrow body: (x) => x + 1
		wrapped := &actionir.Action{Kind: actionir.KindBlock, Span: t.span(body), Role: actionir.RoleBody,
			Children: []*actionir.Action{{Kind: actionir.KindReturn, Span: t.span(body), Children: []*actionir.Action{t.lower(body, actionir.RoleArgument)}}}}
		a.Children = append(a.Children, wrapped)
	}
	return a
}

func (t *Transformer) method(n *sitter.Node) *actionir.Action {
	a := &actionir.Action{Kind: actionir.KindDeclareMethod, Span: t.span(n), Attributes: map[string]actionir.Attr{}}
	if name := n.ChildByFieldName("name"); name != nil {
		a.Attributes["name"] = actionir.StringAttr(t.text(name))
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			pname := p
			if p.Type() == "required_parameter" || p.Type() == "optional_parameter" {
				if id := p.ChildByFieldName("pattern"); id != nil {
					pname = id
				}
			}
			a.Children = append(a.Children, &actionir.Action{
				Kind: actionir.KindDeclareParam, Span: t.span(p), Role: actionir.RoleNone,
				Attributes: map[string]actionir.Attr{"name": actionir.StringAttr(t.text(pname))},
			})
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		a.Children = append(a.Children, t.lower(body, actionir.RoleBody))
	}
	return a
}

func (t *Transformer) operatorToken(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return t.text(op)
	}
	// fall back: middle child between left and right is the operator token
	left := n.ChildByFieldName("left")
	if left == nil {
		return ""
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.StartByte() > left.EndByte() && !c.IsNamed() {
			return t.text(c)
		}
	}
	return ""
}

func literalValue(n *sitter.Node, raw string) string {
	switch n.Type() {
	case "string":
		return strings.Trim(raw, "'\"`")
	default:
		return raw
	}
}

// Package actionir defines the language-neutral semantic action tree
// that every front-end language lowers into before any analysis runs.
package actionir

import "fmt"

// Kind identifies the shape of an Action node. The set is closed; the
// transformer never invents a new Kind at runtime, it falls back to
// KindUnknown and records a warning instead (see transform.Warning).
type Kind string

const (
	KindProgram         Kind = "program"
	KindSeq             Kind = "seq"
	KindBlock           Kind = "block"
	KindDeclareVar      Kind = "declareVar"
	KindDeclareConst    Kind = "declareConst"
	KindDeclareFunction Kind = "declareFunction"
	KindDeclareParam    Kind = "declareParam"
	KindDeclareClass    Kind = "declareClass"
	KindDeclareMethod   Kind = "declareMethod"
	KindIf              Kind = "if"
	KindFor             Kind = "for"
	KindForIn           Kind = "forIn"
	KindForOf           Kind = "forOf"
	KindWhile           Kind = "while"
	KindDoWhile         Kind = "doWhile"
	KindSwitch          Kind = "switch"
	KindCase            Kind = "case"
	KindDefault         Kind = "default"
	KindTry             Kind = "try"
	KindCatch           Kind = "catch"
	KindFinally         Kind = "finally"
	KindReturn          Kind = "return"
	KindThrow           Kind = "throw"
	KindBreak           Kind = "break"
	KindContinue        Kind = "continue"
	KindCall            Kind = "call"
	KindNew             Kind = "new"
	KindMemberAccess    Kind = "memberAccess"
	KindAssign          Kind = "assign"
	KindBinaryOp        Kind = "binaryOp"
	KindUnaryOp         Kind = "unaryOp"
	KindLogicalOp       Kind = "logicalOp"
	KindConditional     Kind = "conditional"
	KindAwait           Kind = "await"
	KindYield           Kind = "yield"
	KindArrowFunction   Kind = "arrowFunction"
	KindFunctionExpr    Kind = "functionExpr"
	KindIdentifier      Kind = "identifier"
	KindLiteral         Kind = "literal"
	KindArray           Kind = "array"
	KindObject          Kind = "object"
	KindProperty        Kind = "property"
	KindTemplate        Kind = "template"
	KindSpread          Kind = "spread"
	KindImport          Kind = "import"
	KindExport          Kind = "export"
	KindExportDefault   Kind = "exportDefault"

	// KindUnknown is emitted for AST node kinds the transformer does
	// not recognize. It is not part of the closed set exposed to
	// rules; it exists purely as a TransformError carrier.
	KindUnknown Kind = "unknown"
)

// Role names the structural slot a child occupies within its parent.
// Roles are drawn from a closed set per parent Kind (see roleTable in
// tree.go); attaching children by role rather than position is what
// lets rules inspect "the condition of this if" without caring how
// many children came before it.
type Role string

const (
	RoleCondition    Role = "condition"
	RoleThen         Role = "then"
	RoleElse         Role = "else"
	RoleInit         Role = "init"
	RoleTest         Role = "test"
	RoleUpdate       Role = "update"
	RoleBody         Role = "body"
	RoleCallee       Role = "callee"
	RoleArgument     Role = "argument"
	RoleLeft         Role = "left"
	RoleRight        Role = "right"
	RoleObject       Role = "object"
	RoleProperty     Role = "property"
	RoleVariable     Role = "variable"
	RoleIterable     Role = "iterable"
	RoleDiscriminant Role = "discriminant"
	RoleTry          Role = "try"
	RoleKey          Role = "key"
	RoleValue        Role = "value"
	// RoleNone marks a child with no declared structural slot (e.g. a
	// bare statement inside a seq/block).
	RoleNone Role = ""
)

// AttrKind tags which field of Attr is populated. Attribute values
// are a closed sum type rather than interface{} so downstream code
// never needs a type switch with a default panic branch.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrInt
	AttrBool
)

// Attr is a single typed attribute value.
type Attr struct {
	Kind AttrKind
	Str  string
	Int  int
	Bool bool
}

func StringAttr(v string) Attr { return Attr{Kind: AttrString, Str: v} }
func IntAttr(v int) Attr       { return Attr{Kind: AttrInt, Int: v} }
func BoolAttr(v bool) Attr     { return Attr{Kind: AttrBool, Bool: v} }

// AsString returns the string value, or "" if the attribute is not a
// string (callers that need to distinguish missing from empty should
// check Attributes for key presence first).
func (a Attr) AsString() string {
	if a.Kind == AttrString {
		return a.Str
	}
	return ""
}

func (a Attr) AsInt() int {
	if a.Kind == AttrInt {
		return a.Int
	}
	return 0
}

func (a Attr) AsBool() bool {
	if a.Kind == AttrBool {
		return a.Bool
	}
	return false
}

// Span is a source location, monotonic in pre-order across a tree.
type Span struct {
	File       string
	StartByte  int
	EndByte    int
	StartLine  int
	StartCol   int
}

// Action is one node of the semantic action tree. Identity is stable
// within a tree: two Action pointers that describe the same source
// construct are never merged; rules compare by pointer.
type Action struct {
	Kind       Kind
	Attributes map[string]Attr
	Children   []*Action
	Role       Role
	Span       Span

	// id is a synthetic stable key, built the same way the teacher's
	// analyzer builds literal identifiers: file/start-byte/end-byte.
	id string
}

// ID returns the synthetic stable key for this node, computing it
// lazily from its span on first use.
func (a *Action) ID() string {
	if a.id == "" {
		a.id = fmt.Sprintf("%s::%d:%d", a.Span.File, a.Span.StartByte, a.Span.EndByte)
	}
	return a.id
}

// Attr looks up an attribute, returning the zero Attr and false if
// absent.
func (a *Action) Attr(name string) (Attr, bool) {
	v, ok := a.Attributes[name]
	return v, ok
}

// ChildrenByRole returns, in document order, every child carrying the
// given role.
func (a *Action) ChildrenByRole(role Role) []*Action {
	var out []*Action
	for _, c := range a.Children {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

// ChildByRole returns the first child with the given role, or nil.
func (a *Action) ChildByRole(role Role) *Action {
	for _, c := range a.Children {
		if c.Role == role {
			return c
		}
	}
	return nil
}

// Walk visits a in pre-order, calling fn for every node including a
// itself. fn returning false stops descent into that node's children.
func Walk(a *Action, fn func(*Action) bool) {
	if a == nil {
		return
	}
	if !fn(a) {
		return
	}
	for _, c := range a.Children {
		Walk(c, fn)
	}
}

package actionir

import "fmt"

// roleTable lists the roles permitted for children of each Kind. A
// Kind absent from the table places no role constraint on its
// children (e.g. seq/block/program, whose children are ordered
// statements with RoleNone).
var roleTable = map[Kind]map[Role]bool{
	KindIf:           {RoleCondition: true, RoleThen: true, RoleElse: true},
	KindFor:          {RoleInit: true, RoleTest: true, RoleUpdate: true, RoleBody: true},
	KindForIn:        {RoleVariable: true, RoleIterable: true, RoleBody: true},
	KindForOf:        {RoleVariable: true, RoleIterable: true, RoleBody: true},
	KindWhile:        {RoleCondition: true, RoleBody: true},
	KindDoWhile:      {RoleCondition: true, RoleBody: true},
	KindSwitch:       {RoleDiscriminant: true, RoleNone: true},
	KindCase:         {RoleTest: true, RoleBody: true},
	KindDefault:      {RoleBody: true},
	KindTry:          {RoleTry: true, RoleNone: true},
	KindConditional:  {RoleCondition: true, RoleThen: true, RoleElse: true},
	KindCall:         {RoleCallee: true, RoleArgument: true},
	KindNew:          {RoleCallee: true, RoleArgument: true},
	KindMemberAccess: {RoleObject: true, RoleProperty: true},
	KindAssign:       {RoleLeft: true, RoleRight: true},
	KindBinaryOp:     {RoleLeft: true, RoleRight: true},
	KindLogicalOp:    {RoleLeft: true, RoleRight: true},
	KindUnaryOp:      {RoleArgument: true},
	KindProperty:     {RoleKey: true, RoleValue: true},
	KindDeclareVar:   {RoleVariable: true, RoleValue: true},
	KindDeclareConst: {RoleVariable: true, RoleValue: true},
}

// ValidRole reports whether role is an allowed child slot for kind.
// Kinds with no table entry accept any role (including RoleNone),
// matching the spec's "closed set per parent kind" for the kinds
// that actually use roles and leaving ordered-statement containers
// unconstrained.
func ValidRole(kind Kind, role Role) bool {
	allowed, ok := roleTable[kind]
	if !ok {
		return true
	}
	return allowed[role]
}

// ActionTree owns the root of a lowered source file and records the
// recognized kind/attribute set used to build it, so introspection
// tools can validate a tree without importing the transformer.
type ActionTree struct {
	Root *Action
	// Warnings accumulates non-fatal TransformError-class issues
	// encountered while building this tree (unrecognized AST kinds,
	// missing expected children). The tree is still usable.
	Warnings []string
}

// NewActionTree wraps root. It does not check root's kind; the
// transformer always passes a KindProgram node.
func NewActionTree(root *Action) *ActionTree {
	return &ActionTree{Root: root}
}

// Validate checks the two structural invariants from spec.md §3/§8:
// every internal (non-leaf) node has at least one child, and every
// child's role is drawn from the closed set for its parent kind. It
// also checks that source spans are monotonically non-decreasing in
// pre-order.
func (t *ActionTree) Validate() error {
	if t.Root == nil {
		return fmt.Errorf("actionir: tree has no root")
	}
	lastStart := -1
	var walkErr error
	Walk(t.Root, func(a *Action) bool {
		if walkErr != nil {
			return false
		}
		if len(a.Children) == 0 && !isLeafKind(a.Kind) {
			walkErr = fmt.Errorf("actionir: non-leaf kind %q at %s has no children", a.Kind, a.Span.File)
			return false
		}
		for _, c := range a.Children {
			if !ValidRole(a.Kind, c.Role) {
				walkErr = fmt.Errorf("actionir: kind %q does not permit role %q (child kind %q)", a.Kind, c.Role, c.Kind)
				return false
			}
		}
		if a.Span.StartByte < lastStart {
			walkErr = fmt.Errorf("actionir: source span regressed at %s:%d (previous start %d)", a.Span.File, a.Span.StartByte, lastStart)
			return false
		}
		lastStart = a.Span.StartByte
		return true
	})
	return walkErr
}

// isLeafKind reports whether kind is permitted to have zero children.
func isLeafKind(kind Kind) bool {
	switch kind {
	case KindIdentifier, KindLiteral, KindBreak, KindContinue, KindUnknown:
		return true
	default:
		return false
	}
}

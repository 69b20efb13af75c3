// Package interp implements the Execution Interpreter (spec.md §4.3):
// a strictly synchronous, single-threaded tree-walker over Action IR
// with a real scope chain, simulated host objects, and explicit
// control-flow signalling instead of exceptions.
package interp

import (
	"context"
	"fmt"

	"github.com/a11yscan/engine/actionir"
)

// Warning records an unrecognized Action kind encountered during
// evaluation; matches transform.Warning's "don't abort, keep going"
// policy at the interpreter layer (spec.md: "unknown action kinds do
// not abort").
type Warning struct {
	Span    actionir.Span
	Message string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Span.File, w.Message) }

// Option configures an Interpreter, following the teacher's
// functional-options convention (analyzer.Option).
type Option func(*Interpreter)

// WithMaxIterations overrides the default loop-iteration safety cap.
func WithMaxIterations(n int) Option { return func(it *Interpreter) { it.maxIterations = n } }

// WithMaxCallDepth overrides the default call-stack depth safety cap.
func WithMaxCallDepth(n int) Option { return func(it *Interpreter) { it.maxCallDepth = n } }

// WithDOMSimulation enables/disables the window/document/timer/dialog
// host bindings.
func WithDOMSimulation(enabled bool) Option { return func(it *Interpreter) { it.domSimulation = enabled } }

// Interpreter evaluates one Action IR program against a fresh root
// scope. It is not safe for concurrent use by multiple goroutines
// against the same Eval call but independent Interpreters share no
// state (spec.md §5).
type Interpreter struct {
	maxIterations int
	maxCallDepth  int
	domSimulation bool

	console      []string
	warnings     []Warning
	iterations   int
	callDepth    int
	randomCalls  int
	timerIDs     int
	domElements  map[string]Value
}

// New constructs an Interpreter with spec.md §4.3's default safety
// caps (100000 iterations, 1000 call depth), DOM simulation disabled.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{maxIterations: 100000, maxCallDepth: 1000}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// ConsoleOutput returns every string captured via console.log/warn/
// error/info during the last Eval call, in emission order.
func (it *Interpreter) ConsoleOutput() []string { return it.console }

// Warnings returns every unknown-kind warning recorded during the
// last Eval call.
func (it *Interpreter) Warnings() []Warning { return it.warnings }

// Eval evaluates program (expected to be a KindProgram Action) in a
// fresh root scope pre-populated with host bindings, returning the
// final Outcome. A non-nil error means a safety cap was exceeded, ctx
// was cancelled, or a throw reached the program boundary uncaught; the
// Outcome in that case reflects however far evaluation got.
func (it *Interpreter) Eval(ctx context.Context, program *actionir.Action) (Outcome, error) {
	it.console = nil
	it.warnings = nil
	it.iterations = 0
	it.callDepth = 0
	it.randomCalls = 0
	it.timerIDs = 0
	it.domElements = nil

	root := NewScope(nil)
	it.installHostBindings(root)

	out, err := it.eval(ctx, program, root)
	if err != nil {
		return out, err
	}
	if out.Kind == OutcomeThrow {
		return out, fmt.Errorf("interp: unhandled throw: %s", out.Value.ToString())
	}
	return out, nil
}

// evalWithCtx evaluates a sub-expression/statement and propagates its
// Outcome untouched, including an OutcomeThrow: only Eval, at the
// program boundary, turns a surviving throw into a Go error. Anywhere
// in between, a throw must remain a signal so evalTry can catch it.
func (it *Interpreter) evalWithCtx(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	return it.eval(ctx, n, scope)
}

func (it *Interpreter) addWarning(n *actionir.Action, message string) Value {
	it.warnings = append(it.warnings, Warning{Span: n.Span, Message: message})
	return Undefined()
}

func checkCtx(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

// eval is the exhaustive dispatch over actionir.Kind (DESIGN NOTES
// §9: replace dynamic dispatch with an exhaustive match).
func (it *Interpreter) eval(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	if n == nil {
		return ValueOutcome(Undefined()), nil
	}
	switch n.Kind {
	case actionir.KindProgram, actionir.KindBlock:
		return it.evalStatements(ctx, n.Children, NewScope(scope))
	case actionir.KindSeq:
		return it.evalStatements(ctx, n.Children, scope)

	case actionir.KindDeclareVar, actionir.KindDeclareConst:
		return it.evalDeclare(ctx, n, scope)
	case actionir.KindDeclareParam:
		return ValueOutcome(Undefined()), nil

	case actionir.KindDeclareFunction, actionir.KindArrowFunction, actionir.KindFunctionExpr:
		fn := it.buildFunction(n, scope)
		if name, ok := n.Attr("name"); ok && name.AsString() != "" && n.Kind != actionir.KindArrowFunction {
			scope.Declare(name.AsString(), "var", FunctionValue(fn))
		}
		return ValueOutcome(FunctionValue(fn)), nil

	case actionir.KindDeclareClass:
		return it.evalClass(n, scope)
	case actionir.KindDeclareMethod:
		return ValueOutcome(FunctionValue(it.buildFunction(n, scope))), nil

	case actionir.KindIf:
		return it.evalIf(ctx, n, scope)
	case actionir.KindFor:
		return it.evalFor(ctx, n, scope)
	case actionir.KindForIn, actionir.KindForOf:
		return it.evalForInOf(ctx, n, scope)
	case actionir.KindWhile:
		return it.evalWhile(ctx, n, scope, false)
	case actionir.KindDoWhile:
		return it.evalWhile(ctx, n, scope, true)
	case actionir.KindSwitch:
		return it.evalSwitch(ctx, n, scope)
	case actionir.KindTry:
		return it.evalTry(ctx, n, scope)

	case actionir.KindReturn:
		v := Undefined()
		if len(n.Children) > 0 {
			out, err := it.evalWithCtx(ctx, n.Children[0], scope)
			if err != nil || out.IsSignal() {
				return out, err
			}
			v = out.Value
		}
		return ReturnOutcome(v), nil

	case actionir.KindThrow:
		v := Undefined()
		if len(n.Children) > 0 {
			out, err := it.evalWithCtx(ctx, n.Children[0], scope)
			if err != nil || out.IsSignal() {
				return out, err
			}
			v = out.Value
		}
		return ThrowOutcome(v), nil

	case actionir.KindBreak:
		return BreakOutcome(""), nil
	case actionir.KindContinue:
		return ContinueOutcome(""), nil

	case actionir.KindCall:
		return it.evalCall(ctx, n, scope)
	case actionir.KindNew:
		return it.evalNew(ctx, n, scope)

	case actionir.KindMemberAccess:
		v, _, err := it.evalMemberAccess(ctx, n, scope)
		return ValueOutcome(v), err

	case actionir.KindAssign:
		return it.evalAssign(ctx, n, scope)

	case actionir.KindBinaryOp:
		return it.evalBinary(ctx, n, scope)
	case actionir.KindLogicalOp:
		return it.evalLogical(ctx, n, scope)
	case actionir.KindUnaryOp:
		return it.evalUnary(ctx, n, scope)
	case actionir.KindConditional:
		return it.evalConditional(ctx, n, scope)

	case actionir.KindAwait, actionir.KindYield:
		if len(n.Children) == 0 {
			return ValueOutcome(Undefined()), nil
		}
		return it.evalWithCtx(ctx, n.Children[0], scope)

	case actionir.KindIdentifier:
		name, _ := n.Attr("name")
		return ValueOutcome(it.resolveIdentifier(name.AsString(), scope)), nil

	case actionir.KindLiteral:
		return ValueOutcome(it.literalValue(n)), nil

	case actionir.KindArray:
		return it.evalArrayLiteral(ctx, n, scope)
	case actionir.KindObject:
		return it.evalObjectLiteral(ctx, n, scope)
	case actionir.KindProperty:
		return ValueOutcome(Undefined()), nil

	case actionir.KindTemplate:
		return it.evalTemplate(ctx, n, scope)
	case actionir.KindSpread:
		if len(n.Children) == 0 {
			return ValueOutcome(Undefined()), nil
		}
		return it.evalWithCtx(ctx, n.Children[0], scope)

	case actionir.KindImport, actionir.KindExport, actionir.KindExportDefault:
		for _, c := range n.Children {
			if _, err := it.evalWithCtx(ctx, c, scope); err != nil {
				return Outcome{}, err
			}
		}
		return ValueOutcome(Undefined()), nil

	case actionir.KindUnknown:
		return ValueOutcome(it.addWarning(n, "interpreter has no evaluation rule for this node; treating as undefined")), nil

	default:
		return ValueOutcome(it.addWarning(n, fmt.Sprintf("unhandled action kind %q", n.Kind))), nil
	}
}

func (it *Interpreter) evalStatements(ctx context.Context, stmts []*actionir.Action, scope *Scope) (Outcome, error) {
	last := ValueOutcome(Undefined())
	for _, s := range stmts {
		out, err := it.eval(ctx, s, scope)
		if err != nil {
			return out, err
		}
		if out.IsSignal() {
			return out, nil
		}
		last = out
	}
	return last, nil
}

func (it *Interpreter) evalDeclare(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	declKind := "var"
	if n.Kind == actionir.KindDeclareConst {
		declKind = "const"
	}
	nameNode := n.ChildByRole(actionir.RoleVariable)
	if nameNode == nil || nameNode.Kind != actionir.KindIdentifier {
		return ValueOutcome(Undefined()), nil
	}
	name, _ := nameNode.Attr("name")
	val := Undefined()
	if valNode := n.ChildByRole(actionir.RoleValue); valNode != nil {
		out, err := it.evalWithCtx(ctx, valNode, scope)
		if err != nil || out.IsSignal() {
			return out, err
		}
		val = out.Value
	}
	scope.Declare(name.AsString(), declKind, val)
	return ValueOutcome(val), nil
}

func (it *Interpreter) literalValue(n *actionir.Action) Value {
	raw, _ := n.Attr("raw")
	lit, _ := n.Attr("literal")
	text := raw.AsString()
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null()
	case "undefined":
		return Undefined()
	}
	if len(text) > 0 && (text[0] == '"' || text[0] == '\'' || text[0] == '`') {
		return String(lit.AsString())
	}
	if f, err := parseNumber(text); err == nil {
		return Number(f)
	}
	return String(lit.AsString())
}

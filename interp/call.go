package interp

import (
	"context"
	"fmt"

	"github.com/a11yscan/engine/actionir"
)

func (it *Interpreter) buildFunction(n *actionir.Action, scope *Scope) *Function {
	name, _ := n.Attr("name")
	fn := &Function{Name: name.AsString(), Captured: scope, Body: n.ChildByRole(actionir.RoleBody)}
	for _, c := range n.Children {
		if c.Kind == actionir.KindDeclareParam {
			pname, _ := c.Attr("name")
			fn.Params = append(fn.Params, pname.AsString())
		}
	}
	return fn
}

func (it *Interpreter) evalClass(n *actionir.Action, scope *Scope) (Outcome, error) {
	name, _ := n.Attr("name")
	methods := map[string]*Function{}
	for _, c := range n.Children {
		if c.Kind != actionir.KindDeclareMethod {
			continue
		}
		mname, _ := c.Attr("name")
		methods[mname.AsString()] = it.buildFunction(c, scope)
	}
	ctor := &Function{
		Name: name.AsString(),
		Native: func(interp *Interpreter, this Value, args []Value) (Value, error) {
			if this.Kind != KindObject {
				return Undefined(), nil
			}
			for mname, mfn := range methods {
				if mname == "constructor" {
					continue
				}
				this.Obj.Set(mname, FunctionValue(mfn))
			}
			if ctorFn, ok := methods["constructor"]; ok {
				callScope := NewScope(ctorFn.Captured)
				for i, p := range ctorFn.Params {
					v := Undefined()
					if i < len(args) {
						v = args[i]
					}
					callScope.Declare(p, "let", v)
				}
				callScope.Declare("this", "const", this)
				if _, err := interp.eval(nil, ctorFn.Body, callScope); err != nil {
					return Undefined(), err
				}
			}
			return this, nil
		},
	}
	classVal := FunctionValue(ctor)
	if name.AsString() != "" {
		scope.Declare(name.AsString(), "let", classVal)
	}
	return ValueOutcome(classVal), nil
}

func (it *Interpreter) evalArgList(ctx context.Context, nodes []*actionir.Action, scope *Scope) ([]Value, Outcome, error) {
	var args []Value
	for _, a := range nodes {
		out, err := it.evalWithCtx(ctx, a, scope)
		if err != nil || out.IsSignal() {
			return nil, out, err
		}
		if a.Kind == actionir.KindSpread && out.Value.Kind == KindArray {
			args = append(args, out.Value.Obj.Elems...)
			continue
		}
		args = append(args, out.Value)
	}
	return args, Outcome{}, nil
}

func (it *Interpreter) evalCall(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	calleeNode := n.ChildByRole(actionir.RoleCallee)
	var fnVal, thisVal Value
	if calleeNode != nil && calleeNode.Kind == actionir.KindMemberAccess {
		v, obj, err := it.evalMemberAccess(ctx, calleeNode, scope)
		if err != nil {
			return Outcome{}, err
		}
		fnVal, thisVal = v, obj
	} else {
		out, err := it.evalWithCtx(ctx, calleeNode, scope)
		if err != nil || out.IsSignal() {
			return out, err
		}
		fnVal = out.Value
		thisVal = Undefined()
	}

	args, sigOut, err := it.evalArgList(ctx, n.ChildrenByRole(actionir.RoleArgument), scope)
	if err != nil {
		return Outcome{}, err
	}
	if sigOut.IsSignal() {
		return sigOut, nil
	}

	if fnVal.Kind != KindFunction {
		return ValueOutcome(it.addWarning(n, "call target is not a function; treating call as undefined")), nil
	}
	return it.invoke(ctx, fnVal.Fn, thisVal, args)
}

func (it *Interpreter) evalNew(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	ctorOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleCallee), scope)
	if err != nil || ctorOut.IsSignal() {
		return ctorOut, err
	}
	args, sigOut, err := it.evalArgList(ctx, n.ChildrenByRole(actionir.RoleArgument), scope)
	if err != nil {
		return Outcome{}, err
	}
	if sigOut.IsSignal() {
		return sigOut, nil
	}
	if ctorOut.Value.Kind != KindFunction {
		return ValueOutcome(it.addWarning(n, "new target is not a function; treating as an empty object")), nil
	}
	instance := ObjectValue(NewObject())
	out, err := it.invoke(ctx, ctorOut.Value.Fn, instance, args)
	if err != nil {
		return Outcome{}, err
	}
	if out.Kind == OutcomeValue && out.Value.Kind == KindObject {
		return ValueOutcome(out.Value), nil
	}
	return ValueOutcome(instance), nil
}

// invoke runs fn (native or user) against this/args and returns the
// call expression's Outcome: a plain value on normal return, or an
// unconsumed ThrowSignal propagated to the call site so an enclosing
// try/catch can still observe it.
func (it *Interpreter) invoke(ctx context.Context, fn *Function, this Value, args []Value) (Outcome, error) {
	it.callDepth++
	defer func() { it.callDepth-- }()
	if it.callDepth > it.maxCallDepth {
		return Outcome{}, ErrMaxCallDepth
	}
	if err := checkCtx(ctx); err != nil {
		return Outcome{}, err
	}

	if fn.Native != nil {
		v, err := fn.Native(it, this, args)
		if err != nil {
			return Outcome{}, err
		}
		return ValueOutcome(v), nil
	}

	callScope := NewScope(fn.Captured)
	for i, p := range fn.Params {
		v := Undefined()
		if i < len(args) {
			v = args[i]
		}
		callScope.Declare(p, "let", v)
	}
	callScope.Declare("arguments", "var", ArrayValue(args))
	callScope.Declare("this", "const", this)

	out, err := it.eval(ctx, fn.Body, callScope)
	if err != nil {
		return Outcome{}, err
	}
	switch out.Kind {
	case OutcomeReturn:
		return ValueOutcome(out.Value), nil
	case OutcomeThrow:
		return out, nil
	default:
		return ValueOutcome(Undefined()), nil
	}
}

// callFunctionValue is the convenience form used by host built-ins
// (Array.prototype callbacks) that have no surrounding try/catch to
// hand a ThrowSignal back to: an unconsumed throw becomes a Go error.
func (it *Interpreter) callFunctionValue(ctx context.Context, fnVal Value, this Value, args []Value) (Value, error) {
	if fnVal.Kind != KindFunction {
		return Undefined(), nil
	}
	out, err := it.invoke(ctx, fnVal.Fn, this, args)
	if err != nil {
		return Undefined(), err
	}
	if out.Kind == OutcomeThrow {
		return Undefined(), fmt.Errorf("interp: unhandled throw in callback: %s", out.Value.ToString())
	}
	return out.Value, nil
}

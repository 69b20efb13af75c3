package interp

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/a11yscan/engine/actionir"
)

func (it *Interpreter) resolveIdentifier(name string, scope *Scope) Value {
	switch name {
	case "undefined":
		return Undefined()
	case "NaN":
		return NaN()
	case "Infinity":
		return Infinity()
	}
	if b, ok := scope.Lookup(name); ok {
		return b.Value
	}
	return Undefined()
}

func (it *Interpreter) evalBinary(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	leftOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleLeft), scope)
	if err != nil || leftOut.IsSignal() {
		return leftOut, err
	}
	rightOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleRight), scope)
	if err != nil || rightOut.IsSignal() {
		return rightOut, err
	}
	op, _ := n.Attr("operator")
	return ValueOutcome(applyBinaryOp(op.AsString(), leftOut.Value, rightOut.Value)), nil
}

func applyBinaryOp(op string, l, r Value) Value {
	switch op {
	case "+":
		if l.Kind == KindString || r.Kind == KindString {
			return String(l.ToString() + r.ToString())
		}
		return Number(l.ToNumber() + r.ToNumber())
	case "-":
		return Number(l.ToNumber() - r.ToNumber())
	case "*":
		return Number(l.ToNumber() * r.ToNumber())
	case "/":
		return Number(l.ToNumber() / r.ToNumber())
	case "%":
		return Number(math.Mod(l.ToNumber(), r.ToNumber()))
	case "**":
		return Number(math.Pow(l.ToNumber(), r.ToNumber()))
	case "==":
		return Bool(LooseEquals(l, r))
	case "!=":
		return Bool(!LooseEquals(l, r))
	case "===":
		return Bool(StrictEquals(l, r))
	case "!==":
		return Bool(!StrictEquals(l, r))
	case "<":
		return compareValues(l, r, func(a, b float64) bool { return a < b }, func(a, b string) bool { return a < b })
	case "<=":
		return compareValues(l, r, func(a, b float64) bool { return a <= b }, func(a, b string) bool { return a <= b })
	case ">":
		return compareValues(l, r, func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b })
	case ">=":
		return compareValues(l, r, func(a, b float64) bool { return a >= b }, func(a, b string) bool { return a >= b })
	case "&":
		return Number(float64(int64(l.ToNumber()) & int64(r.ToNumber())))
	case "|":
		return Number(float64(int64(l.ToNumber()) | int64(r.ToNumber())))
	case "^":
		return Number(float64(int64(l.ToNumber()) ^ int64(r.ToNumber())))
	case "<<":
		return Number(float64(int64(l.ToNumber()) << uint(int64(r.ToNumber())&31)))
	case ">>":
		return Number(float64(int64(l.ToNumber()) >> uint(int64(r.ToNumber())&31)))
	case "instanceof":
		return Bool(l.Kind == KindObject && r.Kind == KindFunction)
	case "in":
		if r.Kind == KindObject || r.Kind == KindArray {
			_, ok := r.Obj.Get(l.ToString())
			return Bool(ok)
		}
		return Bool(false)
	default:
		return Undefined()
	}
}

func compareValues(l, r Value, numCmp func(a, b float64) bool, strCmp func(a, b string) bool) Value {
	if l.Kind == KindString && r.Kind == KindString {
		return Bool(strCmp(l.S, r.S))
	}
	return Bool(numCmp(l.ToNumber(), r.ToNumber()))
}

func (it *Interpreter) evalLogical(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	op, _ := n.Attr("operator")
	leftOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleLeft), scope)
	if err != nil || leftOut.IsSignal() {
		return leftOut, err
	}
	switch op.AsString() {
	case "&&":
		if !leftOut.Value.Truthy() {
			return leftOut, nil
		}
	case "||":
		if leftOut.Value.Truthy() {
			return leftOut, nil
		}
	case "??":
		if leftOut.Value.Kind != KindUndefined && leftOut.Value.Kind != KindNull {
			return leftOut, nil
		}
	}
	return it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleRight), scope)
}

func (it *Interpreter) evalUnary(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	op, _ := n.Attr("operator")
	prefix, _ := n.Attr("prefix")
	argNode := n.ChildByRole(actionir.RoleArgument)

	switch op.AsString() {
	case "typeof":
		if argNode != nil && argNode.Kind == actionir.KindIdentifier {
			name, _ := argNode.Attr("name")
			if _, ok := scope.Lookup(name.AsString()); !ok {
				return ValueOutcome(String("undefined")), nil
			}
		}
		out, err := it.evalWithCtx(ctx, argNode, scope)
		if err != nil || out.IsSignal() {
			return out, err
		}
		return ValueOutcome(String(out.Value.TypeOf())), nil
	case "++", "--":
		return it.evalUpdate(ctx, argNode, scope, op.AsString(), prefix.AsBool())
	}

	out, err := it.evalWithCtx(ctx, argNode, scope)
	if err != nil || out.IsSignal() {
		return out, err
	}
	switch op.AsString() {
	case "!":
		return ValueOutcome(Bool(!out.Value.Truthy())), nil
	case "-":
		return ValueOutcome(Number(-out.Value.ToNumber())), nil
	case "+":
		return ValueOutcome(Number(out.Value.ToNumber())), nil
	case "~":
		return ValueOutcome(Number(float64(^int64(out.Value.ToNumber())))), nil
	case "void":
		return ValueOutcome(Undefined()), nil
	default:
		return ValueOutcome(Undefined()), nil
	}
}

func (it *Interpreter) evalUpdate(ctx context.Context, target *actionir.Action, scope *Scope, op string, prefix bool) (Outcome, error) {
	cur, err := it.evalWithCtx(ctx, target, scope)
	if err != nil || cur.IsSignal() {
		return cur, err
	}
	next := cur.Value.ToNumber()
	if op == "++" {
		next++
	} else {
		next--
	}
	nextVal := Number(next)
	if err := it.assignTo(ctx, target, nextVal, scope); err != nil {
		return Outcome{}, err
	}
	if prefix {
		return ValueOutcome(nextVal), nil
	}
	return ValueOutcome(Number(cur.Value.ToNumber())), nil
}

func (it *Interpreter) evalConditional(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	condOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleCondition), scope)
	if err != nil || condOut.IsSignal() {
		return condOut, err
	}
	if condOut.Value.Truthy() {
		return it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleThen), scope)
	}
	return it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleElse), scope)
}

func (it *Interpreter) evalAssign(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	target := n.ChildByRole(actionir.RoleLeft)
	rightOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleRight), scope)
	if err != nil || rightOut.IsSignal() {
		return rightOut, err
	}
	op, _ := n.Attr("operator")
	val := rightOut.Value
	if op.AsString() != "=" {
		curOut, err := it.evalWithCtx(ctx, target, scope)
		if err != nil || curOut.IsSignal() {
			return curOut, err
		}
		binOp := strings.TrimSuffix(op.AsString(), "=")
		val = applyBinaryOp(binOp, curOut.Value, rightOut.Value)
	}
	if err := it.assignTo(ctx, target, val, scope); err != nil {
		return Outcome{}, err
	}
	return ValueOutcome(val), nil
}

func (it *Interpreter) assignTo(ctx context.Context, target *actionir.Action, val Value, scope *Scope) error {
	if target == nil {
		return nil
	}
	switch target.Kind {
	case actionir.KindIdentifier:
		name, _ := target.Attr("name")
		scope.Assign(name.AsString(), val)
		return nil
	case actionir.KindMemberAccess:
		objOut, err := it.evalWithCtx(ctx, target.ChildByRole(actionir.RoleObject), scope)
		if err != nil {
			return err
		}
		propNode := target.ChildByRole(actionir.RoleProperty)
		key, err := it.propertyKey(ctx, propNode, scope)
		if err != nil {
			return err
		}
		switch objOut.Value.Kind {
		case KindObject:
			objOut.Value.Obj.Set(key, val)
		case KindArray:
			setArrayIndex(objOut.Value.Obj, key, val)
		}
		return nil
	default:
		return nil
	}
}

func setArrayIndex(obj *Object, key string, val Value) {
	idx, err := parseArrayIndex(key)
	if err != nil {
		obj.Set(key, val)
		return
	}
	for len(obj.Elems) <= idx {
		obj.Elems = append(obj.Elems, Undefined())
	}
	obj.Elems[idx] = val
}

func parseArrayIndex(key string) (int, error) {
	return strconv.Atoi(key)
}

func (it *Interpreter) propertyKey(ctx context.Context, propNode *actionir.Action, scope *Scope) (string, error) {
	if propNode == nil {
		return "", nil
	}
	if propNode.Kind == actionir.KindIdentifier {
		name, _ := propNode.Attr("name")
		return name.AsString(), nil
	}
	out, err := it.evalWithCtx(ctx, propNode, scope)
	if err != nil {
		return "", err
	}
	return out.Value.ToString(), nil
}

func (it *Interpreter) evalMemberAccess(ctx context.Context, n *actionir.Action, scope *Scope) (Value, Value, error) {
	objOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleObject), scope)
	if err != nil || objOut.IsSignal() {
		return Undefined(), Undefined(), err
	}
	propNode := n.ChildByRole(actionir.RoleProperty)
	key, err := it.propertyKey(ctx, propNode, scope)
	if err != nil {
		return Undefined(), Undefined(), err
	}
	return it.getProperty(objOut.Value, key), objOut.Value, nil
}

func (it *Interpreter) evalArrayLiteral(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	var elems []Value
	for _, c := range n.Children {
		out, err := it.evalWithCtx(ctx, c, scope)
		if err != nil || out.IsSignal() {
			return out, err
		}
		elems = append(elems, out.Value)
	}
	return ValueOutcome(ArrayValue(elems)), nil
}

func (it *Interpreter) evalObjectLiteral(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	obj := NewObject()
	for _, prop := range n.Children {
		if prop.Kind != actionir.KindProperty {
			continue
		}
		keyNode := prop.ChildByRole(actionir.RoleKey)
		valNode := prop.ChildByRole(actionir.RoleValue)
		key, err := it.propertyKey(ctx, keyNode, scope)
		if err != nil {
			return Outcome{}, err
		}
		out, err := it.evalWithCtx(ctx, valNode, scope)
		if err != nil || out.IsSignal() {
			return out, err
		}
		obj.Set(key, out.Value)
	}
	return ValueOutcome(ObjectValue(obj)), nil
}

func (it *Interpreter) evalTemplate(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	var sb strings.Builder
	for _, c := range n.Children {
		out, err := it.evalWithCtx(ctx, c, scope)
		if err != nil || out.IsSignal() {
			return out, err
		}
		sb.WriteString(out.Value.ToString())
	}
	return ValueOutcome(String(sb.String())), nil
}

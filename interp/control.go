package interp

import (
	"context"
	"strconv"

	"github.com/a11yscan/engine/actionir"
)

func (it *Interpreter) tickIteration(ctx context.Context) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	it.iterations++
	if it.iterations > it.maxIterations {
		return ErrMaxIterations
	}
	return nil
}

func (it *Interpreter) evalIf(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	cond := n.ChildByRole(actionir.RoleCondition)
	out, err := it.evalWithCtx(ctx, cond, scope)
	if err != nil || out.IsSignal() {
		return out, err
	}
	if out.Value.Truthy() {
		return it.eval(ctx, n.ChildByRole(actionir.RoleThen), scope)
	}
	if elseNode := n.ChildByRole(actionir.RoleElse); elseNode != nil {
		return it.eval(ctx, elseNode, scope)
	}
	return ValueOutcome(Undefined()), nil
}

func (it *Interpreter) evalFor(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	loopScope := NewScope(scope)
	if init := n.ChildByRole(actionir.RoleInit); init != nil {
		if out, err := it.evalWithCtx(ctx, init, loopScope); err != nil || out.IsSignal() {
			return out, err
		}
	}
	cond := n.ChildByRole(actionir.RoleTest)
	body := n.ChildByRole(actionir.RoleBody)
	update := n.ChildByRole(actionir.RoleUpdate)

	for {
		if cond != nil {
			out, err := it.evalWithCtx(ctx, cond, loopScope)
			if err != nil || out.IsSignal() {
				return out, err
			}
			if !out.Value.Truthy() {
				break
			}
		}
		if err := it.tickIteration(ctx); err != nil {
			return Outcome{}, err
		}
		out, err := it.eval(ctx, body, loopScope)
		if err != nil {
			return out, err
		}
		switch out.Kind {
		case OutcomeBreak:
			return ValueOutcome(Undefined()), nil
		case OutcomeReturn, OutcomeThrow:
			return out, nil
		}
		if update != nil {
			if out, err := it.evalWithCtx(ctx, update, loopScope); err != nil || out.IsSignal() {
				return out, err
			}
		}
	}
	return ValueOutcome(Undefined()), nil
}

func (it *Interpreter) evalWhile(ctx context.Context, n *actionir.Action, scope *Scope, isDoWhile bool) (Outcome, error) {
	cond := n.ChildByRole(actionir.RoleCondition)
	body := n.ChildByRole(actionir.RoleBody)
	first := true
	for {
		if !(isDoWhile && first) {
			out, err := it.evalWithCtx(ctx, cond, scope)
			if err != nil || out.IsSignal() {
				return out, err
			}
			if !out.Value.Truthy() {
				break
			}
		}
		first = false
		if err := it.tickIteration(ctx); err != nil {
			return Outcome{}, err
		}
		out, err := it.eval(ctx, body, scope)
		if err != nil {
			return out, err
		}
		switch out.Kind {
		case OutcomeBreak:
			return ValueOutcome(Undefined()), nil
		case OutcomeReturn, OutcomeThrow:
			return out, nil
		}
		if isDoWhile {
			out, err := it.evalWithCtx(ctx, cond, scope)
			if err != nil || out.IsSignal() {
				return out, err
			}
			if !out.Value.Truthy() {
				break
			}
			if err := it.tickIteration(ctx); err != nil {
				return Outcome{}, err
			}
		}
	}
	return ValueOutcome(Undefined()), nil
}

func (it *Interpreter) evalForInOf(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	variable := n.ChildByRole(actionir.RoleVariable)
	iterable := n.ChildByRole(actionir.RoleIterable)
	body := n.ChildByRole(actionir.RoleBody)

	iterOut, err := it.evalWithCtx(ctx, iterable, scope)
	if err != nil || iterOut.IsSignal() {
		return iterOut, err
	}

	var items []Value
	switch n.Kind {
	case actionir.KindForOf:
		if iterOut.Value.Kind == KindArray {
			items = iterOut.Value.Obj.Elems
		} else if iterOut.Value.Kind == KindString {
			for _, r := range iterOut.Value.S {
				items = append(items, String(string(r)))
			}
		}
	case actionir.KindForIn:
		if iterOut.Value.Kind == KindObject || iterOut.Value.Kind == KindArray {
			for _, k := range iterOut.Value.Obj.Keys {
				items = append(items, String(k))
			}
			if iterOut.Value.Kind == KindArray {
				for i := range iterOut.Value.Obj.Elems {
					items = append(items, String(strconv.Itoa(i)))
				}
			}
		}
	}

	var varName string
	if variable != nil {
		switch variable.Kind {
		case actionir.KindIdentifier:
			name, _ := variable.Attr("name")
			varName = name.AsString()
		case actionir.KindDeclareVar, actionir.KindDeclareConst:
			if nameNode := variable.ChildByRole(actionir.RoleVariable); nameNode != nil {
				name, _ := nameNode.Attr("name")
				varName = name.AsString()
			}
		}
	}

	loopScope := NewScope(scope)
	for _, item := range items {
		if err := it.tickIteration(ctx); err != nil {
			return Outcome{}, err
		}
		if varName != "" {
			loopScope.Declare(varName, "let", item)
		}
		out, err := it.eval(ctx, body, loopScope)
		if err != nil {
			return out, err
		}
		switch out.Kind {
		case OutcomeBreak:
			return ValueOutcome(Undefined()), nil
		case OutcomeReturn, OutcomeThrow:
			return out, nil
		}
	}
	return ValueOutcome(Undefined()), nil
}

func (it *Interpreter) evalSwitch(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	discOut, err := it.evalWithCtx(ctx, n.ChildByRole(actionir.RoleDiscriminant), scope)
	if err != nil || discOut.IsSignal() {
		return discOut, err
	}
	switchScope := NewScope(scope)

	matchedIdx := -1
	for i, c := range n.Children {
		if c.Kind != actionir.KindCase {
			continue
		}
		test := c.ChildByRole(actionir.RoleTest)
		testOut, err := it.evalWithCtx(ctx, test, switchScope)
		if err != nil || testOut.IsSignal() {
			return testOut, err
		}
		if StrictEquals(discOut.Value, testOut.Value) {
			matchedIdx = i
			break
		}
	}
	if matchedIdx == -1 {
		for i, c := range n.Children {
			if c.Kind == actionir.KindDefault {
				matchedIdx = i
				break
			}
		}
	}
	if matchedIdx == -1 {
		return ValueOutcome(Undefined()), nil
	}
	for _, c := range n.Children[matchedIdx:] {
		if c.Kind != actionir.KindCase && c.Kind != actionir.KindDefault {
			continue
		}
		body := c.ChildByRole(actionir.RoleBody)
		out, err := it.eval(ctx, body, switchScope)
		if err != nil {
			return out, err
		}
		if out.Kind == OutcomeBreak {
			return ValueOutcome(Undefined()), nil
		}
		if out.Kind == OutcomeReturn || out.Kind == OutcomeThrow || out.Kind == OutcomeContinue {
			return out, nil
		}
	}
	return ValueOutcome(Undefined()), nil
}

func (it *Interpreter) evalTry(ctx context.Context, n *actionir.Action, scope *Scope) (Outcome, error) {
	tryBlock := n.ChildByRole(actionir.RoleTry)
	out, err := it.eval(ctx, tryBlock, scope)
	if err != nil {
		return out, err
	}
	if out.Kind == OutcomeThrow {
		for _, c := range n.Children {
			if c.Kind != actionir.KindCatch {
				continue
			}
			catchScope := NewScope(scope)
			if param := c.ChildByRole(actionir.RoleVariable); param != nil {
				name, _ := param.Attr("name")
				catchScope.Declare(name.AsString(), "let", out.Value)
			}
			out, err = it.eval(ctx, c.ChildByRole(actionir.RoleBody), catchScope)
			if err != nil {
				return out, err
			}
			break
		}
	}
	for _, c := range n.Children {
		if c.Kind != actionir.KindFinally {
			continue
		}
		finOut, err := it.eval(ctx, c.Children[0], scope)
		if err != nil {
			return finOut, err
		}
		if finOut.IsSignal() {
			return finOut, nil
		}
	}
	return out, nil
}

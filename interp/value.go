package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/a11yscan/engine/actionir"
)

// ValueKind is the closed set of runtime value shapes the interpreter
// produces, replacing a dynamically-typed interface{} value with an
// explicit tagged variant (DESIGN NOTES §9).
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
	KindFunction
)

// NativeFunc is a host-provided implementation backing a Function
// value that has no Action IR body (console.log, Math.max, ...).
type NativeFunc func(interp *Interpreter, this Value, args []Value) (Value, error)

// Function is a callable value: either a user closure over Action IR
// (Body/Captured set, Native nil) or a host-native function (Native
// set, Body nil).
type Function struct {
	Name     string
	Params   []string
	Body     *actionir.Action
	Captured *Scope
	Native   NativeFunc
}

// Object backs both plain objects and arrays (IsArray selects which).
// Keys preserves insertion order for Object.keys-style enumeration.
type Object struct {
	Props   map[string]Value
	Keys    []string
	IsArray bool
	Elems   []Value
}

func NewObject() *Object {
	return &Object{Props: map[string]Value{}}
}

func (o *Object) Set(key string, v Value) {
	if _, exists := o.Props[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Props[key] = v
}

func (o *Object) Get(key string) (Value, bool) {
	if o.IsArray {
		if key == "length" {
			return Number(float64(len(o.Elems))), true
		}
		if idx, err := strconv.Atoi(key); err == nil {
			if idx >= 0 && idx < len(o.Elems) {
				return o.Elems[idx], true
			}
			return Undefined(), true
		}
	}
	v, ok := o.Props[key]
	return v, ok
}

// Value is the tagged runtime value. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	B    bool
	N    float64
	S    string
	Obj  *Object
	Fn   *Function
}

func Undefined() Value { return Value{Kind: KindUndefined} }
func Null() Value      { return Value{Kind: KindNull} }
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }
func Number(n float64) Value { return Value{Kind: KindNumber, N: n} }
func String(s string) Value  { return Value{Kind: KindString, S: s} }
func NaN() Value              { return Value{Kind: KindNumber, N: math.NaN()} }
func Infinity() Value         { return Value{Kind: KindNumber, N: math.Inf(1)} }

func ObjectValue(o *Object) Value {
	return Value{Kind: KindObject, Obj: o}
}

func ArrayValue(elems []Value) Value {
	return Value{Kind: KindArray, Obj: &Object{IsArray: true, Elems: elems, Props: map[string]Value{}}}
}

func FunctionValue(f *Function) Value {
	return Value{Kind: KindFunction, Fn: f}
}

func NativeFunction(name string, fn NativeFunc) Value {
	return FunctionValue(&Function{Name: name, Native: fn})
}

// Truthy implements JS-style truthiness coercion.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindUndefined, KindNull:
		return false
	case KindBool:
		return v.B
	case KindNumber:
		return v.N != 0 && !math.IsNaN(v.N)
	case KindString:
		return v.S != ""
	default:
		return true
	}
}

// ToNumber implements the numeric coercion the spec requires for
// arithmetic/comparison operators.
func (v Value) ToNumber() float64 {
	switch v.Kind {
	case KindUndefined:
		return math.NaN()
	case KindNull:
		return 0
	case KindBool:
		if v.B {
			return 1
		}
		return 0
	case KindNumber:
		return v.N
	case KindString:
		trimmed := strings.TrimSpace(v.S)
		if trimmed == "" {
			return 0
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	default:
		return math.NaN()
	}
}

// ToString implements the string coercion used by `+` and
// console/template literal rendering.
func (v Value) ToString() string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindNumber:
		if math.IsNaN(v.N) {
			return "NaN"
		}
		if math.IsInf(v.N, 1) {
			return "Infinity"
		}
		if math.IsInf(v.N, -1) {
			return "-Infinity"
		}
		return strconv.FormatFloat(v.N, 'g', -1, 64)
	case KindString:
		return v.S
	case KindArray:
		parts := make([]string, len(v.Obj.Elems))
		for i, e := range v.Obj.Elems {
			parts[i] = e.ToString()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	case KindFunction:
		name := v.Fn.Name
		return fmt.Sprintf("function %s() { [native code] }", name)
	default:
		return ""
	}
}

// StrictEquals implements `===` (no coercion, NaN never equal).
func StrictEquals(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.B == b.B
	case KindNumber:
		if math.IsNaN(a.N) || math.IsNaN(b.N) {
			return false
		}
		return a.N == b.N
	case KindString:
		return a.S == b.S
	case KindObject, KindArray:
		return a.Obj == b.Obj
	case KindFunction:
		return a.Fn == b.Fn
	default:
		return false
	}
}

// LooseEquals implements `==`, coercing null/undefined together and
// numbers/strings against each other, matching the subset of the
// abstract equality algorithm reachable from typical front-end code.
func LooseEquals(a, b Value) bool {
	if a.Kind == b.Kind {
		return StrictEquals(a, b)
	}
	isNullish := func(v Value) bool { return v.Kind == KindUndefined || v.Kind == KindNull }
	if isNullish(a) && isNullish(b) {
		return true
	}
	if isNullish(a) || isNullish(b) {
		return false
	}
	if a.Kind == KindNumber && b.Kind == KindString {
		return a.N == b.ToNumber()
	}
	if a.Kind == KindString && b.Kind == KindNumber {
		return a.ToNumber() == b.N
	}
	if a.Kind == KindBool {
		return LooseEquals(Number(a.ToNumber()), b)
	}
	if b.Kind == KindBool {
		return LooseEquals(a, Number(b.ToNumber()))
	}
	return false
}

// TypeOf implements the `typeof` operator.
func (v Value) TypeOf() string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "object"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return "object"
	}
}

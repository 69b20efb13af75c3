package interp

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// installHostBindings populates root with the built-in globals spec.md
// §4.3 lists: console, Math/JSON/Object/Array/String/Number
// namespaces, the global coercion/URI functions, and, when
// domSimulation is on, a deterministic mock window/document so scripts
// that touch the DOM run to completion instead of throwing on a
// missing global.
func (it *Interpreter) installHostBindings(root *Scope) {
	root.Declare("console", "const", it.buildConsole())
	root.Declare("Math", "const", buildMath())
	root.Declare("JSON", "const", buildJSON())
	root.Declare("Object", "const", buildObjectNS())
	root.Declare("Array", "const", buildArrayNS())
	root.Declare("String", "const", buildStringNS())
	root.Declare("Number", "const", buildNumberNS())

	root.Declare("parseInt", "const", NativeFunction("parseInt", nativeParseInt))
	root.Declare("parseFloat", "const", NativeFunction("parseFloat", nativeParseFloat))
	root.Declare("isNaN", "const", NativeFunction("isNaN", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return Bool(math.IsNaN(firstArgNumber(args))), nil
	}))
	root.Declare("isFinite", "const", NativeFunction("isFinite", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		n := firstArgNumber(args)
		return Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	}))
	root.Declare("encodeURIComponent", "const", NativeFunction("encodeURIComponent", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return String(url.QueryEscape(firstArgString(args))), nil
	}))
	root.Declare("decodeURIComponent", "const", NativeFunction("decodeURIComponent", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		s, err := url.QueryUnescape(firstArgString(args))
		if err != nil {
			return String(firstArgString(args)), nil
		}
		return String(s), nil
	}))
	root.Declare("encodeURI", "const", NativeFunction("encodeURI", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return String((&url.URL{Path: firstArgString(args)}).EscapedPath()), nil
	}))
	root.Declare("decodeURI", "const", NativeFunction("decodeURI", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		s, err := url.PathUnescape(firstArgString(args))
		if err != nil {
			return String(firstArgString(args)), nil
		}
		return String(s), nil
	}))

	if it.domSimulation {
		it.installDOMBindings(root)
	}
}

func (it *Interpreter) buildConsole() Value {
	c := NewObject()
	logger := func(level string) NativeFunc {
		return func(interp *Interpreter, _ Value, args []Value) (Value, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = a.ToString()
			}
			line := strings.Join(parts, " ")
			if level != "log" {
				line = fmt.Sprintf("[%s] %s", level, line)
			}
			interp.console = append(interp.console, line)
			return Undefined(), nil
		}
	}
	c.Set("log", NativeFunction("log", logger("log")))
	c.Set("info", NativeFunction("info", logger("info")))
	c.Set("warn", NativeFunction("warn", logger("warn")))
	c.Set("error", NativeFunction("error", logger("error")))
	c.Set("debug", NativeFunction("debug", logger("debug")))
	return ObjectValue(c)
}

func buildMath() Value {
	m := NewObject()
	m.Set("PI", Number(math.Pi))
	m.Set("E", Number(math.E))
	unary := func(name string, f func(float64) float64) {
		m.Set(name, NativeFunction(name, func(_ *Interpreter, _ Value, args []Value) (Value, error) {
			return Number(f(firstArgNumber(args))), nil
		}))
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("sqrt", math.Sqrt)
	unary("trunc", math.Trunc)
	unary("sign", func(n float64) float64 {
		switch {
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return n
		}
	})
	m.Set("round", NativeFunction("round", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return Number(math.Floor(firstArgNumber(args) + 0.5)), nil
	}))
	m.Set("pow", NativeFunction("pow", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) < 2 {
			return NaN(), nil
		}
		return Number(math.Pow(args[0].ToNumber(), args[1].ToNumber())), nil
	}))
	m.Set("max", NativeFunction("max", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return Number(reduceNumbers(args, math.Inf(-1), math.Max)), nil
	}))
	m.Set("min", NativeFunction("min", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return Number(reduceNumbers(args, math.Inf(1), math.Min)), nil
	}))
	m.Set("random", NativeFunction("random", func(interp *Interpreter, _ Value, _ []Value) (Value, error) {
		// Deterministic by design: spec.md's reproducibility invariant
		// requires identical output across runs of the same program.
		interp.randomCalls++
		return Number(math.Mod(float64(interp.randomCalls)*0.137, 1)), nil
	}))
	return ObjectValue(m)
}

func reduceNumbers(args []Value, initial float64, f func(a, b float64) float64) float64 {
	acc := initial
	for _, a := range args {
		acc = f(acc, a.ToNumber())
	}
	return acc
}

func buildJSON() Value {
	j := NewObject()
	j.Set("stringify", NativeFunction("stringify", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 {
			return Undefined(), nil
		}
		return String(jsonEncode(args[0])), nil
	}))
	j.Set("parse", NativeFunction("parse", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		v, _, err := jsonDecode(firstArgString(args))
		if err != nil {
			return Undefined(), nil
		}
		return v, nil
	}))
	return ObjectValue(j)
}

func buildObjectNS() Value {
	o := NewObject()
	o.Set("keys", NativeFunction("keys", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind != KindObject && args[0].Kind != KindArray {
			return ArrayValue(nil), nil
		}
		elems := make([]Value, len(args[0].Obj.Keys))
		for i, k := range args[0].Obj.Keys {
			elems[i] = String(k)
		}
		return ArrayValue(elems), nil
	}))
	o.Set("values", NativeFunction("values", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Obj == nil {
			return ArrayValue(nil), nil
		}
		elems := make([]Value, len(args[0].Obj.Keys))
		for i, k := range args[0].Obj.Keys {
			elems[i], _ = args[0].Obj.Get(k)
		}
		return ArrayValue(elems), nil
	}))
	o.Set("entries", NativeFunction("entries", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Obj == nil {
			return ArrayValue(nil), nil
		}
		elems := make([]Value, len(args[0].Obj.Keys))
		for i, k := range args[0].Obj.Keys {
			v, _ := args[0].Obj.Get(k)
			elems[i] = ArrayValue([]Value{String(k), v})
		}
		return ArrayValue(elems), nil
	}))
	o.Set("assign", NativeFunction("assign", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Obj == nil {
			return Undefined(), nil
		}
		target := args[0]
		for _, src := range args[1:] {
			if src.Obj == nil {
				continue
			}
			for _, k := range src.Obj.Keys {
				v, _ := src.Obj.Get(k)
				target.Obj.Set(k, v)
			}
		}
		return target, nil
	}))
	o.Set("freeze", NativeFunction("freeze", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 {
			return Undefined(), nil
		}
		return args[0], nil
	}))
	return ObjectValue(o)
}

func buildArrayNS() Value {
	a := NewObject()
	a.Set("isArray", NativeFunction("isArray", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return Bool(len(args) > 0 && args[0].Kind == KindArray), nil
	}))
	a.Set("from", NativeFunction("from", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 {
			return ArrayValue(nil), nil
		}
		switch args[0].Kind {
		case KindArray:
			out := make([]Value, len(args[0].Obj.Elems))
			copy(out, args[0].Obj.Elems)
			return ArrayValue(out), nil
		case KindString:
			runes := []rune(args[0].S)
			out := make([]Value, len(runes))
			for i, r := range runes {
				out[i] = String(string(r))
			}
			return ArrayValue(out), nil
		default:
			return ArrayValue(nil), nil
		}
	}))
	return ObjectValue(a)
}

func buildStringNS() Value {
	s := NewObject()
	s.Set("fromCharCode", NativeFunction("fromCharCode", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		var sb strings.Builder
		for _, a := range args {
			sb.WriteRune(rune(int(a.ToNumber())))
		}
		return String(sb.String()), nil
	}))
	return ObjectValue(s)
}

func buildNumberNS() Value {
	n := NewObject()
	n.Set("isInteger", NativeFunction("isInteger", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind != KindNumber {
			return Bool(false), nil
		}
		f := args[0].N
		return Bool(!math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)), nil
	}))
	n.Set("isFinite", NativeFunction("isFinite", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind != KindNumber {
			return Bool(false), nil
		}
		return Bool(!math.IsNaN(args[0].N) && !math.IsInf(args[0].N, 0)), nil
	}))
	n.Set("parseFloat", NativeFunction("parseFloat", nativeParseFloat))
	n.Set("parseInt", NativeFunction("parseInt", nativeParseInt))
	n.Set("MAX_SAFE_INTEGER", Number(9007199254740991))
	n.Set("MIN_SAFE_INTEGER", Number(-9007199254740991))
	return ObjectValue(n)
}

func nativeParseInt(_ *Interpreter, _ Value, args []Value) (Value, error) {
	text := strings.TrimSpace(firstArgString(args))
	base := 10
	if len(args) > 1 {
		if b := int(args[1].ToNumber()); b != 0 {
			base = b
		}
	}
	end := 0
	for end < len(text) && (text[end] == '-' || text[end] == '+' || isBaseDigit(text[end], base)) {
		end++
	}
	if end == 0 {
		return NaN(), nil
	}
	n, err := strconv.ParseInt(text[:end], base, 64)
	if err != nil {
		return NaN(), nil
	}
	return Number(float64(n)), nil
}

func isBaseDigit(b byte, base int) bool {
	var v int
	switch {
	case b >= '0' && b <= '9':
		v = int(b - '0')
	case b >= 'a' && b <= 'z':
		v = int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		v = int(b-'A') + 10
	default:
		return false
	}
	return v < base
}

func nativeParseFloat(_ *Interpreter, _ Value, args []Value) (Value, error) {
	text := strings.TrimSpace(firstArgString(args))
	end := 0
	seenDot, seenExp := false, false
	for end < len(text) {
		c := text[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '-' || c == '+':
		case c == '.' && !seenDot:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp:
			seenExp = true
		default:
			goto done
		}
		end++
	}
done:
	if end == 0 {
		return NaN(), nil
	}
	f, err := strconv.ParseFloat(text[:end], 64)
	if err != nil {
		return NaN(), nil
	}
	return Number(f), nil
}

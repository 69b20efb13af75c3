package interp

import "strings"

// getProperty resolves obj.key for every value kind, including the
// small built-in method surface spec.md §4.3/§6 expose for
// String/Array: this is where JS's "everything has a prototype"
// behavior is approximated without modeling a real prototype chain.
func (it *Interpreter) getProperty(obj Value, key string) Value {
	switch obj.Kind {
	case KindString:
		return stringMember(obj.S, key)
	case KindArray:
		if v, ok := obj.Obj.Get(key); ok {
			return v
		}
		return arrayMember(obj, key)
	case KindObject:
		if v, ok := obj.Obj.Get(key); ok {
			return v
		}
		return Undefined()
	case KindFunction:
		if key == "name" {
			return String(obj.Fn.Name)
		}
		if key == "length" {
			return Number(float64(len(obj.Fn.Params)))
		}
		return Undefined()
	default:
		return Undefined()
	}
}

func stringMember(s, key string) Value {
	switch key {
	case "length":
		return Number(float64(len([]rune(s))))
	case "toUpperCase":
		return NativeFunction("toUpperCase", func(_ *Interpreter, this Value, _ []Value) (Value, error) {
			return String(strings.ToUpper(this.S)), nil
		})
	case "toLowerCase":
		return NativeFunction("toLowerCase", func(_ *Interpreter, this Value, _ []Value) (Value, error) {
			return String(strings.ToLower(this.S)), nil
		})
	case "trim":
		return NativeFunction("trim", func(_ *Interpreter, this Value, _ []Value) (Value, error) {
			return String(strings.TrimSpace(this.S)), nil
		})
	case "includes":
		return NativeFunction("includes", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			return Bool(strings.Contains(this.S, firstArgString(args))), nil
		})
	case "indexOf":
		return NativeFunction("indexOf", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			return Number(float64(strings.Index(this.S, firstArgString(args)))), nil
		})
	case "startsWith":
		return NativeFunction("startsWith", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			return Bool(strings.HasPrefix(this.S, firstArgString(args))), nil
		})
	case "endsWith":
		return NativeFunction("endsWith", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			return Bool(strings.HasSuffix(this.S, firstArgString(args))), nil
		})
	case "split":
		return NativeFunction("split", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			sep := firstArgString(args)
			parts := strings.Split(this.S, sep)
			elems := make([]Value, len(parts))
			for i, p := range parts {
				elems[i] = String(p)
			}
			return ArrayValue(elems), nil
		})
	case "charAt":
		return NativeFunction("charAt", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			idx := int(firstArgNumber(args))
			runes := []rune(this.S)
			if idx < 0 || idx >= len(runes) {
				return String(""), nil
			}
			return String(string(runes[idx])), nil
		})
	case "slice", "substring":
		return NativeFunction(key, func(_ *Interpreter, this Value, args []Value) (Value, error) {
			runes := []rune(this.S)
			start, end := sliceBounds(len(runes), args)
			return String(string(runes[start:end])), nil
		})
	case "replace":
		return NativeFunction("replace", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			if len(args) < 2 {
				return String(this.S), nil
			}
			return String(strings.Replace(this.S, args[0].ToString(), args[1].ToString(), 1)), nil
		})
	case "toString":
		return NativeFunction("toString", func(_ *Interpreter, this Value, _ []Value) (Value, error) {
			return String(this.S), nil
		})
	default:
		return Undefined()
	}
}

func arrayMember(arr Value, key string) Value {
	switch key {
	case "push":
		return NativeFunction("push", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			this.Obj.Elems = append(this.Obj.Elems, args...)
			return Number(float64(len(this.Obj.Elems))), nil
		})
	case "pop":
		return NativeFunction("pop", func(_ *Interpreter, this Value, _ []Value) (Value, error) {
			n := len(this.Obj.Elems)
			if n == 0 {
				return Undefined(), nil
			}
			last := this.Obj.Elems[n-1]
			this.Obj.Elems = this.Obj.Elems[:n-1]
			return last, nil
		})
	case "join":
		return NativeFunction("join", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			sep := ","
			if len(args) > 0 {
				sep = args[0].ToString()
			}
			parts := make([]string, len(this.Obj.Elems))
			for i, e := range this.Obj.Elems {
				parts[i] = e.ToString()
			}
			return String(strings.Join(parts, sep)), nil
		})
	case "indexOf":
		return NativeFunction("indexOf", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			if len(args) == 0 {
				return Number(-1), nil
			}
			for i, e := range this.Obj.Elems {
				if StrictEquals(e, args[0]) {
					return Number(float64(i)), nil
				}
			}
			return Number(-1), nil
		})
	case "includes":
		return NativeFunction("includes", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			if len(args) == 0 {
				return Bool(false), nil
			}
			for _, e := range this.Obj.Elems {
				if StrictEquals(e, args[0]) {
					return Bool(true), nil
				}
			}
			return Bool(false), nil
		})
	case "slice":
		return NativeFunction("slice", func(_ *Interpreter, this Value, args []Value) (Value, error) {
			start, end := sliceBounds(len(this.Obj.Elems), args)
			out := make([]Value, end-start)
			copy(out, this.Obj.Elems[start:end])
			return ArrayValue(out), nil
		})
	case "forEach":
		return NativeFunction("forEach", func(interp *Interpreter, this Value, args []Value) (Value, error) {
			if len(args) == 0 || args[0].Kind != KindFunction {
				return Undefined(), nil
			}
			for i, e := range this.Obj.Elems {
				if _, err := interp.callFunctionValue(nil, args[0], Undefined(), []Value{e, Number(float64(i)), this}); err != nil {
					return Undefined(), err
				}
			}
			return Undefined(), nil
		})
	case "map":
		return NativeFunction("map", func(interp *Interpreter, this Value, args []Value) (Value, error) {
			if len(args) == 0 || args[0].Kind != KindFunction {
				return ArrayValue(nil), nil
			}
			out := make([]Value, len(this.Obj.Elems))
			for i, e := range this.Obj.Elems {
				v, err := interp.callFunctionValue(nil, args[0], Undefined(), []Value{e, Number(float64(i)), this})
				if err != nil {
					return Undefined(), err
				}
				out[i] = v
			}
			return ArrayValue(out), nil
		})
	case "filter":
		return NativeFunction("filter", func(interp *Interpreter, this Value, args []Value) (Value, error) {
			if len(args) == 0 || args[0].Kind != KindFunction {
				return ArrayValue(nil), nil
			}
			var out []Value
			for i, e := range this.Obj.Elems {
				v, err := interp.callFunctionValue(nil, args[0], Undefined(), []Value{e, Number(float64(i)), this})
				if err != nil {
					return Undefined(), err
				}
				if v.Truthy() {
					out = append(out, e)
				}
			}
			return ArrayValue(out), nil
		})
	default:
		return Undefined()
	}
}

func firstArgString(args []Value) string {
	if len(args) == 0 {
		return ""
	}
	return args[0].ToString()
}

func firstArgNumber(args []Value) float64 {
	if len(args) == 0 {
		return 0
	}
	return args[0].ToNumber()
}

func sliceBounds(length int, args []Value) (int, int) {
	start, end := 0, length
	if len(args) > 0 {
		start = normalizeIndex(int(args[0].ToNumber()), length)
	}
	if len(args) > 1 {
		end = normalizeIndex(int(args[1].ToNumber()), length)
	}
	if end < start {
		end = start
	}
	return start, end
}

func normalizeIndex(idx, length int) int {
	if idx < 0 {
		idx += length
	}
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}

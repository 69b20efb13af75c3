package interp

import "strings"

// installDOMBindings wires window/document/navigator/location/storage
// and friends into root as deterministic mocks: there is no real
// render tree, so structural queries (getElementById,
// querySelector[All]) return stand-in elements keyed by the selector
// text rather than matching against actual markup. Scripts that only
// probe for the DOM's existence (`typeof window !== "undefined"`,
// feature-detection guards) run to completion instead of throwing on
// a missing global.
func (it *Interpreter) installDOMBindings(root *Scope) {
	it.domElements = map[string]Value{}

	doc := it.buildDocument()
	win := NewObject()
	win.Set("document", doc)
	win.Set("location", buildLocation())
	win.Set("navigator", buildNavigator())
	win.Set("localStorage", buildStorage())
	win.Set("sessionStorage", buildStorage())
	win.Set("innerWidth", Number(1024))
	win.Set("innerHeight", Number(768))
	win.Set("setTimeout", NativeFunction("setTimeout", it.nativeSetTimer))
	win.Set("setInterval", NativeFunction("setInterval", it.nativeSetTimer))
	win.Set("clearTimeout", NativeFunction("clearTimeout", nativeNoop))
	win.Set("clearInterval", NativeFunction("clearInterval", nativeNoop))
	win.Set("requestAnimationFrame", NativeFunction("requestAnimationFrame", it.nativeSetTimer))
	win.Set("cancelAnimationFrame", NativeFunction("cancelAnimationFrame", nativeNoop))
	win.Set("alert", NativeFunction("alert", func(interp *Interpreter, _ Value, args []Value) (Value, error) {
		interp.console = append(interp.console, "[alert] "+firstArgString(args))
		return Undefined(), nil
	}))
	win.Set("confirm", NativeFunction("confirm", func(_ *Interpreter, _ Value, _ []Value) (Value, error) {
		return Bool(false), nil
	}))
	win.Set("prompt", NativeFunction("prompt", func(_ *Interpreter, _ Value, _ []Value) (Value, error) {
		return Null(), nil
	}))
	win.Set("addEventListener", NativeFunction("addEventListener", nativeNoop))
	win.Set("removeEventListener", NativeFunction("removeEventListener", nativeNoop))
	winVal := ObjectValue(win)
	win.Set("window", winVal)
	win.Set("self", winVal)

	root.Declare("window", "const", winVal)
	root.Declare("self", "const", winVal)
	root.Declare("document", "const", doc)
	root.Declare("navigator", "const", win.Props["navigator"])
	root.Declare("location", "const", win.Props["location"])
	root.Declare("localStorage", "const", win.Props["localStorage"])
	root.Declare("sessionStorage", "const", win.Props["sessionStorage"])
	root.Declare("setTimeout", "const", win.Props["setTimeout"])
	root.Declare("setInterval", "const", win.Props["setInterval"])
	root.Declare("clearTimeout", "const", win.Props["clearTimeout"])
	root.Declare("clearInterval", "const", win.Props["clearInterval"])
	root.Declare("Element", "const", NativeFunction("Element", func(_ *Interpreter, _ Value, _ []Value) (Value, error) {
		return ObjectValue(newMockElement("div")), nil
	}))
	root.Declare("HTMLElement", "const", NativeFunction("HTMLElement", func(_ *Interpreter, _ Value, _ []Value) (Value, error) {
		return ObjectValue(newMockElement("div")), nil
	}))
}

func nativeNoop(_ *Interpreter, _ Value, _ []Value) (Value, error) { return Undefined(), nil }

// nativeSetTimer runs the callback synchronously once: spec.md's
// interpreter has no event loop, and running the callback immediately
// is the only deterministic choice that still exercises handler logic
// scheduled via setTimeout/requestAnimationFrame.
func (it *Interpreter) nativeSetTimer(interp *Interpreter, _ Value, args []Value) (Value, error) {
	interp.timerIDs++
	id := interp.timerIDs
	if len(args) > 0 && args[0].Kind == KindFunction {
		var extra []Value
		if len(args) > 2 {
			extra = args[2:]
		}
		if _, err := interp.callFunctionValue(nil, args[0], Undefined(), extra); err != nil {
			return Undefined(), err
		}
	}
	return Number(float64(id)), nil
}

func (it *Interpreter) buildDocument() Value {
	doc := NewObject()
	doc.Set("body", ObjectValue(newMockElement("body")))
	doc.Set("documentElement", ObjectValue(newMockElement("html")))
	doc.Set("title", String(""))
	doc.Set("activeElement", Null())
	doc.Set("createElement", NativeFunction("createElement", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		return ObjectValue(newMockElement(firstArgString(args))), nil
	}))
	doc.Set("getElementById", NativeFunction("getElementById", func(interp *Interpreter, _ Value, args []Value) (Value, error) {
		return interp.lookupOrCreateElement("id:"+firstArgString(args), firstArgString(args)), nil
	}))
	doc.Set("querySelector", NativeFunction("querySelector", func(interp *Interpreter, _ Value, args []Value) (Value, error) {
		return interp.lookupOrCreateElement("qs:"+firstArgString(args), selectorTag(firstArgString(args))), nil
	}))
	doc.Set("querySelectorAll", NativeFunction("querySelectorAll", func(interp *Interpreter, _ Value, args []Value) (Value, error) {
		el := interp.lookupOrCreateElement("qsall:"+firstArgString(args), selectorTag(firstArgString(args)))
		return ArrayValue([]Value{el}), nil
	}))
	doc.Set("getElementsByClassName", NativeFunction("getElementsByClassName", func(interp *Interpreter, _ Value, args []Value) (Value, error) {
		el := interp.lookupOrCreateElement("class:"+firstArgString(args), "div")
		return ArrayValue([]Value{el}), nil
	}))
	doc.Set("addEventListener", NativeFunction("addEventListener", nativeNoop))
	doc.Set("removeEventListener", NativeFunction("removeEventListener", nativeNoop))
	return ObjectValue(doc)
}

func (it *Interpreter) lookupOrCreateElement(key, tagOrID string) Value {
	if v, ok := it.domElements[key]; ok {
		return v
	}
	el := newMockElement(tagOrID)
	if strings.HasPrefix(key, "id:") {
		el.Set("id", String(tagOrID))
	}
	v := ObjectValue(el)
	it.domElements[key] = v
	return v
}

func selectorTag(sel string) string {
	sel = strings.TrimPrefix(sel, ".")
	sel = strings.TrimPrefix(sel, "#")
	if sel == "" {
		return "div"
	}
	return sel
}

func newMockElement(tag string) *Object {
	el := NewObject()
	if tag == "" {
		tag = "div"
	}
	el.Set("tagName", String(strings.ToUpper(tag)))
	el.Set("id", String(""))
	el.Set("className", String(""))
	el.Set("textContent", String(""))
	el.Set("innerHTML", String(""))
	el.Set("value", String(""))
	el.Set("style", ObjectValue(NewObject()))
	el.Set("dataset", ObjectValue(NewObject()))
	el.Set("children", ArrayValue(nil))

	attrs := NewObject()
	el.Set("getAttribute", NativeFunction("getAttribute", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if v, ok := attrs.Get(firstArgString(args)); ok {
			return v, nil
		}
		return Null(), nil
	}))
	el.Set("setAttribute", NativeFunction("setAttribute", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) < 2 {
			return Undefined(), nil
		}
		attrs.Set(args[0].ToString(), String(args[1].ToString()))
		return Undefined(), nil
	}))
	el.Set("removeAttribute", NativeFunction("removeAttribute", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		delete(attrs.Props, firstArgString(args))
		return Undefined(), nil
	}))
	el.Set("hasAttribute", NativeFunction("hasAttribute", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		_, ok := attrs.Get(firstArgString(args))
		return Bool(ok), nil
	}))

	el.Set("classList", buildClassList(el))
	el.Set("addEventListener", NativeFunction("addEventListener", nativeNoop))
	el.Set("removeEventListener", NativeFunction("removeEventListener", nativeNoop))
	el.Set("appendChild", NativeFunction("appendChild", func(_ *Interpreter, this Value, args []Value) (Value, error) {
		kids, _ := this.Obj.Get("children")
		if kids.Kind == KindArray && len(args) > 0 {
			kids.Obj.Elems = append(kids.Obj.Elems, args[0])
		}
		if len(args) > 0 {
			return args[0], nil
		}
		return Undefined(), nil
	}))
	el.Set("focus", NativeFunction("focus", nativeNoop))
	el.Set("blur", NativeFunction("blur", nativeNoop))
	el.Set("click", NativeFunction("click", nativeNoop))
	el.Set("getBoundingClientRect", NativeFunction("getBoundingClientRect", func(_ *Interpreter, _ Value, _ []Value) (Value, error) {
		rect := NewObject()
		for _, k := range []string{"top", "left", "right", "bottom", "width", "height", "x", "y"} {
			rect.Set(k, Number(0))
		}
		return ObjectValue(rect), nil
	}))
	return el
}

func buildClassList(el *Object) Value {
	classes := func() []string {
		cur, _ := el.Get("className")
		return strings.Fields(cur.S)
	}
	setClasses := func(list []string) { el.Set("className", String(strings.Join(list, " "))) }

	cl := NewObject()
	cl.Set("add", NativeFunction("add", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		list := classes()
		for _, a := range args {
			name := a.ToString()
			found := false
			for _, c := range list {
				if c == name {
					found = true
					break
				}
			}
			if !found {
				list = append(list, name)
			}
		}
		setClasses(list)
		return Undefined(), nil
	}))
	cl.Set("remove", NativeFunction("remove", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		list := classes()
		var out []string
		for _, c := range list {
			drop := false
			for _, a := range args {
				if a.ToString() == c {
					drop = true
					break
				}
			}
			if !drop {
				out = append(out, c)
			}
		}
		setClasses(out)
		return Undefined(), nil
	}))
	cl.Set("contains", NativeFunction("contains", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		name := firstArgString(args)
		for _, c := range classes() {
			if c == name {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	}))
	cl.Set("toggle", NativeFunction("toggle", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		name := firstArgString(args)
		list := classes()
		for i, c := range list {
			if c == name {
				list = append(list[:i], list[i+1:]...)
				setClasses(list)
				return Bool(false), nil
			}
		}
		list = append(list, name)
		setClasses(list)
		return Bool(true), nil
	}))
	return ObjectValue(cl)
}

func buildLocation() Value {
	loc := NewObject()
	loc.Set("href", String("http://localhost/"))
	loc.Set("protocol", String("http:"))
	loc.Set("hostname", String("localhost"))
	loc.Set("pathname", String("/"))
	loc.Set("search", String(""))
	loc.Set("hash", String(""))
	return ObjectValue(loc)
}

func buildNavigator() Value {
	nav := NewObject()
	nav.Set("userAgent", String("a11yscan-interp/1.0"))
	nav.Set("language", String("en-US"))
	return ObjectValue(nav)
}

func buildStorage() Value {
	store := NewObject()
	backing := NewObject()
	store.Set("getItem", NativeFunction("getItem", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if v, ok := backing.Get(firstArgString(args)); ok {
			return v, nil
		}
		return Null(), nil
	}))
	store.Set("setItem", NativeFunction("setItem", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		if len(args) < 2 {
			return Undefined(), nil
		}
		backing.Set(args[0].ToString(), String(args[1].ToString()))
		return Undefined(), nil
	}))
	store.Set("removeItem", NativeFunction("removeItem", func(_ *Interpreter, _ Value, args []Value) (Value, error) {
		delete(backing.Props, firstArgString(args))
		return Undefined(), nil
	}))
	store.Set("clear", NativeFunction("clear", func(_ *Interpreter, _ Value, _ []Value) (Value, error) {
		backing.Props = map[string]Value{}
		backing.Keys = nil
		return Undefined(), nil
	}))
	return ObjectValue(store)
}

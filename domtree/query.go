package domtree

import "strings"

// selector is a parsed single simple selector: #id, .class, [attr],
// [attr="value"], or a bare tag name.
type selector struct {
	id, class, tag, attrName, attrValue string
	hasAttrValue                        bool
}

func parseSelector(raw string) selector {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "#"):
		return selector{id: raw[1:]}
	case strings.HasPrefix(raw, "."):
		return selector{class: raw[1:]}
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		body := raw[1 : len(raw)-1]
		if eq := strings.Index(body, "="); eq >= 0 {
			name := strings.TrimSpace(body[:eq])
			value := strings.Trim(strings.TrimSpace(body[eq+1:]), `"'`)
			return selector{attrName: name, attrValue: value, hasAttrValue: true}
		}
		return selector{attrName: body}
	default:
		return selector{tag: strings.ToLower(raw)}
	}
}

// Matches reports whether el satisfies sel.
func (s selector) Matches(el *Element) bool {
	if el.NodeType != NodeElement {
		return false
	}
	switch {
	case s.id != "":
		id, _ := el.Attr("id")
		return id == s.id
	case s.class != "":
		return el.HasClass(s.class)
	case s.attrName != "":
		v, ok := el.Attr(s.attrName)
		if !ok {
			return false
		}
		if s.hasAttrValue {
			return v == s.attrValue
		}
		return true
	default:
		return el.TagName == s.tag
	}
}

// GetElementByID returns the element with the given id, or nil.
func (f *Fragment) GetElementByID(id string) *Element {
	var found *Element
	f.Walk(nil, func(el *Element) bool {
		if found != nil {
			return false
		}
		if v, ok := el.Attr("id"); ok && v == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelector returns the first element matching raw, or nil.
func (f *Fragment) QuerySelector(raw string) *Element {
	sel := parseSelector(raw)
	var found *Element
	f.Walk(nil, func(el *Element) bool {
		if found != nil {
			return false
		}
		if sel.Matches(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every element matching raw, in document
// order.
func (f *Fragment) QuerySelectorAll(raw string) []*Element {
	sel := parseSelector(raw)
	var out []*Element
	f.Walk(nil, func(el *Element) bool {
		if sel.Matches(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// GetAllElements returns every element node (text/comment excluded)
// in document order.
func (f *Fragment) GetAllElements() []*Element {
	var out []*Element
	f.Walk(nil, func(el *Element) bool {
		if el.NodeType == NodeElement {
			out = append(out, el)
		}
		return true
	})
	return out
}

// interactiveTags are natively interactive regardless of handlers.
var interactiveTags = map[string]bool{"a": true, "button": true, "input": true, "select": true, "textarea": true}

// GetFocusableElements returns every element satisfying the
// focusability rule in spec.md §4.2.
func (f *Fragment) GetFocusableElements() []*Element {
	var out []*Element
	for _, el := range f.GetAllElements() {
		if IsFocusable(el) {
			out = append(out, el)
		}
	}
	return out
}

// IsFocusable implements spec.md §4.2's focusability rule: a
// non-negative tabindex, or a naturally interactive, non-disabled tag
// (anchors additionally need an href).
func IsFocusable(el *Element) bool {
	if tabIndex, ok := el.TabIndex(); ok && tabIndex >= 0 {
		return true
	}
	if !interactiveTags[el.TagName] || el.Disabled() {
		return false
	}
	if el.TagName == "a" {
		_, hasHref := el.Attr("href")
		return hasHref
	}
	return true
}

// GetInteractiveElements returns every focusable element plus every
// element carrying at least one JS handler (populated by
// docmodel.Merge; before merge this degenerates to focusable-only).
func (f *Fragment) GetInteractiveElements() []*Element {
	var out []*Element
	for _, el := range f.GetAllElements() {
		if IsFocusable(el) || len(el.HandlerRefs) > 0 {
			out = append(out, el)
		}
	}
	return out
}

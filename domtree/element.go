// Package domtree models an already-parsed HTML/JSX element tree.
// Parsing itself is an external concern (spec.md §1); this package
// only owns the typed tree, selector matching, and derived
// accessibility properties (focusability, accessible label,
// validation) described in spec.md §4.2.
package domtree

import (
	"strconv"
	"strings"
)

// NodeType distinguishes element nodes from text/comment leaves.
type NodeType int

const (
	NodeElement NodeType = iota
	NodeText
	NodeComment
)

// Location is a source position within one fragment's source file.
type Location struct {
	File   string
	Line   int
	Column int
}

// Element is one node of a DOM fragment. Children are owned; Parent
// is a weak back-reference (an index into the owning Fragment's
// arena, DESIGN NOTES §9's "cyclic graph" resolution) so the tree
// stays acyclic and trivially garbage-collectable.
type Element struct {
	ID       int // arena index within the owning Fragment
	NodeType NodeType
	TagName  string // lower-cased; empty for text/comment nodes
	Text     string // text content for NodeText; ignored otherwise
	Attrs    map[string]string
	Children []int // child Element IDs within the same Fragment
	ParentID int    // -1 for the fragment root
	Loc      Location

	// Derived by docmodel.Merge; untouched by domtree itself.
	HandlerRefs []string
	CSSRuleRefs []int
}

// NewElement constructs a leaf-safe Element with a nil-to-empty Attrs
// map, matching the teacher's convention of never leaving maps nil on
// a constructed value (see linage.PackageModel's map-literal fields).
func NewElement(tag string, attrs map[string]string) *Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Element{TagName: strings.ToLower(tag), Attrs: attrs, ParentID: -1}
}

// Attr returns an attribute value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Classes returns the whitespace-separated class list.
func (e *Element) Classes() []string {
	cls, ok := e.Attrs["class"]
	if !ok || strings.TrimSpace(cls) == "" {
		return nil
	}
	return strings.Fields(cls)
}

// HasClass reports whether name is present in the class attribute.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// Disabled reports whether the element carries a disabled attribute
// (boolean-attribute semantics: presence, not value, matters).
func (e *Element) Disabled() bool {
	_, ok := e.Attrs["disabled"]
	return ok
}

// TabIndex parses the tabindex attribute, returning ok=false when
// absent or not a valid integer.
func (e *Element) TabIndex() (int, bool) {
	raw, ok := e.Attrs["tabindex"]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// SelectorSet computes the selector set docmodel.Merge uses to join
// this element against action-language handler bindings and CSS
// rules: #id, one .class per token, the tag name, [role="..."] and
// one [aria-...] per ARIA attribute present (spec.md §4.4 step 1).
func (e *Element) SelectorSet() []string {
	var out []string
	if id, ok := e.Attrs["id"]; ok && id != "" {
		out = append(out, "#"+id)
	}
	for _, c := range e.Classes() {
		out = append(out, "."+c)
	}
	if e.TagName != "" {
		out = append(out, e.TagName)
	}
	if role, ok := e.Attrs["role"]; ok && role != "" {
		out = append(out, `[role="`+role+`"]`)
	}
	for name := range e.Attrs {
		if strings.HasPrefix(name, "aria-") {
			out = append(out, "["+name+"]")
		}
	}
	return out
}

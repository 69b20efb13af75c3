// Package docmodel implements the DocumentModel integrator (spec.md
// §4.4): it joins DOM fragments, per-file action-language handler
// models, and CSS models into per-element contexts plus a
// whole-model completeness score that downstream detectors use to
// derive confidence.
package docmodel

import (
	"math"
	"strings"

	"github.com/a11yscan/engine/cssmodel"
	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/transform"
)

// Scope is the analysis granularity a DocumentModel was built at.
type Scope string

const (
	ScopeFile      Scope = "file"
	ScopePage      Scope = "page"
	ScopeWorkspace Scope = "workspace"
)

// textLayoutTags are excluded from the missing-label heuristic in
// GetElementsWithIssues (spec.md §4.4).
var textLayoutTags = map[string]bool{"div": true, "span": true, "p": true}

// ariaRefAttrs is the closed set of attributes the completeness
// walker resolves cross-fragment.
var ariaRefAttrs = []string{"aria-labelledby", "aria-describedby", "aria-controls"}

// ElementRef identifies one element within its owning fragment; arena
// IDs are only unique per fragment, so a ref always carries both.
type ElementRef struct {
	Fragment *domtree.Fragment
	Element  *domtree.Element
}

// ElementContext is the pure-function-of-a-merged-element summary
// spec.md §4.4 defines: handlers, CSS rules, and derived
// interactivity/labelling.
type ElementContext struct {
	Ref                ElementRef
	Handlers           []transform.HandlerBinding
	CSSRules           []*cssmodel.Rule
	Focusable          bool
	Interactive        bool
	HasClickHandler    bool
	HasKeyboardHandler bool
	Role               string
	Label              string
}

type elementKey struct {
	fragmentIndex int
	elementID     int
}

// DocumentModel is the merged view over one analysis scope's DOM
// fragments, action-language models, and CSS models.
type DocumentModel struct {
	Scope        Scope
	Fragments    []*domtree.Fragment
	ActionModels []*transform.HandlerModel
	CSSModels    []*cssmodel.Model

	merged            bool
	treeCompleteness  float64
	handlersByElement map[elementKey][]transform.HandlerBinding
	rulesByElement    map[elementKey][]*cssmodel.Rule
	contexts          map[elementKey]*ElementContext
}

// New constructs an unmerged DocumentModel. Call Merge before reading
// any derived property.
func New(scope Scope, fragments []*domtree.Fragment, actionModels []*transform.HandlerModel, cssModels []*cssmodel.Model) *DocumentModel {
	return &DocumentModel{Scope: scope, Fragments: fragments, ActionModels: actionModels, CSSModels: cssModels}
}

func keyFor(fragmentIndex int, el *domtree.Element) elementKey {
	return elementKey{fragmentIndex: fragmentIndex, elementID: el.ID}
}

// Merge runs the four-step algorithm from spec.md §4.4: selector-set
// based handler/CSS-rule union per element, then completeness
// scoring. Idempotent — a second call is a no-op.
func (d *DocumentModel) Merge() {
	if d.merged {
		return
	}
	d.merged = true
	d.handlersByElement = map[elementKey][]transform.HandlerBinding{}
	d.rulesByElement = map[elementKey][]*cssmodel.Rule{}
	d.contexts = map[elementKey]*ElementContext{}

	for fi, frag := range d.Fragments {
		for _, el := range frag.GetAllElements() {
			key := keyFor(fi, el)

			var handlers []transform.HandlerBinding
			for _, am := range d.ActionModels {
				for _, sel := range el.SelectorSet() {
					handlers = append(handlers, am.FindBySelector(sel)...)
				}
			}
			d.handlersByElement[key] = handlers

			var rules []*cssmodel.Rule
			for _, cm := range d.CSSModels {
				rules = append(rules, cm.GetMatchingRules(el)...)
			}
			d.rulesByElement[key] = rules

			el.HandlerRefs = handlerRefStrings(handlers)
			el.CSSRuleRefs = ruleSourceOrders(rules)
		}
	}

	d.computeCompleteness()
	d.buildContexts()
}

func handlerRefStrings(handlers []transform.HandlerBinding) []string {
	if len(handlers) == 0 {
		return nil
	}
	out := make([]string, len(handlers))
	for i, h := range handlers {
		out[i] = h.ActionType + ":" + h.Event
	}
	return out
}

func ruleSourceOrders(rules []*cssmodel.Rule) []int {
	if len(rules) == 0 {
		return nil
	}
	out := make([]int, len(rules))
	for i, r := range rules {
		out[i] = r.SourceOrder
	}
	return out
}

// computeCompleteness implements spec.md §4.4's completeness formula
// exactly, including the zero-fragment special case.
func (d *DocumentModel) computeCompleteness() {
	n := len(d.Fragments)
	if n == 0 {
		d.treeCompleteness = 0.0
		return
	}
	var base float64
	if n == 1 {
		base = 0.7
	} else {
		base = math.Max(0.3, 1.0-0.1*float64(n))
	}
	resolved, unresolved := d.countAriaReferences()
	if resolved+unresolved > 0 {
		base += 0.3 * float64(resolved) / float64(resolved+unresolved)
	}
	if base > 1.0 {
		base = 1.0
	}
	d.treeCompleteness = base
}

func (d *DocumentModel) countAriaReferences() (resolved, unresolved int) {
	for _, frag := range d.Fragments {
		for _, el := range frag.GetAllElements() {
			for _, attr := range ariaRefAttrs {
				v, ok := el.Attr(attr)
				v = strings.TrimSpace(v)
				if !ok || v == "" {
					continue
				}
				if d.GetElementByID(v) != nil {
					resolved++
				} else {
					unresolved++
				}
			}
		}
	}
	return resolved, unresolved
}

func (d *DocumentModel) buildContexts() {
	for fi, frag := range d.Fragments {
		for _, el := range frag.GetAllElements() {
			key := keyFor(fi, el)
			handlers := d.handlersByElement[key]
			focusable := domtree.IsFocusable(el)
			hasClick, hasKeyboard := false, false
			for _, h := range handlers {
				if h.ActionType != "eventHandler" {
					continue
				}
				switch h.Event {
				case "click":
					hasClick = true
				case "keydown", "keypress", "keyup":
					hasKeyboard = true
				}
			}
			d.contexts[key] = &ElementContext{
				Ref:                ElementRef{Fragment: frag, Element: el},
				Handlers:           handlers,
				CSSRules:           d.rulesByElement[key],
				Focusable:          focusable,
				Interactive:        focusable || len(handlers) > 0,
				HasClickHandler:    hasClick,
				HasKeyboardHandler: hasKeyboard,
				Role:               domtree.Role(el),
				Label:              domtree.AccessibleLabel(frag, el),
			}
		}
	}
}

// FragmentCount returns the number of DOM fragments in this scope.
func (d *DocumentModel) FragmentCount() int { return len(d.Fragments) }

// TreeCompleteness returns the merged model's completeness score,
// merging first if necessary.
func (d *DocumentModel) TreeCompleteness() float64 {
	d.Merge()
	return d.treeCompleteness
}

// Context returns the derived ElementContext for el within frag,
// merging first if necessary, or nil if frag is not part of this model
// or el is unknown.
func (d *DocumentModel) Context(frag *domtree.Fragment, el *domtree.Element) *ElementContext {
	d.Merge()
	for fi, f := range d.Fragments {
		if f == frag {
			return d.contexts[keyFor(fi, el)]
		}
	}
	return nil
}

// Contexts returns every ElementContext in the model, in fragment
// then document order.
func (d *DocumentModel) Contexts() []*ElementContext {
	d.Merge()
	var out []*ElementContext
	for fi, frag := range d.Fragments {
		for _, el := range frag.GetAllElements() {
			if ctx, ok := d.contexts[keyFor(fi, el)]; ok {
				out = append(out, ctx)
			}
		}
	}
	return out
}

// GetElementByID searches every fragment for an element with the
// given id, in fragment order.
func (d *DocumentModel) GetElementByID(id string) *domtree.Element {
	for _, frag := range d.Fragments {
		if el := frag.GetElementByID(id); el != nil {
			return el
		}
	}
	return nil
}

// QuerySelector returns the first element across all fragments
// matching raw, or a zero ElementRef (Fragment == nil) if none match.
func (d *DocumentModel) QuerySelector(raw string) ElementRef {
	for _, frag := range d.Fragments {
		if el := frag.QuerySelector(raw); el != nil {
			return ElementRef{Fragment: frag, Element: el}
		}
	}
	return ElementRef{}
}

// QuerySelectorAll returns every element across all fragments
// matching raw, in fragment then document order.
func (d *DocumentModel) QuerySelectorAll(raw string) []ElementRef {
	var out []ElementRef
	for _, frag := range d.Fragments {
		for _, el := range frag.QuerySelectorAll(raw) {
			out = append(out, ElementRef{Fragment: frag, Element: el})
		}
	}
	return out
}

// GetAllElements returns every element across all fragments.
func (d *DocumentModel) GetAllElements() []ElementRef {
	var out []ElementRef
	for _, frag := range d.Fragments {
		for _, el := range frag.GetAllElements() {
			out = append(out, ElementRef{Fragment: frag, Element: el})
		}
	}
	return out
}

// GetInteractiveElements returns the ElementContext of every
// interactive element across all fragments.
func (d *DocumentModel) GetInteractiveElements() []*ElementContext {
	var out []*ElementContext
	for _, ctx := range d.Contexts() {
		if ctx.Interactive {
			out = append(out, ctx)
		}
	}
	return out
}

// GetElementsWithIssues implements spec.md §4.4's convenience filter:
// elements with a click handler but no keyboard handler, or focusable
// elements with no accessible label that are not text-layout tags.
func (d *DocumentModel) GetElementsWithIssues() []*ElementContext {
	var out []*ElementContext
	for _, ctx := range d.Contexts() {
		missingKeyboard := ctx.HasClickHandler && !ctx.HasKeyboardHandler
		missingLabel := ctx.Focusable && ctx.Label == "" && !textLayoutTags[ctx.Ref.Element.TagName]
		if missingKeyboard || missingLabel {
			out = append(out, ctx)
		}
	}
	return out
}

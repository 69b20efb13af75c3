package cssmodel

import (
	"sort"

	"github.com/a11yscan/engine/domtree"
)

// Model is the ordered collection of CSS rules for one stylesheet or
// merged document scope (spec.md §3 "CSS model").
type Model struct {
	rules []*Rule
}

// NewModel builds a Model from rules as given; each rule keeps the
// SourceOrder it was constructed with (only Add assigns one).
func NewModel(rules []*Rule) *Model {
	return &Model{rules: rules}
}

// Rules returns every rule in source order.
func (m *Model) Rules() []*Rule { return m.rules }

// Add appends a rule, assigning it the next source-order slot.
func (m *Model) Add(r *Rule) {
	r.SourceOrder = len(m.rules)
	m.rules = append(m.rules, r)
}

// FindBySelector returns every rule whose Selector equals raw
// exactly (no cascade matching).
func (m *Model) FindBySelector(raw string) []*Rule {
	var out []*Rule
	for _, r := range m.rules {
		if r.Selector == raw {
			out = append(out, r)
		}
	}
	return out
}

// FindFocusRules returns every rule that affects focus visibility.
func (m *Model) FindFocusRules() []*Rule {
	var out []*Rule
	for _, r := range m.rules {
		if r.AffectsFocus() {
			out = append(out, r)
		}
	}
	return out
}

// FindVisibilityRules returns every rule that can hide an element.
func (m *Model) FindVisibilityRules() []*Rule {
	var out []*Rule
	for _, r := range m.rules {
		if r.AffectsVisibility() {
			out = append(out, r)
		}
	}
	return out
}

// FindContrastRules returns every rule that sets a color or
// background-color.
func (m *Model) FindContrastRules() []*Rule {
	var out []*Rule
	for _, r := range m.rules {
		if r.AffectsContrast() {
			out = append(out, r)
		}
	}
	return out
}

// GetMatchingRules returns every rule whose selector matches el,
// sorted most-specific-first with source order as the tiebreak
// (spec.md §4.2's cascade resolution order).
func (m *Model) GetMatchingRules(el *domtree.Element) []*Rule {
	selectors := make(map[string]bool, 8)
	for _, s := range el.SelectorSet() {
		selectors[s] = true
	}
	selectors["*"] = true

	var matched []*Rule
	for _, r := range m.rules {
		base, _ := splitPseudo(r.Selector)
		if selectors[base] {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Specificity != b.Specificity {
			return b.Specificity.Less(a.Specificity)
		}
		return a.SourceOrder > b.SourceOrder
	})
	return matched
}

// IsElementHidden reports whether the winning visibility-affecting
// rule (if any, by cascade order) actually hides el.
func (m *Model) IsElementHidden(el *domtree.Element) bool {
	for _, r := range m.GetMatchingRules(el) {
		if r.AffectsVisibility() {
			return true
		}
	}
	return false
}

// HasFocusStyles reports whether el has at least one matching rule
// that provides a visible focus indicator.
func (m *Model) HasFocusStyles(el *domtree.Element) bool {
	for _, r := range m.GetMatchingRules(el) {
		if r.AffectsFocus() {
			return true
		}
	}
	return false
}

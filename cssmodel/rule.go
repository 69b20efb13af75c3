// Package cssmodel models already-parsed CSS rules (parsing itself is
// external, spec.md §1) and implements the cascade-aware matching,
// specificity ordering, and impact-flag derivation from spec.md §4.2.
package cssmodel

import "strings"

// RuleType is the closed set of CSS at-rule/rule shapes from spec.md
// §3.
type RuleType string

const (
	RuleStyle     RuleType = "style"
	RuleMedia     RuleType = "media"
	RuleKeyframes RuleType = "keyframes"
	RuleImport    RuleType = "import"
	RuleFontFace  RuleType = "font-face"
)

// PseudoClass is the closed set of pseudo-classes spec.md §3
// recognizes explicitly.
type PseudoClass string

const (
	PseudoHover       PseudoClass = "hover"
	PseudoFocus       PseudoClass = "focus"
	PseudoActive      PseudoClass = "active"
	PseudoFocusVisible PseudoClass = "focus-visible"
	PseudoFocusWithin PseudoClass = "focus-within"
	PseudoDisabled    PseudoClass = "disabled"
	PseudoChecked     PseudoClass = "checked"
)

// Specificity is the four-tuple cascade ordering key from spec.md §3:
// (inline, id, class, element).
type Specificity struct {
	Inline, ID, Class, Element int
}

// Less reports whether s is strictly less specific than other (i.e.
// other is MORE specific).
func (s Specificity) Less(other Specificity) bool {
	if s.Inline != other.Inline {
		return s.Inline < other.Inline
	}
	if s.ID != other.ID {
		return s.ID < other.ID
	}
	if s.Class != other.Class {
		return s.Class < other.Class
	}
	return s.Element < other.Element
}

// Rule is one CSS rule (spec.md §3).
type Rule struct {
	Type        RuleType
	Selector    string
	Properties  map[string]string
	Specificity Specificity
	MediaQuery  string
	Pseudo      PseudoClass
	SourceOrder int

	// derived impact flags, pure functions of Properties/Selector.
	affectsFocus, affectsVisibility, affectsContrast, affectsInteraction, hasPseudo bool
}

// NewRule constructs a Rule, computing its specificity (from the base
// selector, pseudo-classes excluded) and impact flags.
func NewRule(ruleType RuleType, selector string, properties map[string]string, sourceOrder int) *Rule {
	if properties == nil {
		properties = map[string]string{}
	}
	base, pseudo := splitPseudo(selector)
	r := &Rule{
		Type: ruleType, Selector: selector, Properties: properties,
		Pseudo: pseudo, SourceOrder: sourceOrder,
		Specificity: computeSpecificity(base),
	}
	r.deriveImpactFlags()
	return r
}

func splitPseudo(selector string) (base string, pseudo PseudoClass) {
	idx := strings.Index(selector, ":")
	if idx < 0 {
		return selector, ""
	}
	base = selector[:idx]
	rest := strings.TrimPrefix(selector[idx:], ":")
	rest = strings.TrimPrefix(rest, ":") // tolerate ::before-style double colon
	switch PseudoClass(rest) {
	case PseudoHover, PseudoFocus, PseudoActive, PseudoFocusVisible, PseudoFocusWithin, PseudoDisabled, PseudoChecked:
		pseudo = PseudoClass(rest)
	}
	return base, pseudo
}

// computeSpecificity counts id/class-or-attr/element selector
// components in base (pseudo-classes are already stripped), ignoring
// combinators. Inline
// specificity is set by NewInlineRule, never derived from selector
// text.
func computeSpecificity(base string) Specificity {
	var spec Specificity
	for _, tok := range tokenizeSelector(base) {
		switch {
		case strings.HasPrefix(tok, "#"):
			spec.ID++
		case strings.HasPrefix(tok, ".") || strings.HasPrefix(tok, "["):
			spec.Class++
		case tok == "*" || tok == "":
		default:
			spec.Element++
		}
	}
	return spec
}

// NewInlineRule builds a Rule representing a style="..." attribute,
// whose specificity always dominates any selector-based rule.
func NewInlineRule(properties map[string]string) *Rule {
	r := &Rule{Type: RuleStyle, Properties: properties, Specificity: Specificity{Inline: 1}}
	r.deriveImpactFlags()
	return r
}

// tokenizeSelector splits a simple (non-combinator-aware) selector
// into its #id/.class/[attr]/tag components.
func tokenizeSelector(selector string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	inBracket := false
	for _, r := range selector {
		switch {
		case r == '[':
			flush()
			inBracket = true
			cur.WriteRune(r)
		case r == ']':
			cur.WriteRune(r)
			flush()
			inBracket = false
		case inBracket:
			cur.WriteRune(r)
		case r == '#' || r == '.':
			flush()
			cur.WriteRune(r)
		case r == ' ' || r == '>' || r == '+' || r == '~':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (r *Rule) deriveImpactFlags() {
	props := r.Properties
	display, hasDisplay := props["display"]
	visibility, hasVisibility := props["visibility"]
	opacity := props["opacity"]
	position := props["position"]
	left := props["left"]
	clip := props["clip"]

	r.affectsVisibility = (hasDisplay && strings.TrimSpace(display) == "none") ||
		(hasVisibility && strings.TrimSpace(visibility) == "hidden") ||
		strings.TrimSpace(opacity) == "0" ||
		strings.Contains(clip, "rect(0") ||
		((position == "absolute" || position == "fixed") && strings.TrimSpace(left) == "-9999px")

	_, hasOutline := props["outline"]
	_, hasOutlineWidth := props["outline-width"]
	_, hasBoxShadow := props["box-shadow"]
	r.affectsFocus = r.Pseudo == PseudoFocus || r.Pseudo == PseudoFocusVisible || r.Pseudo == PseudoFocusWithin ||
		hasOutline || hasOutlineWidth || hasBoxShadow

	_, hasColor := props["color"]
	_, hasBg := props["background-color"]
	r.affectsContrast = hasColor || hasBg

	r.affectsInteraction = props["pointer-events"] == "none" || props["cursor"] == "pointer" ||
		r.Pseudo == PseudoHover || r.Pseudo == PseudoActive || r.Pseudo == PseudoDisabled

	r.hasPseudo = r.Pseudo != ""
}

func (r *Rule) AffectsFocus() bool       { return r.affectsFocus }
func (r *Rule) AffectsVisibility() bool  { return r.affectsVisibility }
func (r *Rule) AffectsContrast() bool    { return r.affectsContrast }
func (r *Rule) AffectsInteraction() bool { return r.affectsInteraction }
func (r *Rule) HasPseudoClass() bool     { return r.hasPseudo }

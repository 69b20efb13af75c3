package widget

import (
	"fmt"
	"strings"

	"github.com/a11yscan/engine/docmodel"
	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/finding"
)

// instance is one discovered widget-pattern root plus the descendants
// and handler bindings the checks below need.
type instance struct {
	pattern  Pattern
	fragment *domtree.Fragment
	root     *domtree.Element
}

// Validate walks dm for every registered pattern's root role and
// reports one incomplete-<pattern>-pattern finding per instance that
// fails its structural, ARIA-state, or keyboard-interaction contract.
// Document-scope only: a widget's completeness can only be judged once
// its DOM, CSS, and handler models are merged.
func Validate(dm *docmodel.DocumentModel) []finding.Finding {
	var out []finding.Finding
	for _, p := range Patterns {
		for _, frag := range dm.Fragments {
			for _, el := range frag.GetAllElements() {
				if domtree.Role(el) != p.RootRole {
					continue
				}
				inst := instance{pattern: p, fragment: frag, root: el}
				if reason, fix := inst.check(dm); reason != "" {
					out = append(out, finding.Finding{
						Kind:         finding.IncompletePatternKind(p.Name),
						Severity:     finding.SeverityWarning,
						Message:      fmt.Sprintf("%s pattern is incomplete: %s", p.Name, reason),
						Location:     finding.Location{File: el.Loc.File, Line: el.Loc.Line, Column: el.Loc.Column},
						WCAGCriteria: []string{"4.1.2", "1.3.1"},
						Confidence:   finding.ConfidenceForCompleteness(dm.TreeCompleteness(), reason, finding.ScopePage),
						Fix:          fix,
					})
				}
			}
		}
	}
	return out
}

// descendants returns every element under root (root excluded).
func (in instance) descendants() []*domtree.Element {
	var out []*domtree.Element
	in.fragment.Walk(in.root, func(el *domtree.Element) bool {
		if el != in.root {
			out = append(out, el)
		}
		return true
	})
	return out
}

// descendantsWithRole returns in's descendants whose computed role
// equals role.
func (in instance) descendantsWithRole(role string) []*domtree.Element {
	var out []*domtree.Element
	for _, el := range in.descendants() {
		if domtree.Role(el) == role {
			out = append(out, el)
		}
	}
	return out
}

// check runs the generic table-driven contract followed by any
// bespoke pattern-specific checks, returning the first failure reason
// and (for tabs) a suggested skeleton fix.
func (in instance) check(dm *docmodel.DocumentModel) (string, *finding.Fix) {
	if reason := in.checkStructure(); reason != "" {
		return reason, in.buildFix()
	}
	if reason := in.checkState(); reason != "" {
		return reason, nil
	}
	if reason := in.checkKeys(dm); reason != "" {
		return reason, nil
	}
	if reason := in.checkBespoke(dm); reason != "" {
		return reason, nil
	}
	return "", nil
}

func (in instance) checkStructure() string {
	for _, role := range in.pattern.RequiredDescendantRoles {
		if len(in.descendantsWithRole(role)) == 0 {
			return fmt.Sprintf("no descendant with role=%q", role)
		}
	}
	return ""
}

func (in instance) checkState() string {
	if len(in.pattern.RequiredState) == 0 {
		return ""
	}
	targets := []*domtree.Element{in.root}
	if in.pattern.RequiresStateOnDescendant && len(in.pattern.RequiredDescendantRoles) > 0 {
		targets = in.descendantsWithRole(in.pattern.RequiredDescendantRoles[0])
		if len(targets) == 0 {
			return ""
		}
	}
	for _, attr := range in.pattern.RequiredState {
		satisfied := false
		for _, t := range targets {
			if _, ok := t.Attr(attr); ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Sprintf("missing required state attribute %q", attr)
		}
	}
	return ""
}

func (in instance) checkKeys(dm *docmodel.DocumentModel) string {
	if len(in.pattern.RequiredKeys) == 0 {
		return ""
	}
	seen := map[string]bool{}
	for _, el := range append([]*domtree.Element{in.root}, in.descendants()...) {
		ectx := dm.Context(in.fragment, el)
		if ectx == nil {
			continue
		}
		for _, h := range ectx.Handlers {
			if h.Handler == nil {
				continue
			}
			for _, k := range keyComparisonLiterals(h.Handler) {
				seen[k] = true
			}
		}
	}
	for _, want := range in.pattern.RequiredKeys {
		if !seen[want] {
			return fmt.Sprintf("no bound handler handles the %q key", want)
		}
	}
	return ""
}

// checkBespoke layers the five pattern-specific checks spec.md §4.5
// calls for on top of the generic table contract.
func (in instance) checkBespoke(dm *docmodel.DocumentModel) string {
	switch in.pattern.Name {
	case "tabs":
		return in.checkTabsWiring(dm)
	case "dialog":
		return in.checkDialogFocusTrap(dm)
	case "menu":
		return in.checkMenuSubmenu(dm)
	case "combobox":
		return in.checkComboboxWiring(dm)
	case "accordion":
		return in.checkAccordionRovingState(dm)
	default:
		return ""
	}
}

// checkTabsWiring verifies each tab carries a roving tabindex and an
// aria-controls reference that resolves to a tabpanel.
func (in instance) checkTabsWiring(dm *docmodel.DocumentModel) string {
	for _, tab := range in.descendantsWithRole("tab") {
		if _, ok := tab.TabIndex(); !ok {
			return "tab is missing a roving tabindex"
		}
		controls, ok := tab.Attr("aria-controls")
		if !ok || controls == "" {
			return "tab has no aria-controls reference to its tabpanel"
		}
		panel := dm.GetElementByID(controls)
		if panel == nil || domtree.Role(panel) != "tabpanel" {
			return "tab's aria-controls does not resolve to a tabpanel"
		}
	}
	return ""
}

// checkDialogFocusTrap verifies that some handler bound to the dialog
// or one of its descendants calls .focus() (aria-modal is checked
// generically by checkState). It does not look for a specific
// initial-focus target.
func (in instance) checkDialogFocusTrap(dm *docmodel.DocumentModel) string {
	ectx := dm.Context(in.fragment, in.root)
	if ectx == nil {
		return ""
	}
	for _, h := range ectx.Handlers {
		if h.Handler != nil && len(findCallsBySuffix(h.Handler, ".focus")) > 0 {
			return ""
		}
	}
	for _, el := range in.descendants() {
		dctx := dm.Context(in.fragment, el)
		if dctx == nil {
			continue
		}
		for _, h := range dctx.Handlers {
			if h.Handler != nil && len(findCallsBySuffix(h.Handler, ".focus")) > 0 {
				return ""
			}
		}
	}
	return "no handler moves focus into the dialog when it opens"
}

// checkMenuSubmenu verifies that a menu containing a nested submenu
// handles ArrowLeft/ArrowRight in addition to the generic
// ArrowUp/ArrowDown/Escape contract.
func (in instance) checkMenuSubmenu(dm *docmodel.DocumentModel) string {
	if len(in.descendantsWithRole("menu")) == 0 {
		return ""
	}
	if in.checkKeysFor(dm, "ArrowLeft", "ArrowRight") {
		return ""
	}
	return "submenu present but no handler handles ArrowLeft/ArrowRight to traverse it"
}

func (in instance) checkKeysFor(dm *docmodel.DocumentModel, keys ...string) bool {
	seen := map[string]bool{}
	for _, el := range append([]*domtree.Element{in.root}, in.descendants()...) {
		ectx := dm.Context(in.fragment, el)
		if ectx == nil {
			continue
		}
		for _, h := range ectx.Handlers {
			if h.Handler == nil {
				continue
			}
			for _, k := range keyComparisonLiterals(h.Handler) {
				seen[k] = true
			}
		}
	}
	for _, k := range keys {
		if !seen[k] {
			return false
		}
	}
	return true
}

// checkComboboxWiring verifies aria-controls resolves to a listbox and
// aria-activedescendant is present for option tracking.
func (in instance) checkComboboxWiring(dm *docmodel.DocumentModel) string {
	controls, ok := in.root.Attr("aria-controls")
	if !ok || controls == "" {
		return ""
	}
	if target := dm.GetElementByID(controls); target == nil || domtree.Role(target) != "listbox" {
		return "combobox's aria-controls does not resolve to a listbox"
	}
	if _, ok := in.root.Attr("aria-activedescendant"); !ok {
		return "combobox has aria-controls but no aria-activedescendant tracking the active option"
	}
	return ""
}

// checkAccordionRovingState verifies every accordion header's
// aria-controls resolves to a panel.
func (in instance) checkAccordionRovingState(dm *docmodel.DocumentModel) string {
	for _, header := range in.descendantsWithRole("button") {
		controls, ok := header.Attr("aria-controls")
		if !ok || controls == "" {
			return "accordion header has no aria-controls reference to its panel"
		}
		if dm.GetElementByID(controls) == nil {
			return "accordion header's aria-controls does not resolve to a panel"
		}
	}
	return ""
}

// buildFix produces a suggested HTML skeleton for the tabs pattern
// (spec.md §8 scenario 6); other patterns don't yet have a canned
// skeleton and return nil.
func (in instance) buildFix() *finding.Fix {
	if in.pattern.Name != "tabs" {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`<div role="tablist">` + "\n")
	sb.WriteString(`  <button role="tab" id="tab-1" aria-selected="true" aria-controls="panel-1" tabindex="0">Tab 1</button>` + "\n")
	sb.WriteString(`  <button role="tab" id="tab-2" aria-selected="false" aria-controls="panel-2" tabindex="-1">Tab 2</button>` + "\n")
	sb.WriteString(`</div>` + "\n")
	sb.WriteString(`<div role="tabpanel" id="panel-1" aria-labelledby="tab-1">...</div>` + "\n")
	sb.WriteString(`<div role="tabpanel" id="panel-2" aria-labelledby="tab-2" hidden>...</div>`)
	return &finding.Fix{
		Description: "add tab/tabpanel children with roving tabindex and aria-controls wiring",
		Code:        sb.String(),
		Location:    finding.Location{File: in.root.Loc.File, Line: in.root.Loc.Line, Column: in.root.Loc.Column},
	}
}

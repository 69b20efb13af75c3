// Package widget implements the data-driven ARIA widget-pattern
// validator (spec.md §4.5, §6): one Pattern table drives structural,
// ARIA-state, and keyboard checks uniformly across the 21 registered
// composite patterns, with five patterns (tabs, dialog, menu,
// combobox, accordion) layering bespoke extra checks on top because
// their correctness signature needs more than table-driven structure
// matching.
package widget

// Pattern describes one composite ARIA widget's structural contract:
// the root role that identifies an instance, the descendant roles it
// must contain, the ARIA state attributes the root (or its
// descendants, for RequiresStateOnDescendant) must carry, and the key
// names its keyboard interaction model requires somewhere in its
// bound handlers.
type Pattern struct {
	Name                      string
	RootRole                  string
	RequiredDescendantRoles   []string
	RequiredState             []string
	RequiresStateOnDescendant bool
	RequiredKeys              []string
}

// Patterns is the closed catalogue backing finding.WidgetPatterns;
// kept in the same order so Name strings line up 1:1 with
// finding.IncompletePatternKind's input.
var Patterns = []Pattern{
	{Name: "tabs", RootRole: "tablist", RequiredDescendantRoles: []string{"tab", "tabpanel"}, RequiredState: []string{"aria-selected"}, RequiresStateOnDescendant: true, RequiredKeys: []string{"ArrowRight", "ArrowLeft"}},
	{Name: "menu", RootRole: "menu", RequiredDescendantRoles: []string{"menuitem"}, RequiredKeys: []string{"ArrowDown", "ArrowUp", "Escape"}},
	{Name: "dialog", RootRole: "dialog", RequiredState: []string{"aria-modal"}, RequiredKeys: []string{"Escape"}},
	{Name: "accordion", RootRole: "region", RequiredDescendantRoles: []string{"button"}, RequiredState: []string{"aria-expanded"}, RequiresStateOnDescendant: true},
	{Name: "disclosure", RootRole: "button", RequiredState: []string{"aria-expanded"}},
	{Name: "combobox", RootRole: "combobox", RequiredState: []string{"aria-expanded", "aria-controls"}, RequiredKeys: []string{"ArrowDown", "Escape"}},
	{Name: "listbox", RootRole: "listbox", RequiredDescendantRoles: []string{"option"}, RequiredKeys: []string{"ArrowDown", "ArrowUp"}},
	{Name: "radiogroup", RootRole: "radiogroup", RequiredDescendantRoles: []string{"radio"}, RequiredState: []string{"aria-checked"}, RequiresStateOnDescendant: true, RequiredKeys: []string{"ArrowDown", "ArrowUp"}},
	{Name: "slider", RootRole: "slider", RequiredState: []string{"aria-valuemin", "aria-valuemax", "aria-valuenow"}, RequiredKeys: []string{"ArrowRight", "ArrowLeft"}},
	{Name: "spinbutton", RootRole: "spinbutton", RequiredState: []string{"aria-valuemin", "aria-valuemax", "aria-valuenow"}, RequiredKeys: []string{"ArrowUp", "ArrowDown"}},
	{Name: "switch", RootRole: "switch", RequiredState: []string{"aria-checked"}, RequiredKeys: []string{"Enter", " "}},
	{Name: "tree", RootRole: "tree", RequiredDescendantRoles: []string{"treeitem"}, RequiredKeys: []string{"ArrowDown", "ArrowUp"}},
	{Name: "toolbar", RootRole: "toolbar", RequiredKeys: []string{"ArrowRight", "ArrowLeft"}},
	{Name: "grid", RootRole: "grid", RequiredDescendantRoles: []string{"row", "gridcell"}, RequiredKeys: []string{"ArrowRight", "ArrowLeft", "ArrowUp", "ArrowDown"}},
	{Name: "feed", RootRole: "feed", RequiredDescendantRoles: []string{"article"}},
	{Name: "breadcrumb", RootRole: "navigation", RequiredDescendantRoles: []string{"link"}},
	{Name: "tooltip", RootRole: "tooltip"},
	{Name: "carousel", RootRole: "region", RequiredDescendantRoles: []string{"group"}, RequiredKeys: []string{"ArrowRight", "ArrowLeft"}},
	{Name: "progressbar", RootRole: "progressbar", RequiredState: []string{"aria-valuenow"}},
	{Name: "meter", RootRole: "meter", RequiredState: []string{"aria-valuenow"}},
	{Name: "link", RootRole: "link"},
}

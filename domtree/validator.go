package domtree

import "strings"

// AriaAllowlist is the closed set of ARIA attribute names the
// validator accepts (spec.md §6).
var AriaAllowlist = map[string]bool{
	"aria-label": true, "aria-labelledby": true, "aria-describedby": true,
	"aria-expanded": true, "aria-hidden": true, "aria-live": true,
	"aria-controls": true, "aria-haspopup": true, "aria-selected": true,
	"aria-checked": true, "aria-disabled": true, "aria-readonly": true,
	"aria-required": true, "aria-invalid": true, "aria-multiselectable": true,
	"aria-orientation": true, "aria-valuemin": true, "aria-valuemax": true,
	"aria-valuenow": true, "aria-valuetext": true, "aria-pressed": true,
	"aria-modal": true, "aria-current": true, "aria-atomic": true,
	"aria-relevant": true, "aria-busy": true,
}

// ValidationWarning is a non-fatal DOM validator finding (spec.md
// §4.2's "validator that emits warnings"); surfaced by the engine as
// a Diagnostics-stream entry with kind "validator".
type ValidationWarning struct {
	ElementID int
	Loc       Location
	Message   string
}

// Validate walks the fragment and reports missing alt text on
// images, missing accessible labels on buttons, and invalid ARIA
// attribute names.
func Validate(f *Fragment) []ValidationWarning {
	var out []ValidationWarning
	for _, el := range f.GetAllElements() {
		if el.TagName == "img" {
			if alt, ok := el.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
				out = append(out, ValidationWarning{ElementID: el.ID, Loc: el.Loc, Message: "image is missing alt text"})
			}
		}
		if el.TagName == "button" {
			if AccessibleLabel(f, el) == "" {
				out = append(out, ValidationWarning{ElementID: el.ID, Loc: el.Loc, Message: "button has no accessible label"})
			}
		}
		for name := range el.Attrs {
			if strings.HasPrefix(name, "aria-") && !AriaAllowlist[name] {
				out = append(out, ValidationWarning{ElementID: el.ID, Loc: el.Loc, Message: "invalid ARIA attribute: " + name})
			}
		}
	}
	return out
}

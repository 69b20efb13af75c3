package domtree

import "strings"

// formControlTags get their label from value/placeholder as a last
// resort (spec.md §4.2 accessible label rule).
var formControlTags = map[string]bool{"input": true, "textarea": true, "select": true}

// AccessibleLabel computes the accessible label for el within owner,
// following the priority order in spec.md §4.2: aria-label,
// aria-labelledby (resolved against owner), concatenated text
// content, alt (images), value/placeholder (form controls), else "".
func AccessibleLabel(owner *Fragment, el *Element) string {
	if v, ok := el.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if ref, ok := el.Attr("aria-labelledby"); ok && strings.TrimSpace(ref) != "" {
		if target := owner.GetElementByID(strings.TrimSpace(ref)); target != nil {
			if text := strings.TrimSpace(owner.TextContent(target)); text != "" {
				return text
			}
		}
	}
	if text := strings.TrimSpace(owner.TextContent(el)); text != "" {
		return text
	}
	if el.TagName == "img" {
		if alt, ok := el.Attr("alt"); ok {
			return strings.TrimSpace(alt)
		}
	}
	if formControlTags[el.TagName] {
		if v, ok := el.Attr("value"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v, ok := el.Attr("placeholder"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// implicitRoleTable maps a tag name to its implicit ARIA role
// (spec.md §6).
var implicitRoleTable = map[string]string{
	"button": "button", "a": "link", "input": "textbox", "textarea": "textbox",
	"select": "combobox", "img": "img", "nav": "navigation", "main": "main",
	"header": "banner", "footer": "contentinfo", "aside": "complementary",
	"section": "region", "article": "article", "form": "form", "table": "table",
	"ul": "list", "ol": "list", "li": "listitem",
	"h1": "heading", "h2": "heading", "h3": "heading", "h4": "heading", "h5": "heading", "h6": "heading",
}

// Role returns el's explicit role attribute if present, else its
// implicit role from the tag table, else "".
func Role(el *Element) string {
	if r, ok := el.Attr("role"); ok && r != "" {
		return r
	}
	return implicitRoleTable[el.TagName]
}

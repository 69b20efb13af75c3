package finding

import "fmt"

// Kind is a stable finding-kind identifier drawn from a closed
// catalogue (same closed-enum convention as actionir.Kind).
type Kind string

const (
	KindMouseOnlyClick         Kind = "mouse-only-click"
	KindMissingEscapeHandler   Kind = "missing-escape-handler"
	KindIncompleteActivation   Kind = "incomplete-activation-keys"
	KindTouchWithoutClick      Kind = "touch-without-click"
	KindStaticAriaState        Kind = "static-aria-state"
	KindAriaReferenceNotFound  Kind = "aria-reference-not-found"
	KindMissingLiveRegion      Kind = "missing-live-region"
	KindUnexpectedFormSubmit   Kind = "unexpected-form-submit"
	KindUnexpectedNavigation   Kind = "unexpected-navigation"
	KindUnannouncedTimeout     Kind = "unannounced-timeout"
	KindUncontrolledAutoUpdate Kind = "uncontrolled-auto-update"
	KindNonSemanticButton      Kind = "non-semantic-button"
	KindNonSemanticLink        Kind = "non-semantic-link"
	KindOrphanedEventHandler   Kind = "orphaned-event-handler"
	KindMissingAriaConnection  Kind = "missing-aria-connection"
	KindFocusOrderConflict     Kind = "focus-order-conflict"
	KindVisibilityFocusConflict Kind = "visibility-focus-conflict"
	KindFocusManagementIssue   Kind = "focus-management-issue"
	KindKeyboardNavigationIssue Kind = "keyboard-navigation-issue"
)

// baseKinds are the 19 fixed catalogue entries, excluding the
// per-widget-pattern "incomplete-<pattern>-pattern" kinds which are
// generated from WidgetPatterns.
var baseKinds = []Kind{
	KindMouseOnlyClick,
	KindMissingEscapeHandler,
	KindIncompleteActivation,
	KindTouchWithoutClick,
	KindStaticAriaState,
	KindAriaReferenceNotFound,
	KindMissingLiveRegion,
	KindUnexpectedFormSubmit,
	KindUnexpectedNavigation,
	KindUnannouncedTimeout,
	KindUncontrolledAutoUpdate,
	KindNonSemanticButton,
	KindNonSemanticLink,
	KindOrphanedEventHandler,
	KindMissingAriaConnection,
	KindFocusOrderConflict,
	KindVisibilityFocusConflict,
	KindFocusManagementIssue,
	KindKeyboardNavigationIssue,
}

// WidgetPatterns is the closed catalogue of composite ARIA widget
// patterns a widget-pattern detector validates.
var WidgetPatterns = []string{
	"tabs", "menu", "dialog", "accordion", "disclosure", "combobox",
	"listbox", "radiogroup", "slider", "spinbutton", "switch", "tree",
	"toolbar", "grid", "feed", "breadcrumb", "tooltip", "carousel",
	"progressbar", "meter", "link",
}

// IncompletePatternKind builds the "incomplete-<pattern>-pattern" kind
// for one widget pattern name. Panics on an unregistered pattern since
// this is only ever called with a compile-time constant from
// rules/widget, never with untrusted input.
func IncompletePatternKind(pattern string) Kind {
	for _, p := range WidgetPatterns {
		if p == pattern {
			return Kind(fmt.Sprintf("incomplete-%s-pattern", pattern))
		}
	}
	panic(fmt.Sprintf("finding: unregistered widget pattern %q", pattern))
}

// AllKinds returns the full closed catalogue: the 19 base kinds plus
// one incomplete-pattern kind per registered widget pattern. Used by
// the `rules list` CLI subcommand.
func AllKinds() []Kind {
	out := make([]Kind, 0, len(baseKinds)+len(WidgetPatterns))
	out = append(out, baseKinds...)
	for _, p := range WidgetPatterns {
		out = append(out, IncompletePatternKind(p))
	}
	return out
}

// IsValid reports whether k belongs to the closed catalogue (base
// kinds, the fixed validator kind, or a generated incomplete-pattern
// kind).
func IsValid(k Kind) bool {
	if k == KindValidator {
		return true
	}
	for _, b := range baseKinds {
		if b == k {
			return true
		}
	}
	for _, p := range WidgetPatterns {
		if IncompletePatternKind(p) == k {
			return true
		}
	}
	return false
}

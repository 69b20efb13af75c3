package rules

// DefaultDetectors returns every built-in rule family in spec.md §4.5,
// in the fixed order the detectors run (keyboard, ARIA state, ARIA
// references, live region, timing, context change, semantic, focus,
// widget patterns); Registry.Run sorts the collected findings.
func DefaultDetectors() []Detector {
	return []Detector{
		MouseOnlyClickDetector{},
		MissingEscapeHandlerDetector{},
		IncompleteActivationKeysDetector{},
		TouchWithoutClickDetector{},
		StaticAriaStateDetector{},
		AriaReferenceNotFoundDetector{},
		MissingAriaConnectionDetector{},
		MissingLiveRegionDetector{},
		UnannouncedTimeoutDetector{},
		UncontrolledAutoUpdateDetector{},
		UnexpectedNavigationDetector{},
		UnexpectedFormSubmitDetector{},
		NonSemanticButtonDetector{},
		NonSemanticLinkDetector{},
		OrphanedEventHandlerDetector{},
		FocusOrderConflictDetector{},
		VisibilityFocusConflictDetector{},
		FocusManagementIssueDetector{},
		KeyboardNavigationIssueDetector{},
		WidgetPatternDetector{},
	}
}

// NewDefaultRegistry builds a Registry with every built-in detector
// registered plus any caller-supplied options layered on top.
func NewDefaultRegistry(opts ...Option) *Registry {
	all := append([]Option{WithDetector(DefaultDetectors()...)}, opts...)
	return NewRegistry(all...)
}

package finding

import "testing"

func TestSeverityRank(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityError, 0},
		{SeverityWarning, 1},
		{SeverityInfo, 2},
		{Severity("bogus"), 3},
	}
	for _, tc := range tests {
		if got := tc.severity.Rank(); got != tc.want {
			t.Errorf("Severity(%q).Rank() = %d, want %d", tc.severity, got, tc.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindMouseOnlyClick, true},
		{KindValidator, true},
		{IncompletePatternKind("tabs"), true},
		{Kind("not-a-real-kind"), false},
	}
	for _, tc := range tests {
		if got := IsValid(tc.kind); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestAllKindsCountsBaseAndWidgetPatterns(t *testing.T) {
	all := AllKinds()
	want := len(baseKinds) + len(WidgetPatterns)
	if len(all) != want {
		t.Fatalf("AllKinds() returned %d kinds, want %d", len(all), want)
	}
	for _, k := range all {
		if !IsValid(k) {
			t.Errorf("AllKinds() produced invalid kind %q", k)
		}
	}
}

func TestIncompletePatternKindPanicsOnUnregisteredPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered widget pattern")
		}
	}()
	IncompletePatternKind("not-a-pattern")
}

func TestSortOrdersByFileThenLocationThenKind(t *testing.T) {
	in := []Finding{
		{Kind: KindMouseOnlyClick, Location: Location{File: "b.js", Line: 10, Column: 1}},
		{Kind: KindMissingEscapeHandler, Location: Location{File: "a.js", Line: 5, Column: 1}},
		{Kind: KindMouseOnlyClick, Location: Location{File: "a.js", Line: 5, Column: 1}},
		{Kind: KindFocusOrderConflict, Location: Location{File: "a.js", Line: 1, Column: 1}},
	}
	Sort(in)
	want := []Kind{KindFocusOrderConflict, KindMissingEscapeHandler, KindMouseOnlyClick, KindMouseOnlyClick}
	for i, k := range want {
		if in[i].Kind != k {
			t.Fatalf("position %d: got kind %q, want %q", i, in[i].Kind, k)
		}
	}
}

func TestSortBySeverityGroupsErrorsFirst(t *testing.T) {
	in := []Finding{
		{Severity: SeverityInfo},
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityError},
	}
	SortBySeverity(in)
	want := []Severity{SeverityError, SeverityError, SeverityWarning, SeverityInfo}
	for i, s := range want {
		if in[i].Severity != s {
			t.Fatalf("position %d: got severity %q, want %q", i, in[i].Severity, s)
		}
	}
}

func TestConfidenceForCompletenessThresholds(t *testing.T) {
	tests := []struct {
		completeness float64
		want         ConfidenceLevel
	}{
		{1.0, ConfidenceHigh},
		{0.9, ConfidenceHigh},
		{0.89, ConfidenceMedium},
		{0.5, ConfidenceMedium},
		{0.49, ConfidenceLow},
		{0.0, ConfidenceLow},
	}
	for _, tc := range tests {
		got := ConfidenceForCompleteness(tc.completeness, "test", ScopePage)
		if got.Level != tc.want {
			t.Errorf("ConfidenceForCompleteness(%v) level = %q, want %q", tc.completeness, got.Level, tc.want)
		}
		if got.Scope != ScopePage {
			t.Errorf("ConfidenceForCompleteness(%v) scope = %q, want %q", tc.completeness, got.Scope, ScopePage)
		}
	}
}

func TestNewValidatorDiagnosticFixedKind(t *testing.T) {
	d := NewValidatorDiagnostic(SeverityError, "bad span", Location{File: "x.html", Line: 1}, ModelError.DowngradeReason("child missing role"))
	if d.Kind != KindValidator {
		t.Fatalf("kind = %q, want %q", d.Kind, KindValidator)
	}
	if d.Confidence.Scope != ScopeFile {
		t.Fatalf("scope = %q, want file", d.Confidence.Scope)
	}
}

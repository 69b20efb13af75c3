package finding

import "sort"

// Sort orders findings by source file, then primary location ascending
// (line, then column), with kind ascending as the final tiebreaker.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.Kind < b.Kind
	})
}

// SortBySeverity orders findings by severity rank (error, then
// warning, then info), preserving relative order within each band.
// Used for the user-visible ranked display, distinct from Sort's
// file/location ordering used for stable run output.
func SortBySeverity(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})
}

// ConfidenceForCompleteness maps a DocumentModel's tree_completeness
// score to a document-scope Confidence level (spec.md §4.5):
// HIGH if completeness >= 0.9, MEDIUM if 0.5 <= completeness < 0.9,
// LOW otherwise.
func ConfidenceForCompleteness(completeness float64, reason string, scope Scope) Confidence {
	level := ConfidenceLow
	switch {
	case completeness >= 0.9:
		level = ConfidenceHigh
	case completeness >= 0.5:
		level = ConfidenceMedium
	}
	return Confidence{Level: level, Reason: reason, Scope: scope}
}

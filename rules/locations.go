package rules

import (
	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/finding"
)

// domLocation adapts a domtree.Location into a finding.Location.
func domLocation(loc domtree.Location) finding.Location {
	return finding.Location{File: loc.File, Line: loc.Line, Column: loc.Column}
}

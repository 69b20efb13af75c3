package rules

import (
	"context"

	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/rules/widget"
)

// WidgetPatternDetector wraps widget.Validate as a Detector: the
// data-driven check covering all 21 registered composite ARIA widget
// patterns (spec.md §4.5). Document-scope only; widget completeness
// is a whole-tree property that a bare HandlerModel cannot express.
type WidgetPatternDetector struct{}

func (WidgetPatternDetector) Name() string { return "widget-pattern" }

func (d WidgetPatternDetector) Detect(_ context.Context, ac *AnalyzerContext) ([]finding.Finding, error) {
	if !ac.DocumentScope() {
		return nil, nil
	}
	return widget.Validate(ac.DocumentModel), nil
}

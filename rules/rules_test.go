package rules_test

import (
	"context"
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/engine/actionir"
	"github.com/a11yscan/engine/docmodel"
	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/finding"
	"github.com/a11yscan/engine/rules"
	"github.com/a11yscan/engine/transform"
)

// parseJS builds a tagged Action tree plus its HandlerModel from a raw
// JS source string, the way docmodel's own fixtures do.
func parseJS(t *testing.T, src string) (*transform.HandlerModel, *actionir.Action) {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(nil, nil, []byte(src))
	require.NoError(t, err)
	tr := transform.New("app.js", []byte(src))
	actionTree, _ := tr.Transform(tree.RootNode())
	transform.TagCallPatterns(actionTree.Root)
	hm := transform.BuildHandlerModel("app.js", actionTree.Root)
	return hm, actionTree.Root
}

// scenario 1: click target element with id=x and an aria-labelledby
// reference that resolves, so tree_completeness reaches 1.0 and the
// finding reports HIGH confidence per spec.md §8 scenario 1.
func documentModelWithClickTarget(hm *transform.HandlerModel) *docmodel.DocumentModel {
	f := domtree.NewFragment("index.html")
	root := f.AddElement(domtree.NewElement("div", map[string]string{"id": "x", "aria-labelledby": "lbl-x"}), -1)
	f.AddElement(domtree.NewElement("span", map[string]string{"id": "lbl-x"}), root)

	var models []*transform.HandlerModel
	if hm != nil {
		models = []*transform.HandlerModel{hm}
	}
	dm := docmodel.New(docmodel.ScopePage, []*domtree.Fragment{f}, models, nil)
	dm.Merge()
	return dm
}

func TestMouseOnlyClickDocumentScope(t *testing.T) {
	hm, program := parseJS(t, `document.getElementById('x').addEventListener('click', ()=>{});`)
	dm := documentModelWithClickTarget(hm)

	reg := rules.NewRegistry(rules.WithDetector(rules.MouseOnlyClickDetector{}))
	ac := &rules.AnalyzerContext{DocumentModel: dm, ActionModel: hm, Programs: []*actionir.Action{program}, Scope: finding.ScopePage}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Len(t, findings, 1)

	f := findings[0]
	require.Equal(t, finding.KindMouseOnlyClick, f.Kind)
	require.Equal(t, finding.SeverityWarning, f.Severity)
	require.Equal(t, finding.ConfidenceHigh, f.Confidence.Level)
	require.Equal(t, []string{"2.1.1"}, f.WCAGCriteria)
	require.Equal(t, "app.js", f.Location.File)
}

func TestMissingEscapeHandlerFileScope(t *testing.T) {
	hm, program := parseJS(t, `modal.addEventListener('keydown', function(e) { if (e.key==='Tab') { e.preventDefault(); } });`)

	reg := rules.NewRegistry(rules.WithDetector(rules.MissingEscapeHandlerDetector{}))
	ac := &rules.AnalyzerContext{ActionModel: hm, Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Len(t, findings, 1)

	f := findings[0]
	require.Equal(t, finding.KindMissingEscapeHandler, f.Kind)
	require.Equal(t, finding.SeverityWarning, f.Severity)
	require.Equal(t, []string{"2.1.2"}, f.WCAGCriteria)
}

func TestUncontrolledAutoUpdateNoClearInterval(t *testing.T) {
	_, program := parseJS(t, `setInterval(() => updateFeed(), 5000);`)

	reg := rules.NewRegistry(rules.WithDetector(rules.UncontrolledAutoUpdateDetector{}))
	ac := &rules.AnalyzerContext{Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Len(t, findings, 1)

	f := findings[0]
	require.Equal(t, finding.KindUncontrolledAutoUpdate, f.Kind)
	require.Equal(t, []string{"2.2.2"}, f.WCAGCriteria)
}

func TestUncontrolledAutoUpdateClearedByVariableEmitsNoFinding(t *testing.T) {
	_, program := parseJS(t, `let id = setInterval(() => tick(), 1000); function stop() { clearInterval(id); }`)

	reg := rules.NewRegistry(rules.WithDetector(rules.UncontrolledAutoUpdateDetector{}))
	ac := &rules.AnalyzerContext{Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Empty(t, findings)
}

func TestUnexpectedNavigationOnChangeHandler(t *testing.T) {
	hm, program := parseJS(t, `select.addEventListener('change', function() { window.location = '/lang/'+this.value; });`)

	reg := rules.NewRegistry(rules.WithDetector(rules.UnexpectedNavigationDetector{}))
	ac := &rules.AnalyzerContext{ActionModel: hm, Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Len(t, findings, 1)

	f := findings[0]
	require.Equal(t, finding.KindUnexpectedNavigation, f.Kind)
	require.Equal(t, []string{"3.2.2"}, f.WCAGCriteria)
}

func TestStaticAriaStateNeverFollowsObservableChange(t *testing.T) {
	_, program := parseJS(t, `button.setAttribute('aria-pressed','false'); button.addEventListener('click', function() { button.classList.toggle('on'); });`)

	reg := rules.NewRegistry(rules.WithDetector(rules.StaticAriaStateDetector{}))
	ac := &rules.AnalyzerContext{Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Len(t, findings, 1)

	f := findings[0]
	require.Equal(t, finding.KindStaticAriaState, f.Kind)
	require.Equal(t, []string{"4.1.2"}, f.WCAGCriteria)
	require.Contains(t, f.Message, "aria-pressed")
}

func TestIncompleteTabsPatternMissingTabChildren(t *testing.T) {
	f := domtree.NewFragment("index.html")
	f.AddElement(domtree.NewElement("div", map[string]string{"role": "tablist"}), -1)

	dm := docmodel.New(docmodel.ScopePage, []*domtree.Fragment{f}, nil, nil)
	dm.Merge()

	reg := rules.NewRegistry(rules.WithDetector(rules.WidgetPatternDetector{}))
	ac := &rules.AnalyzerContext{DocumentModel: dm, Scope: finding.ScopePage}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Len(t, findings, 1)

	result := findings[0]
	require.Equal(t, finding.IncompletePatternKind("tabs"), result.Kind)
	require.Equal(t, []string{"4.1.2", "1.3.1"}, result.WCAGCriteria)
	require.NotNil(t, result.Fix)
	require.Contains(t, result.Fix.Code, `role="tab"`)
	require.Contains(t, result.Fix.Code, `role="tabpanel"`)
}

// Boundary: an element with both role="button" and a click handler but
// no keyboard handler emits exactly one mouse-only-click finding in
// document-scope, and at most one in file-scope (spec.md §8).
func TestMouseOnlyClickRoleButtonBoundary(t *testing.T) {
	hm, program := parseJS(t, `document.getElementById('go').addEventListener('click', function() {});`)

	t.Run("document-scope", func(t *testing.T) {
		f := domtree.NewFragment("index.html")
		f.AddElement(domtree.NewElement("div", map[string]string{"id": "go", "role": "button"}), -1)
		dm := docmodel.New(docmodel.ScopePage, []*domtree.Fragment{f}, []*transform.HandlerModel{hm}, nil)
		dm.Merge()

		reg := rules.NewRegistry(rules.WithDetector(rules.MouseOnlyClickDetector{}))
		ac := &rules.AnalyzerContext{DocumentModel: dm, ActionModel: hm, Programs: []*actionir.Action{program}, Scope: finding.ScopePage}

		findings, _, err := reg.Run(context.Background(), ac)
		require.NoError(t, err)
		require.Len(t, findings, 1)
	})

	t.Run("file-scope", func(t *testing.T) {
		reg := rules.NewRegistry(rules.WithDetector(rules.MouseOnlyClickDetector{}))
		ac := &rules.AnalyzerContext{ActionModel: hm, Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

		findings, _, err := reg.Run(context.Background(), ac)
		require.NoError(t, err)
		require.LessOrEqual(t, len(findings), 1)
	})
}

func TestRegistryIsolatesDetectorErrorsAsDiagnostics(t *testing.T) {
	reg := rules.NewRegistry(rules.WithDetector(failingDetector{}, rules.MissingEscapeHandlerDetector{}))
	hm, program := parseJS(t, `modal.addEventListener('keydown', function(e) { if (e.key==='Tab') {} });`)
	ac := &rules.AnalyzerContext{ActionModel: hm, Programs: []*actionir.Action{program}, Scope: finding.ScopeFile}

	findings, diagnostics, err := reg.Run(context.Background(), ac)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Len(t, diagnostics, 1)
	require.Equal(t, finding.KindValidator, diagnostics[0].Kind)
}

type failingDetector struct{}

func (failingDetector) Name() string { return "always-fails" }
func (failingDetector) Detect(context.Context, *rules.AnalyzerContext) ([]finding.Finding, error) {
	return nil, errAlwaysFails
}

var errAlwaysFails = errors.New("boom")

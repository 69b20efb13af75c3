package docmodel

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/engine/cssmodel"
	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/transform"
)

func parseJS(t *testing.T, src string) *transform.HandlerModel {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(nil, nil, []byte(src))
	require.NoError(t, err)
	tr := transform.New("app.js", []byte(src))
	actionTree, _ := tr.Transform(tree.RootNode())
	transform.TagCallPatterns(actionTree.Root)
	return transform.BuildHandlerModel("app.js", actionTree.Root)
}

func TestMergeJoinsHandlerAndCSSModels(t *testing.T) {
	f := domtree.NewFragment("index.html")
	f.AddElement(domtree.NewElement("button", map[string]string{"id": "save"}), -1)

	hm := parseJS(t, `document.getElementById('save').addEventListener('click', function() { submit(); });`)

	cm := cssmodel.NewModel(nil)
	cm.Add(cssmodel.NewRule(cssmodel.RuleStyle, "#save", map[string]string{"color": "red"}, 0))

	m := New(ScopePage, []*domtree.Fragment{f}, []*transform.HandlerModel{hm}, []*cssmodel.Model{cm})
	m.Merge()

	btn := f.QuerySelector("#save")
	ctx := m.Context(f, btn)
	require.NotNil(t, ctx)
	require.True(t, ctx.HasClickHandler)
	require.False(t, ctx.HasKeyboardHandler)
	require.Len(t, ctx.CSSRules, 1)
	require.True(t, ctx.Interactive)
	require.Equal(t, []string{"eventHandler:click"}, btn.HandlerRefs)
}

func TestGetInteractiveElementsIncludesHandlerOnlyElements(t *testing.T) {
	f := domtree.NewFragment("index.html")
	f.AddElement(domtree.NewElement("div", map[string]string{"id": "panel"}), -1)

	hm := parseJS(t, `document.getElementById('panel').addEventListener('click', function() {});`)
	m := New(ScopePage, []*domtree.Fragment{f}, []*transform.HandlerModel{hm}, nil)

	interactive := m.GetInteractiveElements()
	require.Len(t, interactive, 1)
	require.Equal(t, "panel", func() string { v, _ := interactive[0].Ref.Element.Attr("id"); return v }())
}

package transform

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/engine/actionir"
)

func parseJS(t *testing.T, src string) *sitter.Node {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(nil, nil, []byte(src))
	require.NoError(t, err)
	return tree.RootNode()
}

func TestTransformSimpleCallChain(t *testing.T) {
	src := `document.getElementById('x').addEventListener('click', function(){});`
	root := parseJS(t, src)
	tr := New("app.js", []byte(src))
	tree, warnings := tr.Transform(root)
	require.Empty(t, warnings)
	require.NoError(t, tree.Validate())

	var call *actionir.Action
	actionir.Walk(tree.Root, func(a *actionir.Action) bool {
		if a.Kind == actionir.KindCall {
			callee := ResolveCallee(a.ChildByRole(actionir.RoleCallee))
			if callee != "" && call == nil {
				call = a
			}
		}
		return true
	})
	require.NotNil(t, call)
	TagCallPatterns(tree.Root)
	p, ok := call.Attr("pattern")
	require.True(t, ok)
	require.Equal(t, "eventHandler", p.AsString())
}

func TestTransformIfStatementRoles(t *testing.T) {
	src := `if (e.key === 'Tab') { e.preventDefault(); }`
	root := parseJS(t, src)
	tr := New("app.js", []byte(src))
	tree, _ := tr.Transform(root)
	require.NoError(t, tree.Validate())

	ifNode := tree.Root.Children[0]
	require.Equal(t, actionir.KindIf, ifNode.Kind)
	require.NotNil(t, ifNode.ChildByRole(actionir.RoleCondition))
	require.NotNil(t, ifNode.ChildByRole(actionir.RoleThen))
	require.Nil(t, ifNode.ChildByRole(actionir.RoleElse))
}

func TestTransformSetIntervalTagging(t *testing.T) {
	src := `setInterval(() => updateFeed(), 5000);`
	root := parseJS(t, src)
	tr := New("app.js", []byte(src))
	tree, _ := tr.Transform(root)
	TagCallPatterns(tree.Root)

	var outer *actionir.Action
	actionir.Walk(tree.Root, func(a *actionir.Action) bool {
		if a.Kind == actionir.KindCall {
			if c, ok := a.Attr("callee"); ok && c.AsString() == "setInterval" {
				outer = a
			}
		}
		return true
	})
	require.NotNil(t, outer)
	p, _ := outer.Attr("pattern")
	require.Equal(t, "timer", p.AsString())
}

func TestTransformUnrecognizedNodeFallsBack(t *testing.T) {
	// labeled statements are valid JS that this transformer does not
	// special-case; it should fall back to KindUnknown and warn, not
	// abort the tree.
	src := `outer: for (;;) { break outer; }`
	root := parseJS(t, src)
	tr := New("app.js", []byte(src))
	tree, warnings := tr.Transform(root)
	require.NoError(t, tree.Validate())
	require.NotEmpty(t, warnings)
}

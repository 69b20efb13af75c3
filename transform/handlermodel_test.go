package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandlerModelResolvesGetElementByIdTarget(t *testing.T) {
	root := parseJS(t, `document.getElementById('save').addEventListener('click', function(e) { doSave(); });`)
	tr := New("f.js", []byte(`document.getElementById('save').addEventListener('click', function(e) { doSave(); });`))
	tree, warnings := tr.Transform(root)
	require.Empty(t, warnings)
	TagCallPatterns(tree.Root)

	hm := BuildHandlerModel("f.js", tree.Root)
	bindings := hm.FindBySelector("#save")
	require.Len(t, bindings, 1)
	require.Equal(t, "click", bindings[0].Event)
	require.Equal(t, "eventHandler", bindings[0].ActionType)
	require.NotNil(t, bindings[0].Handler)
}

func TestHandlerModelUnresolvedTargetIsUnindexed(t *testing.T) {
	src := `btn.addEventListener('keydown', handleKey);`
	root := parseJS(t, src)
	tr := New("f.js", []byte(src))
	tree, _ := tr.Transform(root)
	TagCallPatterns(tree.Root)

	hm := BuildHandlerModel("f.js", tree.Root)
	require.Len(t, hm.Bindings(), 1)
	require.Equal(t, "", hm.Bindings()[0].Selector)
	require.Empty(t, hm.FindBySelector(""))
}

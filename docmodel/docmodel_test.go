package docmodel

import (
	"testing"

	"github.com/a11yscan/engine/domtree"
	"github.com/stretchr/testify/require"
)

func TestCompletenessZeroFragments(t *testing.T) {
	m := New(ScopePage, nil, nil, nil)
	require.Equal(t, 0.0, m.TreeCompleteness())
}

func TestCompletenessTenFragmentsNoReferencesFloor(t *testing.T) {
	var fragments []*domtree.Fragment
	for i := 0; i < 10; i++ {
		f := domtree.NewFragment("f.html")
		f.AddElement(domtree.NewElement("div", nil), -1)
		fragments = append(fragments, f)
	}
	m := New(ScopePage, fragments, nil, nil)
	require.InDelta(t, 0.3, m.TreeCompleteness(), 1e-9)
}

func TestCompletenessSingleFragmentAllReferencesResolved(t *testing.T) {
	f := domtree.NewFragment("f.html")
	root := f.AddElement(domtree.NewElement("div", nil), -1)
	f.AddElement(domtree.NewElement("span", map[string]string{"id": "lbl"}), root)
	f.AddElement(domtree.NewElement("button", map[string]string{"aria-labelledby": "lbl"}), root)

	m := New(ScopePage, []*domtree.Fragment{f}, nil, nil)
	require.Equal(t, 1.0, m.TreeCompleteness())
}

func TestCompletenessSingleFragmentNoReferences(t *testing.T) {
	f := domtree.NewFragment("f.html")
	f.AddElement(domtree.NewElement("div", nil), -1)
	m := New(ScopePage, []*domtree.Fragment{f}, nil, nil)
	require.InDelta(t, 0.7, m.TreeCompleteness(), 1e-9)
}

func TestGetElementsWithIssuesFlagsMissingKeyboardAndLabel(t *testing.T) {
	f := domtree.NewFragment("f.html")
	root := f.AddElement(domtree.NewElement("div", nil), -1)
	f.AddElement(domtree.NewElement("div", map[string]string{"tabindex": "0"}), root) // focusable, no label, but excluded as a text-layout tag
	f.AddElement(domtree.NewElement("a", map[string]string{"href": "/x", "tabindex": "0"}), root)

	m := New(ScopePage, []*domtree.Fragment{f}, nil, nil)
	issues := m.GetElementsWithIssues()
	// the div is excluded as a text-layout tag even though focusable+unlabeled;
	// the anchor has no label either and is not excluded.
	found := false
	for _, ctx := range issues {
		if ctx.Ref.Element.TagName == "a" {
			found = true
		}
		require.NotEqual(t, "div", ctx.Ref.Element.TagName)
	}
	require.True(t, found)
}

func TestGetElementByIDAndQuerySelectorAcrossFragments(t *testing.T) {
	f1 := domtree.NewFragment("a.html")
	f1.AddElement(domtree.NewElement("div", map[string]string{"id": "one"}), -1)
	f2 := domtree.NewFragment("b.html")
	f2.AddElement(domtree.NewElement("div", map[string]string{"id": "two"}), -1)

	m := New(ScopePage, []*domtree.Fragment{f1, f2}, nil, nil)
	require.NotNil(t, m.GetElementByID("two"))
	ref := m.QuerySelector("#two")
	require.Equal(t, f2, ref.Fragment)
}

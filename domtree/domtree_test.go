package domtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFixture() *Fragment {
	f := NewFragment("index.html")
	root := f.AddElement(NewElement("div", map[string]string{"id": "app"}), -1)
	btn := f.AddElement(NewElement("button", map[string]string{"id": "x"}), root)
	f.AddElement(&Element{NodeType: NodeText, Text: "Click"}, btn)
	img := f.AddElement(NewElement("img", map[string]string{"src": "a.png"}), root)
	_ = img
	anchor := f.AddElement(NewElement("a", map[string]string{"class": "nav-link", "href": "/x"}), root)
	_ = anchor
	disabledBtn := f.AddElement(NewElement("button", map[string]string{"disabled": ""}), root)
	_ = disabledBtn
	return f
}

func TestFragmentValidate(t *testing.T) {
	f := buildFixture()
	require.NoError(t, f.Validate())
}

func TestSelectorSet(t *testing.T) {
	f := buildFixture()
	btn := f.QuerySelector("#x")
	require.NotNil(t, btn)
	require.Contains(t, btn.SelectorSet(), "#x")
	require.Contains(t, btn.SelectorSet(), "button")
}

func TestQuerySelectorAllByClass(t *testing.T) {
	f := buildFixture()
	links := f.QuerySelectorAll(".nav-link")
	require.Len(t, links, 1)
	require.Equal(t, "a", links[0].TagName)
}

func TestFocusability(t *testing.T) {
	f := buildFixture()
	btn := f.QuerySelector("#x")
	require.True(t, IsFocusable(btn))

	anchorNoHref := NewElement("a", nil)
	require.False(t, IsFocusable(anchorNoHref))

	anchor := f.QuerySelector(".nav-link")
	require.True(t, IsFocusable(anchor))

	for _, el := range f.GetAllElements() {
		if el.TagName == "button" && el.Disabled() {
			require.False(t, IsFocusable(el))
		}
	}
}

func TestAccessibleLabelPriority(t *testing.T) {
	f := NewFragment("f.html")
	root := f.AddElement(NewElement("div", nil), -1)
	labelled := f.AddElement(NewElement("span", map[string]string{"id": "lbl"}), root)
	f.AddElement(&Element{NodeType: NodeText, Text: "Close dialog"}, labelled)
	target := f.AddElement(NewElement("button", map[string]string{"aria-labelledby": "lbl"}), root)

	require.Equal(t, "Close dialog", AccessibleLabel(f, f.Element(target)))

	explicit := f.AddElement(NewElement("button", map[string]string{"aria-label": "Close"}), root)
	require.Equal(t, "Close", AccessibleLabel(f, f.Element(explicit)))
}

func TestValidatorFindsIssues(t *testing.T) {
	f := NewFragment("f.html")
	root := f.AddElement(NewElement("div", nil), -1)
	f.AddElement(NewElement("img", nil), root)
	f.AddElement(NewElement("button", nil), root)
	f.AddElement(NewElement("div", map[string]string{"aria-bogus": "1"}), root)

	warnings := Validate(f)
	require.Len(t, warnings, 3)
}

func TestImplicitRole(t *testing.T) {
	f := buildFixture()
	btn := f.QuerySelector("#x")
	require.Equal(t, "button", Role(btn))
}

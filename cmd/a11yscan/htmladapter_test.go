package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHTMLFragmentBuildsElementTree(t *testing.T) {
	src := `<html><body><div id="x" aria-labelledby="lbl"><span id="lbl">Go</span></div></body></html>`
	fragment, err := parseHTMLFragment("index.html", []byte(src))
	require.NoError(t, err)

	el := fragment.GetElementByID("x")
	require.NotNil(t, el)
	require.Equal(t, "div", el.TagName)
	val, ok := el.Attr("aria-labelledby")
	require.True(t, ok)
	require.Equal(t, "lbl", val)

	label := fragment.GetElementByID("lbl")
	require.NotNil(t, label)
}

func TestParseHTMLFragmentAcceptsEmptyInput(t *testing.T) {
	_, err := parseHTMLFragment("empty.html", []byte(``))
	require.NoError(t, err) // empty document still parses to an (empty) tree, per x/net/html semantics
}

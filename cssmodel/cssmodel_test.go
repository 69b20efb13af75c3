package cssmodel

import (
	"testing"

	"github.com/a11yscan/engine/domtree"
	"github.com/stretchr/testify/require"
)

func TestSpecificityOrdering(t *testing.T) {
	id := NewRule(RuleStyle, "#x", map[string]string{"color": "red"}, 0)
	class := NewRule(RuleStyle, ".x", map[string]string{"color": "blue"}, 1)
	tag := NewRule(RuleStyle, "button", map[string]string{"color": "green"}, 2)

	require.True(t, tag.Specificity.Less(class.Specificity))
	require.True(t, class.Specificity.Less(id.Specificity))
}

func TestGetMatchingRulesCascadeOrder(t *testing.T) {
	m := NewModel(nil)
	m.Add(NewRule(RuleStyle, "button", map[string]string{"color": "green"}, 0))
	m.Add(NewRule(RuleStyle, "#x", map[string]string{"color": "red"}, 0))
	m.Add(NewRule(RuleStyle, ".x", map[string]string{"color": "blue"}, 0))

	el := domtree.NewElement("button", map[string]string{"id": "x", "class": "x"})
	matches := m.GetMatchingRules(el)
	require.Len(t, matches, 3)
	require.Equal(t, "#x", matches[0].Selector)
	require.Equal(t, ".x", matches[1].Selector)
	require.Equal(t, "button", matches[2].Selector)
}

func TestGetMatchingRulesSourceOrderTiebreak(t *testing.T) {
	m := NewModel(nil)
	m.Add(NewRule(RuleStyle, ".x", map[string]string{"color": "blue"}, 0))
	m.Add(NewRule(RuleStyle, ".x", map[string]string{"color": "red"}, 0))

	el := domtree.NewElement("div", map[string]string{"class": "x"})
	matches := m.GetMatchingRules(el)
	require.Len(t, matches, 2)
	require.Equal(t, "red", matches[0].Properties["color"])
}

func TestIsElementHidden(t *testing.T) {
	m := NewModel(nil)
	m.Add(NewRule(RuleStyle, ".hidden", map[string]string{"display": "none"}, 0))

	hidden := domtree.NewElement("div", map[string]string{"class": "hidden"})
	visible := domtree.NewElement("div", nil)

	require.True(t, m.IsElementHidden(hidden))
	require.False(t, m.IsElementHidden(visible))
}

func TestHasFocusStyles(t *testing.T) {
	m := NewModel(nil)
	m.Add(NewRule(RuleStyle, "button:focus", map[string]string{"outline": "2px solid blue"}, 0))

	btn := domtree.NewElement("button", nil)
	require.True(t, m.HasFocusStyles(btn))

	div := domtree.NewElement("div", nil)
	require.False(t, m.HasFocusStyles(div))
}

func TestImpactFlags(t *testing.T) {
	r := NewRule(RuleStyle, ".x", map[string]string{"opacity": "0"}, 0)
	require.True(t, r.AffectsVisibility())

	r2 := NewRule(RuleStyle, ".x:hover", map[string]string{"cursor": "pointer"}, 0)
	require.True(t, r2.AffectsInteraction())
	require.True(t, r2.HasPseudoClass())
}

func TestInlineRuleDominates(t *testing.T) {
	m := NewModel(nil)
	m.Add(NewRule(RuleStyle, "#x", map[string]string{"color": "red"}, 0))
	inline := NewInlineRule(map[string]string{"color": "green"})
	m.Add(inline)

	el := domtree.NewElement("div", map[string]string{"id": "x"})
	matches := m.GetMatchingRules(el)
	// inline rules have no selector, so GetMatchingRules only returns #x
	require.Len(t, matches, 1)
	require.Equal(t, "#x", matches[0].Selector)
	require.True(t, matches[0].Specificity.Less(inline.Specificity))
}

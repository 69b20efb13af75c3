package actionir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionAttr(t *testing.T) {
	a := &Action{Attributes: map[string]Attr{"callee": StringAttr("foo.bar"), "depth": IntAttr(3), "flag": BoolAttr(true)}}

	v, ok := a.Attr("callee")
	require.True(t, ok)
	require.Equal(t, "foo.bar", v.AsString())

	v, ok = a.Attr("depth")
	require.True(t, ok)
	require.Equal(t, 3, v.AsInt())

	v, ok = a.Attr("flag")
	require.True(t, ok)
	require.True(t, v.AsBool())

	_, ok = a.Attr("missing")
	require.False(t, ok)
}

func TestChildrenByRole(t *testing.T) {
	cond := &Action{Kind: KindIdentifier, Role: RoleCondition}
	then := &Action{Kind: KindBlock, Role: RoleThen, Children: []*Action{{Kind: KindIdentifier}}}
	els := &Action{Kind: KindBlock, Role: RoleElse, Children: []*Action{{Kind: KindIdentifier}}}
	ifNode := &Action{Kind: KindIf, Children: []*Action{cond, then, els}}

	require.Same(t, cond, ifNode.ChildByRole(RoleCondition))
	require.Len(t, ifNode.ChildrenByRole(RoleThen), 1)
	require.Nil(t, ifNode.ChildByRole(RoleUpdate))
}

func TestWalkPreOrder(t *testing.T) {
	leaf1 := &Action{Kind: KindIdentifier}
	leaf2 := &Action{Kind: KindIdentifier}
	root := &Action{Kind: KindSeq, Children: []*Action{leaf1, leaf2}}

	var seen []*Action
	Walk(root, func(a *Action) bool {
		seen = append(seen, a)
		return true
	})
	require.Equal(t, []*Action{root, leaf1, leaf2}, seen)
}

func TestValidateRejectsMissingRequiredChildren(t *testing.T) {
	root := &Action{Kind: KindProgram, Children: []*Action{{Kind: KindLiteral}}}
	tree := NewActionTree(root)
	require.NoError(t, tree.Validate())

	bad := &Action{Kind: KindBlock}
	require.Error(t, NewActionTree(bad).Validate())
}

func TestValidateRejectsBadRole(t *testing.T) {
	ifNode := &Action{Kind: KindIf, Children: []*Action{
		{Kind: KindIdentifier, Role: RoleUpdate},
	}}
	err := NewActionTree(ifNode).Validate()
	require.Error(t, err)
}

func TestValidateRejectsRegressedSpans(t *testing.T) {
	root := &Action{Kind: KindSeq, Span: Span{StartByte: 10}, Children: []*Action{
		{Kind: KindIdentifier, Span: Span{StartByte: 5}},
	}}
	err := NewActionTree(root).Validate()
	require.Error(t, err)
}

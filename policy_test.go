package jsondelta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicyAttrNilSafe(t *testing.T) {
	var p *Policy
	require.Nil(t, p.Attr("x"))
	require.Nil(t, p.ElemPolicy())
	require.Equal(t, "", p.otype())
}

func TestPolicyAttrResolvesSubPolicy(t *testing.T) {
	p := &Policy{Attributes: map[string]*Policy{
		"list": {OType: "list"},
	}}
	sub := p.Attr("list")
	require.NotNil(t, sub)
	require.Equal(t, "list", sub.otype())

	require.Nil(t, p.Attr("missing"))
}

func TestPolicyElemPolicy(t *testing.T) {
	p := &Policy{Item: &Policy{OType: "string"}}
	require.Equal(t, "string", p.ElemPolicy().otype())
}

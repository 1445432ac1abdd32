package infer_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/infer"
	"github.com/stretchr/testify/require"
)

func TestInstanceMapSatisfiesDeclaredInstance(t *testing.T) {
	b := infer.NewBuiltins()
	im := infer.NewInstanceMap()
	im.Declare("Eq", b.Int.ConID)

	require.True(t, im.Satisfies("Eq", b.Int))
	require.False(t, im.Satisfies("Eq", b.String))
}

func TestInstanceMapSatisfiesClassConstrainedVariable(t *testing.T) {
	im := infer.NewInstanceMap()
	ctx := newCtx()
	tv := ctx.FreshVar("a")
	tv.Classes["Show"] = true
	require.True(t, im.Satisfies("Show", tv))
	require.False(t, im.Satisfies("Eq", tv))
}

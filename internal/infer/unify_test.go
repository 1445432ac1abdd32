package infer_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/infer"
	"github.com/boltlang/boltcheck/internal/scope"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newCtx() *infer.Context {
	sink := diagnostics.NewSink()
	return infer.NewRoot("t.bolt", uuid.New(), sink, scope.NewTable())
}

func TestUnifyTwoFreshVariables(t *testing.T) {
	ctx := newCtx()
	a := ctx.FreshVar("a")
	bb := ctx.FreshVar("b")
	infer.Unify(a, bb, source.TextRange{}, ctx)
	require.False(t, ctx.Sink.HasErrors())
	require.Equal(t, types.Find(a), types.Find(bb))
}

func TestUnifyConcreteConstructorsOfSameName(t *testing.T) {
	ctx := newCtx()
	intA := types.NewCon(1, "Int")
	intB := types.NewCon(1, "Int")
	infer.Unify(intA, intB, source.TextRange{}, ctx)
	require.False(t, ctx.Sink.HasErrors())
}

func TestUnifyMismatchedConstructorsReportsError(t *testing.T) {
	ctx := newCtx()
	intCon := types.NewCon(1, "Int")
	boolCon := types.NewCon(2, "Bool")
	infer.Unify(intCon, boolCon, source.TextRange{}, ctx)
	require.True(t, ctx.Sink.HasErrors())
}

func TestUnifyArrowsRecursesIntoParamsAndReturn(t *testing.T) {
	ctx := newCtx()
	intCon := types.NewCon(1, "Int")
	boolCon := types.NewCon(2, "Bool")
	v1 := ctx.FreshVar("")
	v2 := ctx.FreshVar("")
	a1 := types.NewArrow(intCon, boolCon)
	a2 := types.NewArrow(v1, v2)
	infer.Unify(a1, a2, source.TextRange{}, ctx)
	require.False(t, ctx.Sink.HasErrors())
	require.Equal(t, intCon, types.Find(v1))
	require.Equal(t, boolCon, types.Find(v2))
}

func TestUnifyOccursCheckFails(t *testing.T) {
	ctx := newCtx()
	v := ctx.FreshVar("a")
	listCon := types.NewCon(1, "List")
	app := types.NewApp(listCon, v)
	infer.Unify(v, app, source.TextRange{}, ctx)
	require.True(t, ctx.Sink.HasErrors())
}

func TestUnifyRigidVariableSurvivesAgainstLaterUnificationVariable(t *testing.T) {
	ctx := newCtx()
	// A rigid variable allocated first (spec §4.4 Phase 1: type assertions
	// are resolved, and therefore their rigid variables allocated, before
	// a function's body - and its fresh unification variables - is
	// inferred in Phase 2), so rigid.VarID < uni.VarID here by
	// construction, matching the reported regression.
	rigid := ctx.FreshRigid("a")
	uni := ctx.FreshVar("t")
	infer.Unify(rigid, uni, source.TextRange{}, ctx)
	require.False(t, ctx.Sink.HasErrors())
	require.Equal(t, types.Find(rigid), types.Find(uni))
	require.Equal(t, types.Rigid, types.Find(uni).VarSort)
}

func TestUnifyLaterUnificationVariableAgainstEarlierRigidVariable(t *testing.T) {
	ctx := newCtx()
	rigid := ctx.FreshRigid("a")
	uni := ctx.FreshVar("t")
	// Same pair, arguments swapped: the rigid side must survive
	// regardless of which operand position it appears in.
	infer.Unify(uni, rigid, source.TextRange{}, ctx)
	require.False(t, ctx.Sink.HasErrors())
	require.Equal(t, types.Find(rigid), types.Find(uni))
}

func TestUnifyTwoDistinctRigidVariablesIsAnError(t *testing.T) {
	ctx := newCtx()
	r1 := ctx.FreshRigid("a")
	r2 := ctx.FreshRigid("b")
	infer.Unify(r1, r2, source.TextRange{}, ctx)
	require.True(t, ctx.Sink.HasErrors())
}

func TestUnifyOpenRowsMergeFields(t *testing.T) {
	ctx := newCtx()
	intCon := types.NewCon(1, "Int")
	strCon := types.NewCon(2, "String")
	rowA := types.BuildRow(map[string]*types.Type{"x": intCon}, ctx.FreshVar(""))
	rowB := types.BuildRow(map[string]*types.Type{"y": strCon}, ctx.FreshVar(""))
	infer.Unify(rowA, rowB, source.TextRange{}, ctx)
	require.False(t, ctx.Sink.HasErrors())
}

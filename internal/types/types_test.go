package types_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/types"
	"github.com/stretchr/testify/require"
)

func TestFindReturnsSelfForFreshVar(t *testing.T) {
	v := types.NewVar(1, types.Unification, "a")
	require.Equal(t, v, types.Find(v))
}

func TestSetUnifiesTwoVariables(t *testing.T) {
	a := types.NewVar(1, types.Unification, "a")
	b := types.NewVar(2, types.Unification, "b")
	require.NoError(t, types.Set(a, b))
	require.Equal(t, types.Find(a), types.Find(b))
}

func TestSetIntoRigidVariableFails(t *testing.T) {
	rigid := types.NewVar(1, types.Rigid, "a")
	other := types.NewVar(2, types.Unification, "b")
	err := types.Set(rigid, other)
	require.Error(t, err)
	var target *types.ErrRigidTarget
	require.ErrorAs(t, err, &target)
}

func TestFindPathHalvingConverges(t *testing.T) {
	v1 := types.NewVar(1, types.Unification, "")
	v2 := types.NewVar(2, types.Unification, "")
	v3 := types.NewVar(3, types.Unification, "")
	con := types.NewCon(100, "Int")
	require.NoError(t, types.Set(v1, v2))
	require.NoError(t, types.Set(v2, v3))
	require.NoError(t, types.Set(v3, con))
	require.Equal(t, con, types.Find(v1))
}

func TestOccursCheckDetectsSelfReference(t *testing.T) {
	v := types.NewVar(1, types.Unification, "a")
	listCon := types.NewCon(100, "List")
	app := types.NewApp(listCon, v)
	require.True(t, types.Contains(app, v))

	other := types.NewVar(2, types.Unification, "b")
	require.False(t, types.Contains(app, other))
}

func TestBuildArrowCurriesRightToLeft(t *testing.T) {
	intCon := types.NewCon(1, "Int")
	boolCon := types.NewCon(2, "Bool")
	arrow := types.BuildArrow([]*types.Type{intCon, intCon}, boolCon)
	require.Equal(t, "(Int -> (Int -> Bool))", arrow.String())
}

func TestBuildRowOrdersFieldsByName(t *testing.T) {
	intCon := types.NewCon(1, "Int")
	strCon := types.NewCon(2, "String")
	row := types.BuildRow(map[string]*types.Type{"b": strCon, "a": intCon}, nil)
	require.Equal(t, "a", row.FieldName)
	require.Equal(t, "b", row.Rest.FieldName)
}

func TestFreeVarsDeduplicatesSharedVariable(t *testing.T) {
	v := types.NewVar(1, types.Unification, "a")
	arrow := types.NewArrow(v, v)
	free := types.FreeVars(arrow)
	require.Len(t, free, 1)
}

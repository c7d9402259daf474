package jsondelta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyDiffNoOpReturnsInputUnchanged(t *testing.T) {
	a := Number(5)
	got, err := ApplyDiff(a, Operation{})
	require.NoError(t, err)
	require.True(t, Equals(a, got))
}

func TestApplyDiffReplace(t *testing.T) {
	got, err := ApplyDiff(Number(1), Operation{Op: OpReplace, V: String("x")})
	require.NoError(t, err)
	require.Equal(t, String("x"), got)
}

func TestApplyDiffIntegerTypeMismatch(t *testing.T) {
	_, err := ApplyDiff(String("x"), Operation{Op: OpInteger, V: float64(1)})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestApplyObjectDiffRoundTrip(t *testing.T) {
	a := map[string]Value{"keep": Number(1), "change": Number(2), "gone": Number(3)}
	diffs := Delta{
		"change": {Op: OpReplace, V: Number(20)},
		"gone":   {Op: OpDelete},
		"new":    {Op: OpInsert, V: Number(4)},
	}

	got, err := ApplyObjectDiff(a, diffs)
	require.NoError(t, err)
	require.Equal(t, Number(1).AsNumber(), got["keep"].AsNumber())
	require.Equal(t, Number(20).AsNumber(), got["change"].AsNumber())
	require.Equal(t, Number(4).AsNumber(), got["new"].AsNumber())
	_, ok := got["gone"]
	require.False(t, ok)

	// source must be untouched
	require.Equal(t, float64(2), a["change"].AsNumber())
}

func TestApplyListDiffHandlesShiftingIndices(t *testing.T) {
	s := []Value{Number(0), Number(1), Number(2), Number(3)}
	diffs := Delta{
		"1":  {Op: OpDelete},
		"10": {Op: OpInsert, V: Number(99)},
	}

	got, err := ApplyListDiff(s, diffs)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, float64(0), got[0].AsNumber())
	require.Equal(t, float64(2), got[1].AsNumber())
	require.Equal(t, float64(3), got[2].AsNumber())
	require.Equal(t, float64(99), got[3].AsNumber())
}

func TestApplyListDiffInsertThenDelete(t *testing.T) {
	s := []Value{Number(0), Number(1)}
	diffs := Delta{
		"0": {Op: OpInsert, V: Number(-1)},
		"1": {Op: OpDelete},
	}
	got, err := ApplyListDiff(s, diffs)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 1}, []float64{got[0].AsNumber(), got[1].AsNumber()})
}

func TestDiffThenApplyDiffRoundTrips(t *testing.T) {
	a := Object(map[string]Value{
		"name": String("alice"),
		"age":  Number(30),
		"tags": Array([]Value{String("x"), String("y")}),
	})
	b := Object(map[string]Value{
		"name": String("alicia"),
		"age":  Number(31),
		"tags": Array([]Value{String("x"), String("y"), String("z")}),
	})

	result := Diff(a, b, nil)
	d, ok := result.(Delta)
	require.True(t, ok)

	got, err := ApplyDiff(a, Operation{Op: OpObject, V: d})
	require.NoError(t, err)
	require.True(t, Equals(b, got))
}

func TestApplyListDiffDMPRoundTrips(t *testing.T) {
	s := []Value{String("a"), String("b"), String("c")}
	sv := Array(s)
	bv := Array([]Value{String("a"), String("b"), String("c"), String("d")})

	result := Diff(sv, bv, &Policy{OType: "list_dmp"})
	op, ok := result.(Operation)
	require.True(t, ok, "a top-level \"list_dmp\" policy diff is a bare Operation (\"dL\" is not a nesting opcode), got %T", result)
	require.Equal(t, OpListText, op.Op)

	got, err := ApplyListDiffDMP(s, op.V.(string))
	require.NoError(t, err)
	require.True(t, Equals(Array(got), bv))
}

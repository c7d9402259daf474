package jsondelta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectStatsTalliesNestedDelta(t *testing.T) {
	op := Operation{
		Op: OpObject,
		V: Delta{
			"added":   {Op: OpInsert, V: Number(1)},
			"removed": {Op: OpDelete},
			"changed": {Op: OpReplace, V: Number(2)},
			"child": {Op: OpObject, V: Delta{
				"x": {Op: OpInsert, V: Number(3)},
			}},
		},
	}

	s := CollectStats(op)
	require.Equal(t, 2, s.Inserts)
	require.Equal(t, 1, s.Deletes)
	require.Equal(t, 1, s.Replaces)
	require.Equal(t, 2, s.ObjectDiffs) // outer + nested child
	require.Equal(t, 1, s.NodeChange())
	require.Equal(t, 1, s.Updates())
}

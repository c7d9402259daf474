package jsondelta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPrettyRendersNestedDelta(t *testing.T) {
	op := Operation{
		Op: OpObject,
		V: Delta{
			"name": {Op: OpReplace, V: String("bob")},
			"address": {Op: OpObject, V: Delta{
				"city": {Op: OpInsert, V: String("reno")},
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatPretty(&buf, op, false))

	out := buf.String()
	require.True(t, strings.Contains(out, "rname"))
	require.True(t, strings.Contains(out, "Oaddress"))
	require.True(t, strings.Contains(out, "  +city"))
}

func TestFormatPrettyStatsPluralization(t *testing.T) {
	s := Stats{Inserts: 1, Deletes: 0, Replaces: 2}
	out := FormatPrettyStats(s)
	require.True(t, strings.Contains(out, "1 insert."))
	require.True(t, strings.Contains(out, "0 deletes."))
	require.True(t, strings.Contains(out, "2 updates."))
}

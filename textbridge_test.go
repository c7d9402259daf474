package jsondelta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayLinesRoundTrip(t *testing.T) {
	vs := []Value{Number(1), String("x"), Bool(true)}

	text, err := arrayToLines(vs)
	require.NoError(t, err)

	got, err := linesToArray(text)
	require.NoError(t, err)
	require.True(t, Equals(Array(got), Array(vs)))
}

func TestArrayToLinesRejectsEmbeddedNewline(t *testing.T) {
	_, err := arrayToLines([]Value{String("line1\nline2")})
	require.ErrorIs(t, err, ErrEmbeddedNewline)
}

func TestLinesToArraySkipsEmptyLines(t *testing.T) {
	got, err := linesToArray("1\n\n2\n")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

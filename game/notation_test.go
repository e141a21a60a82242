package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotation(t *testing.T) {
	g := New()
	g.Play(0)
	g.Play(3)
	g.Play(1)
	g.Play(4)

	require.Equal(t, "XX.OO....", g.Notation(), "Notation should list cells in index order")
}

func TestFromNotation(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		g, err := FromNotation("XX.OO....")

		require.NoError(t, err)
		require.Equal(t, "XX.OO....", g.Notation(), "Parsing should invert Notation")
		require.Equal(t, 4, g.Plies(), "Ply count should be derived from the occupied cells")
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := FromNotation("XX.OO")

		require.Error(t, err, "A short notation should not parse")
	})

	t.Run("bad symbol", func(t *testing.T) {
		_, err := FromNotation("XX_OO....")

		require.Error(t, err, "An unknown symbol should not parse")
	})
}

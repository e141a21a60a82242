package game

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	g, err := FromNotation("XX.OO....")
	require.NoError(t, err)

	t.Run("degrades to plain text without color support", func(t *testing.T) {
		var buf strings.Builder
		out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

		require.Equal(t, g.String(), Render(out, g), "An ascii profile should render the plain form")
	})

	t.Run("keeps the cell layout under styling", func(t *testing.T) {
		var buf strings.Builder
		out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))

		rendered := Render(out, g)

		require.Equal(t, 3, strings.Count(rendered, "\n"), "Styling should not change the row structure")
		require.Equal(t, 2, strings.Count(rendered, "X"), "Every mark should appear exactly once")
		require.Equal(t, 2, strings.Count(rendered, "O"), "Every mark should appear exactly once")
	})
}

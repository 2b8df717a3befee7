package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fontlaborg/o4e"
)

func concatRuns(t *testing.T, text string, runs []o4e.TextRun) string {
	t.Helper()
	var out []byte
	for _, r := range runs {
		out = append(out, text[r.Start:r.End]...)
	}
	return string(out)
}

func TestSegmentRoundTripsConcatenation(t *testing.T) {
	cases := []string{
		"",
		"Hello, o4e!",
		"Hi 世界\nسلام",
		"plain ascii text",
	}
	for _, text := range cases {
		runs := Segment(text, Options{DefaultDirection: o4e.DirLTR})
		require.Equal(t, text, concatRuns(t, text, runs), "text=%q", text)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	runs := Segment("", Options{DefaultDirection: o4e.DirLTR})
	require.Empty(t, runs)
}

func TestSegmentRunsDoNotOverlap(t *testing.T) {
	text := "Hi 世界\nسلام"
	runs := Segment(text, Options{DefaultDirection: o4e.DirLTR})
	for i := 1; i < len(runs); i++ {
		require.Equal(t, runs[i-1].End, runs[i].Start, "run %d does not start where run %d ended", i, i-1)
	}
}

func TestSegmentHardBreakTerminatesRun(t *testing.T) {
	text := "line one\nline two"
	runs := Segment(text, Options{DefaultDirection: o4e.DirLTR})

	foundBreak := false
	for _, r := range runs {
		if r.HardBreak {
			foundBreak = true
			require.Equal(t, "\n", text[r.Start:r.End])
		}
	}
	require.True(t, foundBreak, "expected a run flagged HardBreak for the newline")
}

func TestSegmentMixedScriptProducesMultipleRuns(t *testing.T) {
	text := "Hi 世界"
	runs := Segment(text, Options{DefaultDirection: o4e.DirLTR})
	require.Greater(t, len(runs), 1)
}

package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fontlaborg/o4e/internal/outline"
)

func TestRasterizeOutlineEmptyYieldsEmptyMask(t *testing.T) {
	mask := rasterizeOutline(nil)
	require.Equal(t, 0, mask.Width)
	require.Equal(t, 0, mask.Height)
	require.Nil(t, mask.Coverage)
}

func TestRasterizeOutlineSquareIsFullyCovered(t *testing.T) {
	cmds := []outline.Command{
		{Op: outline.MoveTo, X: 0, Y: 0},
		{Op: outline.LineTo, X: 10, Y: 0},
		{Op: outline.LineTo, X: 10, Y: 10},
		{Op: outline.LineTo, X: 0, Y: 10},
		{Op: outline.Close},
	}
	mask := rasterizeOutline(cmds)
	require.Greater(t, mask.Width, 0)
	require.Greater(t, mask.Height, 0)

	// The square's interior, away from its anti-aliased edges, should be
	// fully covered.
	midX, midY := mask.Width/2, mask.Height/2
	require.Equal(t, byte(255), mask.Coverage[midY*mask.Width+midX])
}

func TestRasterizeOutlineTriangleHasPartialEdgeCoverage(t *testing.T) {
	cmds := []outline.Command{
		{Op: outline.MoveTo, X: 0, Y: 0},
		{Op: outline.LineTo, X: 20, Y: 0},
		{Op: outline.LineTo, X: 10, Y: 20},
		{Op: outline.Close},
	}
	mask := rasterizeOutline(cmds)

	var sawPartial bool
	for _, v := range mask.Coverage {
		if v > 0 && v < 255 {
			sawPartial = true
			break
		}
	}
	require.True(t, sawPartial, "expected anti-aliased (partial coverage) pixels along the slanted edge")
}

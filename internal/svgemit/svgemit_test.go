package svgemit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fontlaborg/o4e/internal/outline"
)

func TestPathToDEmitsOneCommandPerStep(t *testing.T) {
	cmds := []outline.Command{
		{Op: outline.MoveTo, X: 1, Y: 2},
		{Op: outline.LineTo, X: 3, Y: 4},
		{Op: outline.QuadTo, CX: 5, CY: 6, X: 7, Y: 8},
		{Op: outline.CubicTo, C1X: 1, C1Y: 1, C2X: 2, C2Y: 2, X: 9, Y: 9},
		{Op: outline.Close},
	}
	d := pathToD(cmds, 2)
	require.Equal(t, "M1.00,2.00L3.00,4.00Q5.00,6.00 7.00,8.00C1.00,1.00 2.00,2.00 9.00,9.00Z", d)
}

func TestPathToDPrecisionZero(t *testing.T) {
	cmds := []outline.Command{{Op: outline.MoveTo, X: 1.6, Y: 2.4}}
	require.Equal(t, "M2,2", pathToD(cmds, 0))
}

func TestSimplifyCollinearDropsMidpointOnStraightLine(t *testing.T) {
	cmds := []outline.Command{
		{Op: outline.MoveTo, X: 0, Y: 0},
		{Op: outline.LineTo, X: 5, Y: 0},
		{Op: outline.LineTo, X: 10, Y: 0},
		{Op: outline.Close},
	}
	out := simplifyCollinear(cmds, 0.01)
	require.Len(t, out, 3) // moveto, final lineto, close — midpoint dropped
}

func TestSimplifyCollinearKeepsNonCollinearPoint(t *testing.T) {
	cmds := []outline.Command{
		{Op: outline.MoveTo, X: 0, Y: 0},
		{Op: outline.LineTo, X: 5, Y: 5},
		{Op: outline.LineTo, X: 10, Y: 0},
		{Op: outline.Close},
	}
	out := simplifyCollinear(cmds, 0.01)
	require.Len(t, out, 4)
}

func TestScaleAndFlipNegatesY(t *testing.T) {
	cmds := []outline.Command{{Op: outline.MoveTo, X: 10, Y: 20}}
	out := scaleAndFlip(cmds, 2.0)
	require.Equal(t, 20.0, out[0].X)
	require.Equal(t, -40.0, out[0].Y)
}

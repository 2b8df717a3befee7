// Package svgemit converts a shaped run into a standalone SVG document, one
// <path> per glyph, grounded on the teacher's preference for hand-written
// buffer serialization over reflection-heavy marshaling (internal/scanline's
// storage types build output by direct field access rather than encoding/*
// struct tags) and on C6's outline command vocabulary.
package svgemit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/o4eerr"
	"github.com/fontlaborg/o4e/internal/outline"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Emit implements spec.md §4.7 (C8): emit(shaping_result, svg_options) ->
// Svg. Output is deterministic for identical inputs, modulo the requested
// coordinate precision. face is nil if resolution failed upstream; like
// C7, the pointer here is only a "no face" sentinel, since font.Face
// itself is a value type.
func Emit(result *o4e.ShapingResult, face *font.Face, opts o4e.SvgOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if face == nil {
		return "", o4eerr.New(o4eerr.FontNotFound, "shaping result carries no bound font")
	}

	scale := outline.Scale(result.Font.SizePx, *face)
	minX, minY, maxX, maxY := 0.0, -result.Ascent, result.Width, result.Descent
	if minY > 0 {
		minY = 0
	}

	var body strings.Builder
	penX, penY := 0.0, 0.0
	for _, g := range result.Glyphs {
		cmds := outline.Extract(*face, g.GlyphID)
		if len(cmds) > 0 {
			scaled := scaleAndFlip(cmds, scale)
			if opts.SimplifyTol > 0 {
				scaled = simplifyCollinear(scaled, opts.SimplifyTol)
			}
			d := pathToD(scaled, opts.Precision)
			if d != "" {
				x := penX + g.OffsetX
				y := penY - g.OffsetY
				fmt.Fprintf(&body, "<path d=\"%s\" transform=\"translate(%s,%s)\"/>",
					d, formatCoord(x, opts.Precision), formatCoord(y, opts.Precision))
			}
		}
		penX += g.AdvanceX
		penY -= g.AdvanceY
	}

	var out strings.Builder
	fmt.Fprintf(&out, `<svg xmlns="%s" viewBox="%s %s %s %s">`,
		svgNamespace,
		formatCoord(minX, opts.Precision), formatCoord(minY, opts.Precision),
		formatCoord(maxX-minX, opts.Precision), formatCoord(maxY-minY, opts.Precision))
	out.WriteString(body.String())
	out.WriteString("</svg>")
	return out.String(), nil
}

// scaleAndFlip converts design units to pixels and negates Y, matching
// C7's raster package: font outlines are Y-up, SVG's user space is Y-down.
func scaleAndFlip(cmds []outline.Command, scale float64) []outline.Command {
	out := make([]outline.Command, len(cmds))
	for i, c := range cmds {
		out[i] = outline.Command{
			Op:  c.Op,
			X:   c.X * scale, Y: c.Y * -scale,
			CX:  c.CX * scale, CY: c.CY * -scale,
			C1X: c.C1X * scale, C1Y: c.C1Y * -scale,
			C2X: c.C2X * scale, C2Y: c.C2Y * -scale,
		}
	}
	return out
}

// simplifyCollinear drops LineTo points that lie within tol of the segment
// joining their neighbors, a cheap Douglas-Peucker-style thinning pass.
// Only runs of consecutive LineTo commands are candidates: MoveTo, curve,
// and Close commands always pass through untouched.
func simplifyCollinear(cmds []outline.Command, tol float64) []outline.Command {
	if len(cmds) < 3 {
		return cmds
	}
	out := make([]outline.Command, 0, len(cmds))
	for i, c := range cmds {
		if c.Op == outline.LineTo && i > 0 && i+1 < len(cmds) &&
			cmds[i+1].Op == outline.LineTo && len(out) > 0 {
			prev := out[len(out)-1]
			next := cmds[i+1]
			if pointToSegmentDistance(c.X, c.Y, prev.X, prev.Y, next.X, next.Y) <= tol {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func pointToSegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx, cy := ax+t*dx, ay+t*dy
	return hypot(px-cx, py-cy)
}

func hypot(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// pathToD renders outline commands as an SVG path "d" attribute value.
func pathToD(cmds []outline.Command, precision int) string {
	var d strings.Builder
	for _, c := range cmds {
		switch c.Op {
		case outline.MoveTo:
			fmt.Fprintf(&d, "M%s,%s", formatCoord(c.X, precision), formatCoord(c.Y, precision))
		case outline.LineTo:
			fmt.Fprintf(&d, "L%s,%s", formatCoord(c.X, precision), formatCoord(c.Y, precision))
		case outline.QuadTo:
			fmt.Fprintf(&d, "Q%s,%s %s,%s",
				formatCoord(c.CX, precision), formatCoord(c.CY, precision),
				formatCoord(c.X, precision), formatCoord(c.Y, precision))
		case outline.CubicTo:
			fmt.Fprintf(&d, "C%s,%s %s,%s %s,%s",
				formatCoord(c.C1X, precision), formatCoord(c.C1Y, precision),
				formatCoord(c.C2X, precision), formatCoord(c.C2Y, precision),
				formatCoord(c.X, precision), formatCoord(c.Y, precision))
		case outline.Close:
			d.WriteString("Z")
		}
	}
	return d.String()
}

func formatCoord(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Package outline extracts a glyph's scalable outline as a small, closed
// set of path commands, grounded on the GlyphData type switch in
// ebiten/text/v2's GoTextFaceSource (other_examples/...gotextfacesource.go)
// and on golang.org/x/image/font/sfnt's Segment/SegmentOp vocabulary, which
// matches spec.md §4.5's closed command set exactly.
package outline

import (
	"github.com/go-text/typesetting/font"
	gapi "github.com/go-text/typesetting/opentype/api"
)

// CommandOp is the closed set of outline commands spec.md §4.5 names.
type CommandOp int

const (
	MoveTo CommandOp = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// Command is one step of a glyph outline, in face design units.
type Command struct {
	Op   CommandOp
	X, Y   float64 // lineto/moveto endpoint, or curve endpoint
	CX, CY float64 // quadto control point
	C1X, C1Y float64 // cubicto first control point
	C2X, C2Y float64 // cubicto second control point
}

// Extract returns glyph id's outline commands in face design units,
// matching spec.md §4.5's contract: extract(face, glyph_id) -> path
// commands. Glyphs without a scalable outline (bitmap- or color-table-only)
// return an empty, non-error path, per spec.md §4.5 and §7
// (GlyphOutlineMissing degrades to an empty mask rather than failing).
func Extract(face font.Face, glyphID uint32) []Command {
	var segs []gapi.Segment
	switch data := face.GlyphData(font.GID(glyphID), nil).(type) {
	case gapi.GlyphOutline:
		segs = data.Segments
	case gapi.GlyphSVG:
		segs = data.Outline.Segments
	case gapi.GlyphBitmap:
		if data.Outline != nil {
			segs = data.Outline.Segments
		}
	}
	if len(segs) == 0 {
		return nil
	}
	return convert(segs)
}

// convert translates a flat segment list, possibly covering several
// contours (each starting with its own MoveTo), into Commands with one
// Close per contour: before every MoveTo but the first, and after the
// last segment.
func convert(segs []gapi.Segment) []Command {
	out := make([]Command, 0, len(segs)+1)
	started := false
	for _, s := range segs {
		switch s.Op {
		case gapi.SegmentOpMoveTo:
			if started {
				out = append(out, Command{Op: Close})
			}
			started = true
			out = append(out, Command{Op: MoveTo, X: float64(s.Args[0].X), Y: float64(s.Args[0].Y)})
		case gapi.SegmentOpLineTo:
			out = append(out, Command{Op: LineTo, X: float64(s.Args[0].X), Y: float64(s.Args[0].Y)})
		case gapi.SegmentOpQuadTo:
			out = append(out, Command{
				Op: QuadTo,
				CX: float64(s.Args[0].X), CY: float64(s.Args[0].Y),
				X: float64(s.Args[1].X), Y: float64(s.Args[1].Y),
			})
		case gapi.SegmentOpCubeTo:
			out = append(out, Command{
				Op:   CubicTo,
				C1X:  float64(s.Args[0].X), C1Y: float64(s.Args[0].Y),
				C2X:  float64(s.Args[1].X), C2Y: float64(s.Args[1].Y),
				X: float64(s.Args[2].X), Y: float64(s.Args[2].Y),
			})
		}
	}
	out = append(out, Command{Op: Close})
	return out
}

// Scale returns the design-unit-to-pixel scale factor for a font size, per
// spec.md §4.5: "callers scale by size / units_per_em."
func Scale(sizePx float64, face font.Face) float64 {
	upem := face.Upem()
	if upem == 0 {
		return 1
	}
	return sizePx / float64(upem)
}

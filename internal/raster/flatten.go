package raster

import (
	"github.com/fontlaborg/o4e/internal/basics"
	"github.com/fontlaborg/o4e/internal/curves"
	"github.com/fontlaborg/o4e/internal/outline"
)

// vertex is one flattened path step in device (pixel) space.
type vertex struct {
	x, y float64
	cmd  uint32
}

// flatPath is a rasterizer.VertexSource over a pre-flattened vertex slice.
// Curve3/Curve4 commands never reach it: flattenOutline expands them into
// LineTo steps first, since RasterizerScanlineAA.AddVertex treats any
// IsVertex()-true command (Curve3/Curve4 included) as a straight LineToD.
type flatPath struct {
	verts []vertex
	pos   int
}

func (p *flatPath) Rewind(uint32) { p.pos = 0 }

func (p *flatPath) Vertex(x, y *float64) uint32 {
	if p.pos >= len(p.verts) {
		return uint32(basics.PathCmdStop)
	}
	v := p.verts[p.pos]
	p.pos++
	*x, *y = v.x, v.y
	return v.cmd
}

// flattenOutline converts glyph outline commands, already scaled into
// pixel space and translated to the glyph's pen position, into a flatPath
// with every QuadTo/CubicTo subdivided into line segments.
func flattenOutline(cmds []outline.Command) *flatPath {
	p := &flatPath{verts: make([]vertex, 0, len(cmds)*2)}
	var curX, curY float64

	c3 := curves.NewCurve3Div()
	c4 := curves.NewCurve4Div()

	for _, c := range cmds {
		switch c.Op {
		case outline.MoveTo:
			p.verts = append(p.verts, vertex{c.X, c.Y, uint32(basics.PathCmdMoveTo)})
			curX, curY = c.X, c.Y
		case outline.LineTo:
			p.verts = append(p.verts, vertex{c.X, c.Y, uint32(basics.PathCmdLineTo)})
			curX, curY = c.X, c.Y
		case outline.QuadTo:
			c3.Init(curX, curY, c.CX, c.CY, c.X, c.Y)
			first := true
			for {
				x, y, cmd := c3.Vertex()
				if cmd == basics.PathCmdStop {
					break
				}
				if first {
					// c3's own MoveTo restates the current point; skip it.
					first = false
					continue
				}
				p.verts = append(p.verts, vertex{x, y, uint32(basics.PathCmdLineTo)})
			}
			curX, curY = c.X, c.Y
		case outline.CubicTo:
			c4.Init(curX, curY, c.C1X, c.C1Y, c.C2X, c.C2Y, c.X, c.Y)
			first := true
			for {
				x, y, cmd := c4.Vertex()
				if cmd == basics.PathCmdStop {
					break
				}
				if first {
					first = false
					continue
				}
				p.verts = append(p.verts, vertex{x, y, uint32(basics.PathCmdLineTo)})
			}
			curX, curY = c.X, c.Y
		case outline.Close:
			p.verts = append(p.verts, vertex{curX, curY, uint32(basics.PathCmdEndPoly) | uint32(basics.PathFlagsClose)})
		}
	}
	p.verts = append(p.verts, vertex{0, 0, uint32(basics.PathCmdStop)})
	return p
}

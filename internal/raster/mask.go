package raster

import (
	"github.com/fontlaborg/o4e/internal/fontcache"
	"github.com/fontlaborg/o4e/internal/outline"
	"github.com/fontlaborg/o4e/internal/rasterizer"
	"github.com/fontlaborg/o4e/internal/scanline"
)

// rasterizeOutline anti-aliases cmds (already in pixel space, glyph-origin
// relative) into a dense coverage bitmap clipped to its own tight bounding
// box, grounded on the teacher's RasterizerScanlineAA + ScanlineU8 sweep
// loop. A nil/empty cmds list (bitmap- or color-only glyphs per spec.md
// §4.5/§7) yields an empty, zero-sized mask rather than an error.
func rasterizeOutline(cmds []outline.Command) *fontcache.GlyphMask {
	if len(cmds) == 0 {
		return &fontcache.GlyphMask{}
	}

	path := flattenOutline(cmds)
	clipper := rasterizer.NewRasterizerSlClip[float64, rasterizer.DblConv](rasterizer.DblConv{})
	ras := rasterizer.NewRasterizerScanlineAA[float64, rasterizer.DblConv, any](rasterizer.DblConv{}, clipper)
	ras.AddPath(path, 0)

	if !ras.RewindScanlines() {
		return &fontcache.GlyphMask{}
	}

	minX, maxX := ras.MinX(), ras.MaxX()
	minY, maxY := ras.MinY(), ras.MaxY()
	width := maxX - minX + 1
	height := maxY - minY + 1
	if width <= 0 || height <= 0 {
		return &fontcache.GlyphMask{}
	}

	sl := scanline.NewScanlineU8()
	sl.Reset(minX, maxX)
	adapter := newScanlineU8Adapter(sl)

	coverage := make([]byte, width*height)
	for ras.SweepScanline(adapter) {
		y := sl.Y() - minY
		if y < 0 || y >= height {
			continue
		}
		row := coverage[y*width : (y+1)*width]
		for _, span := range sl.Spans() {
			x := int(span.X) - minX
			for i := 0; i < int(span.Len); i++ {
				if x+i < 0 || x+i >= width {
					continue
				}
				row[x+i] = byte(span.Covers[i])
			}
		}
	}

	return &fontcache.GlyphMask{
		Width: width, Height: height,
		OffsetX: minX, OffsetY: minY,
		Coverage: coverage,
	}
}

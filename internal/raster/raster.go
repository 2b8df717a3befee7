package raster

import (
	"math"

	"github.com/go-text/typesetting/font"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/buffer"
	"github.com/fontlaborg/o4e/internal/color"
	"github.com/fontlaborg/o4e/internal/fontcache"
	"github.com/fontlaborg/o4e/internal/o4eerr"
	"github.com/fontlaborg/o4e/internal/outline"
)

// Render implements spec.md §4.6 (C7): rasterize(shaping_result, options) ->
// Bitmap. face is the parsed resource result.Font resolves to (already
// opened by C3), or nil if resolution failed upstream; cache, if non-nil,
// is consulted for per-glyph coverage masks keyed by GlyphMaskKey so
// repeated glyphs across calls reuse work. font.Face itself is a value
// type (per go-text/typesetting's fontmap.ResolveFace); the pointer here
// only exists so callers have a sentinel for "no face was resolved."
func Render(result *o4e.ShapingResult, face *font.Face, opts o4e.RenderOptions, cache *fontcache.Cache) (o4e.Bitmap, error) {
	if err := opts.Validate(); err != nil {
		return o4e.Bitmap{}, err
	}
	if face == nil {
		return o4e.Bitmap{}, o4eerr.New(o4eerr.FontNotFound, "shaping result carries no bound font")
	}

	bpp := opts.Format.BytesPerPixel()
	rowBytes := opts.Width * bpp
	pixels := make([]byte, rowBytes*opts.Height)
	if !opts.Transparent {
		fillBackground(pixels, opts)
	}

	baseY := float64(opts.Height) * opts.baselineRatio()
	penX, penY := 0.0, baseY
	faceKey := o4e.NewFaceKey(result.Font)
	scale := outline.Scale(result.Font.SizePx, *face)
	sizeQuantum := o4e.QuantizeSize64(result.Font.SizePx)

	for _, g := range result.Glyphs {
		mask, err := glyphMask(faceKey, g.GlyphID, sizeQuantum, opts.AA, *face, scale, cache)
		if err != nil {
			return o4e.Bitmap{}, err
		}
		if mask.Width > 0 && mask.Height > 0 {
			originX := int(math.Round(penX+g.OffsetX)) + mask.OffsetX
			originY := int(math.Round(penY-g.OffsetY)) + mask.OffsetY
			compositeMask(pixels, rowBytes, opts, mask, originX, originY)
		}
		penX += g.AdvanceX
		penY -= g.AdvanceY
	}

	return o4e.Bitmap{
		Width: opts.Width, Height: opts.Height,
		Format: opts.Format, RowBytes: rowBytes,
		Pixels:        pixels,
		Premultiplied: true,
	}, nil
}

func glyphMask(faceKey o4e.FaceKey, glyphID uint32, sizeQuantum int64, aa o4e.AAMode, face font.Face, scale float64, cache *fontcache.Cache) (*fontcache.GlyphMask, error) {
	compute := func() (*fontcache.GlyphMask, error) {
		cmds := outline.Extract(face, glyphID)
		scaled := scaleCommands(cmds, scale)
		return rasterizeOutline(scaled), nil
	}
	if cache == nil {
		return compute()
	}
	key := o4e.GlyphMaskKey{Face: faceKey, GlyphID: glyphID, SizeQuantum64: sizeQuantum, AA: aa}
	return cache.GetOrRaster(key, compute)
}

// scaleCommands converts font design units to pixel units and flips the
// Y axis: font outlines follow the math convention (Y grows up from the
// baseline), while the rasterizer below sweeps scanlines top-to-bottom
// like an image (Y grows down), matching compositeMask's row order.
func scaleCommands(cmds []outline.Command, scale float64) []outline.Command {
	if len(cmds) == 0 {
		return cmds
	}
	negScale := -scale
	out := make([]outline.Command, len(cmds))
	for i, c := range cmds {
		out[i] = outline.Command{
			Op:   c.Op,
			X:    c.X * scale, Y: c.Y * negScale,
			CX: c.CX * scale, CY: c.CY * negScale,
			C1X: c.C1X * scale, C1Y: c.C1Y * negScale,
			C2X: c.C2X * scale, C2Y: c.C2Y * negScale,
		}
	}
	return out
}

// fillBackground walks the canvas row by row through a RenderingBuffer,
// the same row-accessor AGG uses instead of raw stride arithmetic.
func fillBackground(pixels []byte, opts o4e.RenderOptions) {
	bpp := opts.Format.BytesPerPixel()
	rb := buffer.NewRenderingBufferWithData(pixels, opts.Width, opts.Height, opts.Width*bpp)
	for y := 0; y < opts.Height; y++ {
		row := rb.Row(y)
		for i := 0; i+bpp <= len(row); i += bpp {
			writePixel(row[i:i+bpp], opts.Format, opts.Background)
		}
	}
}

// writePixel stores c premultiplied by its own alpha, matching the
// Premultiplied: true contract Render always returns under. The
// fixed-point multiply is the same one AGG's 8-bit color types use
// (color.RGBA8Multiply), rather than a plain truncating division.
func writePixel(px []byte, format o4e.PixelFormat, c o4e.Color) {
	switch format {
	case o4e.PixelGrayA8:
		px[0] = color.RGBA8Multiply(grayFromColor(c), c.A)
		px[1] = c.A
	default:
		px[0] = color.RGBA8Multiply(c.R, c.A)
		px[1] = color.RGBA8Multiply(c.G, c.A)
		px[2] = color.RGBA8Multiply(c.B, c.A)
		px[3] = c.A
	}
}

func grayFromColor(c o4e.Color) byte {
	return byte((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}

// compositeMask source-over blends mask, tinted by options.Foreground, onto
// pixels at (originX, originY), honoring the requested AA mode: none
// thresholds coverage at 0.5, grayscale uses the coverage value directly,
// and subpixel falls back to grayscale (documented Open Question decision:
// the portable rasterizer has no native subpixel filter to fall back from).
func compositeMask(pixels []byte, rowBytes int, opts o4e.RenderOptions, mask *fontcache.GlyphMask, originX, originY int) {
	bpp := opts.Format.BytesPerPixel()
	rb := buffer.NewRenderingBufferWithData(pixels, opts.Width, opts.Height, rowBytes)
	for y := 0; y < mask.Height; y++ {
		py := originY + y
		if py < 0 || py >= opts.Height {
			continue
		}
		canvasRow := rb.Row(py)
		maskRow := mask.Coverage[y*mask.Width : (y+1)*mask.Width]
		for x := 0; x < mask.Width; x++ {
			px := originX + x
			if px < 0 || px >= opts.Width {
				continue
			}
			cover := maskRow[x]
			if opts.AA == o4e.AANone {
				if cover >= 128 {
					cover = 255
				} else {
					cover = 0
				}
			}
			if cover == 0 {
				continue
			}
			off := px * bpp
			blendSourceOver(canvasRow[off:off+bpp], opts.Format, opts.Foreground, cover)
		}
	}
}

// blendSourceOver blends src (tinted by cover, 0-255) over dst in place,
// producing premultiplied output, matching Bitmap.Premultiplied's contract.
// Each channel is AGG's classic premultiplied source-over: the new channel
// is the source contribution (color.RGBA8Multiply(channel, srcA)) plus the
// surviving destination contribution (color.RGBA8Multiply(channel, inv)).
func blendSourceOver(dst []byte, format o4e.PixelFormat, fg o4e.Color, cover byte) {
	srcA := color.RGBA8Multiply(fg.A, cover)
	inv := 255 - srcA

	switch format {
	case o4e.PixelGrayA8:
		srcGray := grayFromColor(fg)
		dst[0] = color.RGBA8Multiply(srcGray, srcA) + color.RGBA8Multiply(dst[0], inv)
		dst[1] = srcA + color.RGBA8Multiply(dst[1], inv)
	default:
		dst[0] = color.RGBA8Multiply(fg.R, srcA) + color.RGBA8Multiply(dst[0], inv)
		dst[1] = color.RGBA8Multiply(fg.G, srcA) + color.RGBA8Multiply(dst[1], inv)
		dst[2] = color.RGBA8Multiply(fg.B, srcA) + color.RGBA8Multiply(dst[2], inv)
		dst[3] = srcA + color.RGBA8Multiply(dst[3], inv)
	}
}

// Package o4e is a cross-platform text rendering engine. It segments text
// into script/direction-coherent runs, resolves fonts per run (including
// fallback), shapes runs into positioned glyphs, and rasterizes the result
// to a bitmap or emits an SVG path representation.
package o4e

import "github.com/fontlaborg/o4e/internal/o4eerr"

// Style is the slant style of a Font.
type Style int

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

// FontSource tags which variant of font identity a Font carries. Exactly
// one of Family, Path, or Bytes is meaningful for a given Source value.
type FontSource int

const (
	SourceSystemFamily FontSource = iota
	SourceFilesystemPath
	SourceRawBytes
)

// Font is a specification, not a resource: constructing one never touches
// disk. Two Font values with identical fields are indistinguishable, which
// is what makes Font usable directly as (part of) a cache key.
type Font struct {
	Source FontSource
	Family string // meaningful when Source == SourceSystemFamily
	Path   string // meaningful when Source == SourceFilesystemPath
	Bytes  []byte // meaningful when Source == SourceRawBytes

	SizePx  float64 // positive, finite
	Weight  int     // 1-1000, default 400
	Style   Style
	Axes     map[string]float64 // 4-char tag -> value, variable font axes
	Features map[string]bool    // 4-char tag -> on/off, OpenType features
}

// NewFont returns a Font with the defaults spec.md documents (weight 400,
// normal style) for the given size. Source is left at its zero value,
// SourceSystemFamily, with no Family set.
func NewFont(sizePx float64) Font {
	return Font{SizePx: sizePx, Weight: 400, Style: StyleNormal}
}

// Validate checks the invariants Font promises callers: positive finite
// size, weight in [1, 1000].
func (f Font) Validate() error {
	if f.SizePx <= 0 {
		return o4eerr.New(o4eerr.InvalidOption, "font size must be positive")
	}
	if f.Weight < 1 || f.Weight > 1000 {
		return o4eerr.New(o4eerr.InvalidOption, "font weight must be in [1, 1000]")
	}
	return nil
}

// Direction is the resolved paragraph direction of a TextRun.
type Direction int

const (
	DirLTR Direction = iota
	DirRTL
)

// TextRun is a contiguous substring of the original text produced by
// segmentation. Bounds are byte offsets into the original string. Font is
// the nil-able bound face; a zero-value (unbound) Font means the backend
// must resolve one from the fallback chain before shaping.
type TextRun struct {
	Start, End int // byte offsets [Start, End) into the original text
	Script     string // ISO 15924 four-letter code
	Direction  Direction
	Language   string // BCP-47 tag, optional
	BidiLevel  int
	HardBreak  bool // run ends at a forced newline
	Font       *Font
}

// Slice returns the run's substring of text.
func (r TextRun) Slice(text string) string {
	return text[r.Start:r.End]
}

// Bound reports whether a Font has been resolved for this run.
func (r TextRun) Bound() bool { return r.Font != nil }

// Glyph is one shaped unit: a glyph id positioned relative to the pen, with
// a cluster tying it back to the source text.
type Glyph struct {
	GlyphID uint32
	Cluster int // byte offset into the original string
	AdvanceX, AdvanceY float64
	OffsetX, OffsetY   float64
	HasExtents         bool
	ExtentsMinX, ExtentsMinY float64
	ExtentsMaxX, ExtentsMaxY float64
}

// ShapingResult is the output of shaping one TextRun.
type ShapingResult struct {
	Glyphs   []Glyph
	Text     string // the run's source slice
	Font     Font
	Direction Direction
	Script    string
	Language  string

	Ascent, Descent, Width float64
}

// PixelFormat names the pixel layout of a Bitmap.
type PixelFormat int

const (
	PixelRGBA8 PixelFormat = iota
	PixelGrayA8
)

func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelGrayA8:
		return 2
	default:
		return 4
	}
}

// Bitmap is a raster RenderOutput variant.
type Bitmap struct {
	Width, Height int
	Format        PixelFormat
	RowBytes      int
	Pixels        []byte
	Premultiplied bool
}

// Validate enforces the pixel buffer invariants spec.md §3 requires:
// row_bytes >= width*bpp, and premultiplied channels bounded by alpha. The
// channel bound is checked for PixelRGBA8 only; PixelGrayA8 pixels are not
// inspected.
func (b Bitmap) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return o4eerr.New(o4eerr.InvalidDimensions, "bitmap dimensions must be positive")
	}
	if b.RowBytes < b.Width*b.Format.BytesPerPixel() {
		return o4eerr.New(o4eerr.Internal, "row_bytes smaller than width*bytes_per_pixel")
	}
	if b.Premultiplied && b.Format == PixelRGBA8 {
		for y := 0; y < b.Height; y++ {
			row := b.Pixels[y*b.RowBytes : y*b.RowBytes+b.Width*4]
			for x := 0; x < b.Width; x++ {
				r, g, bch, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
				if r > a || g > a || bch > a {
					return o4eerr.New(o4eerr.Internal, "premultiplied channel exceeds alpha")
				}
			}
		}
	}
	return nil
}

// outputKind is the closed RenderOutput tag. RenderOutput is implemented as
// a struct with an unexported kind rather than an interface so the zero
// value is meaningless and callers must go through the constructors.
type outputKind int

const (
	outputBitmap outputKind = iota
	outputPNG
	outputSVG
)

// RenderOutput is the terminal artifact of a render: exactly one of
// Bitmap, PNG bytes, or SVG text, selected by the accessor that returns ok.
type RenderOutput struct {
	kind   outputKind
	bitmap Bitmap
	png    []byte
	svg    string
}

func NewBitmapOutput(b Bitmap) RenderOutput { return RenderOutput{kind: outputBitmap, bitmap: b} }
func NewPNGOutput(data []byte) RenderOutput { return RenderOutput{kind: outputPNG, png: data} }
func NewSVGOutput(svg string) RenderOutput  { return RenderOutput{kind: outputSVG, svg: svg} }

func (o RenderOutput) AsBitmap() (Bitmap, bool) { return o.bitmap, o.kind == outputBitmap }
func (o RenderOutput) AsPNG() ([]byte, bool)    { return o.png, o.kind == outputPNG }
func (o RenderOutput) AsSVG() (string, bool)    { return o.svg, o.kind == outputSVG }

// AAMode selects the antialiasing strategy used by the rasterizer.
type AAMode int

const (
	AANone AAMode = iota
	AAGrayscale
	AASubpixel
)

// HintMode selects hinting strength; the portable backend does not grid-fit
// and treats every mode identically except for documentation purposes.
type HintMode int

const (
	HintNone HintMode = iota
	HintSlight
	HintFull
)

// Color is sRGB8 plus alpha.
type Color struct {
	R, G, B, A uint8
}

// RenderOptions controls rasterization of a ShapingResult onto a canvas.
type RenderOptions struct {
	Width, Height int
	BaselineRatio float64 // fraction of Height from the top; 0 means default (0.75)
	Foreground    Color
	Background    Color
	Transparent   bool // when true, Background is ignored
	AA            AAMode
	Hint          HintMode
	Format        PixelFormat
}

// DefaultBaselineRatio is the documented choice for Open Question 1: the
// baseline sits 75% of the canvas height from the top.
const DefaultBaselineRatio = 0.75

func (o RenderOptions) baselineRatio() float64 {
	if o.BaselineRatio > 0 {
		return o.BaselineRatio
	}
	return DefaultBaselineRatio
}

func (o RenderOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return o4eerr.New(o4eerr.InvalidDimensions, "canvas dimensions must be positive")
	}
	return nil
}

// SvgOptions controls SVG emission.
type SvgOptions struct {
	Precision       int // coordinate decimal precision, 0-6
	SimplifyTol     float64 // path simplification tolerance, >= 0
	EmbedColorLayers bool
}

func (o SvgOptions) Validate() error {
	if o.Precision < 0 || o.Precision > 6 {
		return o4eerr.New(o4eerr.InvalidOption, "svg precision must be in [0, 6]")
	}
	if o.SimplifyTol < 0 {
		return o4eerr.New(o4eerr.InvalidOption, "svg simplification tolerance must be >= 0")
	}
	return nil
}

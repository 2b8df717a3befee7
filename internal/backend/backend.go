// Package backend wires font resolution, caching, segmentation, shaping,
// rasterization, and SVG emission behind a single Backend interface,
// grounded on gioui's shaperImpl (which wraps a FontMap and a
// HarfbuzzShaper behind one facade type) and on gogpu-gg's GoTextShaper
// (the font.Font/font.Face caching split: a thread-safe *font.Font is
// cached per resource, and a fresh, non-concurrent-safe font.Face is built
// from it for every call that touches shaping or outlines).
package backend

import (
	"bytes"
	"log/slog"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/fontcache"
	"github.com/fontlaborg/o4e/internal/fontdb"
	"github.com/fontlaborg/o4e/internal/o4eerr"
	"github.com/fontlaborg/o4e/internal/raster"
	"github.com/fontlaborg/o4e/internal/segment"
	"github.com/fontlaborg/o4e/internal/shape"
	"github.com/fontlaborg/o4e/internal/svgemit"
)

// Backend is the engine's full text pipeline. Portable, built in this
// file, is the only pure-Go implementation; platform-native backends are
// declared in native_*.go build-tagged stubs that currently all report
// BackendUnavailable.
type Backend interface {
	Name() string
	Segment(text string, opts SegmentOptions) ([]o4e.TextRun, error)
	Shape(run o4e.TextRun, text string) (*o4e.ShapingResult, error)
	// Render and EmitSVG both implement spec.md §4.8's single
	// render(shaping_result, options) -> RenderOutput contract, split into
	// two concretely-typed methods (RenderOptions vs SvgOptions carry
	// different fields) that converge on the same RenderOutput sum type.
	Render(result *o4e.ShapingResult, opts o4e.RenderOptions) (o4e.RenderOutput, error)
	EmitSVG(result *o4e.ShapingResult, opts o4e.SvgOptions) (o4e.RenderOutput, error)
	ClearCache()
	CacheStats() fontcache.Stats
}

// SegmentOptions mirrors segment.Options at the public boundary without
// exposing that package's CoverageChecker type.
type SegmentOptions struct {
	DefaultDirection o4e.Direction
	// Font drives fallback-chain resolution for runs segmentation leaves
	// unbound: its Weight, Style, and (if set) Family seed the search. The
	// zero value resolves generic system fallback per script.
	Font o4e.Font
}

// Portable is the pure-Go Backend: go-text/typesetting for font discovery
// and shaping, the AGG-derived scanline rasterizer for bitmaps, and the
// hand-written SVG path emitter, all behind fontcache's three-layer cache.
type Portable struct {
	db     *fontdb.DB
	cache  *fontcache.Cache
	shaper *shape.Shaper
}

// NewPortable returns a ready-to-use Portable backend. A nil logger
// defaults to slog.Default(); zero-value cacheOpts fall back to
// fontcache's documented defaults.
func NewPortable(logger *slog.Logger, cacheOpts fontcache.Options) *Portable {
	return &Portable{
		db:     fontdb.New(logger),
		cache:  fontcache.New(cacheOpts),
		shaper: shape.New(),
	}
}

func (p *Portable) Name() string { return "portable" }

// Segment implements spec.md §4.3's full contract including step 6 (font
// resolution and fallback splitting): every run segment.Segment returns is
// already bound to a Font, or carries none only when no candidate in the
// fallback chain covers it.
func (p *Portable) Segment(text string, opts SegmentOptions) ([]o4e.TextRun, error) {
	resolver := &coverageAdapter{p: p, base: opts.Font}
	return segment.Segment(text, segment.Options{
		DefaultDirection: opts.DefaultDirection,
		Resolver:         resolver,
	}), nil
}

// Shape implements spec.md §4.4: shape(run, text) -> ShapingResult, keyed
// and cached by C3's shape layer. Runs without a bound Font fall back to
// NewFont(16) (spec.md §5's documented default size).
func (p *Portable) Shape(run o4e.TextRun, text string) (*o4e.ShapingResult, error) {
	fnt := o4e.NewFont(16)
	if run.Font != nil {
		fnt = *run.Font
	}
	if err := fnt.Validate(); err != nil {
		return nil, err
	}

	key := o4e.NewShapeKey(run.Slice(text), fnt, run.Direction, run.Script, run.Language)
	return p.cache.GetOrShape(key, func() (*o4e.ShapingResult, error) {
		face, err := p.resolveFace(fnt)
		if err != nil {
			return nil, err
		}
		return p.shaper.Shape(run, text, face, fnt)
	})
}

// Render implements spec.md §4.6 (rasterize) as half of §4.8's unified
// render(shaping_result, options) -> RenderOutput contract.
func (p *Portable) Render(result *o4e.ShapingResult, opts o4e.RenderOptions) (o4e.RenderOutput, error) {
	face, err := p.boundFace(result.Font)
	if err != nil {
		return o4e.RenderOutput{}, err
	}
	bmp, err := raster.Render(result, face, opts, p.cache)
	if err != nil {
		return o4e.RenderOutput{}, err
	}
	return o4e.NewBitmapOutput(bmp), nil
}

// EmitSVG implements spec.md §4.7 (emit) as the other half of §4.8's
// unified render(shaping_result, options) -> RenderOutput contract.
func (p *Portable) EmitSVG(result *o4e.ShapingResult, opts o4e.SvgOptions) (o4e.RenderOutput, error) {
	face, err := p.boundFace(result.Font)
	if err != nil {
		return o4e.RenderOutput{}, err
	}
	svg, err := svgemit.Emit(result, face, opts)
	if err != nil {
		return o4e.RenderOutput{}, err
	}
	return o4e.NewSVGOutput(svg), nil
}

func (p *Portable) ClearCache() { p.cache.Clear() }

func (p *Portable) CacheStats() fontcache.Stats { return p.cache.Stats() }

// resolveFace returns a fresh font.Face for fnt, reading the thread-safe
// *font.Font from the cache (parsing it at most once per FaceKey across
// any number of concurrent callers) and building a new Face from it on
// every call, since font.Face carries mutable glyph-cache state and is
// not itself safe for concurrent use.
func (p *Portable) resolveFace(fnt o4e.Font) (gotextfont.Face, error) {
	key := o4e.NewFaceKey(fnt)
	cached, err := p.cache.GetFace(key, func() (*fontcache.Face, error) {
		src, err := p.db.Resolve(fnt)
		if err != nil {
			return nil, err
		}
		data := src.Bytes
		var unmap func() error
		if data == nil {
			b, unmapFn, readErr := fontcache.MmapFile(src.Path)
			if readErr != nil {
				return nil, o4eerr.Wrap(o4eerr.ResourceExhausted, "reading font file "+src.Path, readErr)
			}
			data, unmap = b, unmapFn
		}
		parsed, err := gotextfont.ParseTTF(bytes.NewReader(data))
		if err != nil {
			if unmap != nil {
				_ = unmap()
			}
			return nil, o4eerr.Wrap(o4eerr.CorruptFont, "parsing font data", err)
		}
		return &fontcache.Face{Key: key, Data: parsed.Font, Bytes: data, Unmap: unmap}, nil
	})
	if err != nil {
		return gotextfont.Face{}, err
	}
	parsedFont, ok := cached.Data.(*gotextfont.Font)
	if !ok || parsedFont == nil {
		return gotextfont.Face{}, o4eerr.New(o4eerr.Internal, "cached face entry missing a parsed font")
	}
	return gotextfont.NewFace(parsedFont), nil
}

// boundFace resolves fnt into the pointer sentinel C7/C8 expect: nil when
// fnt carries no resolvable resource (an unbound run reached Render/EmitSVG
// without ever being shaped), a valid *font.Face otherwise.
func (p *Portable) boundFace(fnt o4e.Font) (*gotextfont.Face, error) {
	if fnt.SizePx <= 0 {
		return nil, nil
	}
	face, err := p.resolveFace(fnt)
	if err != nil {
		return nil, err
	}
	return &face, nil
}

// coverageAdapter bridges fontdb's script fallback chain and go-text's
// per-face rune coverage to segment.CoverageChecker, so the segmenter can
// split a run at the first code point no candidate font covers.
type coverageAdapter struct {
	p    *Portable
	base o4e.Font
}

// FallbackFonts returns base itself (if it names a concrete resource),
// followed by fontdb's script-ordered system fallback chain at base's
// weight and style.
func (c *coverageAdapter) FallbackFonts(script string) []o4e.Font {
	var out []o4e.Font
	if c.base.Family != "" || c.base.Path != "" || len(c.base.Bytes) > 0 {
		out = append(out, c.base)
	}

	weight := c.base.Weight
	if weight == 0 {
		weight = 400
	}
	families, err := c.p.db.FallbackChain(language.NewScript(script), weight, c.base.Style == o4e.StyleItalic)
	if err != nil {
		return out
	}
	for _, family := range families {
		f := c.base
		f.Source, f.Family, f.Path, f.Bytes = o4e.SourceSystemFamily, family, "", nil
		f.Weight = weight
		out = append(out, f)
	}
	return out
}

// Covers reports whether font has a glyph for r, resolving and reusing
// font's cached face exactly as Shape and Render do.
func (c *coverageAdapter) Covers(font o4e.Font, r rune) bool {
	face, err := c.p.resolveFace(font)
	if err != nil {
		return false
	}
	_, ok := face.NominalGlyph(r)
	return ok
}

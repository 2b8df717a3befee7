// Package shape converts a TextRun plus a parsed font.Face into a
// ShapingResult, grounded directly on gogpu-gg's GoTextShaper (a
// HarfbuzzShaper pooled via sync.Pool, since shaping.HarfbuzzShaper carries
// mutable buffer state and is not itself safe for concurrent use).
package shape

import (
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/opentype/loader"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/o4eerr"
)

// Shaper shapes runs with a pooled HarfbuzzShaper. The zero value is ready
// to use.
type Shaper struct {
	pool sync.Pool
}

func New() *Shaper {
	return &Shaper{
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
	}
}

// Shape implements spec.md §4.4's contract: shape(run, face) ->
// ShapingResult. face is a fresh font.Face built from the cached *font.Font
// by C3; Shape never touches disk or the font cache itself. font.Face is
// not safe for concurrent use, so callers must not share one across goroutines.
func (s *Shaper) Shape(run o4e.TextRun, text string, face font.Face, fnt o4e.Font) (*o4e.ShapingResult, error) {
	runeText := []rune(run.Slice(text))
	if len(runeText) == 0 {
		return &o4e.ShapingResult{
			Text: "", Font: fnt, Direction: run.Direction, Script: run.Script, Language: run.Language,
		}, nil
	}

	input := shaping.Input{
		Text:         runeText,
		RunStart:     0,
		RunEnd:       len(runeText),
		Direction:    mapDirection(run.Direction),
		Face:         face,
		FontFeatures: mapFeatures(fnt.Features),
		Size:         floatToFixed(fnt.SizePx),
		Script:       mapScript(run.Script),
		Language:     language.NewLanguage(run.Language),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	if len(output.Glyphs) == 0 {
		return nil, o4eerr.New(o4eerr.ShapingFailed, "shaper produced no glyphs for non-empty run")
	}

	glyphs := convertGlyphs(output.Glyphs, input.Direction, run.Start, runeByteOffsets(runeText))
	width := sumAdvance(glyphs, input.Direction)

	upem := float64(face.Upem())
	scale := fnt.SizePx / upem
	metrics := face.LineMetrics()

	return &o4e.ShapingResult{
		Glyphs:    glyphs,
		Text:      string(runeText),
		Font:      fnt,
		Direction: run.Direction,
		Script:    run.Script,
		Language:  run.Language,
		Ascent:    metrics.Ascent * scale,
		Descent:   metrics.Descent * scale,
		Width:     width,
	}, nil
}

func mapDirection(d o4e.Direction) di.Direction {
	if d == o4e.DirRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func mapScript(iso15924 string) language.Script {
	if iso15924 == "" {
		return language.Latin
	}
	return language.NewScript(iso15924)
}

func mapFeatures(features map[string]bool) []shaping.FontFeature {
	if len(features) == 0 {
		return nil
	}
	out := make([]shaping.FontFeature, 0, len(features))
	for tag, on := range features {
		var v uint32
		if on {
			v = 1
		}
		out = append(out, shaping.FontFeature{Tag: loader.MustNewTag(tag), Value: v})
	}
	return out
}

func floatToFixed(size float64) fixed.Int26_6 { return fixed.Int26_6(size * 64) }
func fixedToFloat(v fixed.Int26_6) float64    { return float64(v) / 64.0 }

// runeByteOffsets returns, for each rune index in runeText (plus one
// trailing entry for the end of the slice), that rune's byte offset within
// runeText's own UTF-8 encoding. shaping.Glyph.TextIndex() reports a rune
// index relative to the run, not a byte offset, so this table is what lets
// convertGlyphs recover model.go's documented "Cluster is a byte offset"
// contract for any run containing non-ASCII text.
func runeByteOffsets(runeText []rune) []int {
	offsets := make([]int, len(runeText)+1)
	var b int
	for i, r := range runeText {
		offsets[i] = b
		b += utf8.RuneLen(r)
	}
	offsets[len(runeText)] = b
	return offsets
}

// convertGlyphs maps go-text/typesetting output glyphs to this module's
// Glyph, translating cluster indices (rune offsets relative to the run,
// via byteOffsets) back into byte offsets relative to the original text
// via runStartByte.
func convertGlyphs(glyphs []shaping.Glyph, dir di.Direction, runStartByte int, byteOffsets []int) []o4e.Glyph {
	result := make([]o4e.Glyph, len(glyphs))
	for i, g := range glyphs {
		xOff := fixedToFloat(g.XOffset)
		yOff := fixedToFloat(g.YOffset)

		result[i] = o4e.Glyph{
			GlyphID:  uint32(g.GlyphID),
			Cluster:  runStartByte + byteOffsets[g.TextIndex()],
			OffsetX:  xOff,
			OffsetY:  yOff,
		}
		adv := fixedToFloat(g.Advance)
		if dir.IsVertical() {
			result[i].AdvanceY = adv
		} else {
			result[i].AdvanceX = adv
		}
	}
	return result
}

func sumAdvance(glyphs []o4e.Glyph, dir di.Direction) float64 {
	var sum float64
	for _, g := range glyphs {
		if dir.IsVertical() {
			sum += g.AdvanceY
		} else {
			sum += g.AdvanceX
		}
	}
	return sum
}

package o4e

// FaceKey identifies one parsed Face in the font cache. It is the subset of
// Font that determines byte-identity of the resource: two Fonts that differ
// only in size map to the same Face.
type FaceKey struct {
	Source FontSource
	Family string
	Path   string
	// BytesHash is a content hash of Bytes when Source == SourceRawBytes, so
	// FaceKey stays comparable (usable as a map key) without retaining the
	// raw bytes twice.
	BytesHash uint64
	Weight    int
	Style     Style
	axesKey   string // canonicalized Axes, built by NewFaceKey
}

// NewFaceKey derives the cache key for a Font's underlying resource.
func NewFaceKey(f Font) FaceKey {
	return FaceKey{
		Source:    f.Source,
		Family:    f.Family,
		Path:      f.Path,
		BytesHash: hashBytes(f.Bytes),
		Weight:    f.Weight,
		Style:     f.Style,
		axesKey:   canonicalizeAxes(f.Axes),
	}
}

// ShapeKey identifies one cached ShapingResult.
type ShapeKey struct {
	Text      string
	Face      FaceKey
	Direction Direction
	Script    string
	Language  string
	featuresKey string
}

// NewShapeKey derives the cache key for shaping a run's text against font.
func NewShapeKey(text string, font Font, dir Direction, script, language string) ShapeKey {
	return ShapeKey{
		Text:        text,
		Face:        NewFaceKey(font),
		Direction:   dir,
		Script:      script,
		Language:    language,
		featuresKey: canonicalizeFeatures(font.Features),
	}
}

// GlyphMaskKey identifies one cached rasterized glyph coverage mask.
// SizeQuantum64 is the pixel size quantized to the nearest 1/64 px, which
// collapses near-duplicate sizes into the same cache entry.
type GlyphMaskKey struct {
	Face          FaceKey
	GlyphID       uint32
	SizeQuantum64 int64
	AA            AAMode
}

// QuantizeSize64 rounds a pixel size to the nearest 1/64 px, matching the
// fixed.Int26_6 fractional precision the shaper and outline extractor use.
func QuantizeSize64(sizePx float64) int64 {
	return int64(sizePx*64 + 0.5)
}

func canonicalizeAxes(axes map[string]float64) string {
	if len(axes) == 0 {
		return ""
	}
	return canonicalMap(axes, func(v float64) string { return formatFloat(v) })
}

func canonicalizeFeatures(features map[string]bool) string {
	if len(features) == 0 {
		return ""
	}
	return canonicalMap(features, func(v bool) string {
		if v {
			return "1"
		}
		return "0"
	})
}

// Package fontcache owns the three cache layers spec.md §4.2 (C3)
// describes: parsed faces, shaped runs, and rasterized glyph masks. Each
// layer is an independent bounded LRU guarded by a singleflight.Group so
// concurrent callers requesting the same key compute it at most once,
// generalizing the teacher's two-level glyph cache (internal/font's
// cache_manager.go, since removed in favor of this design — see DESIGN.md)
// to bounded eviction instead of arena-only growth.
package fontcache

import (
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/o4eerr"
)

// wrapIfUnkinded wraps err in a fallback Kind only when err doesn't already
// carry one of its own: compute closures (e.g. backend.resolveFace) already
// construct the correct Kind (FontNotFound, CorruptFont, ...), and this must
// not overwrite that with a generic layer-wide fallback.
func wrapIfUnkinded(err error, fallback o4eerr.Kind, msg string) error {
	var kinded *o4eerr.Error
	if errors.As(err, &kinded) {
		return err
	}
	return o4eerr.Wrap(fallback, msg, err)
}

// DefaultFaceCapacity is spec.md §5's documented default face layer size.
const DefaultFaceCapacity = 512

// DefaultShapeCapacity and DefaultGlyphMaskCapacity are implementation-
// defined bounds for the shape and glyph-mask layers (spec.md §4.2 leaves
// these to the implementer, "tuned independently").
const (
	DefaultShapeCapacity     = 4096
	DefaultGlyphMaskCapacity = 8192
)

// Face is the cached, parsed font resource. It is intentionally an opaque
// payload from fontcache's point of view: fontcache only manages its
// lifetime, while internal/shape and internal/outline interpret Data.
type Face struct {
	Key  o4e.FaceKey
	Data any // *font.Font from go-text/typesetting, boxed to avoid an import
	// Bytes is retained so the Face can be closed/unmapped on eviction.
	Bytes []byte
	Unmap func() error
}

// MmapFile memory-maps the font file at path for a Face's Bytes/Unmap
// pair, falling back to a plain read on platforms or failures where a
// real mapping isn't available. Exported so internal/backend can build a
// Face without reimplementing the platform-specific mapping logic.
func MmapFile(path string) ([]byte, func() error, error) {
	return mmapFile(path)
}

// GlyphMask is the cached rasterized coverage mask for one glyph at one
// quantized size and AA mode.
type GlyphMask struct {
	Key           o4e.GlyphMaskKey
	Width, Height int
	OffsetX, OffsetY int
	Coverage      []byte // one byte of coverage per pixel, row-major
}

// Cache is the concurrent-safe, three-layer font cache described by
// spec.md's C3. The zero value is not usable; construct with New.
type Cache struct {
	faceMu  sync.Mutex
	faces   *lru[o4e.FaceKey, *Face]
	faceSF  singleflight.Group

	shapeMu sync.Mutex
	shapes  *lru[o4e.ShapeKey, *o4e.ShapingResult]
	shapeSF singleflight.Group

	maskMu sync.Mutex
	masks  *lru[o4e.GlyphMaskKey, *GlyphMask]
	maskSF singleflight.Group
}

// Options configures per-layer capacities; zero values fall back to the
// package defaults.
type Options struct {
	FaceCapacity      int
	ShapeCapacity     int
	GlyphMaskCapacity int
}

func New(opts Options) *Cache {
	if opts.FaceCapacity <= 0 {
		opts.FaceCapacity = DefaultFaceCapacity
	}
	if opts.ShapeCapacity <= 0 {
		opts.ShapeCapacity = DefaultShapeCapacity
	}
	if opts.GlyphMaskCapacity <= 0 {
		opts.GlyphMaskCapacity = DefaultGlyphMaskCapacity
	}
	return &Cache{
		faces:  newLRU[o4e.FaceKey, *Face](opts.FaceCapacity),
		shapes: newLRU[o4e.ShapeKey, *o4e.ShapingResult](opts.ShapeCapacity),
		masks:  newLRU[o4e.GlyphMaskKey, *GlyphMask](opts.GlyphMaskCapacity),
	}
}

// GetFace returns the shared Face for key, opening and parsing it via
// compute exactly once across any number of concurrent callers racing on
// the same key.
func (c *Cache) GetFace(key o4e.FaceKey, compute func() (*Face, error)) (*Face, error) {
	c.faceMu.Lock()
	if f, ok := c.faces.get(key); ok {
		c.faceMu.Unlock()
		return f, nil
	}
	c.faceMu.Unlock()

	v, err, _ := c.faceSF.Do(faceSFKey(key), func() (interface{}, error) {
		// Re-check after acquiring the singleflight slot: another caller
		// may have populated the entry while we queued for compute.
		c.faceMu.Lock()
		if f, ok := c.faces.get(key); ok {
			c.faceMu.Unlock()
			return f, nil
		}
		c.faceMu.Unlock()

		f, err := compute()
		if err != nil {
			return nil, err
		}
		c.faceMu.Lock()
		c.faces.put(key, f, func(_ o4e.FaceKey, evicted *Face) {
			if evicted.Unmap != nil {
				_ = evicted.Unmap()
			}
		})
		c.faceMu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, wrapIfUnkinded(err, o4eerr.ResourceExhausted, "loading face")
	}
	return v.(*Face), nil
}

// GetOrShape returns the cached ShapingResult for key, invoking compute at
// most once per key under contention.
func (c *Cache) GetOrShape(key o4e.ShapeKey, compute func() (*o4e.ShapingResult, error)) (*o4e.ShapingResult, error) {
	c.shapeMu.Lock()
	if r, ok := c.shapes.get(key); ok {
		c.shapeMu.Unlock()
		return r, nil
	}
	c.shapeMu.Unlock()

	v, err, _ := c.shapeSF.Do(shapeSFKey(key), func() (interface{}, error) {
		c.shapeMu.Lock()
		if r, ok := c.shapes.get(key); ok {
			c.shapeMu.Unlock()
			return r, nil
		}
		c.shapeMu.Unlock()

		r, err := compute()
		if err != nil {
			return nil, err
		}
		c.shapeMu.Lock()
		c.shapes.put(key, r, nil)
		c.shapeMu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, wrapIfUnkinded(err, o4eerr.ShapingFailed, "shaping run")
	}
	return v.(*o4e.ShapingResult), nil
}

// GetOrRaster returns the cached GlyphMask for key, invoking compute at
// most once per key under contention.
func (c *Cache) GetOrRaster(key o4e.GlyphMaskKey, compute func() (*GlyphMask, error)) (*GlyphMask, error) {
	c.maskMu.Lock()
	if m, ok := c.masks.get(key); ok {
		c.maskMu.Unlock()
		return m, nil
	}
	c.maskMu.Unlock()

	v, err, _ := c.maskSF.Do(maskSFKey(key), func() (interface{}, error) {
		c.maskMu.Lock()
		if m, ok := c.masks.get(key); ok {
			c.maskMu.Unlock()
			return m, nil
		}
		c.maskMu.Unlock()

		m, err := compute()
		if err != nil {
			return nil, err
		}
		c.maskMu.Lock()
		c.masks.put(key, m, nil)
		c.maskMu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*GlyphMask), nil
}

// Clear empties every layer.
func (c *Cache) Clear() {
	c.faceMu.Lock()
	c.faces.clear()
	c.faceMu.Unlock()

	c.shapeMu.Lock()
	c.shapes.clear()
	c.shapeMu.Unlock()

	c.maskMu.Lock()
	c.masks.clear()
	c.maskMu.Unlock()
}

// IsEmpty reports whether every layer is drained.
func (c *Cache) IsEmpty() bool {
	c.faceMu.Lock()
	faceLen := c.faces.len()
	c.faceMu.Unlock()

	c.shapeMu.Lock()
	shapeLen := c.shapes.len()
	c.shapeMu.Unlock()

	c.maskMu.Lock()
	maskLen := c.masks.len()
	c.maskMu.Unlock()

	return faceLen == 0 && shapeLen == 0 && maskLen == 0
}

// Stats reports current occupancy of each layer, backing the public
// cache_stats() contract (spec.md §6).
type Stats struct {
	Faces, Shapes, GlyphMasks int
}

func (c *Cache) Stats() Stats {
	c.faceMu.Lock()
	faceLen := c.faces.len()
	c.faceMu.Unlock()

	c.shapeMu.Lock()
	shapeLen := c.shapes.len()
	c.shapeMu.Unlock()

	c.maskMu.Lock()
	maskLen := c.masks.len()
	c.maskMu.Unlock()

	return Stats{Faces: faceLen, Shapes: shapeLen, GlyphMasks: maskLen}
}

// Package raster turns a glyph outline into an anti-aliased coverage mask
// and composites that mask onto an output Bitmap, grounded on the
// RasterizerScanlineAA cell rasterizer and ScanlineU8 span accumulator kept
// from the teacher's internal geometry packages.
package raster

import (
	"github.com/fontlaborg/o4e/internal/scanline"
)

// scanlineU8Adapter bridges *scanline.ScanlineU8's uint-typed AddCell/AddSpan
// to rasterizer.ScanlineInterface, which declares them uint32-typed. The two
// packages were never meant to interoperate directly; this is the shim.
type scanlineU8Adapter struct {
	sl *scanline.ScanlineU8
}

func newScanlineU8Adapter(sl *scanline.ScanlineU8) *scanlineU8Adapter {
	return &scanlineU8Adapter{sl: sl}
}

func (a *scanlineU8Adapter) ResetSpans() { a.sl.ResetSpans() }

func (a *scanlineU8Adapter) AddCell(x int, cover uint32) {
	a.sl.AddCell(x, uint(cover))
}

func (a *scanlineU8Adapter) AddSpan(x, length int, cover uint32) {
	a.sl.AddSpan(x, length, uint(cover))
}

func (a *scanlineU8Adapter) Finalize(y int) { a.sl.Finalize(y) }

func (a *scanlineU8Adapter) NumSpans() int { return a.sl.NumSpans() }

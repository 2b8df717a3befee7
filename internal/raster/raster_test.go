package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/fontcache"
)

func TestRenderValidatesOptions(t *testing.T) {
	_, err := Render(&o4e.ShapingResult{}, nil, o4e.RenderOptions{}, nil)
	require.Error(t, err)
}

func TestRenderRequiresBoundFace(t *testing.T) {
	opts := o4e.RenderOptions{Width: 4, Height: 4, Format: o4e.PixelRGBA8}
	_, err := Render(&o4e.ShapingResult{}, nil, opts, nil)
	require.Error(t, err)
}

func TestFillBackgroundOpaqueFillsEveryPixel(t *testing.T) {
	opts := o4e.RenderOptions{
		Width: 2, Height: 2, Format: o4e.PixelRGBA8,
		Background: o4e.Color{R: 10, G: 20, B: 30, A: 255},
	}
	pixels := make([]byte, 2*2*4)
	fillBackground(pixels, opts)
	for i := 0; i < len(pixels); i += 4 {
		require.Equal(t, byte(10), pixels[i])
		require.Equal(t, byte(20), pixels[i+1])
		require.Equal(t, byte(30), pixels[i+2])
		require.Equal(t, byte(255), pixels[i+3])
	}
}

func TestBlendSourceOverOpaqueReplacesDestination(t *testing.T) {
	dst := []byte{1, 2, 3, 4}
	blendSourceOver(dst, o4e.PixelRGBA8, o4e.Color{R: 200, G: 100, B: 50, A: 255}, 255)
	require.Equal(t, []byte{200, 100, 50, 255}, dst)
}

func TestBlendSourceOverZeroCoverIsNoop(t *testing.T) {
	dst := []byte{1, 2, 3, 4}
	blendSourceOver(dst, o4e.PixelRGBA8, o4e.Color{R: 200, G: 100, B: 50, A: 255}, 0)
	require.Equal(t, []byte{1, 2, 3, 4}, dst)
}

func TestCompositeMaskClipsToCanvasBounds(t *testing.T) {
	opts := o4e.RenderOptions{Width: 2, Height: 2, Format: o4e.PixelRGBA8, Foreground: o4e.Color{A: 255}}
	pixels := make([]byte, 2*2*4)
	mask := &fontcache.GlyphMask{
		Width: 3, Height: 3,
		Coverage: []byte{255, 255, 255, 255, 255, 255, 255, 255, 255},
	}
	// originX/Y negative and overflowing: must not panic and must only
	// touch in-bounds pixels.
	require.NotPanics(t, func() {
		compositeMask(pixels, opts.Width*4, opts, mask, -1, -1)
	})
}

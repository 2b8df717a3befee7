package fontcache

import (
	"fmt"

	"github.com/fontlaborg/o4e"
)

// singleflight.Group keys on a string; cache keys are plain comparable
// structs of primitive fields, so a formatted dump is a cheap, collision-
// free-in-practice string form (no map/slice field ever reaches these
// structs — canonicalized via o4e.NewFaceKey/NewShapeKey before arriving
// here).
func faceSFKey(k o4e.FaceKey) string  { return fmt.Sprintf("%+v", k) }
func shapeSFKey(k o4e.ShapeKey) string { return fmt.Sprintf("%+v", k) }
func maskSFKey(k o4e.GlyphMaskKey) string { return fmt.Sprintf("%+v", k) }

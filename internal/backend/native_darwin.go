//go:build darwin

package backend

import (
	"log/slog"

	"github.com/fontlaborg/o4e/internal/o4eerr"
)

// NewNative would return a CoreText-backed Backend on Darwin. No Go-native
// CoreText binding appears anywhere in this module's dependency corpus (see
// DESIGN.md), so this stub always fails; callers fall back to Portable.
func NewNative(_ *slog.Logger) (Backend, error) {
	return nil, o4eerr.New(o4eerr.BackendUnavailable, "coretext backend not built into this binary")
}

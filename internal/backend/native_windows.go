//go:build windows

package backend

import (
	"log/slog"

	"github.com/fontlaborg/o4e/internal/o4eerr"
)

// NewNative would return a DirectWrite-backed Backend on Windows. No
// Go-native DirectWrite binding appears anywhere in this module's
// dependency corpus (see DESIGN.md), so this stub always fails; callers
// fall back to Portable.
func NewNative(_ *slog.Logger) (Backend, error) {
	return nil, o4eerr.New(o4eerr.BackendUnavailable, "directwrite backend not built into this binary")
}

//go:build !darwin && !windows

package backend

import (
	"log/slog"

	"github.com/fontlaborg/o4e/internal/o4eerr"
)

// NewNative has no platform-native implementation on this OS; Portable is
// the only backend.
func NewNative(_ *slog.Logger) (Backend, error) {
	return nil, o4eerr.New(o4eerr.BackendUnavailable, "no native backend for this host OS")
}

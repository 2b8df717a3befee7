// Package fontdb resolves Font specifications to font bytes and provides
// script-ordered fallback chains, wrapping go-text/typesetting's fontscan
// system font index.
package fontdb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/language"
	meta "github.com/go-text/typesetting/opentype/api/metadata"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/config"
	"github.com/fontlaborg/o4e/internal/o4eerr"
)

// FaceSource is the resolved byte source for a Font: either a path to mmap,
// or bytes already in memory.
type FaceSource struct {
	Path  string
	Bytes []byte
}

// Script is the ISO 15924 representation fontscan and the segmenter share.
type Script = language.Script

// DB resolves Font values to FaceSources and script fallback chains. One DB
// is shared by a backend instance; it owns the process-wide fontscan
// FontMap. fontscan.FontMap is not safe for concurrent queries, so DB
// serializes access with a mutex, matching spec.md §5's "shared read-mostly"
// characterization of the font database.
type DB struct {
	logger *slog.Logger

	mu      sync.Mutex
	scanMap *fontscan.FontMap
	built   bool
}

// New returns a DB using logger for non-fatal discovery warnings. A nil
// logger defaults to slog.Default().
func New(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{logger: logger}
}

// logAdapter bridges slog to fontscan's Printf-style Logger interface.
type logAdapter struct{ l *slog.Logger }

func (a logAdapter) Printf(format string, args ...interface{}) {
	a.l.Warn("fontdb: " + fmt.Sprintf(format, args...))
}

// ensureBuilt triggers (once, lazily) the system font scan, honoring
// O4E_FONT_DIRS in addition to the platform defaults fontscan already
// consults. Subsequent calls are no-ops, matching fontscan's own
// safe-for-repeated-calls contract.
func (d *DB) ensureBuilt() (*fontscan.FontMap, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.built {
		return d.scanMap, nil
	}
	d.scanMap = fontscan.NewFontMap(logAdapter{d.logger})
	if err := d.scanMap.UseSystemFonts(systemCacheDir()); err != nil {
		return nil, o4eerr.Wrap(o4eerr.ResourceExhausted, "scanning system fonts", err)
	}
	for _, dir := range config.FontDirsFromEnv() {
		addFontsFromDir(d.scanMap, dir, d.logger)
	}
	d.built = true
	return d.scanMap, nil
}

// Resolve maps a Font's source to raw bytes: mmap-backed path reads go
// through the caller's cache layer (C3 owns the actual mmap), system family
// names are resolved to a file path via fontscan, and raw bytes pass
// through unchanged.
func (d *DB) Resolve(font o4e.Font) (FaceSource, error) {
	switch font.Source {
	case o4e.SourceRawBytes:
		if len(font.Bytes) == 0 {
			return FaceSource{}, o4eerr.New(o4eerr.FontNotFound, "empty raw font bytes")
		}
		return FaceSource{Bytes: font.Bytes}, nil
	case o4e.SourceFilesystemPath:
		p := config.ExpandPath(font.Path)
		if _, err := os.Stat(p); err != nil {
			return FaceSource{}, o4eerr.Wrap(o4eerr.FontNotFound, "font path not found: "+p, err)
		}
		return FaceSource{Path: p}, nil
	default: // SourceSystemFamily
		fm, err := d.ensureBuilt()
		if err != nil {
			return FaceSource{}, err
		}
		d.mu.Lock()
		defer d.mu.Unlock()
		fm.SetQuery(fontscan.Query{Families: []string{font.Family}})
		loc, ok := fm.FindSystemFont(font.Family)
		if !ok {
			return FaceSource{}, o4eerr.New(o4eerr.FontNotFound, "no system font for family "+font.Family)
		}
		return FaceSource{Path: loc.File}, nil
	}
}

// FallbackChain returns the preferred system family for a script: it asks
// fontscan to resolve a representative rune of the script (fontscan's own
// substitution tables rank Noto families ahead of platform defaults for
// most scripts) and returns the resolved face's family as a one-element
// slice. The other families fontscan considered are not reported.
func (d *DB) FallbackChain(script Script, weight int, italic bool) ([]string, error) {
	fm, err := d.ensureBuilt()
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	aspect := meta.Aspect{Weight: meta.Weight(weight)}
	if italic {
		aspect.Style = meta.StyleItalic
	}
	fm.SetQuery(fontscan.Query{Families: []string{""}, Aspect: aspect})
	fm.SetScript(script)

	r := representativeRune(script)
	face := fm.ResolveFace(r)
	if face.Font == nil {
		return nil, o4eerr.New(o4eerr.FontNotFound, "no fallback face for script")
	}
	family, _ := fm.FontMetadata(face.Font)
	return []string{family}, nil
}

// Coverage reports whether face contains a glyph for r. Callers pass
// face.NominalGlyph bound via closure; kept generic here (a plain func)
// to avoid fontdb depending on the shaping package's concrete face type.
func Coverage(hasGlyph func(rune) bool, r rune) bool {
	if hasGlyph == nil {
		return false
	}
	return hasGlyph(r)
}

func representativeRune(s Script) rune {
	// A handful of well-known scripts map to an unambiguous representative
	// code point; anything else falls back to Latin 'A' so resolution never
	// panics on an unrecognized script tag.
	switch s {
	case language.Arabic:
		return 0x0627
	case language.Devanagari:
		return 0x0905
	case language.Han:
		return 0x4e00
	case language.Hebrew:
		return 0x05d0
	case language.Cyrillic:
		return 0x0410
	default:
		return 'A'
	}
}

func addFontsFromDir(fm *fontscan.FontMap, dir string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("fontdb: reading extra font dir", "dir", dir, "err", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		full := filepath.Join(dir, e.Name())
		f, err := os.Open(full)
		if err != nil {
			logger.Warn("fontdb: opening extra font", "path", full, "err", err)
			continue
		}
		if err := fm.AddFont(f, full, ""); err != nil {
			logger.Warn("fontdb: indexing extra font", "path", full, "err", err)
		}
	}
}

func systemCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "o4e", "fontscan")
}

// Package config centralizes the engine's environment-driven settings, kept
// separate from internal/fontdb so the font database doesn't also own
// process-environment parsing. Mirrors the teacher's constructor-option
// idiom (plain option structs, e.g. internal/rasterizer's
// NewRasterizerScanlineAA) rather than a config-file framework: no example
// repo in the corpus reaches for one at library scope.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FontDirsEnv is the environment variable listing extra font directories to
// scan, in addition to each platform's system font locations.
const FontDirsEnv = "O4E_FONT_DIRS"

// FontDirsFromEnv parses FontDirsEnv, spec §6's path-separator-delimited
// list of additional directories, expanding "~" and $VARS in each entry.
func FontDirsFromEnv() []string {
	return splitPathList(os.Getenv(FontDirsEnv))
}

func splitPathList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, string(os.PathListSeparator))
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = ExpandPath(p); p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

// ExpandPath expands a leading "~" to the user's home directory and any
// $VAR / ${VAR} references, the same rules FontDirsFromEnv applies to each
// O4E_FONT_DIRS entry. Exported so callers resolving a single filesystem
// Font path (internal/fontdb) can apply the identical expansion.
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return os.ExpandEnv(p)
}

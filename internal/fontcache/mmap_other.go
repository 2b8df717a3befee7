//go:build !unix

package fontcache

import "os"

// mmapFile has no non-unix implementation: golang.org/x/sys carries no
// portable Windows mmap wrapper in this corpus, so Windows callers get a
// plain read into memory instead of a real mapping. The returned unmap is
// a no-op since there is nothing to release beyond normal GC.
func mmapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

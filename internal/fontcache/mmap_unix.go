//go:build unix

package fontcache

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile memory-maps path read-only, returning the mapped bytes and an
// unmap function the caller must invoke on eviction. Matches spec.md §4.2's
// "memory-mapped font bytes" requirement for the face layer.
func mmapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := fi.Size()
	if size == 0 {
		return nil, nil, os.ErrInvalid
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		// Mapping failed: fall back to a plain read into memory.
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return data, func() error { return nil }, nil
	}
	return data, func() error { return unix.Munmap(data) }, nil
}

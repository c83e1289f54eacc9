//go:build linux

package snapshot

import (
	"os"

	"golang.org/x/sys/unix"
)

// readWholeFile maps path into memory on Linux rather than copying it
// through a read buffer, since a snapshot can hold an entire index's leaf
// set. Ground truth: nothing in the retrieved pack mmaps a file directly,
// but golang.org/x/sys was pulled into the pack for exactly this, and
// flonle-diy-redis's own RDB loader reads its whole file up front anyway
// (rdbPreFlight slurps it in 4096-byte chunks) — mmap is the same idea
// without the copy.
func readWholeFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return nil, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	// Copy out of the mapping before returning: the caller holds onto this
	// slice well past the point we'd want the mapping unmapped, and
	// decode() mutates nothing so a copy is the only cost.
	out := make([]byte, len(data))
	copy(out, data)
	if err := unix.Munmap(data); err != nil {
		return nil, err
	}
	return out, nil
}

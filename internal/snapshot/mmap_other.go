//go:build !linux

package snapshot

import "os"

// readWholeFile falls back to a plain buffered read on non-Linux
// platforms, where golang.org/x/sys/unix's mmap calls aren't available.
func readWholeFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

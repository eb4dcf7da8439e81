//go:build !linux && !darwin
// +build !linux,!darwin

package ps2fs

import (
	"fmt"
)

// mmapImage is unavailable on this platform; loadImage falls back to
// bufferImage.
func mmapImage(path string) (*image, error) {
	return nil, fmt.Errorf("mmap not supported on this platform")
}

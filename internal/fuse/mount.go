//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
)

func Mount(mountpoint string, card *ps2fs.CardHandle) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stefanoscafiti/ps2mc/internal/fuse"
	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <card.ps2> <mountpoint>",
		Short: "Mount a memory card image read-only over FUSE (Linux only)",
		Long: `The 'mount' command FUSE-mounts a PS2 memory card image at the given
mountpoint: each game appears as a directory, each of its files as a
regular file, sized and content-identical to what 'ps2mc export' would
write to disk.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunMount,
	}
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	card, err := ps2fs.Open(args[0])
	if err != nil {
		return err
	}
	defer card.Close()

	mountpoint := args[1]
	return fuse.Mount(mountpoint, card)
}

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

	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
	"github.com/stefanoscafiti/ps2mc/pkg/pbar"
)

func DefineExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "export <card.ps2> <game> <dest-dir>",
		Short:        "Export a game's files to a directory on disk",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE:         RunExport,
	}
	return cmd
}

func RunExport(cmd *cobra.Command, args []string) error {
	card, err := ps2fs.Open(args[0])
	if err != nil {
		return err
	}
	defer card.Close()

	game, destDir := args[1], args[2]

	entry, err := card.Lookup(game)
	if err != nil {
		return err
	}

	total := exportedSize(card, game, entry)
	bar := pbar.NewProgressBarState(total)

	err = card.Export(game, destDir, func(name string, n int) {
		bar.ProcessedBytes += int64(n)
		bar.FilesFound++
		bar.Render(false)
	})
	bar.Render(true)
	bar.Finish()
	return err
}

// exportedSize returns the combined byte length of a file or directory
// tree, used to size the progress bar before copying starts. path is
// the full card path of e, since Entry.Name only holds the basename.
func exportedSize(card *ps2fs.CardHandle, path string, e *ps2fs.Entry) int64 {
	if !e.IsDir() {
		return int64(e.Length)
	}

	children, err := card.List(path)
	if err != nil {
		return 0
	}

	var total int64
	for _, child := range children {
		total += exportedSize(card, path+"/"+child.Name, child)
	}
	return total
}

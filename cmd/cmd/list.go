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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
)

func DefineListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list <card.ps2> [game]",
		Short:        "List the games on a card, or the files of one game",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         RunList,
	}
	return cmd
}

func RunList(cmd *cobra.Command, args []string) error {
	card, err := ps2fs.Open(args[0])
	if err != nil {
		return err
	}
	defer card.Close()

	if len(args) == 1 {
		entries, err := card.ListRoot()
		if err != nil {
			return err
		}
		printEntries(entries)
		return nil
	}

	entries, err := card.List(args[1])
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func printEntries(entries []*ps2fs.Entry) {
	for _, e := range entries {
		kind := "file"
		if e.IsDir() {
			kind = "dir"
		}
		fmt.Printf("%-4s %10d  %s\n", kind, e.Length, e.Name)
	}
}

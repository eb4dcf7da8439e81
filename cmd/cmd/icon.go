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
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
	"github.com/stefanoscafiti/ps2mc/internal/ps2icon"
)

func DefineIconCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "icon <card.ps2> <game> [--texture out.bmp]",
		Short:        "Parse icon.sys and a game's save icon, printing a summary",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunIcon,
	}
	cmd.Flags().String("texture", "", "write the decoded RGB888 texture as a 24-bit BMP to this path")
	return cmd
}

// namedIcon caches a single decoded icon file keyed by name, since
// icon.sys commonly reuses the same filename for the normal, copy,
// and delete variants and there is no reason to decode it three times.
type namedIcon struct {
	icon *ps2icon.Icon
	err  error
}

func decodeGameIcons(card *ps2fs.CardHandle, game string, sys *ps2icon.IconSys) map[string]*namedIcon {
	cache := make(map[string]*namedIcon)
	for _, name := range []string{sys.IconFileNormal, sys.IconFileCopy, sys.IconFileDelete} {
		if name == "" {
			continue
		}
		if _, ok := cache[name]; ok {
			continue
		}
		buf, err := card.ReadFile(game + "/" + name)
		if err != nil {
			cache[name] = &namedIcon{err: err}
			continue
		}
		icon, err := ps2icon.ParseIcon(buf)
		cache[name] = &namedIcon{icon: icon, err: err}
	}
	return cache
}

func normalErr(ni *namedIcon) error {
	if ni == nil {
		return fmt.Errorf("not found")
	}
	return ni.err
}

func RunIcon(cmd *cobra.Command, args []string) error {
	card, err := ps2fs.Open(args[0])
	if err != nil {
		return err
	}
	defer card.Close()

	game := args[1]
	textureOut, _ := cmd.Flags().GetString("texture")

	sysBuf, err := card.ReadFile(game + "/icon.sys")
	if err != nil {
		return err
	}
	sys, err := ps2icon.ParseIconSys(sysBuf)
	if err != nil {
		return err
	}

	fmt.Printf("Title:      %s %s\n", sys.SubtitleLine1, sys.SubtitleLine2)
	fmt.Printf("Normal:     %s\n", sys.IconFileNormal)
	fmt.Printf("Copy:       %s\n", sys.IconFileCopy)
	fmt.Printf("Delete:     %s\n", sys.IconFileDelete)

	icons := decodeGameIcons(card, game, sys)
	normal := icons[sys.IconFileNormal]
	if normal == nil || normal.err != nil {
		return fmt.Errorf("decoding %s: %w", sys.IconFileNormal, normalErr(normal))
	}

	fmt.Printf("Vertices:   %d\n", normal.icon.VertexCount)
	fmt.Printf("Shapes:     %d\n", normal.icon.AnimationShapes)
	fmt.Printf("Frames:     %d\n", normal.icon.FrameCount)
	for _, w := range normal.icon.Warnings {
		Log.Warnf("%s: %s", game, w)
	}

	for _, variant := range []struct{ label, name string }{
		{"copy", sys.IconFileCopy},
		{"delete", sys.IconFileDelete},
	} {
		if variant.name == "" || variant.name == sys.IconFileNormal {
			continue
		}
		if ni := icons[variant.name]; ni.err != nil {
			Log.Warnf("%s: %s icon %q: %s", game, variant.label, variant.name, ni.err)
		}
	}
	icon := normal.icon

	if textureOut == "" {
		return nil
	}
	if icon.Texture == nil {
		return fmt.Errorf("icon %q has no embedded texture", sys.IconFileNormal)
	}

	f, err := os.Create(textureOut)
	if err != nil {
		return err
	}
	defer f.Close()

	return ps2icon.WriteBMP(f, icon.Texture)
}

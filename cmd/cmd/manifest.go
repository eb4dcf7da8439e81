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
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanoscafiti/ps2mc/internal/buildinfo"
	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
	"github.com/stefanoscafiti/ps2mc/pkg/dfxml"
)

func DefineManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "manifest <card.ps2>",
		Short:        "Emit a DFXML inventory of every game and file on the card",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunManifest,
	}
	cmd.Flags().StringP("output", "o", "", "write the report to this path instead of stdout")
	return cmd
}

func RunManifest(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	card, err := ps2fs.Open(imagePath)
	if err != nil {
		return err
	}
	defer card.Close()

	outPath, _ := cmd.Flags().GetString("output")
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := dfxml.NewDFXMLWriter(out)

	hdr := dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              "ps2mc",
			Version:              buildinfo.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: imagePath,
		},
	}
	if err := w.WriteHeader(hdr); err != nil {
		return err
	}

	entries, err := card.ListAll()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		runs, err := card.FileByteRuns(e.Name)
		if err != nil {
			return err
		}

		obj := dfxml.FileObject{
			Filename: e.Name,
			FileSize: uint64(e.Length),
		}
		for _, r := range runs {
			obj.ByteRuns.Runs = append(obj.ByteRuns.Runs, dfxml.ByteRun{
				Offset:    r.Offset,
				ImgOffset: r.ImgOffset,
				Length:    r.Length,
			})
		}
		if err := w.WriteFileObject(obj); err != nil {
			return err
		}
	}

	return w.Close()
}

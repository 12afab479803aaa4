// Copyright 2026 wangyyyqw
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/markup"
)

func newAnnotateCommand() *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     "annotate files with phonetic readings",
		ArgsUsage: "[FILE]...",
		Description: strings.Join([]string{
			"Annotates each FILE and writes the result next to it, or to the",
			"output directory. HTML and XHTML files are annotated in their body",
			"text. Other files are annotated as plain text. With no FILE, standard",
			"input is annotated to standard output.",
		}, "\n"),
		Flags: append(dictFlags(),
			&cli.StringFlag{
				Name:  "no-repeat",
				Usage: "annotate each entry only once per `MODE` (none, book, page)",
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "write annotated files to `DIR`",
				Aliases: []string{"o"},
			},
			&cli.StringFlag{
				Name:  "suffix",
				Usage: "append `SUFFIX` to the names of annotated files",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "write a summary of the annotated entries to `FILE`",
			},
			&cli.BoolFlag{
				Name:               "table",
				Usage:              "print the annotated entries as a table",
				DisableDefaultText: true,
			},
		),
		OnUsageError: usageError,
		Action:       annotate,
	}
}

func annotate(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	idx, err := e.index()
	if err != nil {
		return err
	}

	s := phonetic.NewSession(e.cfg.Policy())
	a := &annotator{
		env:    e,
		conv:   phonetic.NewConverter(idx, s, nil),
		markup: markup.NewAnnotator(idx, s, markup.DefaultOptions),
		outDir: c.String("output-dir"),
	}

	tableWriter := c.App.Writer
	if c.NArg() == 0 {
		tableWriter = c.App.ErrWriter
		if err := a.stream(c.App.Writer, c.App.Reader); err != nil {
			return err
		}
	}

	var failed int
	for _, path := range c.Args().Slice() {
		if err := a.file(path); err != nil {
			e.log.Error("annotating file", "path", path, "error", err)
			failed++
		}
	}

	if path := c.String("report"); path != "" {
		if err := writeReport(path, s.Report()); err != nil {
			return err
		}
	}

	if c.Bool("table") {
		printReport(tableWriter, s.Report())
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files failed", ErrPhonetic, failed, c.NArg())
	}
	return nil
}

// annotator annotates the files of one run. Files share the session.
type annotator struct {
	*env
	conv   *phonetic.Converter
	markup *markup.Annotator
	outDir string
}

// transformer returns a plain text annotator. Text is NFC normalized so that
// it matches the folded dictionary keys.
func (a *annotator) transformer() transform.Transformer {
	return transform.Chain(norm.NFC, phonetic.NewTransformer(a.conv))
}

// stream annotates r as plain text to w.
func (a *annotator) stream(w io.Writer, r io.Reader) error {
	a.conv.Session().StartUnit()
	tr := transform.NewReader(r, a.transformer())
	if _, err := io.Copy(w, tr); err != nil {
		return fmt.Errorf("%w: annotating input: %w", ErrPhonetic, err)
	}
	return nil
}

// file annotates the file at path. If the file cannot be annotated it is
// copied unchanged to the output path and the error is logged.
func (a *annotator) file(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPhonetic, err)
	}

	out, err := outputPath(path, a.outDir, a.cfg.OutputSuffix)
	if err != nil {
		return err
	}

	dst, annErr := a.annotate(path, src)
	if annErr != nil {
		a.log.Warn("copying file unchanged", "path", path, "error", annErr)
		dst = src
	}

	if a.outDir != "" {
		if err := os.MkdirAll(a.outDir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrPhonetic, err)
		}
	}
	//nolint:gosec // output files are not sensitive.
	if err := os.WriteFile(out, dst, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPhonetic, err)
	}

	a.log.Info("annotated file", "path", path, "output", out, "bytes", len(dst))

	return annErr
}

func (a *annotator) annotate(path string, src []byte) ([]byte, error) {
	if isHTML(path) {
		return a.markup.Document(src)
	}

	a.conv.Session().StartUnit()
	dst, _, err := transform.Bytes(a.transformer(), src)
	if err != nil {
		return src, fmt.Errorf("%w: %w", ErrPhonetic, err)
	}
	return dst, nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	default:
		return false
	}
}

// outputPath returns the path of the annotated copy of path:
// <dir>/<name><suffix><ext>. dir defaults to the directory of path.
func outputPath(path, dir, suffix string) (string, error) {
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	out := filepath.Join(dir, strings.TrimSuffix(base, ext)+suffix+ext)

	if filepath.Clean(out) == filepath.Clean(path) {
		return "", fmt.Errorf("%w: output would overwrite %q", ErrUnsupported, path)
	}
	return out, nil
}

func writeReport(path string, r *phonetic.Report) error {
	var b bytes.Buffer
	if _, err := r.WriteTo(&b); err != nil {
		return fmt.Errorf("%w: writing report: %w", ErrPhonetic, err)
	}
	//nolint:gosec // reports are not sensitive.
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: writing report: %w", ErrPhonetic, err)
	}
	return nil
}

func printReport(w io.Writer, r *phonetic.Report) {
	tbl := table.New("Key", "Reading", "Polyphonic").WithWriter(w)
	for _, m := range r.Matches() {
		tbl.AddRow(m.Key, m.Reading.String(), m.Polyphonic())
	}
	tbl.Print()
}

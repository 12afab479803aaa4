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
	"fmt"
	"os"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/markup"
)

func newPreviewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "print a plain text rendering of an annotated file",
		ArgsUsage: "FILE",
		Flags: append(dictFlags(),
			&cli.StringFlag{
				Name:  "no-repeat",
				Usage: "annotate each entry only once per `MODE` (none, book, page)",
			},
		),
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected one file", ErrFlagParse)
			}
			path := c.Args().First()

			e, err := setup(c)
			if err != nil {
				return err
			}

			idx, err := e.index()
			if err != nil {
				return err
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrPhonetic, err)
			}

			text, err := preview(idx, phonetic.NewSession(e.cfg.Policy()), path, src)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.App.Writer, text)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrPhonetic, err)
			}
			return nil
		},
	}
}

// preview annotates src with parenthesized readings and renders it as plain
// text, e.g. "僻(pì)".
func preview(idx *phonetic.Index, s *phonetic.Session, path string, src []byte) (string, error) {
	a := markup.NewAnnotator(idx, s, &markup.Options{
		Formatter: phonetic.RubyFormatter{Parens: true},
	})

	var doc string
	if isHTML(path) {
		out, err := a.Document(src)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPhonetic, err)
		}
		doc = string(out)
	} else {
		out, err := a.Text(string(src))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPhonetic, err)
		}
		doc = out
	}

	return html2text.HTML2Text(doc), nil
}

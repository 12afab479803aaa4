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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/wangyyyqw/go-phonetic/internal/folding"
)

func newLookupCommand() *cli.Command {
	return &cli.Command{
		Name:         "lookup",
		Usage:        "look up strings in the dictionaries",
		ArgsUsage:    "QUERY...",
		Flags:        dictFlags(),
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: no query", ErrFlagParse)
			}

			e, err := setup(c)
			if err != nil {
				return err
			}

			idx, err := e.index()
			if err != nil {
				return err
			}

			tbl := table.New("Query", "Reading", "Original", "Terminal", "Children").WithWriter(c.App.Writer)
			for _, q := range c.Args().Slice() {
				key, err := folding.String(folding.Key(), q)
				if err != nil {
					return fmt.Errorf("%w: %q: %w", ErrPhonetic, q, err)
				}
				n := idx.Lookup(key)
				tbl.AddRow(q, n.Reading.String(), n.Original, n.Terminal, n.HasChildren)
			}
			tbl.Print()

			return nil
		},
	}
}

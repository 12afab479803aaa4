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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/dictionary"
	"github.com/wangyyyqw/go-phonetic/internal/config"
	"github.com/wangyyyqw/go-phonetic/internal/logging"
	"github.com/wangyyyqw/go-phonetic/stardict"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrPhonetic is a parent error for all command errors.
var ErrPhonetic = errors.New("phonetic")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrPhonetic)

// ErrUnsupported indicates a feature is unsupported.
var ErrUnsupported = fmt.Errorf("%w: unsupported", ErrPhonetic)

// ErrNoDictionary indicates that no dictionary entries could be loaded.
var ErrNoDictionary = fmt.Errorf("%w: no dictionary entries", ErrPhonetic)

var copyrightNames = []string{
	"2026 wangyyyqw",
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, info.GitVersion)
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrPhonetic, err)
	}
	return nil
}

// env holds the state shared by the commands of one run.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

// setup loads the configuration, applies command line overrides and builds
// the logger.
func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("dict") {
		cfg.Dictionaries = c.StringSlice("dict")
	}
	if c.IsSet("stardict") {
		cfg.Stardicts = c.StringSlice("stardict")
	}
	if c.IsSet("no-repeat") {
		cfg.NoRepeat = c.String("no-repeat")
	}
	if c.IsSet("no-phrases") {
		cfg.NoPhrases = c.Bool("no-phrases")
	}
	if c.IsSet("suffix") {
		cfg.OutputSuffix = c.String("suffix")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	return &env{
		cfg: cfg,
		log: logging.New(cfg.Log, c.App.ErrWriter),
	}, nil
}

// index loads the configured dictionaries. If none are configured the
// dictionaries found in the default locations are used. StarDict entries are
// overridden by entries of dictionary files.
func (e *env) index() (*phonetic.Index, error) {
	files, stardicts := e.cfg.Dictionaries, e.cfg.Stardicts
	if len(files) == 0 && len(stardicts) == 0 {
		files, stardicts = findDictionaries(dictLocations())
	}

	var dicts []phonetic.Dictionary
	for _, path := range stardicts {
		sds, errs := stardict.OpenAll(path, stardict.DefaultOptions)
		for _, err := range errs {
			e.log.Warn("opening stardict", "path", path, "error", err)
		}
		for _, sd := range sds {
			d, err := sd.Dictionary()
			if err != nil {
				e.log.Warn("reading stardict", "path", sd.Path(), "error", err)
			} else {
				e.log.Debug("loaded stardict", "path", sd.Path(), "bookname", sd.Bookname(), "entries", len(d))
				dicts = append(dicts, d)
			}
			if err := sd.Close(); err != nil {
				e.log.Warn("closing stardict", "path", sd.Path(), "error", err)
			}
		}
	}

	d, err := dictionary.Load(files, dictionary.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPhonetic, err)
	}
	dicts = append(dicts, d)

	merged := phonetic.Merge(dicts...)
	if e.cfg.NoPhrases {
		merged = merged.Chars()
	}
	if len(merged) == 0 {
		return nil, ErrNoDictionary
	}

	e.log.Debug("loaded dictionaries", "files", len(files), "stardicts", len(stardicts), "entries", len(merged))

	return phonetic.NewIndex(merged), nil
}

// findDictionaries returns the dictionary files and directories holding
// StarDict dictionaries in dirs. Missing directories are skipped.
func findDictionaries(dirs []string) ([]string, []string) {
	var files, stardicts []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		hasIfo := false
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.EqualFold(filepath.Ext(name), ".ifo") {
				hasIfo = true
				continue
			}
			if _, err := dictionary.FormatOf(name); err == nil {
				files = append(files, filepath.Join(dir, name))
			}
		}
		if hasIfo {
			stardicts = append(stardicts, dir)
		}
	}
	return files, stardicts
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "read configuration from YAML `FILE`",
			EnvVars: []string{config.EnvConfig},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log `LEVEL` (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log `FORMAT` (text, json)",
		},
	}
}

// dictFlags returns the flags of commands that load dictionaries, including
// the configuration flags.
func dictFlags() []cli.Flag {
	return append(configFlags(),
		&cli.StringSliceFlag{
			Name:    "dict",
			Usage:   "use the dictionary `FILE` (.json, .txt, .tsv, optionally .gz)",
			Aliases: []string{"d"},
		},
		&cli.StringSliceFlag{
			Name:  "stardict",
			Usage: "use the StarDict dictionaries in `PATH` (.ifo file or directory)",
		},
		&cli.BoolFlag{
			Name:               "no-phrases",
			Usage:              "annotate character by character, ignoring phrase entries",
			DisableDefaultText: true,
		},
	)
}

func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

func newPhoneticApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Annotate Chinese text with phonetic readings.",
		Description: strings.Join([]string{
			"Adds ruby annotations to rare characters and phrases using",
			"phonetic dictionaries.",
			"http://github.com/wangyyyqw/go-phonetic",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		Reader:          os.Stdin,
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		OnUsageError:    usageError,
		ExitErrHandler: func(_ *cli.Context, _ error) {
			// Errors are handled in main.
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newAnnotateCommand(),
			newLookupCommand(),
			newPreviewCommand(),
		},
	}
}

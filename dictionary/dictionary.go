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

// Package dictionary implements reading phonetic dictionaries from files.
//
// Two formats are supported. JSON dictionaries are a single object mapping
// keys to readings. A string value is a reading of the whole key. An array
// value holds the alternative readings of a single character key or one
// reading per character of a phrase:
//
//	{
//	  "僻": ["pì"],
//	  "行": ["xíng", "háng"],
//	  "银行": ["yín", "háng"],
//	  "一会儿": "yíhuìr"
//	}
//
// Text dictionaries hold one entry per line. The key and its comma separated
// readings are separated by a tab. Blank lines and lines starting with '#'
// are ignored:
//
//	# rare characters
//	僻	pì
//	行	xíng,háng
//
// Files ending in ".gz" are decompressed.
package dictionary

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/transform"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/internal/folding"
)

var (
	// ErrSyntax indicates that a dictionary could not be parsed.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupported indicates an unknown dictionary format.
	ErrUnsupported = errors.New("unsupported dictionary format")
)

// Format is a dictionary file format.
type Format int

const (
	// FormatJSON is a JSON object.
	FormatJSON Format = iota

	// FormatText is a tab separated text file.
	FormatText
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format of the dictionary file at path based on its
// extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".txt", ".tsv":
		return FormatText, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupported, path)
	}
}

// Options are options for reading dictionaries.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding on
	// keys. Keys that are empty after folding are skipped.
	Folder func() transform.Transformer

	// ReadingFolder returns a [transform.Transformer] that performs folding
	// on readings.
	ReadingFolder func() transform.Transformer
}

// DefaultOptions is the default options for reading dictionaries.
var DefaultOptions = &Options{
	Folder:        folding.Key,
	ReadingFolder: folding.Reading,
}

type reader struct {
	key     func() transform.Transformer
	reading func() transform.Transformer
}

func newReader(opts *Options) *reader {
	if opts == nil {
		opts = DefaultOptions
	}
	r := &reader{
		key:     DefaultOptions.Folder,
		reading: DefaultOptions.ReadingFolder,
	}
	if opts.Folder != nil {
		r.key = opts.Folder
	}
	if opts.ReadingFolder != nil {
		r.reading = opts.ReadingFolder
	}
	return r
}

// add folds an entry and adds it to d. Entries without a reading are
// skipped.
func (r *reader) add(d phonetic.Dictionary, key string, fields []string, build func(string, ...string) phonetic.Reading) error {
	folded, err := folding.String(r.key(), key)
	if err != nil {
		return fmt.Errorf("folding key %q: %w", key, err)
	}
	if folded == "" {
		return nil
	}

	readings := make([]string, len(fields))
	for i, f := range fields {
		readings[i], err = folding.String(r.reading(), f)
		if err != nil {
			return fmt.Errorf("folding reading of %q: %w", key, err)
		}
	}

	reading := build(folded, readings...)
	if reading.IsZero() {
		return nil
	}
	d[folded] = reading
	return nil
}

func whole(_ string, readings ...string) phonetic.Reading {
	return phonetic.Whole(readings[0])
}

func perChar(_ string, readings ...string) phonetic.Reading {
	return phonetic.PerChar(readings...)
}

// Open reads the dictionary file at path.
func Open(path string, opts *Options) (phonetic.Dictionary, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	}

	d, err := Read(r, format, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return d, nil
}

// Load reads and merges the dictionary files at paths. Entries of later
// files override entries of earlier ones.
func Load(paths []string, opts *Options) (phonetic.Dictionary, error) {
	dicts := make([]phonetic.Dictionary, 0, len(paths))
	for _, path := range paths {
		d, err := Open(path, opts)
		if err != nil {
			return nil, err
		}
		dicts = append(dicts, d)
	}
	return phonetic.Merge(dicts...), nil
}

// Read reads a dictionary in the given format from r.
func Read(r io.Reader, format Format, opts *Options) (phonetic.Dictionary, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r, opts)
	case FormatText:
		return ReadText(r, opts)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, format)
	}
}

// ReadJSON reads a JSON dictionary from r.
func ReadJSON(r io.Reader, opts *Options) (phonetic.Dictionary, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	dr := newReader(opts)
	d := make(phonetic.Dictionary, len(raw))
	for key, v := range raw {
		var text string
		if err := json.Unmarshal(v, &text); err == nil {
			if err := dr.add(d, key, []string{text}, whole); err != nil {
				return nil, err
			}
			continue
		}

		var fields []string
		if err := json.Unmarshal(v, &fields); err != nil {
			return nil, fmt.Errorf("%w: reading of %q is not a string or a list of strings", ErrSyntax, key)
		}
		if err := dr.add(d, key, fields, perChar); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// ReadText reads a text dictionary from r.
func ReadText(r io.Reader, opts *Options) (phonetic.Dictionary, error) {
	dr := newReader(opts)
	d := phonetic.Dictionary{}

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		key, value, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing tab separator", ErrSyntax, line)
		}
		if err := dr.add(d, key, strings.Split(value, ","), phonetic.NewReading); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading text dictionary: %w", err)
	}

	return d, nil
}

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

package stardict

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/transform"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/internal/folding"
)

// ErrInvalidVersion indicates an unsupported dictionary version.
var ErrInvalidVersion = errors.New("invalid version")

// Options are options for opening a dictionary.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding on
	// words before they are used as keys.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for opening a dictionary.
var DefaultOptions = &Options{
	Folder: folding.Key,
}

// Stardict is a StarDict dictionary.
type Stardict struct {
	ifoPath string
	folder  func() transform.Transformer

	version          string
	bookname         string
	wordcount        int64
	synwordcount     int64
	idxoffsetbits    int
	author           string
	email            string
	website          string
	description      string
	sametypesequence []DataType

	words    []*Word
	synonyms []*Synonym
	dict     *dictData
	closer   io.Closer
}

// OpenAll opens all dictionaries under a directory. It returns all the
// dictionaries that were opened successfully along with any errors.
func OpenAll(path string, opts *Options) ([]*Stardict, []error) {
	var dicts []*Stardict
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".ifo") {
			d, err := Open(path, opts)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, d)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
	}
	return dicts, errs
}

// Open opens the dictionary described by the .ifo file at path. The .idx,
// .dict and .syn files are found next to it.
func Open(path string, opts *Options) (*Stardict, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	s := &Stardict{
		ifoPath:       path,
		folder:        DefaultOptions.Folder,
		idxoffsetbits: 32,
	}
	if opts.Folder != nil {
		s.folder = opts.Folder
	}

	if !strings.EqualFold(filepath.Ext(path), ".ifo") {
		return nil, fmt.Errorf("bad extension: %q", path)
	}
	if err := s.readIfo(); err != nil {
		return nil, err
	}

	var err error
	s.words, err = readIndexFile(s.ifoPath, []string{".idx", ".idx.gz"}, func(r io.Reader) ([]*Word, error) {
		return ReadIdx(r, s.idxoffsetbits)
	})
	if err != nil {
		return nil, err
	}

	s.synonyms, err = readIndexFile(s.ifoPath, []string{".syn", ".syn.gz", ".syn.dz"}, ReadSyn)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := s.openDict(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Stardict) readIfo() error {
	f, err := os.Open(s.ifoPath)
	if err != nil {
		return fmt.Errorf("opening %q: %w", s.ifoPath, err)
	}
	defer f.Close()

	ifo, err := ReadIfo(f)
	if err != nil {
		return fmt.Errorf("reading %q: %w", s.ifoPath, err)
	}
	if ifo.Magic() != ifoMagic {
		return fmt.Errorf("%w: %q", ErrBadMagic, s.ifoPath)
	}

	s.version = ifo.Value("version")
	switch s.version {
	case "2.4.2", "3.0.0":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVersion, s.version)
	}

	s.bookname = ifo.Value("bookname")
	if s.bookname == "" {
		return fmt.Errorf("%w: missing bookname", ErrInvalidIfo)
	}

	s.wordcount, err = strconv.ParseInt(ifo.Value("wordcount"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad wordcount: %w", ErrInvalidIfo, err)
	}

	if v := ifo.Value("synwordcount"); v != "" {
		s.synwordcount, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: bad synwordcount: %w", ErrInvalidIfo, err)
		}
	}

	if v := ifo.Value("idxoffsetbits"); v != "" && s.version == "3.0.0" {
		s.idxoffsetbits, err = strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidIdxOffset, err)
		}
	}

	for _, r := range ifo.Value("sametypesequence") {
		s.sametypesequence = append(s.sametypesequence, DataType(r))
	}

	s.author = ifo.Value("author")
	s.email = ifo.Value("email")
	s.website = ifo.Value("website")
	s.description = ifo.Value("description")

	return nil
}

// variants returns the paths of the file with the given extension next to
// the .ifo file, in lower and upper case.
func variants(ifoPath string, exts []string) []string {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	var paths []string
	for _, ext := range exts {
		paths = append(paths, base+ext, base+strings.ToUpper(ext))
	}
	return paths
}

// openFirst opens the first existing file in paths.
func openFirst(paths []string) (*os.File, error) {
	for _, p := range paths {
		f, err := os.Open(p)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening %q: %w", p, err)
		}
	}
	return nil, fmt.Errorf("opening %q: %w", paths[0], os.ErrNotExist)
}

// readIndexFile reads the first existing index file with one of exts.
// Compressed files are decompressed with gzip.
func readIndexFile[T any](ifoPath string, exts []string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := openFirst(variants(ifoPath, exts))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".gz", ".dz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", f.Name(), err)
		}
		defer z.Close()
		r = z
	}

	items, err := read(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", f.Name(), err)
	}
	return items, nil
}

func (s *Stardict) openDict() error {
	f, err := openFirst(variants(s.ifoPath, []string{".dict", ".dict.dz"}))
	if err != nil {
		return err
	}

	var r io.ReaderAt = f
	if strings.EqualFold(filepath.Ext(f.Name()), ".dz") {
		z, err := dictzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("opening %q: %w", f.Name(), err)
		}
		r = z
	}

	s.dict, err = newDictData(r, s.sametypesequence)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("reading %q: %w", f.Name(), err)
	}
	s.closer = f
	return nil
}

// Close closes the dictionary data file.
func (s *Stardict) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", s.ifoPath, err)
	}
	return nil
}

// Path returns the path to the .ifo file.
func (s *Stardict) Path() string {
	return s.ifoPath
}

// Bookname returns the dictionary name.
func (s *Stardict) Bookname() string {
	return s.bookname
}

// Description returns the dictionary description.
func (s *Stardict) Description() string {
	return s.description
}

// Author returns the dictionary author.
func (s *Stardict) Author() string {
	return s.author
}

// Email returns the dictionary contact email.
func (s *Stardict) Email() string {
	return s.email
}

// Website returns the dictionary website url.
func (s *Stardict) Website() string {
	return s.website
}

// WordCount returns the dictionary word count.
func (s *Stardict) WordCount() int64 {
	return s.wordcount
}

// SynWordCount returns the dictionary synonym count.
func (s *Stardict) SynWordCount() int64 {
	return s.synwordcount
}

// Version returns the dictionary format version.
func (s *Stardict) Version() string {
	return s.version
}

// Words returns the words in the index.
func (s *Stardict) Words() []*Word {
	return s.words
}

// Synonyms returns the synonyms in the synonym index.
func (s *Stardict) Synonyms() []*Synonym {
	return s.synonyms
}

// Data returns the data items of w.
func (s *Stardict) Data(w *Word) ([]*Data, error) {
	return s.dict.word(w)
}

// Dictionary converts the dictionary to a phonetic dictionary. Words with
// no phonetic data are skipped. When a word appears more than once in the
// index the first entry is used. Synonyms take the reading of their original
// word.
func (s *Stardict) Dictionary() (phonetic.Dictionary, error) {
	d := phonetic.Dictionary{}
	texts := make([]string, len(s.words))

	add := func(word, text string) error {
		key, err := folding.String(s.folder(), word)
		if err != nil {
			return fmt.Errorf("folding %q: %w", word, err)
		}
		if key == "" {
			return nil
		}
		if _, ok := d[key]; ok {
			return nil
		}
		if r := split(key, text); !r.IsZero() {
			d[key] = r
		}
		return nil
	}

	for i, w := range s.words {
		data, err := s.Data(w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.bookname, err)
		}
		texts[i] = phoneticText(data)
		if err := add(w.Word, texts[i]); err != nil {
			return nil, err
		}
	}

	for _, syn := range s.synonyms {
		if int(syn.OriginalWordIndex) >= len(texts) {
			continue
		}
		if err := add(syn.Word, texts[syn.OriginalWordIndex]); err != nil {
			return nil, err
		}
	}

	return d, nil
}

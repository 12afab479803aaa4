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

// Package testutil builds StarDict dictionary files for tests.
package testutil

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/wangyyyqw/go-phonetic/stardict"
)

// Entry is a dictionary word and its data.
type Entry struct {
	Word     string
	Data     []*stardict.Data
	Synonyms []string
}

// Options are options for MakeStardict.
type Options struct {
	// Bookname is the dictionary name. Defaults to "test".
	Bookname string

	// Version is the dictionary version. Defaults to "3.0.0".
	Version string

	// OffsetBits is the idxoffsetbits option. Defaults to 32.
	OffsetBits int

	// SameTypeSequence is the sametypesequence option.
	SameTypeSequence []stardict.DataType

	// DictZip compresses the .dict file with dictzip.
	DictZip bool

	// GzipIdx compresses the .idx file with gzip.
	GzipIdx bool
}

func (o *Options) bookname() string {
	if o.Bookname != "" {
		return o.Bookname
	}
	return "test"
}

func (o *Options) version() string {
	if o.Version != "" {
		return o.Version
	}
	return "3.0.0"
}

func (o *Options) offsetBits() int {
	if o.OffsetBits != 0 {
		return o.OffsetBits
	}
	return 32
}

// MakeStardict writes a dictionary named name to dir and returns the path to
// its .ifo file.
func MakeStardict(t *testing.T, dir, name string, entries []*Entry, opts *Options) string {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}

	var words []*stardict.Word
	var syns []*stardict.Synonym
	var dict []byte
	for i, e := range entries {
		b := MakeWordData(t, e.Data, opts.SameTypeSequence)
		if len(b) > math.MaxUint32 {
			t.Fatalf("word data too long: %d", len(b))
		}
		words = append(words, &stardict.Word{
			Word:   e.Word,
			Offset: uint64(len(dict)),
			Size:   uint32(len(b)),
		})
		dict = append(dict, b...)
		for _, s := range e.Synonyms {
			syns = append(syns, &stardict.Synonym{
				Word:              s,
				OriginalWordIndex: uint32(i),
			})
		}
	}

	idx := MakeIdx(t, words, opts.offsetBits())

	base := filepath.Join(dir, name)
	ifo := []string{
		"StarDict's dict ifo file",
		"version=" + opts.version(),
		"bookname=" + opts.bookname(),
		fmt.Sprintf("wordcount=%d", len(words)),
		fmt.Sprintf("idxfilesize=%d", len(idx)),
		fmt.Sprintf("idxoffsetbits=%d", opts.offsetBits()),
	}
	if len(syns) > 0 {
		ifo = append(ifo, fmt.Sprintf("synwordcount=%d", len(syns)))
	}
	if len(opts.SameTypeSequence) > 0 {
		var sts strings.Builder
		for _, dt := range opts.SameTypeSequence {
			sts.WriteByte(byte(dt))
		}
		ifo = append(ifo, "sametypesequence="+sts.String())
	}
	writeFile(t, base+".ifo", []byte(strings.Join(ifo, "\n")+"\n"))

	if opts.GzipIdx {
		writeFile(t, base+".idx.gz", gzipData(t, idx))
	} else {
		writeFile(t, base+".idx", idx)
	}

	if len(syns) > 0 {
		writeFile(t, base+".syn", MakeSyn(syns))
	}

	if opts.DictZip {
		f, err := os.Create(base + ".dict.dz")
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(dict); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	} else {
		writeFile(t, base+".dict", dict)
	}

	return base + ".ifo"
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func gzipData(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// MakeIdx makes .idx data for words.
func MakeIdx(t *testing.T, words []*stardict.Word, offsetBits int) []byte {
	t.Helper()

	var b []byte
	for _, w := range words {
		b = append(b, w.Word...)
		b = append(b, 0)
		switch offsetBits {
		case 32:
			if w.Offset > math.MaxUint32 {
				t.Fatalf("word offset too large: %d", w.Offset)
			}
			//nolint:gosec // bounds checked above.
			b = binary.BigEndian.AppendUint32(b, uint32(w.Offset))
		case 64:
			b = binary.BigEndian.AppendUint64(b, w.Offset)
		default:
			t.Fatalf("unsupported offset bits: %d", offsetBits)
		}
		b = binary.BigEndian.AppendUint32(b, w.Size)
	}
	return b
}

// MakeSyn makes .syn data for synonyms.
func MakeSyn(syns []*stardict.Synonym) []byte {
	var b []byte
	for _, s := range syns {
		b = append(b, s.Word...)
		b = append(b, 0)
		b = binary.BigEndian.AppendUint32(b, s.OriginalWordIndex)
	}
	return b
}

// MakeWordData makes the .dict data of one word. With a sametypesequence the
// types are omitted and the last item has no terminator or size.
func MakeWordData(t *testing.T, data []*stardict.Data, sameTypeSequence []stardict.DataType) []byte {
	t.Helper()

	var b []byte
	for i, d := range data {
		last := i == len(data)-1
		if len(sameTypeSequence) == 0 {
			b = append(b, byte(d.Type))
		} else if last {
			b = append(b, d.Data...)
			break
		}

		if 'a' <= d.Type && d.Type <= 'z' {
			b = append(b, d.Data...)
			b = append(b, 0)
			continue
		}
		if len(d.Data) > math.MaxUint32 {
			t.Fatalf("word data too long: %d", len(d.Data))
		}
		//nolint:gosec // bounds checked above.
		b = binary.BigEndian.AppendUint32(b, uint32(len(d.Data)))
		b = append(b, d.Data...)
	}
	return b
}

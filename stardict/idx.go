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
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidIdxOffset indicates that idxoffsetbits is an invalid value.
	ErrInvalidIdxOffset = errors.New("invalid idxoffsetbits")

	// ErrTruncated indicates that an index file ends in the middle of an
	// entry.
	ErrTruncated = errors.New("truncated entry")
)

// Word is a .idx file entry.
type Word struct {
	// Word is the headword.
	Word string

	// Offset is the offset of the word data in the .dict file.
	Offset uint64

	// Size is the size of the word data in the .dict file.
	Size uint32
}

// Synonym is a .syn file entry.
type Synonym struct {
	// Word is the synonym.
	Word string

	// OriginalWordIndex is the index of the original word in the .idx file.
	OriginalWordIndex uint32
}

// entrySplitter returns a [bufio.SplitFunc] for entries made of a null
// terminated string followed by size bytes.
func entrySplitter(size int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, 0); i >= 0 {
			n := i + 1 + size
			if len(data) >= n {
				return n, data[:n], nil
			}
		}
		if atEOF {
			return 0, nil, fmt.Errorf("%w: %q", ErrTruncated, data)
		}
		// Request more data.
		return 0, nil, nil
	}
}

// ReadIdx reads the .idx data from r. offsetBits is the size of the offset
// field and must be either 32 or 64.
func ReadIdx(r io.Reader, offsetBits int) ([]*Word, error) {
	if offsetBits != 32 && offsetBits != 64 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdxOffset, offsetBits)
	}

	offsetSize := offsetBits / 8
	s := bufio.NewScanner(bufio.NewReader(r))
	s.Split(entrySplitter(offsetSize + 4))

	var words []*Word
	for s.Scan() {
		b := s.Bytes()
		i := bytes.IndexByte(b, 0)
		w := &Word{
			Word: string(b[:i]),
		}
		if offsetBits == 64 {
			w.Offset = binary.BigEndian.Uint64(b[i+1:])
		} else {
			w.Offset = uint64(binary.BigEndian.Uint32(b[i+1:]))
		}
		w.Size = binary.BigEndian.Uint32(b[i+1+offsetSize:])
		words = append(words, w)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading .idx: %w", err)
	}

	return words, nil
}

// ReadSyn reads the .syn data from r.
func ReadSyn(r io.Reader) ([]*Synonym, error) {
	s := bufio.NewScanner(bufio.NewReader(r))
	s.Split(entrySplitter(4))

	var syns []*Synonym
	for s.Scan() {
		b := s.Bytes()
		i := bytes.IndexByte(b, 0)
		syns = append(syns, &Synonym{
			Word:              string(b[:i]),
			OriginalWordIndex: binary.BigEndian.Uint32(b[i+1:]),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading .syn: %w", err)
	}

	return syns, nil
}

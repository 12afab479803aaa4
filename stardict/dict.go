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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	errInvalidType        = errors.New("invalid type")
	errWordOffsetTooLarge = errors.New("word offset too large")
	errInvalidData        = errors.New("invalid word data")
)

// DataType is the type of a word data item. Lower case types are strings
// terminated by a null byte. Upper case types are file-like data that start
// with a 32-bit size.
type DataType byte

const (
	// UTFTextType is utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in the Pango text format.
	PangoTextType = DataType('g')

	// PhoneticType is a utf-8 phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is utf-8 encoded xml in XDXF format.
	XDXFType = DataType('x')

	// YinBiaoOrKataType is a utf-8 Yin Biao or Kana phonetic string.
	YinBiaoOrKataType = DataType('y')

	// PowerWordType is utf-8 encoded KingSoft PowerWord XML.
	PowerWordType = DataType('p')

	// MediaWikiType is utf-8 encoded text in MediaWiki format.
	MediaWikiType = DataType('w')

	// HTMLType is utf-8 encoded HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of files in resource storage.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound file data.
	WavType = DataType('W')

	// PictureType is image file data.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

func (t DataType) valid() bool {
	switch t {
	case UTFTextType,
		LocaleTextType,
		PangoTextType,
		PhoneticType,
		XDXFType,
		YinBiaoOrKataType,
		PowerWordType,
		MediaWikiType,
		HTMLType,
		WordNetType,
		ResourceFileListType,
		WavType,
		PictureType,
		ExperimentalType:
		return true
	default:
		return false
	}
}

func (t DataType) isString() bool {
	return 'a' <= t && t <= 'z'
}

// Data is a data item of a word.
type Data struct {
	Type DataType
	Data []byte
}

// String returns the data as a string.
func (d *Data) String() string {
	return string(d.Data)
}

// dictData reads word data from a .dict file.
type dictData struct {
	r                io.ReaderAt
	sametypesequence []DataType
}

func newDictData(r io.ReaderAt, sametypesequence []DataType) (*dictData, error) {
	for _, t := range sametypesequence {
		if !t.valid() {
			return nil, fmt.Errorf("%w: %q", errInvalidType, t)
		}
	}
	return &dictData{
		r:                r,
		sametypesequence: sametypesequence,
	}, nil
}

// word reads the data items of w.
func (d *dictData) word(w *Word) ([]*Data, error) {
	if w.Offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", errWordOffsetTooLarge, w.Offset)
	}
	b := make([]byte, w.Size)
	//nolint:gosec // offset size is bounds checked above.
	if _, err := d.r.ReadAt(b, int64(w.Offset)); err != nil {
		return nil, fmt.Errorf("reading word %q: %w", w.Word, err)
	}

	var items []*Data
	if len(d.sametypesequence) > 0 {
		for i, t := range d.sametypesequence {
			var data []byte
			var err error
			last := i == len(d.sametypesequence)-1
			data, b, err = next(t, b, last)
			if err != nil {
				return nil, fmt.Errorf("word %q: %w", w.Word, err)
			}
			items = append(items, &Data{Type: t, Data: data})
		}
		return items, nil
	}

	for len(b) > 0 {
		t := DataType(b[0])
		var data []byte
		var err error
		data, b, err = next(t, b[1:], false)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", w.Word, err)
		}
		items = append(items, &Data{Type: t, Data: data})
	}
	return items, nil
}

// next splits the next data item of type t from b. The last item of a word
// using sametypesequence omits the null terminator or the size.
func next(t DataType, b []byte, last bool) ([]byte, []byte, error) {
	if t.isString() {
		i := bytes.IndexByte(b, 0)
		switch {
		case i >= 0:
			return b[:i], b[i+1:], nil
		case last:
			return b, nil, nil
		default:
			return nil, nil, fmt.Errorf("%w: unterminated %q data", errInvalidData, t)
		}
	}

	if last {
		return b, nil, nil
	}
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("%w: short %q data", errInvalidData, t)
	}
	size := binary.BigEndian.Uint32(b)
	b = b[4:]
	if uint64(size) > uint64(len(b)) {
		return nil, nil, fmt.Errorf("%w: short %q data", errInvalidData, t)
	}
	return b[:size], b[size:], nil
}

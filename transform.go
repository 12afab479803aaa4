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

package phonetic

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Transformer adapts a Converter to the [transform.Transformer] interface so
// that text can be annotated while it is streamed. Bytes that are not valid
// UTF-8 are copied unchanged. Input is not normalized. Chain it after
// norm.NFC to match keys folded by the dictionary package.
type Transformer struct {
	c *Converter

	// pending is converted output that did not fit in dst.
	pending []byte
	ended   bool
}

// NewTransformer returns a Transformer that annotates text with c.
func NewTransformer(c *Converter) *Transformer {
	t := &Transformer{c: c}
	t.Reset()
	return t
}

// Reset implements [transform.Transformer.Reset].
func (t *Transformer) Reset() {
	t.c.Start()
	t.pending = t.pending[:0]
	t.ended = false
}

// Transform implements [transform.Transformer.Transform].
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	nDst, nSrc := 0, 0

	nDst += t.drain(dst)
	if len(t.pending) > 0 {
		return nDst, nSrc, transform.ErrShortDst
	}

	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			// Invalid bytes end the segment and are copied as is.
			if _, err := t.c.End(); err != nil {
				return nDst, nSrc, err
			}
			t.pending = append(t.pending, t.c.take()...)
			t.pending = append(t.pending, src[nSrc])
			nSrc++
			nDst += t.drain(dst[nDst:])
			if len(t.pending) > 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
			continue
		}
		if _, err := t.c.Feed(r); err != nil {
			return nDst, nSrc, err
		}
		nSrc += size

		t.pending = append(t.pending, t.c.take()...)
		nDst += t.drain(dst[nDst:])
		if len(t.pending) > 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
	}

	if atEOF && !t.ended {
		if _, err := t.c.End(); err != nil {
			return nDst, nSrc, err
		}
		t.ended = true
		t.pending = append(t.pending, t.c.take()...)
		nDst += t.drain(dst[nDst:])
		if len(t.pending) > 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
	}

	return nDst, nSrc, nil
}

// drain copies as much pending output as fits into dst.
func (t *Transformer) drain(dst []byte) int {
	n := copy(dst, t.pending)
	t.pending = t.pending[:copy(t.pending, t.pending[n:])]
	return n
}

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

// Package folding implements the text folding applied to dictionary keys and
// readings before they are used.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key returns the transformer used to fold dictionary keys. Keys are NFC
// normalized and all whitespace is removed.
func Key() transform.Transformer {
	return transform.Chain(norm.NFC, &Whitespace{Remove: true})
}

// Reading returns the transformer used to fold readings. Readings are NFC
// normalized, trimmed and internal whitespace spans become a single space.
func Reading() transform.Transformer {
	return transform.Chain(norm.NFC, &Whitespace{})
}

// String applies t to s. A nil t returns s unchanged.
func String(t transform.Transformer, s string) (string, error) {
	if t == nil {
		return s, nil
	}
	t.Reset()
	out, _, err := transform.String(t, s)
	//nolint:wrapcheck // transform errors are returned as is.
	return out, err
}

// Whitespace folds whitespace. Leading and trailing whitespace is dropped.
// Internal whitespace spans are dropped when Remove is true and replaced with
// a single ASCII space otherwise.
type Whitespace struct {
	// Remove drops internal whitespace.
	Remove bool

	// started is true after the first non-whitespace rune.
	started bool

	// inSpan is true while inside an internal whitespace span.
	inSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (w *Whitespace) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			nSrc += size
			if w.started {
				w.inSpan = true
			}
			continue
		}

		if w.inSpan && !w.Remove {
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
		}
		w.inSpan = false

		// c may be utf8.RuneError, which encodes to more than size bytes.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
		nSrc += size
		w.started = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *Whitespace) Reset() {
	w.started = false
	w.inSpan = false
}

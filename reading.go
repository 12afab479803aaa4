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
	"slices"
	"strings"
	"unicode/utf8"
)

// Reading is the phonetic reading of a dictionary key. A Reading either
// applies to the key as a whole (Text) or holds one reading per character of
// the key (Chars). For single character keys Chars holds the alternative
// readings of the character and the first one is used for annotation.
type Reading struct {
	// Text is a reading for the whole key.
	Text string

	// Chars are per-character readings. An empty string means that the
	// character at that position is not annotated.
	Chars []string
}

// Whole returns a Reading that annotates the whole key with text.
func Whole(text string) Reading {
	return Reading{Text: text}
}

// PerChar returns a Reading with one reading per character.
func PerChar(readings ...string) Reading {
	return Reading{Chars: readings}
}

// NewReading returns the Reading of key given its reading fields. The fields
// of a single character key are alternative readings. A multi-character key
// with a single field is read as a whole. Otherwise there is one field per
// character.
func NewReading(key string, fields ...string) Reading {
	if len(fields) == 1 && utf8.RuneCountInString(key) > 1 {
		return Whole(fields[0])
	}
	return PerChar(fields...)
}

// IsZero returns true if the reading carries no annotation.
func (r Reading) IsZero() bool {
	if r.Text != "" {
		return false
	}
	for _, c := range r.Chars {
		if c != "" {
			return false
		}
	}
	return true
}

// Alternatives returns the number of alternative readings r offers for key.
// Only single character keys can have more than one; per-character readings
// of a phrase are one reading of the phrase.
func (r Reading) Alternatives(key string) int {
	if r.Text == "" && utf8.RuneCountInString(key) == 1 && len(r.Chars) > 1 {
		return len(r.Chars)
	}
	return 1
}

// Equal reports whether r and o hold the same readings.
func (r Reading) Equal(o Reading) bool {
	return r.Text == o.Text && slices.Equal(r.Chars, o.Chars)
}

// String returns the readings joined by commas.
func (r Reading) String() string {
	if r.Text != "" {
		return r.Text
	}
	return strings.Join(r.Chars, ",")
}

// Dictionary maps keys to readings.
type Dictionary map[string]Reading

// Merge merges dictionaries into a new Dictionary. Entries of later
// dictionaries override entries of earlier ones.
func Merge(dicts ...Dictionary) Dictionary {
	n := 0
	for _, d := range dicts {
		n += len(d)
	}
	merged := make(Dictionary, n)
	for _, d := range dicts {
		for k, v := range d {
			merged[k] = v
		}
	}
	return merged
}

// Chars returns the single character entries of d. Converting with the
// result annotates text character by character, ignoring phrases.
func (d Dictionary) Chars() Dictionary {
	chars := Dictionary{}
	for k, v := range d {
		if utf8.RuneCountInString(k) == 1 {
			chars[k] = v
		}
	}
	return chars
}

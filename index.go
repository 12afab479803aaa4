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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wangyyyqw/go-phonetic/internal/index"
)

// prefix is an Index row. Every key and every proper prefix of a key has a
// row.
type prefix struct {
	text string

	// isKey is true if text is a dictionary key.
	isKey bool

	// hasLonger is true if a longer key starts with text.
	hasLonger bool

	reading Reading
}

func (p *prefix) String() string {
	return p.text
}

// Index is a prefix index over the keys of a Dictionary. An Index is
// immutable once created and is safe for concurrent use.
type Index struct {
	table *index.Index[*prefix]

	keys      int
	maxKeyLen int
}

// NewIndex builds an Index from the dictionary d. Empty keys are ignored.
func NewIndex(d Dictionary) *Index {
	rows := map[string]*prefix{}
	row := func(s string) *prefix {
		p, ok := rows[s]
		if !ok {
			p = &prefix{text: s}
			rows[s] = p
		}
		return p
	}

	idx := &Index{}
	for key, reading := range d {
		if key == "" {
			continue
		}
		n := 0
		for i := range key {
			if i > 0 {
				row(key[:i]).hasLonger = true
			}
			n++
		}
		p := row(key)
		p.isKey = true
		p.reading = reading

		idx.keys++
		idx.maxKeyLen = max(idx.maxKeyLen, n)
	}

	all := make([]*prefix, 0, len(rows))
	for _, p := range rows {
		all = append(all, p)
	}
	idx.table = index.NewIndex(all, strings.Compare)

	return idx
}

// Lookup returns the Node for q. Strings that are not in the index return a
// terminal pass-through Node.
func (idx *Index) Lookup(q string) Node {
	p, ok := idx.table.Find(q)
	if !ok {
		return Node{
			Text:     q,
			Original: true,
			Terminal: true,
		}
	}
	return Node{
		Text:        q,
		Reading:     p.reading,
		Original:    !p.isKey,
		Terminal:    p.isKey,
		HasChildren: p.hasLonger,
	}
}

// Contains returns true if key is a dictionary key.
func (idx *Index) Contains(key string) bool {
	p, ok := idx.table.Find(key)
	return ok && p.isKey
}

// Len returns the number of keys in the index.
func (idx *Index) Len() int {
	return idx.keys
}

// MaxKeyLen returns the length in characters of the longest key.
func (idx *Index) MaxKeyLen() int {
	return idx.maxKeyLen
}

// Keys returns the dictionary keys in byte order.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, idx.keys)
	idx.table.Each(func(p *prefix) bool {
		if p.isKey {
			keys = append(keys, p.text)
		}
		return true
	})
	return keys
}

// Node is the result of looking up a string in an Index.
type Node struct {
	// Text is the string that was looked up.
	Text string

	// Reading is the dictionary reading of Text. It is empty when Original
	// is true.
	Reading Reading

	// Original is true if Text is not a dictionary key and is passed
	// through verbatim.
	Original bool

	// Terminal is true if Text is a dictionary key, or unknown. Unknown
	// text is never worth extending.
	Terminal bool

	// HasChildren is true if a longer key starts with Text.
	HasChildren bool
}

// ambiguousLongWord returns true if n is an unmatched multi-character
// candidate, the sign of a failed speculative extension.
func (n Node) ambiguousLongWord() bool {
	return n.Original && utf8.RuneCountInString(n.Text) > 1
}

// String returns a string representation of the Node.
func (n Node) String() string {
	return fmt.Sprintf("<Node %q, %q, original: %v, terminal: %v, children: %v>",
		n.Text, n.Reading.String(), n.Original, n.Terminal, n.HasChildren)
}

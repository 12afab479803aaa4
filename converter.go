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
	"slices"
	"strings"
)

// Options are options for a Converter.
type Options struct {
	// Formatter formats matched keys.
	Formatter Formatter
}

// DefaultOptions is the default options for a Converter.
var DefaultOptions = &Options{
	Formatter: RubyFormatter{},
}

// Converter annotates text using an Index. It scans text one character at a
// time and keeps a set of live branches, one per candidate parse of the
// current segment. A segment is resolved once every live branch has emitted
// all of the characters it consumed.
//
// A Converter is not safe for concurrent use.
type Converter struct {
	idx       *Index
	session   *Session
	formatter Formatter

	branches []branch
	out      strings.Builder

	// lookup is the policy aware index lookup.
	lookup func(string) Node
}

// NewConverter returns a new Converter for idx. Matches are recorded in s.
// If s is nil, a new Session with the default Policy is used.
func NewConverter(idx *Index, s *Session, opts *Options) *Converter {
	if s == nil {
		s = NewSession(Policy{})
	}
	if opts == nil {
		opts = DefaultOptions
	}
	f := opts.Formatter
	if f == nil {
		f = DefaultOptions.Formatter
	}

	c := &Converter{
		idx:       idx,
		session:   s,
		formatter: f,
	}
	c.lookup = func(q string) Node {
		return c.session.lookup(c.idx, q)
	}
	c.Start()
	return c
}

// Session returns the converter's session.
func (c *Converter) Session() *Session {
	return c.session
}

// Start resets the converter for a new text.
func (c *Converter) Start() {
	c.branches = []branch{{}}
	c.out.Reset()
}

// Feed advances the converter by one character and returns the output
// produced so far. Output is only produced when a segment is resolved so it
// may lag behind the input.
func (c *Converter) Feed(r rune) (string, error) {
	var forks []branch
	for i := range c.branches {
		nb, forked, err := c.branches[i].feed(r, c.lookup, c.session.see, c.formatter)
		if err != nil {
			c.Start()
			return "", err
		}
		if forked {
			forks = append(forks, nb)
		}
	}
	c.branches = append(c.branches, forks...)
	c.branches = slices.DeleteFunc(c.branches, func(b branch) bool {
		return b.state == stateFail
	})
	c.branches = prune(c.branches)

	done := true
	for i := range c.branches {
		if c.branches[i].state != stateEnd {
			done = false
			break
		}
	}
	if done {
		if err := c.resolve(); err != nil {
			c.Start()
			return "", err
		}
	}
	return c.out.String(), nil
}

// End flushes the current segment and returns the converted text. Branches
// still waiting for a longer key are discarded.
func (c *Converter) End() (string, error) {
	c.branches = slices.DeleteFunc(c.branches, func(b branch) bool {
		return b.state != stateEnd
	})
	if err := c.resolve(); err != nil {
		c.Start()
		return "", err
	}
	return c.out.String(), nil
}

// Convert converts the whole string s.
func (c *Converter) Convert(s string) (string, error) {
	c.Start()
	for _, r := range s {
		if _, err := c.Feed(r); err != nil {
			return "", err
		}
	}
	return c.End()
}

// Result returns the output produced so far.
func (c *Converter) Result() string {
	return c.out.String()
}

// take returns the output produced since the last call and drops it from
// the converter.
func (c *Converter) take() string {
	s := c.out.String()
	c.out.Reset()
	return s
}

// resolve picks the branch with the fewest emitted spans, appends its output
// and starts a new segment. Branches with the same number of spans are
// ranked in the order they were discovered.
func (c *Converter) resolve() error {
	if len(c.branches) > 0 {
		slices.SortStableFunc(c.branches, func(a, b branch) int {
			return a.tokens - b.tokens
		})
		winner := c.branches[0]
		if winner.pool != "" {
			return fmt.Errorf("%w: resolved branch has pending input %v", ErrInvariant, &winner)
		}
		c.out.WriteString(winner.out)
		c.session.commit(winner.matches)
	}
	c.branches = append(c.branches[:0], branch{})
	return nil
}

// prune drops the branches that cannot win their segment. Branches with the
// same state and pool parse the rest of the segment identically, so of those
// only the one with the fewest spans, or the first of them, is kept.
func prune(branches []branch) []branch {
	type key struct {
		state state
		pool  string
	}

	best := make(map[key]int, len(branches))
	for i := range branches {
		k := key{branches[i].state, branches[i].pool}
		if j, ok := best[k]; !ok || branches[i].tokens < branches[j].tokens {
			best[k] = i
		}
	}

	kept := branches[:0]
	for i := range branches {
		k := key{branches[i].state, branches[i].pool}
		if best[k] == i {
			kept = append(kept, branches[i])
		}
	}
	return kept
}

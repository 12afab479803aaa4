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

// Package prefilter finds out quickly whether a text contains any dictionary
// key.
package prefilter

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Filter matches text against a fixed set of keys.
type Filter struct {
	automaton aho.AhoCorasick
	keys      []string
}

// New builds a Filter for keys. Empty keys are ignored.
func New(keys []string) *Filter {
	f := &Filter{}
	for _, k := range keys {
		if k != "" {
			f.keys = append(f.keys, k)
		}
	}
	if len(f.keys) == 0 {
		return f
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	f.automaton = builder.Build(f.keys)
	return f
}

// Len returns the number of keys in the filter.
func (f *Filter) Len() int {
	return len(f.keys)
}

// Contains returns true if any key occurs in s.
func (f *Filter) Contains(s string) bool {
	if len(f.keys) == 0 {
		return false
	}
	return len(f.automaton.FindAll(s)) > 0
}

// Keys returns the distinct keys that occur in s in order of first
// occurrence. Keys overlapping an earlier match are not reported.
func (f *Filter) Keys(s string) []string {
	if len(f.keys) == 0 {
		return nil
	}

	var keys []string
	seen := map[int]bool{}
	for _, m := range f.automaton.FindAll(s) {
		if seen[m.Pattern()] {
			continue
		}
		seen[m.Pattern()] = true
		keys = append(keys, f.keys[m.Pattern()])
	}
	return keys
}

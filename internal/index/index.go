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

package index

import (
	"fmt"
	"slices"
	"sort"
)

// Index is a generic sorted array index keyed by the String value of its
// rows. Keys are expected to be unique.
type Index[V fmt.Stringer] struct {
	// rows is sorted by cmp.
	rows []V

	cmp func(string, string) int
}

// NewIndex creates an index from the given slice and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number when
// a > b and zero when a == b. The input slice is not modified.
func NewIndex[V fmt.Stringer](rows []V, cmp func(string, string) int) *Index[V] {
	sorted := make([]V, len(rows))
	copy(sorted, rows)
	slices.SortFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{
		rows: sorted,
		cmp:  cmp,
	}
}

// Find performs a binary search over the index and returns the row whose key
// equals query.
func (idx *Index[V]) Find(query string) (V, bool) {
	i, found := sort.Find(len(idx.rows), func(i int) int {
		return idx.cmp(query, idx.rows[i].String())
	})
	if !found {
		var zero V
		return zero, false
	}
	return idx.rows[i], true
}

// Len returns the number of rows in the index.
func (idx *Index[V]) Len() int {
	return len(idx.rows)
}

// Each calls fn for every row in key order until fn returns false.
func (idx *Index[V]) Each(fn func(V) bool) {
	for _, r := range idx.rows {
		if !fn(r) {
			return
		}
	}
}

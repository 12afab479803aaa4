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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Match is a dictionary entry that was substituted in the text.
type Match struct {
	Key     string
	Reading Reading
}

// Polyphonic returns true if the matched key has more than one reading.
func (m Match) Polyphonic() bool {
	return m.Reading.Alternatives(m.Key) > 1
}

// Report records the distinct entries substituted during a Session in the
// order they were first committed.
type Report struct {
	matches []Match
	seen    map[string]struct{}
}

func (r *Report) add(m Match) {
	if r.seen == nil {
		r.seen = map[string]struct{}{}
	}
	if _, ok := r.seen[m.Key]; ok {
		return
	}
	r.seen[m.Key] = struct{}{}
	r.matches = append(r.matches, m)
}

// Len returns the number of distinct entries.
func (r *Report) Len() int {
	return len(r.matches)
}

// Matches returns every distinct entry substituted.
func (r *Report) Matches() []Match {
	return append([]Match(nil), r.matches...)
}

// Monophonic returns the entries with a single reading.
func (r *Report) Monophonic() []Match {
	return r.filter(false)
}

// Polyphonic returns the entries with more than one reading.
func (r *Report) Polyphonic() []Match {
	return r.filter(true)
}

func (r *Report) filter(polyphonic bool) []Match {
	var matches []Match
	for _, m := range r.matches {
		if m.Polyphonic() == polyphonic {
			matches = append(matches, m)
		}
	}
	return matches
}

const rule = "-------------"

// WriteTo writes a human readable summary of the report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	mono := r.Monophonic()
	poly := r.Polyphonic()

	fmt.Fprintf(bw, "%s\nSummary:\n%s\n", rule, rule)
	fmt.Fprintf(bw, "[%d annotated]\n%s\n\n", len(r.matches), keys(r.matches))
	fmt.Fprintf(bw, "[%d with a single reading]\n%s\n\n", len(mono), keys(mono))
	fmt.Fprintf(bw, "[%d polyphonic]\n%s\n\n", len(poly), keys(poly))

	fmt.Fprintf(bw, "%s\nAnnotated:\n%s\n", rule, rule)
	for _, m := range r.matches {
		fmt.Fprintf(bw, "%s : %s\n", m.Key, m.Reading)
	}

	fmt.Fprintf(bw, "\n%s\nPolyphonic:\n%s\n", rule, rule)
	for _, m := range poly {
		fmt.Fprintf(bw, "%s : %s\n", m.Key, m.Reading)
	}

	err := bw.Flush()
	return cw.n, err
}

func keys(matches []Match) string {
	var b strings.Builder
	for _, m := range matches {
		b.WriteString(m.Key)
	}
	return b.String()
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	//nolint:wrapcheck // errors are returned as is to the bufio.Writer.
	return n, err
}

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
	"unicode/utf8"
)

type state int

const (
	// stateStart has no partial match.
	stateStart state = iota

	// stateWaitTail holds a prefix of a longer key in pool and waits for
	// the characters that complete it.
	stateWaitTail

	// stateEnd has just emitted a span. It behaves like stateStart.
	stateEnd

	// stateFail is a dead branch.
	stateFail
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "START"
	case stateWaitTail:
		return "WAIT_TAIL"
	case stateEnd:
		return "END"
	case stateFail:
		return "FAIL"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type condition int

const (
	// condError is an index inconsistency.
	condError condition = iota

	// condTail is a key, or unknown text, that no longer key extends.
	condTail

	// condMatchedSwitch is a key that is also the prefix of a longer key.
	condMatchedSwitch

	// condUnmatchedSwitch is a suppressed key that is also the prefix of a
	// longer key.
	condUnmatchedSwitch

	// condConnector is a prefix of a longer key that is not a key itself.
	condConnector
)

func classify(n Node) condition {
	switch {
	case n.HasChildren && n.Terminal && n.Original:
		return condUnmatchedSwitch
	case n.HasChildren && n.Terminal:
		return condMatchedSwitch
	case n.HasChildren:
		return condConnector
	case n.Terminal:
		return condTail
	default:
		return condError
	}
}

// branch is one candidate parse of the current segment. Branches are plain
// values; forking copies the branch.
type branch struct {
	state state

	// out is the annotated output of the branch.
	out string

	// tokens is the number of spans emitted.
	tokens int

	// pool holds the characters consumed but not yet emitted.
	pool string

	// matches are the dictionary entries emitted by the branch.
	matches []Match

	// lastMatched is the key emitted by the sibling that stopped early at
	// the last MATCHED_SWITCH. It is seen once the longer key fails.
	lastMatched string
}

// fork returns a copy of b that waits for a key longer than pool.
func (b *branch) fork(pool string) branch {
	nb := *b
	nb.state = stateWaitTail
	nb.pool = pool
	nb.matches = slices.Clone(b.matches)
	return nb
}

// emit appends the annotation for n to the branch output. It returns true if
// n was annotated with a dictionary reading.
func (b *branch) emit(n Node, f Formatter) bool {
	b.tokens++
	if n.Original {
		b.out += n.Text
		return false
	}
	s, ok := f.Format(n.Text, n.Reading)
	b.out += s
	if ok {
		b.matches = append(b.matches, Match{Key: n.Text, Reading: n.Reading})
	}
	return ok
}

// feed advances the branch by one character. It returns a forked sibling
// branch when the character makes the parse ambiguous.
//
// Keys annotated on TAIL are passed to see as soon as they are emitted. The
// branch's matches reach the report only when it wins its segment.
func (b *branch) feed(c rune, lookup func(string) Node, see func(string), f Formatter) (branch, bool, error) {
	switch b.state {
	case stateFail:
		return branch{}, false, fmt.Errorf("%w: feeding %q to failed branch %v", ErrInvariant, c, b)
	case stateEnd:
		// A new span starts at c.
		b.state = stateStart
		b.pool = ""
	}

	n := lookup(b.pool + string(c))
	switch classify(n) {
	case condError:
		b.state = stateFail
		return branch{}, false, fmt.Errorf("%w: inconsistent index entry %v", ErrInvariant, n)

	case condTail:
		if b.state == stateWaitTail && n.ambiguousLongWord() {
			// The longer key did not materialize. The sibling that stopped
			// at the shorter key keeps it.
			b.state = stateFail
			if b.lastMatched != "" {
				see(b.lastMatched)
			}
			return branch{}, false, nil
		}
		if b.emit(n, f) {
			see(n.Text)
		}
		b.pool = ""
		b.state = stateEnd
		return branch{}, false, nil

	case condMatchedSwitch:
		b.lastMatched = n.Text
		nb := b.fork(n.Text)
		b.emit(n, f)
		b.pool = ""
		b.state = stateEnd
		return nb, true, nil

	default: // condUnmatchedSwitch, condConnector
		if b.state == stateStart {
			nb := b.fork(n.Text)
			b.emit(n, f)
			b.pool = ""
			b.state = stateEnd
			return nb, true, nil
		}
		if !b.follows(n.Text) {
			b.state = stateFail
			return branch{}, false, nil
		}
		b.pool = n.Text
		return branch{}, false, nil
	}
}

// follows returns true if q extends the branch's pool by one character.
func (b *branch) follows(q string) bool {
	_, size := utf8.DecodeLastRuneInString(q)
	return q[:len(q)-size] == b.pool
}

func (b *branch) String() string {
	return fmt.Sprintf("<branch pool: %q, state: %v, tokens: %d, out: %q>",
		b.pool, b.state, b.tokens, b.out)
}

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

// Policy is the repeat suppression policy. The zero value annotates every
// occurrence of every key.
type Policy struct {
	// NoRepeatSession annotates a key only the first time it is seen in
	// the session.
	NoRepeatSession bool

	// NoRepeatUnit annotates a key only the first time it is seen in the
	// current unit (e.g. a page or chapter). See [Session.StartUnit].
	NoRepeatUnit bool
}

// Session holds the state shared by the Converters of one run: the keys
// already annotated and the report of substituted entries. A Session is not
// safe for concurrent use.
type Session struct {
	policy Policy

	// session and unit are the seen-key records of each scope.
	session map[string]struct{}
	unit    map[string]struct{}

	report Report
}

// NewSession returns a new Session using policy p.
func NewSession(p Policy) *Session {
	return &Session{
		policy:  p,
		session: map[string]struct{}{},
		unit:    map[string]struct{}{},
	}
}

// Policy returns the session's repeat suppression policy.
func (s *Session) Policy() Policy {
	return s.policy
}

// StartUnit starts a new processing unit, forgetting the keys seen in the
// previous unit.
func (s *Session) StartUnit() {
	clear(s.unit)
}

// Report returns the report of entries substituted during the session.
func (s *Session) Report() *Report {
	return &s.report
}

// suppressed returns true if key must be passed through because it was
// already annotated in a suppressed scope.
func (s *Session) suppressed(key string) bool {
	if s.policy.NoRepeatSession {
		if _, ok := s.session[key]; ok {
			return true
		}
	}
	if s.policy.NoRepeatUnit {
		if _, ok := s.unit[key]; ok {
			return true
		}
	}
	return false
}

// see records key as annotated in both scopes.
func (s *Session) see(key string) {
	s.session[key] = struct{}{}
	s.unit[key] = struct{}{}
}

// commit records the matches of a resolved segment.
func (s *Session) commit(matches []Match) {
	for _, m := range matches {
		s.see(m.Key)
		s.report.add(m)
	}
}

// lookup looks up q in idx applying the repeat suppression policy. Keys that
// are suppressed are reported as pass-through text.
func (s *Session) lookup(idx *Index, q string) Node {
	n := idx.Lookup(q)
	if !n.Original && s.suppressed(q) {
		n.Original = true
		n.Reading = Reading{}
	}
	return n
}

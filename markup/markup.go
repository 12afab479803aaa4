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

// Package markup annotates the text of HTML documents.
//
// Only the text inside the document body is annotated, and only runs of
// characters outside printable ASCII. Markup, character references and ASCII
// text are copied verbatim so that the annotated document stays well formed.
// Text inside ruby, rt, rp, script and style elements is left alone, so
// documents that are already annotated are not annotated twice.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/internal/prefilter"
)

// skipped are the elements whose text is never annotated.
var skipped = map[string]bool{
	"ruby":   true,
	"rt":     true,
	"rp":     true,
	"script": true,
	"style":  true,
}

// Options are options for an Annotator.
type Options struct {
	// Formatter formats matched keys.
	Formatter phonetic.Formatter
}

// DefaultOptions is the default options for an Annotator.
var DefaultOptions = &Options{
	Formatter: phonetic.RubyFormatter{},
}

// Annotator annotates documents using an Index. Every document is a unit of
// the Annotator's Session. An Annotator is not safe for concurrent use.
type Annotator struct {
	session *phonetic.Session
	conv    *phonetic.Converter
	filter  *prefilter.Filter
}

// NewAnnotator returns a new Annotator. If s is nil, a new Session with the
// default Policy is used.
func NewAnnotator(idx *phonetic.Index, s *phonetic.Session, opts *Options) *Annotator {
	if s == nil {
		s = phonetic.NewSession(phonetic.Policy{})
	}
	if opts == nil {
		opts = DefaultOptions
	}
	f := opts.Formatter
	if f == nil {
		f = DefaultOptions.Formatter
	}

	return &Annotator{
		session: s,
		conv:    phonetic.NewConverter(idx, s, &phonetic.Options{Formatter: f}),
		filter:  prefilter.New(idx.Keys()),
	}
}

// Session returns the annotator's session.
func (a *Annotator) Session() *phonetic.Session {
	return a.session
}

// Document annotates the body of the HTML document src as one unit. If the
// document cannot be annotated src is returned along with the error.
func (a *Annotator) Document(src []byte) ([]byte, error) {
	a.session.StartUnit()

	var out bytes.Buffer
	out.Grow(len(src))

	z := html.NewTokenizer(bytes.NewReader(src))
	inBody := false
	skipDepth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return src, fmt.Errorf("parsing document: %w", err)
			}
			break
		}

		raw := z.Raw()
		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			switch {
			case string(name) == "body":
				inBody = true
			case skipped[string(name)]:
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch {
			case string(name) == "body":
				inBody = false
			case skipped[string(name)] && skipDepth > 0:
				skipDepth--
			}
		case html.TextToken:
			if inBody && skipDepth == 0 {
				if err := a.runs(&out, string(raw)); err != nil {
					return src, err
				}
				continue
			}
		}
		out.Write(raw)
	}

	return out.Bytes(), nil
}

// Text annotates the plain text s as one unit.
func (a *Annotator) Text(s string) (string, error) {
	a.session.StartUnit()

	var out bytes.Buffer
	if err := a.runs(&out, s); err != nil {
		return s, err
	}
	return out.String(), nil
}

// isPlain returns true for characters that are copied verbatim.
func isPlain(r rune) bool {
	return (r >= 0x20 && r <= 0x7e) || r == '\r' || r == '\n'
}

// runs annotates the runs of non-plain characters in s and writes the result
// to out.
func (a *Annotator) runs(out *bytes.Buffer, s string) error {
	for s != "" {
		i := strings.IndexFunc(s, func(r rune) bool { return !isPlain(r) })
		if i < 0 {
			out.WriteString(s)
			return nil
		}
		out.WriteString(s[:i])
		s = s[i:]

		j := strings.IndexFunc(s, isPlain)
		if j < 0 {
			j = len(s)
		}
		if err := a.run(out, s[:j]); err != nil {
			return err
		}
		s = s[j:]
	}
	return nil
}

// run annotates one run. Keys are matched against the NFC form of the run. A
// run that contains no key is copied as is.
func (a *Annotator) run(out *bytes.Buffer, run string) error {
	if !utf8.ValidString(run) {
		out.WriteString(run)
		return nil
	}
	nfc := norm.NFC.String(run)
	if !a.filter.Contains(nfc) {
		out.WriteString(run)
		return nil
	}
	res, err := a.conv.Convert(nfc)
	if err != nil {
		return fmt.Errorf("annotating %q: %w", run, err)
	}
	out.WriteString(res)
	return nil
}

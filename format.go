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
	"html"
	"strings"
	"unicode/utf8"
)

// Formatter renders a matched key and its reading as annotated text.
type Formatter interface {
	// Format returns the annotated key. It returns false, along with the
	// key unchanged, if the reading could not be applied to the key.
	Format(key string, r Reading) (string, bool)
}

// RubyFormatter formats readings as HTML ruby annotations.
type RubyFormatter struct {
	// Parens adds <rp> fallback parentheses around each reading for
	// renderers without ruby support.
	Parens bool
}

// Format implements [Formatter.Format].
func (f RubyFormatter) Format(key string, r Reading) (string, bool) {
	if r.IsZero() {
		return key, false
	}

	if r.Text != "" {
		var b strings.Builder
		f.ruby(&b, key, r.Text)
		return b.String(), true
	}

	n := utf8.RuneCountInString(key)
	if n == 1 {
		if r.Chars[0] == "" {
			return key, false
		}
		var b strings.Builder
		f.ruby(&b, key, r.Chars[0])
		return b.String(), true
	}

	if n != len(r.Chars) {
		return key, false
	}

	var b strings.Builder
	i := 0
	for _, c := range key {
		if r.Chars[i] == "" {
			b.WriteRune(c)
		} else {
			f.ruby(&b, string(c), r.Chars[i])
		}
		i++
	}
	return b.String(), true
}

func (f RubyFormatter) ruby(b *strings.Builder, base, rt string) {
	b.WriteString("<ruby>")
	b.WriteString(base)
	if f.Parens {
		b.WriteString("<rp>(</rp>")
	}
	b.WriteString("<rt>")
	b.WriteString(html.EscapeString(rt))
	b.WriteString("</rt>")
	if f.Parens {
		b.WriteString("<rp>)</rp>")
	}
	b.WriteString("</ruby>")
}

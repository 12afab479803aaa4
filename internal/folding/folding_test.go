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

package folding

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

// TestWhitespace tests Whitespace.Transform.
func TestWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		remove bool

		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "no whitespace",
			input:    "银行",
			expected: "银行",
		},
		{
			name:     "trim",
			input:    " \t xíng háng\n",
			expected: "xíng háng",
		},
		{
			name:     "fold",
			input:    "xíng \t　 háng",
			expected: "xíng háng",
		},
		{
			name:     "remove",
			input:    " 银 行　卡 ",
			remove:   true,
			expected: "银行卡",
		},
		{
			name:     "only whitespace",
			input:    " \t\n ",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(&Whitespace{Remove: test.remove}, test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("transform.String (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestWhitespace_shortDst tests that Whitespace resumes after a short dst.
func TestWhitespace_shortDst(t *testing.T) {
	t.Parallel()

	w := &Whitespace{}
	src := []byte("a  银")
	dst := make([]byte, 2)

	var got []byte
	nDst, nSrc, err := w.Transform(dst, src, true)
	got = append(got, dst[:nDst]...)
	if !errors.Is(err, transform.ErrShortDst) {
		t.Fatalf("Transform; want: %v, got: %v", transform.ErrShortDst, err)
	}

	dst = make([]byte, 8)
	nDst, _, err = w.Transform(dst, src[nSrc:], true)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got = append(got, dst[:nDst]...)

	if diff := cmp.Diff("a 银", string(got)); diff != "" {
		t.Fatalf("Transform (-want, +got):\n%s", diff)
	}
}

// TestKey tests Key.
func TestKey(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent.
	got, err := String(Key(), " cafe\u0301 au lait ")
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if diff := cmp.Diff("caf\u00e9aulait", got); diff != "" {
		t.Fatalf("String (-want, +got):\n%s", diff)
	}
}

// TestReading tests Reading.
func TestReading(t *testing.T) {
	t.Parallel()

	got, err := String(Reading(), strings.Repeat(" ", 10)+"nǐ  hǎo ")
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if diff := cmp.Diff("nǐ hǎo", got); diff != "" {
		t.Fatalf("String (-want, +got):\n%s", diff)
	}
}

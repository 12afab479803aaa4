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

package prefilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestFilter_Contains tests Filter.Contains.
func TestFilter_Contains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		keys  []string
		input string

		expected bool
	}{
		{
			name:     "no keys",
			keys:     nil,
			input:    "僻",
			expected: false,
		},
		{
			name:     "empty keys",
			keys:     []string{""},
			input:    "僻",
			expected: false,
		},
		{
			name:     "match",
			keys:     []string{"僻", "银行"},
			input:    "去银行取钱",
			expected: true,
		},
		{
			name:     "partial key",
			keys:     []string{"僻", "银行"},
			input:    "银子",
			expected: false,
		},
		{
			name:     "empty input",
			keys:     []string{"僻"},
			input:    "",
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			f := New(test.keys)
			if got := f.Contains(test.input); got != test.expected {
				t.Fatalf("Contains(%q); want: %v, got: %v", test.input, test.expected, got)
			}
		})
	}
}

// TestFilter_Keys tests Filter.Keys.
func TestFilter_Keys(t *testing.T) {
	t.Parallel()

	f := New([]string{"僻", "银行", "行", "好"})
	if got, want := f.Len(), 4; got != want {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}

	got := f.Keys("好僻静，好僻")
	if diff := cmp.Diff([]string{"好", "僻"}, got); diff != "" {
		t.Fatalf("Keys (-want, +got):\n%s", diff)
	}
	if got := f.Keys("abc"); len(got) != 0 {
		t.Fatalf("Keys; want: none, got: %q", got)
	}
}

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

package phonetic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wangyyyqw/go-phonetic"
)

// TestReading_Alternatives tests Reading.Alternatives.
func TestReading_Alternatives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		reading phonetic.Reading

		expected int
	}{
		{
			name:     "whole",
			key:      "行",
			reading:  phonetic.Whole("xíng"),
			expected: 1,
		},
		{
			name:     "single",
			key:      "僻",
			reading:  phonetic.PerChar("pì"),
			expected: 1,
		},
		{
			name:     "polyphonic",
			key:      "行",
			reading:  phonetic.PerChar("xíng", "háng"),
			expected: 2,
		},
		{
			name:     "phrase",
			key:      "银行",
			reading:  phonetic.PerChar("yín", "háng"),
			expected: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := test.reading.Alternatives(test.key); got != test.expected {
				t.Fatalf("Alternatives; want: %d, got: %d", test.expected, got)
			}
		})
	}
}

// TestNewReading tests NewReading.
func TestNewReading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		key    string
		fields []string

		expected phonetic.Reading
	}{
		{
			name:     "character",
			key:      "僻",
			fields:   []string{"pì"},
			expected: phonetic.PerChar("pì"),
		},
		{
			name:     "alternatives",
			key:      "行",
			fields:   []string{"xíng", "háng"},
			expected: phonetic.PerChar("xíng", "háng"),
		},
		{
			name:     "whole",
			key:      "银行",
			fields:   []string{"yínháng"},
			expected: phonetic.Whole("yínháng"),
		},
		{
			name:     "per character",
			key:      "银行",
			fields:   []string{"yín", "háng"},
			expected: phonetic.PerChar("yín", "háng"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := phonetic.NewReading(test.key, test.fields...)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("NewReading (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestMerge tests Merge.
func TestMerge(t *testing.T) {
	t.Parallel()

	got := phonetic.Merge(
		phonetic.Dictionary{
			"行":  phonetic.PerChar("xíng", "háng"),
			"银行": phonetic.PerChar("yín", "háng"),
		},
		nil,
		phonetic.Dictionary{
			"行": phonetic.PerChar("háng"),
			"好": phonetic.Whole("hǎo"),
		},
	)

	expected := phonetic.Dictionary{
		"行":  phonetic.PerChar("háng"),
		"银行": phonetic.PerChar("yín", "háng"),
		"好":  phonetic.Whole("hǎo"),
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Merge (-want, +got):\n%s", diff)
	}
}

// TestDictionary_Chars tests Dictionary.Chars.
func TestDictionary_Chars(t *testing.T) {
	t.Parallel()

	d := phonetic.Dictionary{
		"行":  phonetic.PerChar("xíng", "háng"),
		"银行": phonetic.PerChar("yín", "háng"),
		"a":  phonetic.Whole("a"),
	}

	expected := phonetic.Dictionary{
		"行": phonetic.PerChar("xíng", "háng"),
		"a": phonetic.Whole("a"),
	}
	if diff := cmp.Diff(expected, d.Chars()); diff != "" {
		t.Fatalf("Chars (-want, +got):\n%s", diff)
	}
}

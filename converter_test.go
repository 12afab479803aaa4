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

func ruby(base, rt string) string {
	return "<ruby>" + base + "<rt>" + rt + "</rt></ruby>"
}

// TestConverter_Convert tests Converter.Convert.
func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dict   phonetic.Dictionary
		policy phonetic.Policy
		input  string

		expected string
	}{
		{
			name:  "empty dictionary",
			dict:  phonetic.Dictionary{},
			input: "Hello, 世界!\n",

			expected: "Hello, 世界!\n",
		},
		{
			name:  "empty input",
			dict:  phonetic.Dictionary{"A": phonetic.Whole("a")},
			input: "",

			expected: "",
		},
		{
			name: "longest match",
			dict: phonetic.Dictionary{
				"AB": phonetic.Whole("x"),
				"A":  phonetic.Whole("y"),
				"B":  phonetic.Whole("z"),
			},
			input: "AB",

			expected: ruby("AB", "x"),
		},
		{
			name: "failed extension",
			dict: phonetic.Dictionary{
				"A":  phonetic.Whole("y"),
				"AB": phonetic.Whole("x"),
			},
			input: "AC",

			expected: ruby("A", "y") + "C",
		},
		{
			name: "extension at end of input",
			dict: phonetic.Dictionary{
				"A":  phonetic.Whole("y"),
				"AB": phonetic.Whole("x"),
			},
			input: "CA",

			expected: "C" + ruby("A", "y"),
		},
		{
			name: "prefix at end of input",
			dict: phonetic.Dictionary{
				"你好": phonetic.PerChar("nǐ", "hǎo"),
			},
			input: "说你",

			expected: "说你",
		},
		{
			name: "per-character alignment",
			dict: phonetic.Dictionary{
				"你好": phonetic.PerChar("nǐ", "hǎo"),
			},
			input: "你好",

			expected: ruby("你", "nǐ") + ruby("好", "hǎo"),
		},
		{
			name: "unannotated character",
			dict: phonetic.Dictionary{
				"一个": phonetic.PerChar("", "gè"),
			},
			input: "一个人",

			expected: "一" + ruby("个", "gè") + "人",
		},
		{
			name: "misaligned reading",
			dict: phonetic.Dictionary{
				"你好": phonetic.PerChar("nǐ"),
			},
			input: "你好吗",

			expected: "你好吗",
		},
		{
			name: "polyphonic character",
			dict: phonetic.Dictionary{
				"行": phonetic.PerChar("xíng", "háng"),
			},
			input: "行",

			expected: ruby("行", "xíng"),
		},
		{
			name: "reading is escaped",
			dict: phonetic.Dictionary{
				"A": phonetic.Whole("<a&b>"),
			},
			input: "A",

			expected: ruby("A", "&lt;a&amp;b&gt;"),
		},
		{
			name: "overlapping keys",
			dict: phonetic.Dictionary{
				"AB": phonetic.Whole("ab"),
				"BC": phonetic.Whole("bc"),
				"A":  phonetic.Whole("a"),
				"C":  phonetic.Whole("c"),
			},
			input: "ABC",

			// AB+C and A+BC have the same number of spans. The parse
			// found first wins.
			expected: ruby("AB", "ab") + ruby("C", "c"),
		},
		{
			name: "nested keys",
			dict: phonetic.Dictionary{
				"A":   phonetic.Whole("1"),
				"AA":  phonetic.Whole("2"),
				"AAA": phonetic.Whole("3"),
			},
			input: "AAAAA",

			expected: ruby("AAA", "3") + ruby("AA", "2"),
		},
		{
			name: "repeat without suppression",
			dict: phonetic.Dictionary{
				"僻": phonetic.PerChar("pì"),
			},
			input: "僻僻",

			expected: ruby("僻", "pì") + ruby("僻", "pì"),
		},
		{
			name: "repeat with session suppression",
			dict: phonetic.Dictionary{
				"僻": phonetic.PerChar("pì"),
			},
			policy: phonetic.Policy{NoRepeatSession: true},
			input:  "僻僻",

			expected: ruby("僻", "pì") + "僻",
		},
		{
			name: "repeat with unit suppression",
			dict: phonetic.Dictionary{
				"僻": phonetic.PerChar("pì"),
			},
			policy: phonetic.Policy{NoRepeatUnit: true},
			input:  "僻静僻",

			expected: ruby("僻", "pì") + "静僻",
		},
		{
			name: "suppressed prefix key",
			dict: phonetic.Dictionary{
				"A":  phonetic.Whole("y"),
				"AB": phonetic.Whole("x"),
			},
			policy: phonetic.Policy{NoRepeatSession: true},
			input:  "A-AB-A",

			expected: ruby("A", "y") + "-" + ruby("AB", "x") + "-A",
		},
		{
			name: "suppression inside an open segment",
			dict: phonetic.Dictionary{
				"A":      phonetic.Whole("a"),
				"B":      phonetic.Whole("b"),
				"AXBXBY": phonetic.Whole("long"),
			},
			policy: phonetic.Policy{NoRepeatSession: true},
			input:  "AXBXBZ",

			expected: ruby("A", "a") + "X" + ruby("B", "b") + "XBZ",
		},
		{
			name: "failed extension sees the shorter key",
			dict: phonetic.Dictionary{
				"A":     phonetic.Whole("a"),
				"AB":    phonetic.Whole("x"),
				"CAXAD": phonetic.Whole("long"),
			},
			policy: phonetic.Policy{NoRepeatSession: true},
			input:  "CAXAC",

			expected: "C" + ruby("A", "a") + "XAC",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c := phonetic.NewConverter(
				phonetic.NewIndex(test.dict),
				phonetic.NewSession(test.policy),
				nil,
			)
			got, err := c.Convert(test.input)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Convert (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestConverter_Feed tests that Feed returns the output of resolved segments.
func TestConverter_Feed(t *testing.T) {
	t.Parallel()

	c := phonetic.NewConverter(phonetic.NewIndex(phonetic.Dictionary{
		"A":  phonetic.Whole("y"),
		"AB": phonetic.Whole("x"),
	}), nil, nil)

	var got []string
	for _, r := range "CAB" {
		out, err := c.Feed(r)
		if err != nil {
			t.Fatalf("Feed: %v", err)
		}
		got = append(got, out)
	}
	out, err := c.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	got = append(got, out)

	expected := []string{
		"C",
		"C",
		"C" + ruby("AB", "x"),
		"C" + ruby("AB", "x"),
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Feed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(expected[3], c.Result()); diff != "" {
		t.Fatalf("Result (-want, +got):\n%s", diff)
	}
}

// TestConverter_Session tests that Converters sharing a Session share the
// suppression record and the report.
func TestConverter_Session(t *testing.T) {
	t.Parallel()

	idx := phonetic.NewIndex(phonetic.Dictionary{
		"僻": phonetic.PerChar("pì"),
		"静": phonetic.PerChar("jìng"),
	})
	s := phonetic.NewSession(phonetic.Policy{NoRepeatUnit: true})

	var got []string
	for _, unit := range []string{"僻僻", "僻静", "静"} {
		s.StartUnit()
		out, err := phonetic.NewConverter(idx, s, nil).Convert(unit)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		got = append(got, out)
	}

	expected := []string{
		ruby("僻", "pì") + "僻",
		ruby("僻", "pì") + ruby("静", "jìng"),
		ruby("静", "jìng"),
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Convert (-want, +got):\n%s", diff)
	}
	if got, want := s.Report().Len(), 2; got != want {
		t.Fatalf("Report.Len; want: %d, got: %d", want, got)
	}
}

// TestConverter_Options tests Converter options.
func TestConverter_Options(t *testing.T) {
	t.Parallel()

	c := phonetic.NewConverter(phonetic.NewIndex(phonetic.Dictionary{
		"好": phonetic.Whole("hǎo"),
	}), nil, &phonetic.Options{
		Formatter: phonetic.RubyFormatter{Parens: true},
	})
	got, err := c.Convert("好")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	expected := "<ruby>好<rp>(</rp><rt>hǎo</rt><rp>)</rp></ruby>"
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Convert (-want, +got):\n%s", diff)
	}
}

// TestConverter_Report tests the report of substituted entries.
func TestConverter_Report(t *testing.T) {
	t.Parallel()

	s := phonetic.NewSession(phonetic.Policy{})
	c := phonetic.NewConverter(phonetic.NewIndex(phonetic.Dictionary{
		"你好": phonetic.PerChar("nǐ", "hǎo"),
		"好":  phonetic.Whole("hǎo"),
		"行":  phonetic.PerChar("xíng", "háng"),
		"坏":  phonetic.Whole("huài"),
	}), s, nil)

	if _, err := c.Convert("你好行好行"); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	r := s.Report()
	all := []phonetic.Match{
		{Key: "你好", Reading: phonetic.PerChar("nǐ", "hǎo")},
		{Key: "行", Reading: phonetic.PerChar("xíng", "háng")},
		{Key: "好", Reading: phonetic.Whole("hǎo")},
	}
	if diff := cmp.Diff(all, r.Matches()); diff != "" {
		t.Errorf("Matches (-want, +got):\n%s", diff)
	}
	mono := []phonetic.Match{all[0], all[2]}
	if diff := cmp.Diff(mono, r.Monophonic()); diff != "" {
		t.Errorf("Monophonic (-want, +got):\n%s", diff)
	}
	poly := []phonetic.Match{all[1]}
	if diff := cmp.Diff(poly, r.Polyphonic()); diff != "" {
		t.Errorf("Polyphonic (-want, +got):\n%s", diff)
	}
}

// TestConverter_InvalidInput tests that control characters, invalid UTF-8
// and empty keys are passed through.
func TestConverter_InvalidInput(t *testing.T) {
	t.Parallel()

	c := phonetic.NewConverter(phonetic.NewIndex(phonetic.Dictionary{
		"":   phonetic.Whole("empty"),
		"AB": phonetic.Whole("x"),
	}), nil, nil)
	got, err := c.Convert("A\x00B\xffAB")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if diff := cmp.Diff("A\x00B\uFFFD"+ruby("AB", "x"), got); diff != "" {
		t.Fatalf("Convert (-want, +got):\n%s", diff)
	}
}

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

package dictionary_test

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"

	"github.com/wangyyyqw/go-phonetic"
	"github.com/wangyyyqw/go-phonetic/dictionary"
)

// TestFormatOf tests FormatOf.
func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string

		expected    dictionary.Format
		expectedErr error
	}{
		{path: "rare.json", expected: dictionary.FormatJSON},
		{path: "/usr/share/phonetic/Phrases.JSON", expected: dictionary.FormatJSON},
		{path: "rare.json.gz", expected: dictionary.FormatJSON},
		{path: "rare.txt", expected: dictionary.FormatText},
		{path: "rare.tsv.GZ", expected: dictionary.FormatText},
		{path: "rare.ifo", expectedErr: dictionary.ErrUnsupported},
		{path: "rare.gz", expectedErr: dictionary.ErrUnsupported},
		{path: "rare", expectedErr: dictionary.ErrUnsupported},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			t.Parallel()

			got, err := dictionary.FormatOf(test.path)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("FormatOf: want: %v, got: %v", test.expectedErr, err)
			}
			if err == nil && got != test.expected {
				t.Fatalf("FormatOf: want: %v, got: %v", test.expected, got)
			}
		})
	}
}

// TestReadJSON tests ReadJSON.
func TestReadJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  *dictionary.Options

		expected    phonetic.Dictionary
		expectedErr error
	}{
		{
			name:     "empty",
			input:    `{}`,
			expected: phonetic.Dictionary{},
		},
		{
			name: "entries",
			input: `{
				"僻": ["pì"],
				"行": ["xíng", "háng"],
				"银行": ["yín", "háng"],
				"一会儿": "yíhuìr"
			}`,
			expected: phonetic.Dictionary{
				"僻":   phonetic.PerChar("pì"),
				"行":   phonetic.PerChar("xíng", "háng"),
				"银行":  phonetic.PerChar("yín", "háng"),
				"一会儿": phonetic.Whole("yíhuìr"),
			},
		},
		{
			name:  "folding",
			input: `{" 银 行 ": ["  yín ", "háng"], "  ": ["x"]}`,
			expected: phonetic.Dictionary{
				"银行": phonetic.PerChar("yín", "háng"),
			},
		},
		{
			name:  "custom folding",
			input: `{"A": ["a"]}`,
			opts: &dictionary.Options{
				Folder: func() transform.Transformer {
					return transform.Nop
				},
			},
			expected: phonetic.Dictionary{
				"A": phonetic.PerChar("a"),
			},
		},
		{
			name:  "empty readings",
			input: `{"A": [], "B": "", "C": null, "D": ["", ""]}`,

			expected: phonetic.Dictionary{},
		},
		{
			name:        "bad reading",
			input:       `{"A": 1}`,
			expectedErr: dictionary.ErrSyntax,
		},
		{
			name:        "not an object",
			input:       `["A"]`,
			expectedErr: dictionary.ErrSyntax,
		},
		{
			name:        "truncated",
			input:       `{"A": ["a"]`,
			expectedErr: dictionary.ErrSyntax,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := dictionary.ReadJSON(strings.NewReader(test.input), test.opts)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("ReadJSON: want: %v, got: %v", test.expectedErr, err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("ReadJSON (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestReadText tests ReadText.
func TestReadText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string

		expected    phonetic.Dictionary
		expectedErr error
	}{
		{
			name:     "empty",
			input:    "",
			expected: phonetic.Dictionary{},
		},
		{
			name: "entries",
			input: strings.Join([]string{
				"# rare characters",
				"僻\tpì",
				"",
				"行\txíng, háng",
				"银行\tyín,háng",
				"一会儿\tyíhuìr",
			}, "\n"),
			expected: phonetic.Dictionary{
				"僻":   phonetic.PerChar("pì"),
				"行":   phonetic.PerChar("xíng", "háng"),
				"银行":  phonetic.PerChar("yín", "háng"),
				"一会儿": phonetic.Whole("yíhuìr"),
			},
		},
		{
			name:        "missing separator",
			input:       "僻\tpì\n行 xíng",
			expectedErr: dictionary.ErrSyntax,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := dictionary.ReadText(strings.NewReader(test.input), nil)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("ReadText: want: %v, got: %v", test.expectedErr, err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("ReadText (-want, +got):\n%s", diff)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string, compress bool) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !compress {
		if _, err := f.WriteString(content); err != nil {
			t.Fatal(err)
		}
		return
	}

	z := gzip.NewWriter(f)
	if _, err := z.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}

// TestLoad tests Load.
func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rare := filepath.Join(dir, "rare.json.gz")
	writeFile(t, rare, `{"行": ["xíng", "háng"], "僻": ["pì"]}`, true)
	phrases := filepath.Join(dir, "phrases.txt")
	writeFile(t, phrases, "银行\tyín,háng\n行\tháng\n", false)

	got, err := dictionary.Load([]string{rare, phrases}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expected := phonetic.Dictionary{
		"行":  phonetic.PerChar("háng"),
		"僻":  phonetic.PerChar("pì"),
		"银行": phonetic.PerChar("yín", "háng"),
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Load (-want, +got):\n%s", diff)
	}

	if _, err := dictionary.Load([]string{rare, filepath.Join(dir, "missing.json")}, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load: want: %v, got: %v", os.ErrNotExist, err)
	}
}

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

package stardict

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/k3a/html2text"

	"github.com/wangyyyqw/go-phonetic"
)

// phoneticTypes are the data types that hold readings in order of
// preference.
var phoneticTypes = []DataType{
	PhoneticType,
	YinBiaoOrKataType,
	UTFTextType,
	HTMLType,
}

// phoneticText returns the first line of the preferred phonetic data item.
func phoneticText(data []*Data) string {
	for _, t := range phoneticTypes {
		for _, d := range data {
			if d.Type != t {
				continue
			}
			text := d.String()
			if t == HTMLType {
				text = html2text.HTML2Text(text)
			}
			for _, line := range strings.Split(text, "\n") {
				line = strings.Trim(strings.TrimSpace(line), "[]/")
				if line != "" {
					return line
				}
			}
		}
	}
	return ""
}

func isReadingSep(r rune) bool {
	switch r {
	case ',', ';', '，', '；', '、':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// split splits text into the reading of key. A single character key takes
// every field as an alternative reading. A phrase with one field per
// character is read per character. Any other phrase is read as a whole.
func split(key, text string) phonetic.Reading {
	fields := strings.FieldsFunc(text, isReadingSep)
	if len(fields) == 0 {
		return phonetic.Reading{}
	}

	n := utf8.RuneCountInString(key)
	if n == 1 || len(fields) == n {
		return phonetic.PerChar(fields...)
	}
	return phonetic.Whole(strings.Join(strings.Fields(text), " "))
}

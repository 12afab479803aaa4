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

// Package phonetic implements dictionary driven phonetic annotation of text
// in pure Go.
//
// A Dictionary maps keys (single characters or phrases) to readings. The
// Dictionary is compiled once into an Index which records, for every prefix of
// every key, whether the prefix is a key itself and whether longer keys extend
// it. A Converter scans text one character at a time and replaces the longest
// matching keys with ruby markup:
//
//	<ruby>僻<rt>pì</rt></ruby>
//
// When a key is also the prefix of a longer key the Converter explores both
// parses in parallel branches and keeps the one that covers the text with the
// fewest matched spans.
//
// A Session carries the state shared by the Converters of one run: the repeat
// suppression Policy, the keys already annotated and the Report of every
// entry that was substituted.
package phonetic

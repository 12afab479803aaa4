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

// Package stardict implements reading StarDict dictionaries as phonetic
// dictionaries.
//
// A StarDict dictionary is made of several files sharing a base name:
//
//   - The .ifo file holds the dictionary metadata.
//   - The .idx file lists the words and the location of their data in the
//     .dict file. It may be gzip compressed (.idx.gz).
//   - The .dict file holds the word data. It may be compressed with dictzip
//     (.dict.dz).
//   - The optional .syn file lists synonyms of the words in the .idx file.
//
// The readings of a word are taken from its first phonetic data item. See
// [Stardict.Dictionary].
package stardict

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
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

var (
	// ErrBadMagic indicates that the .ifo file does not start with the
	// StarDict magic string.
	ErrBadMagic = errors.New("bad magic data")

	// ErrInvalidIfo indicates a malformed .ifo file.
	ErrInvalidIfo = errors.New("invalid .ifo file")
)

var ifoKeyRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Ifo is the metadata read from a .ifo file.
type Ifo struct {
	magic    string
	metadata map[string]string
}

// ReadIfo reads the .ifo data from r. The first line is the magic string and
// the first key must be "version".
func ReadIfo(r io.Reader) (*Ifo, error) {
	i := &Ifo{
		metadata: map[string]string{},
	}

	s := bufio.NewScanner(r)
	if s.Scan() {
		i.magic = strings.TrimPrefix(s.Text(), "\ufeff")
	}

	n := 0
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %q", ErrInvalidIfo, line)
		}
		k = strings.TrimRight(k, " ")
		if !ifoKeyRegex.MatchString(k) {
			return nil, fmt.Errorf("%w: invalid key %q", ErrInvalidIfo, k)
		}
		if n == 0 && k != "version" {
			return nil, fmt.Errorf("%w: missing version", ErrInvalidIfo)
		}
		i.metadata[k] = strings.TrimLeft(v, " ")
		n++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading .ifo: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidIfo)
	}

	return i, nil
}

// Magic returns the magic string at the start of the file.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value for key. It returns an empty string if key is not
// present.
func (i *Ifo) Value(key string) string {
	return i.metadata[key]
}

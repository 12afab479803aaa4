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

import "errors"

// ErrInvariant indicates an internal invariant violation of the converter:
// an inconsistent Index or a branch that was fed after it failed. It signals
// a bug rather than bad input. Converted output is discarded when it occurs.
var ErrInvariant = errors.New("phonetic: internal invariant violation")

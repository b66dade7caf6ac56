// Copyright 2026 Benoit Pereira da Silva
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

// Package strbytes lets callers edit the bytes of UTF-8 text in place without
// ever exposing invalid UTF-8 outside the edit.
//
// The entry point is With (and its variants WithBytes, Do and Try). It hands
// the raw bytes of a Text to a transformation and, when the transformation
// is done, restores the "valid UTF-8" invariant:
//
//   - transformation returned, bytes valid: nothing to do.
//   - transformation returned, bytes invalid: every byte from the first
//     invalid offset to the end is set to 0x00, then With panics with an
//     *InvariantViolation (Try returns it instead).
//   - transformation panicked (or called runtime.Goexit): every byte is set
//     to 0x00 and the original panic keeps unwinding, unchanged.
//
// The NUL byte is itself a valid one-byte UTF-8 sequence, so zero-filling can
// never produce invalid text. No copy of the bytes is ever made: the view is
// the text's own storage, and the zero-fill happens in place.
//
// Example:
//
//	data := strbytes.NewText("Lorem ipsum dolor sit amet")
//	strbytes.Do(data, func(b []byte) {
//	    for i, c := range b {
//	        if c == ' ' {
//	            b[i] = '-'
//	        }
//	    }
//	})
//	fmt.Println(data) // Lorem-ipsum-dolor-sit-amet
package strbytes

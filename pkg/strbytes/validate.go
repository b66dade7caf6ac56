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

package strbytes

import "unicode/utf8"

// Validate returns nil when b is valid UTF-8, an *InvalidUTF8Error otherwise.
func Validate(b []byte) error {
	if off, size, ok := firstInvalid(b); !ok {
		return &InvalidUTF8Error{ValidUpTo: off, ErrorLen: size}
	}
	return nil
}

// ValidUpTo returns the length of the longest valid UTF-8 prefix of b.
func ValidUpTo(b []byte) int {
	off, _, _ := firstInvalid(b)
	return off
}

// Sanitize zeroes b from its first invalid byte to the end, in place.
//
// It returns the *InvalidUTF8Error describing what was found, or nil when b
// was already valid (and left untouched).
func Sanitize(b []byte) error {
	off, size, ok := firstInvalid(b)
	if ok {
		return nil
	}
	clear(b[off:])
	return &InvalidUTF8Error{ValidUpTo: off, ErrorLen: size}
}

// firstInvalid locates the first invalid sequence of b.
//
// ok is true when b is valid, in which case off == len(b). Otherwise off is
// the start of the offending sequence and size its length: the lead byte plus
// the continuation bytes accepted before the first rejected one. size is 0
// when b ends before the sequence could be completed.
func firstInvalid(b []byte) (off, size int, ok bool) {
	if utf8.Valid(b) {
		return len(b), 0, true
	}
	for i := 0; i < len(b); {
		c := b[i]
		if c < utf8.RuneSelf {
			i++
			continue
		}
		width := leadWidth(c)
		if width == 0 {
			return i, 1, false
		}
		lo, hi := secondByteRange(c)
		for k := 1; k < width; k++ {
			if i+k >= len(b) {
				return i, 0, false
			}
			if next := b[i+k]; next < lo || next > hi {
				return i, k, false
			}
			lo, hi = 0x80, 0xBF
		}
		i += width
	}
	return len(b), 0, true
}

// leadWidth returns the sequence length announced by a lead byte, or 0 when
// c cannot start a sequence (continuation bytes, 0xC0, 0xC1, 0xF5..0xFF).
func leadWidth(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c < 0xC2:
		return 0
	case c < 0xE0:
		return 2
	case c < 0xF0:
		return 3
	case c < 0xF5:
		return 4
	}
	return 0
}

// secondByteRange narrows the continuation range right after lead bytes that
// would otherwise allow overlong forms, surrogates or code points above
// U+10FFFF.
func secondByteRange(lead byte) (lo, hi byte) {
	switch lead {
	case 0xE0:
		return 0xA0, 0xBF
	case 0xED:
		return 0x80, 0x9F
	case 0xF0:
		return 0x90, 0xBF
	case 0xF4:
		return 0x80, 0x8F
	}
	return 0x80, 0xBF
}

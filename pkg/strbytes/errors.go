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

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 matches, through errors.Is, every error of this package
// that reports invalid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// InvalidUTF8Error describes the first invalid sequence found in a byte slice.
//
// ValidUpTo is the offset of the first byte that breaks validity: bytes
// [0, ValidUpTo) are valid UTF-8.
//
// ErrorLen is the length of the invalid sequence starting at ValidUpTo
// (1 to 3 bytes), or 0 when the input ends in the middle of a sequence that
// could still have been completed by more bytes.
type InvalidUTF8Error struct {
	ValidUpTo int
	ErrorLen  int
}

func (e *InvalidUTF8Error) Error() string {
	if e.ErrorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
}

// Is reports whether target is ErrInvalidUTF8.
func (e *InvalidUTF8Error) Is(target error) bool {
	return target == ErrInvalidUTF8
}

// InvariantViolation is raised when a transformation returns normally but
// leaves invalid UTF-8 behind.
//
// By the time it is observed, the bytes from Offset() to the end of the
// buffer have already been zeroed.
type InvariantViolation struct {
	Err *InvalidUTF8Error
}

func (e *InvariantViolation) Error() string {
	return "strbytes: with bytes encountered invalid utf-8: " + e.Err.Error()
}

// Unwrap returns the underlying *InvalidUTF8Error.
func (e *InvariantViolation) Unwrap() error {
	return e.Err
}

// Offset returns the index of the first invalid byte.
func (e *InvariantViolation) Offset() int {
	return e.Err.ValidUpTo
}

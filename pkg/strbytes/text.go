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

import "bytes"

// MutableText is the contract With relies on.
//
// UnsafeBytes returns the storage backing the text, not a copy. Implementations
// must guarantee that those bytes hold valid UTF-8 whenever no guarded call is
// in progress, and that nobody else reads or writes them while With runs.
//
// Text is the implementation provided by this package; higher level buffers
// can implement MutableText directly to take part in guarded mutations.
type MutableText interface {
	UnsafeBytes() []byte
}

// Text owns a byte slice that always holds valid UTF-8.
//
// The only way to edit the bytes in place is through With and its variants,
// which restore the invariant before returning. The zero value is an empty
// text, and a nil *Text behaves like one.
type Text struct {
	b []byte
}

// NewText copies s into a new Text.
//
// Go strings may hold arbitrary bytes: any invalid sequence in s is sanitized
// the same way With sanitizes a broken result (zeroed from the first invalid
// offset to the end). Use TextFromBytes to get an error instead.
func NewText(s string) *Text {
	b := []byte(s)
	_ = Sanitize(b)
	return &Text{b: b}
}

// TextFromBytes adopts b as the storage of a new Text, without copying.
//
// It fails with an *InvalidUTF8Error when b is not valid UTF-8. On success
// the caller hands b over: it must not keep writing to it.
func TextFromBytes(b []byte) (*Text, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	return &Text{b: b}, nil
}

// MustText is like TextFromBytes but panics on invalid input.
func MustText(b []byte) *Text {
	t, err := TextFromBytes(b)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(t.b)
}

// Len returns the number of bytes (not runes) of the text.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	return len(t.b)
}

// Bytes returns a copy of the text bytes.
func (t *Text) Bytes() []byte {
	if t == nil {
		return nil
	}
	return bytes.Clone(t.b)
}

// UnsafeBytes implements MutableText.
//
// Writing to the returned slice outside of With breaks the Text invariant.
func (t *Text) UnsafeBytes() []byte {
	if t == nil {
		return nil
	}
	return t.b
}

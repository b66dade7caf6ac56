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

// Package bytemap holds the in-place byte mutations offered by the CLI.
//
// They work on raw bytes and know nothing about UTF-8: Translate can be told
// to produce invalid sequences, which is exactly what the guarded call is
// there to catch.
package bytemap

import (
	"errors"
	"fmt"
)

var ErrLengthMismatch = errors.New("bytemap: from and to must have the same number of bytes")

// Translate returns a mutation replacing every byte of from found in b by the
// byte at the same position in to. Later duplicates in from win.
func Translate(from, to string) (func(b []byte), error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w (%d != %d)", ErrLengthMismatch, len(from), len(to))
	}
	var table [256]byte
	for i := range table {
		table[i] = byte(i)
	}
	for i := 0; i < len(from); i++ {
		table[from[i]] = to[i]
	}
	return func(b []byte) {
		for i, c := range b {
			b[i] = table[c]
		}
	}, nil
}

// ASCIIUpper maps a-z to A-Z and leaves every other byte alone.
func ASCIIUpper(b []byte) {
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
}

// ASCIILower maps A-Z to a-z and leaves every other byte alone.
func ASCIILower(b []byte) {
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
}

// Fill returns a mutation overwriting every byte with c.
func Fill(c byte) func(b []byte) {
	return func(b []byte) {
		for i := range b {
			b[i] = c
		}
	}
}

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

// With runs fn on the raw bytes of t and returns its result.
//
// fn receives t's own storage (no copy), with a length fixed to t.Len(). It
// is called exactly once, synchronously, and must not keep the slice after it
// returns. Appending to the slice never writes into t: its capacity is clipped
// to its length.
//
// When fn returns, the bytes are validated:
//
//   - valid: With returns fn's result.
//   - invalid: the bytes from the first invalid offset to the end are set to
//     0x00 (the valid prefix is kept) and With panics with an
//     *InvariantViolation. That is a bug in fn, not a runtime condition.
//
// When fn panics, every byte of t is set to 0x00 and the panic propagates
// unchanged: With never recovers it and never panics on its own in that case.
// runtime.Goexit is handled like a panic.
//
// t must not be nil. With may be nested, as long as the inner call works on a
// different buffer.
func With[R any](t MutableText, fn func(b []byte) R) R {
	return WithBytes(t.UnsafeBytes(), fn)
}

// WithBytes is With for a plain byte slice that the caller knows holds valid
// UTF-8 and owns exclusively for the duration of the call.
func WithBytes[R any](b []byte, fn func(b []byte) R) R {
	r, err := guarded(b, fn)
	if err != nil {
		panic(&InvariantViolation{Err: err})
	}
	return r
}

// Do is With for transformations that produce no result.
func Do(t MutableText, fn func(b []byte)) {
	With(t, func(b []byte) struct{} {
		fn(b)
		return struct{}{}
	})
}

// Try is like With but returns the *InvariantViolation as an error instead of
// panicking. On error, the returned R is the zero value and t has already been
// sanitized.
//
// Panics raised by fn are not affected: they propagate unchanged, exactly as
// with With.
func Try[R any](t MutableText, fn func(b []byte) R) (R, error) {
	r, err := guarded(t.UnsafeBytes(), fn)
	if err != nil {
		var zero R
		return zero, &InvariantViolation{Err: err}
	}
	return r, nil
}

// guard restores the UTF-8 invariant of a byte view when its scope exits.
//
// completed starts false: unless fn is seen returning, it is assumed to have
// failed.
type guard struct {
	bytes     []byte
	completed bool
}

// exit never panics, so it cannot hide a panic that is unwinding through it.
func (g *guard) exit() *InvalidUTF8Error {
	if !g.completed {
		// Nothing is known about how far fn got.
		clear(g.bytes)
		return nil
	}
	off, size, ok := firstInvalid(g.bytes)
	if ok {
		return nil
	}
	// The prefix has just been checked, only the tail is suspect.
	clear(g.bytes[off:])
	return &InvalidUTF8Error{ValidUpTo: off, ErrorLen: size}
}

// guarded holds the whole protocol. The violation is returned rather than
// raised so that callers raise it from the normal-completion path only.
func guarded[R any](b []byte, fn func(b []byte) R) (r R, violation *InvalidUTF8Error) {
	g := guard{bytes: b[:len(b):len(b)]}
	defer func() {
		violation = g.exit()
	}()
	r = fn(g.bytes)
	g.completed = true
	return r, nil
}

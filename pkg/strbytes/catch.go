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

// Catch runs fn and returns the *InvariantViolation it panicked with, if any.
//
// It is meant for code that calls With several layers down and wants an
// error at its own boundary. Any other panic value is re-raised as is, so
// transformation failures still reach the caller unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if v, ok := r.(*InvariantViolation); ok {
			err = v
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

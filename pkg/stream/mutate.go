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

package stream

import (
	"context"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/strbytes/pkg/strbytes"
)

// Mutation edits the bytes of one line in place.
type Mutation func(b []byte)

// Mutate returns a stage applying m to every line through strbytes.Try.
//
//   - Lines that already carry an error are forwarded untouched.
//   - When m leaves invalid UTF-8, the line keeps its valid prefix, the rest
//     is zeroed and the *strbytes.InvariantViolation is stored in Line.Err.
//   - When m panics, the line has been zero-filled by the guard; the panic
//     stops the stage (see Async).
//
// A nil m makes Mutate a pass-through stage.
func Mutate(m Mutation) ProcessorFunc {
	return func(ctx context.Context, in <-chan Line) <-chan Line {
		return Async(ctx, in, func(l Line) Line {
			if l.Err != nil || m == nil {
				return l
			}
			_, err := strbytes.Try(l.Text, func(b []byte) struct{} {
				m(b)
				return struct{}{}
			})
			if err != nil {
				Logger().Warn("mutation left invalid utf-8",
					zap.Int("line", l.Index),
					zap.Error(err))
				return l.WithError(err)
			}
			return l
		})
	}
}

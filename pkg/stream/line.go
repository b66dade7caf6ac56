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

import "github.com/benoit-pereira-da-silva/strbytes/pkg/strbytes"

// Line is the carrier flowing through a pipeline.
//
// Text always holds valid UTF-8. Index is the token sequence number assigned
// by ReaderSource. Err is a per-line error carried as data: the stream keeps
// going, and stages skip lines that already carry one.
type Line struct {
	Text  *strbytes.Text
	Index int
	Err   error
}

func (l Line) String() string {
	return l.Text.String()
}

// WithError returns a copy of l carrying err.
func (l Line) WithError(err error) Line {
	l.Err = err
	return l
}

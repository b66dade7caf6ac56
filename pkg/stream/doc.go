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

// Package stream applies guarded byte mutations to a stream of lines.
//
// It uses a channel + context pipeline model: a ReaderSource turns an
// io.Reader into a channel of Lines, Processors (Mutate, Chain, any
// ProcessorFunc) transform that channel, and the caller drains the output.
//
// Every mutation goes through strbytes.Try, so a line never holds invalid
// UTF-8 between two stages. Failures are reported two ways:
//
//   - a mutation that breaks the encoding: Line.Err, the stream continues.
//   - a mutation that panics: the PanicStore in the context, the stage stops.
package stream

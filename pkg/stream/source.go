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
	"bufio"
	"bytes"
	"context"
	"io"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/strbytes/pkg/strbytes"
)

// ReaderSource scans an io.Reader into a stream of Lines.
//
// Tokenization is controlled by a bufio.SplitFunc (default: ScanLines, which
// keeps the end-of-line marker so the output can be written back verbatim).
//
// The reader is not trusted to hold valid UTF-8. A token that is not valid
// is sanitized on entry (zeroed from its first invalid byte) and the Line
// carries the *strbytes.InvalidUTF8Error, so no invalid text ever enters
// the pipeline.
//
//	src := stream.NewReaderSource(os.Stdin)
//	out := stream.Mutate(m).Apply(ctx, src.Lines(ctx))
//	for l := range out { /* ... */ }
//	if err := src.Err(); err != nil { /* read error */ }
type ReaderSource struct {
	reader    io.Reader
	splitFunc bufio.SplitFunc
	maxToken  int
	err       error
}

// NewReaderSource returns a source reading r with ScanLines.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{
		reader:    r,
		splitFunc: ScanLines,
	}
}

// SetSplitFunc customizes the tokenization. It must be called before Lines.
func (s *ReaderSource) SetSplitFunc(split bufio.SplitFunc) {
	s.splitFunc = split
}

// SetMaxTokenSize raises the scanner's token limit (bufio.MaxScanTokenSize by
// default). It must be called before Lines.
func (s *ReaderSource) SetMaxTokenSize(n int) {
	s.maxToken = n
}

// Lines starts scanning in a goroutine and returns the stream of lines.
//
// The channel is closed at EOF, on a read error, or when ctx is done.
func (s *ReaderSource) Lines(ctx context.Context) <-chan Line {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, ps := EnsurePanicStore(ctx)

	scanner := bufio.NewScanner(s.reader)
	if s.splitFunc != nil {
		scanner.Split(s.splitFunc)
	}
	if s.maxToken > 0 {
		scanner.Buffer(nil, s.maxToken)
	}

	out := make(chan Line)
	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				ps.Store(r, debug.Stack())
				Logger().Error("reader source panicked", zap.Any("panic", r))
			}
		}()

		for index := 0; ; index++ {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if !scanner.Scan() {
				s.err = scanner.Err()
				return
			}

			line := newLine(bytes.Clone(scanner.Bytes()), index)

			select {
			case <-ctx.Done():
				return
			case out <- line:
			}
		}
	}()
	return out
}

// Err returns the first non-EOF error met while scanning. It is only
// meaningful once the channel returned by Lines has been closed.
func (s *ReaderSource) Err() error {
	return s.err
}

func newLine(b []byte, index int) Line {
	err := strbytes.Sanitize(b)
	if err != nil {
		Logger().Debug("invalid utf-8 in input", zap.Int("line", index), zap.Error(err))
	}
	return Line{
		Text:  strbytes.MustText(b),
		Index: index,
		Err:   err,
	}
}

// ScanLines is a bufio.SplitFunc returning each line of text with its
// trailing end-of-line marker (unlike bufio.ScanLines, "\r\n" and "\n" are
// kept). The last line may have no marker.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

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
	"runtime/debug"
)

// Processor is a chainable pipeline stage.
//
// Implementations read lines from in, send processed lines on the returned
// channel, stop when ctx is done, close the returned channel when finished
// and never close in. The returned channel must be non-nil.
type Processor interface {
	Apply(ctx context.Context, in <-chan Line) <-chan Line
}

// ProcessorFunc is a function adapter that implements Processor.
type ProcessorFunc func(ctx context.Context, in <-chan Line) <-chan Line

// Apply calls f(ctx, in).
//
// If f panics (including when f is nil) or returns a nil channel, the fault
// is recorded in the PanicStore carried by ctx and a closed channel is
// returned.
func (f ProcessorFunc) Apply(ctx context.Context, in <-chan Line) (out <-chan Line) {
	ctx, ps := EnsurePanicStore(ctx)

	defer func() {
		if r := recover(); r != nil {
			ps.Store(r, debug.Stack())
			out = closedChan[Line]()
		}
	}()

	out = f(ctx, in)
	if out == nil {
		ps.Store("stream: ProcessorFunc returned a nil channel", debug.Stack())
		out = closedChan[Line]()
	}
	return out
}

// Chain composes processors after f, left to right. Nil processors are
// ignored.
func (f ProcessorFunc) Chain(p ...Processor) ProcessorFunc {
	return NewChain(append([]Processor{f}, p...)...).Apply
}

// Chain is a Processor running several processors sequentially.
//
//	chain := stream.NewChain(stream.Mutate(upper), stream.Mutate(dashes))
//	out := chain.Apply(ctx, src.Lines(ctx))
type Chain struct {
	processors []Processor
}

func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Apply wires the processors into a linear pipeline and returns the output of
// the last one. With no processors, in is returned unchanged.
func (c *Chain) Apply(ctx context.Context, in <-chan Line) <-chan Line {
	out := in
	for _, p := range c.processors {
		if p == nil {
			continue
		}
		out = p.Apply(ctx, out)
	}
	return out
}

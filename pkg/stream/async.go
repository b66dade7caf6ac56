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

	"go.uber.org/zap"
)

// Async starts a single-worker streaming "map" stage.
//
// It consumes values from in, applies f to each one and sends the results on
// the returned channel.
//
// Streaming contract:
//
//   - Async never closes in. The upstream stage owns it.
//   - Async closes the returned channel exactly once.
//   - The worker exits when ctx is done, when in is closed, or when f panics.
//   - Every receive and every send also watches ctx.Done(), so a consumer that
//     stops early must cancel ctx to release upstream goroutines.
//
// The returned channel is unbuffered: a slow consumer slows the pipeline
// down instead of growing memory.
//
// A panic raised by f is recovered, stored in the PanicStore carried by ctx
// (one is attached to an internal context if ctx has none, so recovery is
// never silent) and logged. The panic is not re-raised: the stage stops and
// closes its output. The pipeline supervisor must check the store.
func Async[T1 any, T2 any](ctx context.Context, in <-chan T1, f func(t T1) T2) <-chan T2 {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, ps := EnsurePanicStore(ctx)
	ctx, cancel := context.WithCancel(ctx)

	out := make(chan T2)
	go func() {
		defer close(out)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				ps.Store(r, debug.Stack())
				Logger().Error("stream stage panicked", zap.Any("panic", r))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}

				res := f(v)

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}()
	return out
}

// closedChan returns a channel that is already closed.
func closedChan[T any]() <-chan T {
	ch := make(chan T)
	close(ch)
	return ch
}

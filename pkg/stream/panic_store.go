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
	"sync"
)

// PanicInfo holds a panic recovered at a stage boundary.
//
// Value is the value passed to panic(...), untouched. Stack is captured in
// the recovering goroutine.
//
// When the panic comes from a Mutation, the guarded call has already
// zero-filled the line by the time the panic reaches the stage: recording it
// here never exposes invalid UTF-8.
type PanicInfo struct {
	Value any
	Stack []byte
}

// PanicStore keeps the first panic recovered by the stages of a pipeline.
//
// Store is write-once: the first call wins. Load is safe to call
// concurrently with Store and returns a copy of the stack.
type PanicStore struct {
	once sync.Once
	mu   sync.Mutex
	info PanicInfo
	set  bool
}

// Store records the first panic. It is a no-op on a nil store.
func (ps *PanicStore) Store(value any, stack []byte) {
	if ps == nil {
		return
	}
	ps.once.Do(func() {
		var stackCopy []byte
		if len(stack) > 0 {
			stackCopy = make([]byte, len(stack))
			copy(stackCopy, stack)
		}

		ps.mu.Lock()
		ps.info = PanicInfo{Value: value, Stack: stackCopy}
		ps.set = true
		ps.mu.Unlock()
	})
}

// Load returns the stored panic, if any.
func (ps *PanicStore) Load() (PanicInfo, bool) {
	if ps == nil {
		return PanicInfo{}, false
	}

	ps.mu.Lock()
	info := ps.info
	ok := ps.set
	ps.mu.Unlock()

	if !ok {
		return PanicInfo{}, false
	}
	if len(info.Stack) > 0 {
		stackCopy := make([]byte, len(info.Stack))
		copy(stackCopy, info.Stack)
		info.Stack = stackCopy
	}
	return info, true
}

type panicStoreKey struct{}

// WithPanicStore returns a derived context carrying a new PanicStore, plus
// the store. A nil parent falls back to context.Background().
//
// Attach the store at the pipeline boundary and check it once the output has
// been drained:
//
//	ctx, ps := stream.WithPanicStore(ctx)
//	out := stream.Mutate(m).Apply(ctx, src.Lines(ctx))
//	lines, _ := stream.Collect(ctx, out)
//	if info, ok := ps.Load(); ok {
//	    // the mutation panicked on some line
//	}
func WithPanicStore(parent context.Context) (context.Context, *PanicStore) {
	if parent == nil {
		parent = context.Background()
	}
	ps := &PanicStore{}
	return context.WithValue(parent, panicStoreKey{}, ps), ps
}

// PanicStoreFromContext returns the store attached to ctx, or nil.
func PanicStoreFromContext(ctx context.Context) *PanicStore {
	if ctx == nil {
		return nil
	}
	ps, _ := ctx.Value(panicStoreKey{}).(*PanicStore)
	return ps
}

// EnsurePanicStore returns ctx and its store, attaching a new one when ctx
// has none.
func EnsurePanicStore(ctx context.Context) (context.Context, *PanicStore) {
	if ps := PanicStoreFromContext(ctx); ps != nil {
		return ctx, ps
	}
	return WithPanicStore(ctx)
}

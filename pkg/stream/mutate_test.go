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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benoit-pereira-da-silva/strbytes/pkg/strbytes"
)

func dashes(b []byte) {
	for i, c := range b {
		if c == ' ' {
			b[i] = '-'
		}
	}
}

func linesOf(texts ...string) <-chan Line {
	ch := make(chan Line, len(texts))
	for i, s := range texts {
		ch <- Line{Text: strbytes.NewText(s), Index: i}
	}
	close(ch)
	return ch
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestMutate_AppliesToEveryLine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out := Mutate(dashes).Apply(ctx, linesOf("Lorem ipsum", "dolor sit amet"))
	lines, err := Collect(ctx, out)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Lorem-ipsum", lines[0].String())
	assert.Equal(t, "dolor-sit-amet", lines[1].String())
	assert.NoError(t, lines[0].Err)
	assert.NoError(t, lines[1].Err)
}

func TestMutate_ViolationIsCarriedByTheLine(t *testing.T) {
	logs := observe(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	corrupt := func(b []byte) {
		if len(b) > 1 {
			b[1] = 0xC0
		}
	}

	out := Mutate(corrupt).Apply(ctx, linesOf("abc", "x", "def"))
	lines, err := Collect(ctx, out)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "a\x00\x00", lines[0].String())
	assert.Equal(t, "x", lines[1].String())
	assert.Equal(t, "d\x00\x00", lines[2].String())

	var violation *strbytes.InvariantViolation
	require.True(t, errors.As(lines[0].Err, &violation))
	assert.Equal(t, 1, violation.Offset())
	assert.NoError(t, lines[1].Err)
	assert.ErrorIs(t, lines[2].Err, strbytes.ErrInvalidUTF8)

	warnings := logs.FilterMessage("mutation left invalid utf-8").All()
	require.Len(t, warnings, 2)
	assert.Equal(t, int64(0), warnings[0].ContextMap()["line"])
	assert.Equal(t, int64(2), warnings[1].ContextMap()["line"])
}

func TestMutate_SkipsLinesWithErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	in := make(chan Line, 1)
	in <- Line{Text: strbytes.NewText("a b"), Err: errors.New("upstream")}
	close(in)

	lines, err := Collect(ctx, Mutate(dashes).Apply(ctx, in))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "a b", lines[0].String())
	assert.EqualError(t, lines[0].Err, "upstream")
}

func TestMutate_PanicZeroFillsAndStopsStage(t *testing.T) {
	logs := observe(t)
	base, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ctx, ps := WithPanicStore(base)

	victim := Line{Text: strbytes.NewText("abc")}
	in := make(chan Line, 2)
	in <- victim
	in <- Line{Text: strbytes.NewText("never"), Index: 1}
	close(in)

	out := Mutate(func([]byte) { panic("Oh no") }).Apply(ctx, in)
	lines, err := Collect(base, out)
	require.NoError(t, err)
	assert.Empty(t, lines)

	info, ok := ps.Load()
	require.True(t, ok)
	assert.Equal(t, "Oh no", info.Value)
	assert.Equal(t, "\x00\x00\x00", victim.String())
	assert.Equal(t, 1, logs.FilterMessage("stream stage panicked").Len())
}

func TestMutate_NilMutationIsPassThrough(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	lines, err := Collect(ctx, Mutate(nil).Apply(ctx, linesOf("a b")))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "a b", lines[0].String())
}

func TestChain_RunsStagesInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	upperA := func(b []byte) {
		for i, c := range b {
			if c == 'a' {
				b[i] = 'A'
			}
		}
	}
	dashToA := func(b []byte) {
		for i, c := range b {
			if c == '-' {
				b[i] = 'a'
			}
		}
	}

	p := Mutate(dashes).Chain(Mutate(upperA), nil, Mutate(dashToA))
	lines, err := Collect(ctx, p.Apply(ctx, linesOf("a b c")))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Aabac", lines[0].String())
}

func TestChain_Empty(t *testing.T) {
	in := linesOf("x")
	assert.Equal(t, in, NewChain().Apply(context.Background(), in))
}

func TestProcessorFunc_NilChannelIsRecorded(t *testing.T) {
	ctx, ps := WithPanicStore(context.Background())

	var broken ProcessorFunc = func(context.Context, <-chan Line) <-chan Line { return nil }
	out := broken.Apply(ctx, linesOf("x"))
	require.NotNil(t, out)

	_, open := <-out
	assert.False(t, open)

	info, ok := ps.Load()
	require.True(t, ok)
	assert.Equal(t, "stream: ProcessorFunc returned a nil channel", info.Value)
}

func TestProcessorFunc_NilFuncIsRecorded(t *testing.T) {
	ctx, ps := WithPanicStore(context.Background())

	var nilFunc ProcessorFunc
	out := nilFunc.Apply(ctx, linesOf("x"))
	_, open := <-out
	assert.False(t, open)

	_, ok := ps.Load()
	assert.True(t, ok)
}

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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/strbytes/internal/bytemap"
	"github.com/benoit-pereira-da-silva/strbytes/pkg/stream"
)

var errInvalidLines = errors.New("invalid utf-8")

func (a *app) trCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tr FROM TO [file]",
		Short: "Translate bytes of FROM into the bytes of TO at the same position",
		Long: `Translate bytes of FROM into the bytes of TO at the same position.

FROM and TO accept Go escape sequences (\t, \xC3, ...) and must have the
same number of bytes. A translation that breaks a multi-byte character is
reported, and the broken line is printed with everything from the first
invalid byte replaced by NUL bytes.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := unescape(args[0])
			if err != nil {
				return fmt.Errorf("FROM: %w", err)
			}
			to, err := unescape(args[1])
			if err != nil {
				return fmt.Errorf("TO: %w", err)
			}
			m, err := bytemap.Translate(from, to)
			if err != nil {
				return err
			}
			return a.process(cmd, inputArg(args, 2), m, true)
		},
	}
}

func (a *app) caseCmd(name, short string) *cobra.Command {
	m := bytemap.ASCIIUpper
	if name == "lower" {
		m = bytemap.ASCIILower
	}
	return &cobra.Command{
		Use:   name + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.process(cmd, inputArg(args, 0), m, true)
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report the lines that are not valid UTF-8",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.process(cmd, inputArg(args, 0), nil, false)
		},
	}
}

// process streams the input through m and writes the resulting lines when
// emit is set. Lines carrying an error are reported on stderr.
func (a *app) process(cmd *cobra.Command, path string, m stream.Mutation, emit bool) error {
	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	ctx, ps := stream.WithPanicStore(ctx)

	src := stream.NewReaderSource(in)
	out := stream.Mutate(m).Apply(ctx, src.Lines(ctx))

	w := bufio.NewWriter(cmd.OutOrStdout())
	failures, lines := 0, 0
	for l := range out {
		lines++
		if emit {
			if _, err := w.Write(l.Text.UnsafeBytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		if l.Err == nil {
			continue
		}
		failures++
		fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", l.Index+1, l.Err)
		if a.cfg.FailFast {
			break
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if info, ok := ps.Load(); ok {
		a.logger.Error("mutation panicked", zap.Any("panic", info.Value), zap.ByteString("stack", info.Stack))
		return fmt.Errorf("mutation panicked: %v", info.Value)
	}
	if failures > 0 {
		return fmt.Errorf("%w on %d line(s)", errInvalidLines, failures)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	a.logger.Info("done", zap.String("command", cmd.Name()), zap.Int("lines", lines))
	return nil
}

func inputArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// unescape interprets Go escape sequences in s.
func unescape(s string) (string, error) {
	return strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
}

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

// Command strbytes edits UTF-8 text in place, line by line, at the byte level.
//
// Every edit goes through strbytes.Try, so the output is always valid UTF-8:
// a line the edit breaks is printed with its valid prefix, the rest zeroed,
// and reported on stderr.
//
// Usage:
//
//	strbytes tr ' ' '-' < in.txt
//	strbytes upper notes.txt
//	strbytes check --fail-fast dump.txt
package main

import (
	"fmt"
	"os"

	"github.com/gregwebs/go-recovery"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/strbytes/internal/config"
	"github.com/benoit-pereira-da-silva/strbytes/internal/logging"
	"github.com/benoit-pereira-da-silva/strbytes/pkg/stream"
)

func main() {
	err := recovery.Call(func() error {
		root, err := newRootCmd()
		if err != nil {
			return err
		}
		return root.Execute()
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "strbytes: %v\n", err)
		os.Exit(1)
	}
}

// app holds what the subcommands share once PersistentPreRunE has run.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() (*cobra.Command, error) {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "strbytes",
		Short:         "Edit UTF-8 text in place without ever emitting invalid UTF-8",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cfg, cmd.ErrOrStderr())
			stream.SetLogger(a.logger)

			recovery.ErrorHandler = func(err error) {
				a.logger.Error("unhandled panic recovered", zap.Error(err))
			}
			return nil
		},
	}
	if err := config.BindFlags(a.v, root.PersistentFlags()); err != nil {
		return nil, err
	}

	root.AddCommand(
		a.trCmd(),
		a.caseCmd("upper", "Map ASCII letters to upper case"),
		a.caseCmd("lower", "Map ASCII letters to lower case"),
		a.checkCmd(),
	)
	return root, nil
}

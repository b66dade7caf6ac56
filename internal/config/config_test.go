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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func load(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	v := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(args))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel)
	assert.Equal(t, FormatConsole, cfg.LogFormat)
	assert.False(t, cfg.FailFast)
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := load(t, "--log-level=debug", "--log-format=JSON", "--fail-fast")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.True(t, cfg.FailFast)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STRBYTES_LOG_LEVEL", "error")
	t.Setenv("STRBYTES_FAIL_FAST", "true")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, cfg.LogLevel)
	assert.True(t, cfg.FailFast)
}

func TestLoad_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("STRBYTES_LOG_LEVEL", "error")

	cfg, err := load(t, "--log-level=info")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strbytes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-format: json\nfail-fast: true\n"), 0o600))

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.True(t, cfg.FailFast)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := load(t, "--log-level=loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = load(t, "--log-format=xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

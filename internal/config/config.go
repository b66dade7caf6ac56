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

// Package config loads the strbytes CLI settings.
//
// Values are resolved by viper in its usual order: flags bound with
// BindFlags, STRBYTES_* environment variables, the optional config file,
// then the defaults below.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyFailFast  = "fail-fast"
	KeyConfig    = "config"

	FormatConsole = "console"
	FormatJSON    = "json"

	envPrefix = "STRBYTES"
)

var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the resolved CLI configuration.
type Config struct {
	LogLevel  zapcore.Level
	LogFormat string
	// FailFast stops processing at the first line that ends up invalid.
	FailFast bool
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, FormatConsole)
	v.SetDefault(KeyFailFast, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the persistent CLI flags on fs and binds them to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(KeyLogLevel, "warn", "log level (debug, info, warn, error)")
	fs.String(KeyLogFormat, FormatConsole, "log format (console or json)")
	fs.Bool(KeyFailFast, false, "stop at the first line left with invalid utf-8")
	fs.String(KeyConfig, "", "optional config file (yaml, json or toml)")

	for _, key := range []string{KeyLogLevel, KeyLogFormat, KeyFailFast, KeyConfig} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the optional config file and resolves the configuration.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyLogLevel, err)
	}

	format := strings.ToLower(v.GetString(KeyLogFormat))
	switch format {
	case FormatConsole, FormatJSON:
	default:
		return Config{}, fmt.Errorf("%w: %s: %q", ErrInvalidConfig, KeyLogFormat, format)
	}

	return Config{
		LogLevel:  level,
		LogFormat: format,
		FailFast:  v.GetBool(KeyFailFast),
	}, nil
}

// Copyright 2025 The flowcls Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides leveled logging with key value context on top of zap.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

// Logger describes the logger interface.
type Logger interface {
	// New returns a logger with the given context attached to every entry.
	New(ctx ...interface{}) Logger
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

// Config configures the logging backend.
type Config struct {
	Console ConsoleConfig
}

// ConsoleConfig configures the console logging destination.
type ConsoleConfig struct {
	// Level of console logging (debug, info, error). Defaults to info.
	Level string
}

var root Logger = newLogger(zap.NewNop())

// Setup configures the logging backend according to cfg. It must be called
// before the first use of any logging function in this package.
func Setup(cfg Config) error {
	level := cfg.Console.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return serrors.Wrap("parsing log level", err, "level", level)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	root = newLogger(zap.New(core))
	return nil
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// New returns a logger adding the given context to the root logger.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...interface{}) {
	root.Debug(msg, ctx...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...interface{}) {
	root.Info(msg, ctx...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...interface{}) {
	root.Error(msg, ctx...)
}

type logger struct {
	logger *zap.Logger
}

func newLogger(l *zap.Logger) *logger {
	return &logger{logger: l}
}

func (l *logger) New(ctx ...interface{}) Logger {
	return newLogger(l.logger.With(convertCtx(ctx)...))
}

func (l *logger) Debug(msg string, ctx ...interface{}) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...interface{}) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...interface{}) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func convertCtx(ctx []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, zap.Any(fmtKey(ctx[i]), ctx[i+1]))
	}
	return fields
}

func fmtKey(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return "UNFORMATTABLE_KEY"
}

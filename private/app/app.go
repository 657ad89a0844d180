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

// Package app provides helpers for command line applications.
package app

import (
	"errors"

	"github.com/flowcls/flowcls/pkg/log"
)

// SetupLog sets up the logging backend with the given console level.
func SetupLog(level string) error {
	return log.Setup(log.Config{
		Console: log.ConsoleConfig{Level: level},
	})
}

type exitCodeError struct {
	err  error
	code int
}

func (e exitCodeError) Error() string { return e.err.Error() }

func (e exitCodeError) Unwrap() error { return e.err }

// WithExitCode attaches an exit code to an error. The code can be recovered
// with ExitCode.
func WithExitCode(err error, code int) error {
	return exitCodeError{err: err, code: code}
}

// ExitCode returns the exit code attached to the error, or -1 if there is
// none.
func ExitCode(err error) int {
	var e exitCodeError
	if errors.As(err, &e) {
		return e.code
	}
	return -1
}

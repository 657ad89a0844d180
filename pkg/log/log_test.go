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

package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcls/flowcls/pkg/log"
)

func TestSetup(t *testing.T) {
	assert.NoError(t, log.Setup(log.Config{}))
	assert.NoError(t, log.Setup(log.Config{
		Console: log.ConsoleConfig{Level: "debug"},
	}))
	assert.Error(t, log.Setup(log.Config{
		Console: log.ConsoleConfig{Level: "not-a-level"},
	}))
}

func TestFromCtx(t *testing.T) {
	assert.Equal(t, log.Root(), log.FromCtx(context.Background()))

	l := log.New("component", "test")
	ctx := log.CtxWith(context.Background(), l)
	assert.Equal(t, l, log.FromCtx(ctx))
}

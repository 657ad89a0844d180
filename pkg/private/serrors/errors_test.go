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

package serrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

func TestNew(t *testing.T) {
	err := serrors.New("parse failed", "clause", "vlan_id", "value", 5000)
	assert.Equal(t, "parse failed {clause=vlan_id; value=5000}", err.Error())

	plain := serrors.New("parse failed")
	assert.Equal(t, "parse failed", plain.Error())
	assert.NotErrorIs(t, err, plain)
}

func TestWrap(t *testing.T) {
	cause := errors.New("strconv out of range")
	err := serrors.Wrap("illegal handle", cause, "handle", "0xzz")
	assert.Equal(t, "illegal handle {handle=0xzz}: strconv out of range", err.Error())
	assert.ErrorIs(t, err, cause)
}

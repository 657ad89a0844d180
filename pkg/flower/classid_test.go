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

package flower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcls/flowcls/pkg/flower"
)

func TestParseClassID(t *testing.T) {
	tests := map[string]struct {
		input     string
		want      uint32
		assertErr assert.ErrorAssertionFunc
	}{
		"root":            {"root", flower.HandleRoot, assert.NoError},
		"none":            {"none", flower.HandleNone, assert.NoError},
		"major and minor": {"100:5", 0x01000005, assert.NoError},
		"major only":      {"ffff:", 0xffff0000, assert.NoError},
		"minor only":      {":8000", 0x00008000, assert.NoError},
		"bare hex":        {"10005", 0x00010005, assert.NoError},
		"major overflow":  {"10000:1", 0, assert.Error},
		"minor overflow":  {"1:10000", 0, assert.Error},
		"not hex":         {"1:xyz", 0, assert.Error},
		"empty":           {"", 0, assert.Error},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := flower.ParseClassID(tc.input)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatClassID(t *testing.T) {
	tests := map[uint32]string{
		flower.HandleRoot: "root",
		flower.HandleNone: "none",
		0x01000005:        "100:5",
		0xffff0000:        "ffff:",
		0x00008000:        ":8000",
	}
	for handle, want := range tests {
		assert.Equal(t, want, flower.FormatClassID(handle))
	}
}

func TestClassIDRoundTrip(t *testing.T) {
	for _, s := range []string{"root", "1:2", "ffff:ffff", ":1", "1:"} {
		h, err := flower.ParseClassID(s)
		require.NoError(t, err)
		got, err := flower.ParseClassID(flower.FormatClassID(h))
		require.NoError(t, err)
		assert.Equal(t, h, got, "input %q", s)
	}
}

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

package names_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcls/flowcls/pkg/names"
)

func TestLoadReaderForms(t *testing.T) {
	const database = `# classid registry
100:5 webtraffic
0x1000006 bulk       # hex form
16777223 interactive
ff:ffff besteffort
`
	db, err := names.LoadReader(strings.NewReader(database))
	require.NoError(t, err)

	tests := map[uint32]string{
		0x01000005: "webtraffic",
		0x01000006: "bulk",
		0x01000007: "interactive",
		0x00ffffff: "besteffort",
	}
	for id, want := range tests {
		name, ok := db.IDToName(id)
		assert.True(t, ok, "id %#x", id)
		assert.Equal(t, want, name)
	}
}

func TestLoadReaderUnknownID(t *testing.T) {
	db, err := names.LoadReader(strings.NewReader("1:1 known\n"))
	require.NoError(t, err)

	name, ok := db.IDToName(42)
	assert.False(t, ok)
	assert.Equal(t, "42", name)
}

func TestLoadReaderCorrupt(t *testing.T) {
	tests := map[string]string{
		"missing name":    "100:5\n",
		"bad major":       "xx:5 a\n",
		"bad minor":       "100:xx a\n",
		"major too large": "10000:5 a\n",
		"bad hex":         "0xzz a\n",
		"bad decimal":     "12ab a\n",
	}
	for name, database := range tests {
		t.Run(name, func(t *testing.T) {
			db, err := names.LoadReader(strings.NewReader(database))
			assert.Error(t, err)
			assert.Nil(t, db)
		})
	}
}

func TestLoadReaderNegativeID(t *testing.T) {
	// Negative decimal identifiers are tolerated but do not register.
	db, err := names.LoadReader(strings.NewReader("-5 ignored\n7 kept\n"))
	require.NoError(t, err)

	_, ok := db.NameToID("ignored")
	assert.False(t, ok)
	id, ok := db.NameToID("kept")
	assert.True(t, ok)
	assert.Equal(t, uint32(7), id)
}

func TestLoadReaderDuplicateID(t *testing.T) {
	// The most recently loaded mapping wins, matching chain insertion at
	// the bucket head.
	db, err := names.LoadReader(strings.NewReader("1:1 first\n1:1 second\n"))
	require.NoError(t, err)

	name, ok := db.IDToName(0x00010001)
	assert.True(t, ok)
	assert.Equal(t, "second", name)
}

func TestNameToIDRepeatedLookup(t *testing.T) {
	db, err := names.LoadReader(strings.NewReader("100:5 webtraffic\n1:2 other\n"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		id, ok := db.NameToID("webtraffic")
		assert.True(t, ok)
		assert.Equal(t, uint32(0x01000005), id)
	}
	_, ok := db.NameToID("missing")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classids")
	require.NoError(t, os.WriteFile(path, []byte("100:5 webtraffic\n"), 0o644))

	db, err := names.Load(path)
	require.NoError(t, err)
	name, ok := db.IDToName(0x01000005)
	assert.True(t, ok)
	assert.Equal(t, "webtraffic", name)

	_, err = names.Load(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

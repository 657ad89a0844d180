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

package flower

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// refMask builds a mask bit by bit as the reference for the grouped
// construction.
func refMask(bits, size int) []byte {
	mask := make([]byte, size)
	for i := 0; i < bits; i++ {
		mask[i/8] |= 1 << uint(7-i%8)
	}
	return mask
}

func TestPrefixMask(t *testing.T) {
	for _, size := range []int{4, 16} {
		for bits := 0; bits <= size*8; bits++ {
			t.Run(fmt.Sprintf("%d/%d", bits, size*8), func(t *testing.T) {
				assert.Equal(t, refMask(bits, size), prefixMask(bits, size))
			})
		}
	}
}

func TestMaskBitsContiguous(t *testing.T) {
	for _, size := range []int{4, 6, 16} {
		for want := 0; want <= size*8; want++ {
			bits, class := MaskBits(refMask(want, size))
			assert.Equal(t, MaskContiguous, class, "size %d bits %d", size, want)
			assert.Equal(t, want, bits, "size %d", size)
		}
	}
}

func TestMaskBitsNoncontiguous(t *testing.T) {
	tests := map[string][]byte{
		"one after hole":       {0xff, 0x00, 0xff, 0x00},
		"leading zero bit":     {0x7f, 0xff, 0xff, 0xff},
		"single low bit":       {0x00, 0x00, 0x00, 0x01},
		"hole inside one byte": {0xff, 0xf7, 0x00, 0x00},
	}
	for name, mask := range tests {
		t.Run(name, func(t *testing.T) {
			_, class := MaskBits(mask)
			assert.Equal(t, MaskNoncontiguous, class)
		})
	}
}

func TestMaskBitsInvalid(t *testing.T) {
	_, class := MaskBits(nil)
	assert.Equal(t, MaskInvalid, class)
}

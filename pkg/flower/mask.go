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
	"encoding/binary"
)

// MaskClass classifies a bitmask scanned most-significant-bit first.
type MaskClass int

const (
	// MaskContiguous means all one bits form a single leading run. The
	// all-zero mask is contiguous with a count of zero.
	MaskContiguous MaskClass = iota
	// MaskNoncontiguous means a one bit follows a zero bit.
	MaskNoncontiguous
	// MaskInvalid means the mask is empty.
	MaskInvalid
)

// MaskBits counts the leading run of one bits in mask. The returned count is
// only meaningful for MaskContiguous.
func MaskBits(mask []byte) (int, MaskClass) {
	if len(mask) == 0 {
		return 0, MaskInvalid
	}
	bits := 0
	hole := false
	for _, b := range mask {
		for j := 7; j >= 0; j-- {
			if b>>uint(j)&1 == 1 {
				if hole {
					return 0, MaskNoncontiguous
				}
				bits++
			} else {
				hole = true
			}
		}
	}
	return bits, MaskContiguous
}

// prefixMask expands a prefix length into a network byte order bitmask of
// size bytes. size must be a multiple of four. bits must be in [0, 8*size].
func prefixMask(bits, size int) []byte {
	mask := make([]byte, size)
	for i := 0; i < size/4; i++ {
		switch {
		case bits == 0:
			// group fully beyond the prefix, leave zero
		case bits >= 32:
			binary.BigEndian.PutUint32(mask[i*4:], 0xffffffff)
			bits -= 32
		default:
			binary.BigEndian.PutUint32(mask[i*4:], uint32(0xffffffff)<<uint(32-bits))
			bits = 0
		}
	}
	return mask
}

// allOnes returns an all-ones mask of the given size.
func allOnes(size int) []byte {
	mask := make([]byte, size)
	for i := range mask {
		mask[i] = 0xff
	}
	return mask
}

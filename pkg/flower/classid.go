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
	"strconv"
	"strings"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

// Classifier handle values with special meaning.
const (
	HandleRoot uint32 = 0xffffffff
	HandleNone uint32 = 0
)

// ParseClassID parses a classifier handle of the form "major:minor" with
// both parts hexadecimal, a bare hexadecimal value, or one of the special
// names "root" and "none".
func ParseClassID(s string) (uint32, error) {
	switch s {
	case "root":
		return HandleRoot, nil
	case "none":
		return HandleNone, nil
	}
	maj, min, ok := strings.Cut(s, ":")
	if !ok {
		h, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, serrors.Wrap("invalid classid", err, "value", s)
		}
		return uint32(h), nil
	}
	var h uint64
	if maj != "" {
		v, err := strconv.ParseUint(maj, 16, 16)
		if err != nil {
			return 0, serrors.Wrap("invalid classid major", err, "value", s)
		}
		h = v << 16
	}
	if min != "" {
		v, err := strconv.ParseUint(min, 16, 16)
		if err != nil {
			return 0, serrors.Wrap("invalid classid minor", err, "value", s)
		}
		h |= v
	}
	return uint32(h), nil
}

// FormatClassID renders a classifier handle in the form accepted by
// ParseClassID.
func FormatClassID(h uint32) string {
	switch h {
	case HandleRoot:
		return "root"
	case HandleNone:
		return "none"
	}
	maj, min := h>>16, h&0xffff
	switch {
	case maj == 0:
		return fmt.Sprintf(":%x", min)
	case min == 0:
		return fmt.Sprintf("%x:", maj)
	default:
		return fmt.Sprintf("%x:%x", maj, min)
	}
}

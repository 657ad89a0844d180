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

// ActionParser encodes the action sub-language of a rule. Parse consumes as
// many of the given tokens as it needs and returns the encoded action blob
// together with the number of tokens consumed. The blob is stored verbatim
// under the action attribute.
type ActionParser interface {
	Parse(args []string) (blob []byte, consumed int, err error)
}

// ActionRenderer renders an encoded action blob for display.
type ActionRenderer interface {
	Render(blob []byte) string
}

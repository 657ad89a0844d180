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

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/flowcls/flowcls/pkg/private/serrors"
)

// rawAction is the action collaborator of the command line tool. It consumes
// a single hex encoded token and passes the bytes through as the opaque
// action blob.
type rawAction struct{}

func (rawAction) Parse(args []string) ([]byte, int, error) {
	if len(args) == 0 {
		return nil, 0, serrors.New("missing action bytes")
	}
	blob, err := hex.DecodeString(args[0])
	if err != nil {
		return nil, 0, serrors.Wrap("parsing action bytes", err)
	}
	return blob, 1, nil
}

func (rawAction) Render(blob []byte) string {
	return fmt.Sprintf("\n  action %s", hex.EncodeToString(blob))
}

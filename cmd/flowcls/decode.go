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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowcls/flowcls/pkg/flower"
	"github.com/flowcls/flowcls/pkg/names"
	"github.com/flowcls/flowcls/pkg/private/serrors"
)

func newDecodeCmd(cfg *config) *cobra.Command {
	var flags struct {
		handle    string
		namesFile string
	}

	cmd := &cobra.Command{
		Use:   "decode [flags] HEX",
		Short: "Decode a wire attribute blob into readable form",
		Example: `  flowcls decode 3000020008000100...
  flowcls decode --handle 0x1 --names /etc/iproute2/tc_cls 3000020008000100...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := hex.DecodeString(args[0])
			if err != nil {
				return serrors.Wrap("parsing attribute blob", err)
			}
			var handle uint64
			if flags.handle != "" {
				handle, err = strconv.ParseUint(flags.handle, 0, 32)
				if err != nil {
					return serrors.Wrap("parsing handle", err)
				}
			}
			cmd.SilenceUsage = true

			dec := flower.Decoder{Actions: rawAction{}}
			namesFile := flags.namesFile
			if namesFile == "" {
				namesFile = cfg.NamesFile
			}
			if namesFile != "" {
				db, err := names.Load(namesFile)
				if err != nil {
					return err
				}
				dec.Names = db
			}
			fmt.Fprintln(cmd.OutOrStdout(), dec.Decode(uint32(handle), options))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.handle, "handle", "", "filter handle")
	cmd.Flags().StringVar(&flags.namesFile, "names", "",
		"identifier registry used for classid names")
	return cmd
}

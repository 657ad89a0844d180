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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcls/flowcls/pkg/flower"
	"github.com/flowcls/flowcls/pkg/names"
	"github.com/flowcls/flowcls/pkg/private/serrors"
)

func newClassIDCmd(cfg *config) *cobra.Command {
	var flags struct {
		namesFile string
	}

	cmd := &cobra.Command{
		Use:   "classid [flags] (ID|NAME)...",
		Short: "Resolve classifier handles against the identifier registry",
		Example: `  flowcls classid --names /etc/iproute2/tc_cls 100:5
  flowcls classid --names /etc/iproute2/tc_cls webtraffic`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namesFile := flags.namesFile
			if namesFile == "" {
				namesFile = cfg.NamesFile
			}
			if namesFile == "" {
				return serrors.New("no identifier registry configured")
			}
			db, err := names.Load(namesFile)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			for _, arg := range args {
				if h, err := flower.ParseClassID(arg); err == nil {
					name, _ := db.IDToName(h)
					fmt.Fprintf(cmd.OutOrStdout(), "0x%x %s\n", h, name)
					continue
				}
				id, ok := db.NameToID(arg)
				if !ok {
					return serrors.New("name is not registered", "name", arg)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s 0x%x\n", arg, id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.namesFile, "names", "",
		"identifier registry file")
	return cmd
}

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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcls/flowcls/pkg/flower"
	"github.com/flowcls/flowcls/pkg/log"
	"github.com/flowcls/flowcls/pkg/private/serrors"
	"github.com/flowcls/flowcls/private/app"
)

func newEncodeCmd() *cobra.Command {
	var flags struct {
		protocol string
		handle   string
	}

	cmd := &cobra.Command{
		Use:   "encode [flags] [CLAUSE...]",
		Short: "Encode match clauses into the wire attribute blob",
		Example: `  flowcls encode --protocol ipv4 ip_proto tcp dst_port 80
  flowcls encode --protocol 802.1Q vlan_id 100 vlan_ethtype ipv6 src_ip 2001:db8::/48
  flowcls encode dst_mac aa:bb:cc:dd:ee:ff skip_sw`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ethType, err := flower.ParseEthType(flags.protocol)
			if err != nil {
				return serrors.Wrap("parsing protocol", err)
			}
			cmd.SilenceUsage = true

			enc := flower.Encoder{EthType: ethType, Actions: rawAction{}}
			flt, err := enc.Encode(flags.handle, args)
			if errors.Is(err, flower.ErrHelp) {
				fmt.Fprint(cmd.OutOrStdout(), flower.Usage())
				return nil
			}
			if err != nil {
				// Rule language errors are distinguishable from
				// infrastructure failures by exit code.
				return app.WithExitCode(err, 1)
			}
			log.Debug("Encoded rule",
				"handle", flt.Handle, "bytes", len(flt.Options))
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(flt.Options))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.protocol, "protocol", "ipv4",
		"outer ethertype (ipv4|ipv6|802.1Q|hex)")
	cmd.Flags().StringVar(&flags.handle, "handle", "", "filter handle")
	return cmd
}

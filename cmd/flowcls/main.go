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

// Command flowcls encodes and decodes flower packet classifier rules.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/flowcls/flowcls/private/app"
)

type config struct {
	Logging struct {
		Level string `toml:"level"`
	} `toml:"logging"`
	// NamesFile is the identifier registry used to render classid names.
	NamesFile string `toml:"names_file"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		if code := app.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var flags struct {
		config   string
		logLevel string
		noColor  bool
	}
	cfg := &config{}

	cmd := &cobra.Command{
		Use:           "flowcls",
		Short:         "flowcls translates flower classifier rules between text and wire form",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.config != "" {
				raw, err := os.ReadFile(flags.config)
				if err != nil {
					return fmt.Errorf("reading config: %w", err)
				}
				if err := toml.Unmarshal(raw, cfg); err != nil {
					return fmt.Errorf("parsing config: %w", err)
				}
			}
			if flags.logLevel != "" {
				cfg.Logging.Level = flags.logLevel
			}
			color.NoColor = color.NoColor || flags.noColor
			return app.SetupLog(cfg.Logging.Level)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.config, "config", "", "TOML configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log.level", "", "console log level")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(cfg),
		newClassIDCmd(cfg),
	)
	return cmd
}

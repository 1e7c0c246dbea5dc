// Copyright 2025 XRd Lab
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
	"os"

	"github.com/spf13/cobra"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/xrwizard/p2pwizard"
)

func newP2P(flags *rootFlags) *cobra.Command {
	var p2pFlags struct {
		format string
		yes    bool
	}
	cmd := &cobra.Command{
		Use:   "p2p",
		Short: "Number the point-to-point links with /31 IPv4 and /127 IPv6 subnets",
	}
	cmd.PersistentFlags().StringVar(&p2pFlags.format, "format", "table",
		"Output format (table|json)")
	cmd.PersistentFlags().BoolVarP(&p2pFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")

	wizardConfig := func() (p2pwizard.Config, error) {
		wcfg, err := setup(flags)
		if err != nil {
			return p2pwizard.Config{}, err
		}
		return p2pwizard.Config{
			Wizard:       wcfg,
			TopologyFile: flags.topologyFile,
		}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Compute and show the link numbering without touching any router",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(p2pFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := p2pwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printP2PPlan(cmd.OutOrStdout(), res, p2pFlags.format)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Number the links and push the interface addressing to the routers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(p2pFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := p2pwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := printP2PPlan(cmd.OutOrStdout(), res, p2pFlags.format); err != nil {
				return err
			}
			if !app.Confirm(cmd.OutOrStdout(), os.Stdin,
				"Push this configuration?", p2pFlags.yes) {

				return serrors.New("aborted")
			}
			reports := p2pwizard.Apply(cmd.Context(), cfg, res)
			return printReports(cmd.OutOrStdout(), reports)
		},
	})

	return cmd
}

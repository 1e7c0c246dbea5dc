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
	"github.com/xrdlab/xrwizard/xrwizard/noshutwizard"
)

func newNoShut(flags *rootFlags) *cobra.Command {
	var nsFlags struct {
		format string
		yes    bool
	}
	cmd := &cobra.Command{
		Use:   "noshut",
		Short: "Bring up the GigabitEthernet interfaces on every router",
	}
	cmd.PersistentFlags().StringVar(&nsFlags.format, "format", "table",
		"Output format (table|json)")
	cmd.PersistentFlags().BoolVarP(&nsFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")

	wizardConfig := func() (noshutwizard.Config, error) {
		wcfg, err := setup(flags)
		if err != nil {
			return noshutwizard.Config{}, err
		}
		return noshutwizard.Config{
			Wizard:       wcfg,
			TopologyFile: flags.topologyFile,
		}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Show the per-node interface lists without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(nsFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := noshutwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printNoShutPlan(cmd.OutOrStdout(), res, nsFlags.format)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Enable the discovered interfaces on the routers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(nsFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := noshutwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := printNoShutPlan(cmd.OutOrStdout(), res, nsFlags.format); err != nil {
				return err
			}
			if !app.Confirm(cmd.OutOrStdout(), os.Stdin,
				"Enable these interfaces?", nsFlags.yes) {

				return serrors.New("aborted")
			}
			reports := noshutwizard.Apply(cmd.Context(), cfg, res)
			return printReports(cmd.OutOrStdout(), reports)
		},
	})

	return cmd
}

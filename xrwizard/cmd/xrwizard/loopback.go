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
	"github.com/xrdlab/xrwizard/xrwizard/loopbackwizard"
)

func newLoopback(flags *rootFlags) *cobra.Command {
	var lbFlags struct {
		format string
		yes    bool
	}
	cmd := &cobra.Command{
		Use:   "loopback",
		Short: "Allocate and provision role-banded Loopback0 addresses",
	}
	cmd.PersistentFlags().StringVar(&lbFlags.format, "format", "table",
		"Output format (table|json)")
	cmd.PersistentFlags().BoolVarP(&lbFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")

	wizardConfig := func() (loopbackwizard.Config, error) {
		wcfg, err := setup(flags)
		if err != nil {
			return loopbackwizard.Config{}, err
		}
		return loopbackwizard.Config{
			Wizard:       wcfg,
			TopologyFile: flags.topologyFile,
		}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Compute and show the loopback allocation without touching any router",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(lbFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := loopbackwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printLoopbackPlan(cmd.OutOrStdout(), res, lbFlags.format)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Allocate loopbacks and push them to the routers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(lbFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := loopbackwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := printLoopbackPlan(cmd.OutOrStdout(), res, lbFlags.format); err != nil {
				return err
			}
			if !app.Confirm(cmd.OutOrStdout(), os.Stdin,
				"Push this configuration?", lbFlags.yes) {

				return serrors.New("aborted")
			}
			reports := loopbackwizard.Apply(cmd.Context(), cfg, res)
			return printReports(cmd.OutOrStdout(), reports)
		},
	})

	return cmd
}

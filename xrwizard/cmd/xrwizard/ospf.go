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
	"github.com/xrdlab/xrwizard/xrwizard/ospfwizard"
)

func newOSPF(flags *rootFlags) *cobra.Command {
	var ospfFlags struct {
		forceFallback bool
		verbose       bool
		format        string
		yes           bool
	}
	cmd := &cobra.Command{
		Use:   "ospf",
		Short: "Derive OSPF process and area placement from the topology",
	}
	cmd.PersistentFlags().BoolVar(&ospfFlags.forceFallback, "force-fallback", false,
		"Assign process 1, area 0.0.0.0 everywhere when no node matches a known role")
	cmd.PersistentFlags().BoolVar(&ospfFlags.verbose, "trace", false,
		"Log the rule decision for every link")
	cmd.PersistentFlags().StringVar(&ospfFlags.format, "format", "table",
		"Output format (table|json)")
	cmd.PersistentFlags().BoolVarP(&ospfFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")

	wizardConfig := func() (ospfwizard.Config, error) {
		wcfg, err := setup(flags)
		if err != nil {
			return ospfwizard.Config{}, err
		}
		return ospfwizard.Config{
			Wizard:        wcfg,
			TopologyFile:  flags.topologyFile,
			ForceFallback: ospfFlags.forceFallback,
			VerboseTrace:  ospfFlags.verbose,
		}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Compute and show the OSPF plan without touching any router",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(ospfFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := ospfwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if res.NeedsFallback() && !cfg.ForceFallback {
				return serrors.New("no node matched a known role; " +
					"re-run with --force-fallback for a flat single-area design")
			}
			return printOSPFPlan(cmd.OutOrStdout(), res, ospfFlags.format)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Compute the OSPF plan and push it to the routers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(ospfFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := ospfwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if res.NeedsFallback() && !cfg.ForceFallback {
				return serrors.New("no node matched a known role; " +
					"re-run with --force-fallback for a flat single-area design")
			}
			if err := printOSPFPlan(cmd.OutOrStdout(), res, ospfFlags.format); err != nil {
				return err
			}
			if !app.Confirm(cmd.OutOrStdout(), os.Stdin,
				"Push this configuration?", ospfFlags.yes) {

				return serrors.New("aborted")
			}
			reports := ospfwizard.Apply(cmd.Context(), cfg, res)
			return printReports(cmd.OutOrStdout(), reports)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "wipe",
		Short: "Discover and remove all configured OSPF processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(ospfFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := ospfwizard.PlanWipe(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := printOSPFWipe(cmd.OutOrStdout(), res, ospfFlags.format); err != nil {
				return err
			}
			if !app.Confirm(cmd.OutOrStdout(), os.Stdin,
				"Remove these processes?", ospfFlags.yes) {

				return serrors.New("aborted")
			}
			reports := ospfwizard.ApplyWipe(cmd.Context(), cfg, res)
			return printReports(cmd.OutOrStdout(), reports)
		},
	})

	return cmd
}

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
	"github.com/xrdlab/xrwizard/xrwizard/bgpwizard"
)

func newBGP(flags *rootFlags) *cobra.Command {
	var bgpFlags struct {
		asn           uint32
		includeCE     bool
		forceFallback bool
		verbose       bool
		format        string
		yes           bool
	}
	cmd := &cobra.Command{
		Use:   "bgp",
		Short: "Derive the hierarchical iBGP route-reflector peering from node roles",
	}
	cmd.PersistentFlags().Uint32Var(&bgpFlags.asn, "as", 0,
		"Autonomous system number (default: from the configuration file)")
	cmd.PersistentFlags().BoolVar(&bgpFlags.includeCE, "include-ce", false,
		"Attach CE nodes as clients of the access-tier reflectors")
	cmd.PersistentFlags().BoolVar(&bgpFlags.forceFallback, "force-fallback", false,
		"Build a flat full mesh when no node matches a known role")
	cmd.PersistentFlags().BoolVar(&bgpFlags.verbose, "trace", false,
		"Log the tier decision for every node")
	cmd.PersistentFlags().StringVar(&bgpFlags.format, "format", "table",
		"Output format (table|json)")
	cmd.PersistentFlags().BoolVarP(&bgpFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt")

	wizardConfig := func() (bgpwizard.Config, error) {
		wcfg, err := setup(flags)
		if err != nil {
			return bgpwizard.Config{}, err
		}
		if bgpFlags.asn != 0 {
			wcfg.BGP.ASN = bgpFlags.asn
		}
		return bgpwizard.Config{
			Wizard:        wcfg,
			TopologyFile:  flags.topologyFile,
			IncludeCE:     bgpFlags.includeCE,
			ForceFallback: bgpFlags.forceFallback,
			VerboseTrace:  bgpFlags.verbose,
		}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Compute and show the iBGP plan without touching any router",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(bgpFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := bgpwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if res.NeedsFallback() && !cfg.ForceFallback {
				return serrors.New("no node matched a known role; " +
					"re-run with --force-fallback for a flat full mesh")
			}
			return printBGPPlan(cmd.OutOrStdout(), res, bgpFlags.format)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Compute the iBGP plan and push it to the routers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(bgpFlags.format); err != nil {
				return err
			}
			cfg, err := wizardConfig()
			if err != nil {
				return err
			}
			res, err := bgpwizard.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if res.NeedsFallback() && !cfg.ForceFallback {
				return serrors.New("no node matched a known role; " +
					"re-run with --force-fallback for a flat full mesh")
			}
			if err := printBGPPlan(cmd.OutOrStdout(), res, bgpFlags.format); err != nil {
				return err
			}
			if !app.Confirm(cmd.OutOrStdout(), os.Stdin,
				"Push this configuration?", bgpFlags.yes) {

				return serrors.New("aborted")
			}
			reports := bgpwizard.Apply(cmd.Context(), cfg, res)
			return printReports(cmd.OutOrStdout(), reports)
		},
	})

	return cmd
}

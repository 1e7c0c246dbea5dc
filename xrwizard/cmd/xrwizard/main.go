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

// xrwizard derives and pushes control-plane configuration (OSPF
// process/area placement, hierarchical iBGP) for the XRd routers of a
// containerlab lab, purely from the node naming convention and the
// topology's link list.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootFlags are the persistent flags shared by all commands.
type rootFlags struct {
	configFile   string
	topologyFile string
	logLevel     string
	noColor      bool
}

func main() {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "xrwizard",
		Short:         "Topology-driven OSPF and iBGP configuration for containerlab XRd routers",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "",
		"Wizard configuration file (TOML)")
	cmd.PersistentFlags().StringVarP(&flags.topologyFile, "topology", "t", "",
		"Containerlab topology file (default: the single *.clab.yml in the current directory)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log.level", "info",
		"Console logging level (debug|info|error)")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false,
		"Disable colored output")

	cmd.AddCommand(
		newOSPF(&flags),
		newBGP(&flags),
		newLoopback(&flags),
		newP2P(&flags),
		newNoShut(&flags),
		newVersion(),
	)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

func newVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the xrwizard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "xrwizard", version)
		},
	}
}

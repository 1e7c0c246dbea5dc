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

// Package render turns plan objects into Cisco XR configuration line
// blocks. It owns no wire format beyond the XR CLI syntax; delivery is
// the device package's concern.
package render

import (
	"fmt"
)

// DefaultRouterID is used when a node has no discovered Loopback0.
const DefaultRouterID = "1.1.1.1"

// OSPFNodeInput is what the OSPF renderer needs for one node. The
// caller flattens the plan so this package does not depend on the
// planner types.
type OSPFNodeInput struct {
	RouterID  string
	Processes []int
	Passive   []string
	Links     []OSPFLinkInput
}

// OSPFLinkInput is one assigned link, oriented with the rendered node
// as the local end.
type OSPFLinkInput struct {
	Process    int
	Area       string
	LocalIface string
}

// OSPFNode renders the configuration block enabling OSPF on one node:
// one stanza per member process with passive interfaces, then one
// area/interface stanza per assigned link.
func OSPFNode(in OSPFNodeInput) []string {
	rid := in.RouterID
	if rid == "" {
		rid = DefaultRouterID
	}
	var lines []string
	for _, pid := range in.Processes {
		lines = append(lines,
			fmt.Sprintf("router ospf %d", pid),
			fmt.Sprintf(" router-id %s", rid),
			" mpls ldp sync",
			" area 0.0.0.0",
			"  network point-to-point",
		)
		for _, iface := range in.Passive {
			lines = append(lines,
				fmt.Sprintf("  interface %s", iface),
				"   passive enable",
			)
		}
		lines = append(lines, "  !")
	}
	for _, l := range in.Links {
		lines = append(lines,
			fmt.Sprintf("router ospf %d", l.Process),
			fmt.Sprintf(" area %s", l.Area),
			fmt.Sprintf("  interface %s", l.LocalIface),
			" !",
		)
	}
	return lines
}

// WipeOSPF renders the removal list for the discovered processes.
func WipeOSPF(processIDs []int) []string {
	lines := make([]string, 0, len(processIDs))
	for _, id := range processIDs {
		lines = append(lines, fmt.Sprintf("no router ospf %d", id))
	}
	return lines
}

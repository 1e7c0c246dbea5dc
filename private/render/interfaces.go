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

package render

import (
	"fmt"
)

// P2PInterfaceInput is one numbered link end.
type P2PInterfaceInput struct {
	Iface         string
	NeighborNode  string
	NeighborIface string
	IPv4          string
	IPv6          string
}

// P2PInterface renders the addressing block for one link end. The /31
// mask and /127 prefix length are fixed by the allocation scheme.
func P2PInterface(in P2PInterfaceInput) []string {
	return []string{
		fmt.Sprintf("interface %s", in.Iface),
		fmt.Sprintf(" description To neighbor %s %s", in.NeighborNode, in.NeighborIface),
		fmt.Sprintf(" ipv4 address %s 255.255.255.254", in.IPv4),
		fmt.Sprintf(" ipv6 address %s/127", in.IPv6),
		" no shutdown",
		"!",
	}
}

// NoShut renders the enablement block for the given interfaces.
func NoShut(ifaces []string) []string {
	var lines []string
	for _, iface := range ifaces {
		lines = append(lines,
			fmt.Sprintf("interface %s", iface),
			" no shutdown",
			"!",
		)
	}
	return lines
}

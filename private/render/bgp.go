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

// Names of the rendered label-allocation policy objects.
const (
	SelfPrefixSet    = "LOOPBACK0-SELF"
	LabelRoutePolicy = "LABEL-LOOPBACK0"
)

// BGPNodeInput is what the BGP renderer needs for one node.
type BGPNodeInput struct {
	ASN      uint32
	RouterID string
	// LabelScope is the node's own Loopback0 /32; labeled-unicast
	// allocation is restricted to exactly this prefix.
	LabelScope string
	Password   string
	Peers      []BGPPeerInput
}

// BGPPeerInput is one neighbor statement.
type BGPPeerInput struct {
	Addr        string
	Group       string
	Description string
}

// BGPNode renders one node's iBGP stanza: the label-allocation policy
// scoped to the node's own loopback, the neighbor groups, and the
// per-peer statements.
func BGPNode(in BGPNodeInput) []string {
	var lines []string

	// Self-scope label policy first; the BGP stanza references it.
	lines = append(lines,
		fmt.Sprintf("prefix-set %s", SelfPrefixSet),
		fmt.Sprintf("  %s", in.LabelScope),
		"end-set",
		fmt.Sprintf("route-policy %s", LabelRoutePolicy),
		fmt.Sprintf("  if destination in %s then", SelfPrefixSet),
		"    pass",
		"  endif",
		"end-policy",
	)

	lines = append(lines,
		fmt.Sprintf("router bgp %d", in.ASN),
		" nsr",
		" timers bgp 30 90",
		fmt.Sprintf(" bgp router-id %s", in.RouterID),
		" bgp graceful-restart restart-time 120",
		" bgp graceful-restart graceful-reset",
		" bgp graceful-restart stalepath-time 360",
		" bgp log neighbor changes detail",
		" ibgp policy out enforce-modifications",
		" address-family ipv4 unicast",
		fmt.Sprintf("  network %s", in.LabelScope),
		fmt.Sprintf("  allocate-label route-policy %s", LabelRoutePolicy),
		" !",
		" address-family vpnv4 unicast",
		"  nexthop trigger-delay critical 0",
		" !",
		" address-family vpnv6 unicast",
		"  nexthop trigger-delay critical 0",
		" !",
	)

	lines = append(lines,
		" neighbor-group RR-Mesh",
		fmt.Sprintf("  remote-as %d", in.ASN),
		fmt.Sprintf("  password clear %s", in.Password),
		"  update-source Loopback0",
		"  !",
		"  address-family ipv4 labeled-unicast",
		"  !",
		"  address-family vpnv4 unicast",
		"  !",
		"  address-family vpnv6 unicast",
		"  !",
		" !",
		" neighbor-group RR-Client",
		fmt.Sprintf("  remote-as %d", in.ASN),
		fmt.Sprintf("  password clear %s", in.Password),
		"  update-source Loopback0",
		"  !",
		"  address-family ipv4 labeled-unicast",
		"   route-reflector-client",
		"   next-hop-self",
		"  !",
		"  address-family vpnv4 unicast",
		"   multipath",
		"   route-reflector-client",
		"  !",
		"  address-family vpnv6 unicast",
		"   multipath",
		"   route-reflector-client",
		"  !",
		" !",
	)

	for _, p := range in.Peers {
		lines = append(lines,
			fmt.Sprintf(" neighbor %s", p.Addr),
			fmt.Sprintf("  use neighbor-group %s", p.Group),
			fmt.Sprintf("  description %s", p.Description),
			" !",
		)
	}
	lines = append(lines, "!")
	return lines
}

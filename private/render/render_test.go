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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSPFNode(t *testing.T) {
	t.Parallel()
	lines := OSPFNode(OSPFNodeInput{
		RouterID:  "1.1.1.3",
		Processes: []int{1, 10},
		Passive:   []string{"Loopback0"},
		Links: []OSPFLinkInput{
			{Process: 1, Area: "0.0.0.0", LocalIface: "GigabitEthernet0/0/0/0"},
			{Process: 10, Area: "0.0.0.10", LocalIface: "GigabitEthernet0/0/0/1"},
		},
	})
	cfg := strings.Join(lines, "\n")

	// One stanza per member process, router-id and passive loopback in
	// each.
	assert.Equal(t, 2, strings.Count(cfg, " router-id 1.1.1.3"))
	assert.Contains(t, cfg, "router ospf 1\n")
	assert.Contains(t, cfg, "router ospf 10\n")
	assert.Equal(t, 2, strings.Count(cfg, "interface Loopback0"))
	assert.Equal(t, 2, strings.Count(cfg, "passive enable"))
	assert.Contains(t, cfg, " mpls ldp sync")

	// Per-link area/interface stanzas.
	assert.Contains(t, cfg, " area 0.0.0.10\n  interface GigabitEthernet0/0/0/1")
	assert.Contains(t, cfg, " area 0.0.0.0\n  interface GigabitEthernet0/0/0/0")
}

func TestOSPFNodeDefaultRouterID(t *testing.T) {
	t.Parallel()
	lines := OSPFNode(OSPFNodeInput{Processes: []int{1}})
	assert.Contains(t, strings.Join(lines, "\n"), " router-id "+DefaultRouterID)
}

func TestWipeOSPF(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		[]string{"no router ospf 1", "no router ospf 10"},
		WipeOSPF([]int{1, 10}))
	assert.Empty(t, WipeOSPF(nil))
}

func TestBGPNode(t *testing.T) {
	t.Parallel()
	lines := BGPNode(BGPNodeInput{
		ASN:        65000,
		RouterID:   "1.1.1.3",
		LabelScope: "1.1.1.3/32",
		Password:   "hurz123",
		Peers: []BGPPeerInput{
			{Addr: "1.1.1.1", Group: "RR-Mesh", Description: "to crr1 Loopback0 1.1.1.1"},
			{Addr: "1.1.1.51", Group: "RR-Client", Description: "to dh1 Loopback0 1.1.1.51"},
		},
	})
	cfg := strings.Join(lines, "\n")

	// The label policy admits exactly the node's own loopback.
	assert.Contains(t, cfg, "prefix-set LOOPBACK0-SELF\n  1.1.1.3/32\nend-set")
	assert.Contains(t, cfg, "allocate-label route-policy LABEL-LOOPBACK0")
	assert.Contains(t, cfg, "  network 1.1.1.3/32")

	assert.Contains(t, cfg, "router bgp 65000")
	assert.Contains(t, cfg, " bgp router-id 1.1.1.3")
	assert.Contains(t, cfg, " timers bgp 30 90")
	assert.Equal(t, 2, strings.Count(cfg, "  password clear hurz123"))
	assert.Contains(t, cfg, " neighbor-group RR-Mesh")
	assert.Contains(t, cfg, " neighbor-group RR-Client")
	// Only the client group reflects.
	assert.Equal(t, 3, strings.Count(cfg, "route-reflector-client"))

	assert.Contains(t, cfg, " neighbor 1.1.1.1\n  use neighbor-group RR-Mesh")
	assert.Contains(t, cfg, " neighbor 1.1.1.51\n  use neighbor-group RR-Client")
	assert.Contains(t, cfg, "  description to dh1 Loopback0 1.1.1.51")
}

func TestLoopback(t *testing.T) {
	t.Parallel()
	lines := Loopback(LoopbackInput{
		Iface: "Loopback0",
		IPv4:  "1.1.1.4",
		IPv6:  "fd00::4",
	})
	assert.Equal(t, []string{
		"interface Loopback0",
		" ipv4 address 1.1.1.4 255.255.255.255",
		" ipv6 address fd00::4/128",
		" no shutdown",
		"!",
	}, lines)
}

func TestP2PInterface(t *testing.T) {
	t.Parallel()
	lines := P2PInterface(P2PInterfaceInput{
		Iface:         "GigabitEthernet0/0/0/1",
		NeighborNode:  "cc1",
		NeighborIface: "GigabitEthernet0/0/0/2",
		IPv4:          "10.10.10.2",
		IPv6:          "fc00::a0a:a02",
	})
	assert.Equal(t, []string{
		"interface GigabitEthernet0/0/0/1",
		" description To neighbor cc1 GigabitEthernet0/0/0/2",
		" ipv4 address 10.10.10.2 255.255.255.254",
		" ipv6 address fc00::a0a:a02/127",
		" no shutdown",
		"!",
	}, lines)
}

func TestNoShut(t *testing.T) {
	t.Parallel()
	lines := NoShut([]string{
		"GigabitEthernet0/0/0/0",
		"GigabitEthernet0/0/0/1",
	})
	assert.Equal(t, []string{
		"interface GigabitEthernet0/0/0/0",
		" no shutdown",
		"!",
		"interface GigabitEthernet0/0/0/1",
		" no shutdown",
		"!",
	}, lines)
	assert.Empty(t, NoShut(nil))
}

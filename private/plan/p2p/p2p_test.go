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

package p2p

import (
	"fmt"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrdlab/xrwizard/private/topology"
)

func TestAllocate(t *testing.T) {
	t.Parallel()
	links := []topology.Link{
		{LocalNode: "cr1", LocalIface: "GigabitEthernet0/0/0/1",
			NeighborNode: "cc1", NeighborIface: "GigabitEthernet0/0/0/1"},
		{LocalNode: "cc1", LocalIface: "GigabitEthernet0/0/0/2",
			NeighborNode: "dh1", NeighborIface: "GigabitEthernet0/0/0/1"},
	}
	got, err := Allocate(links)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Consecutive /31s, in link order.
	assert.Equal(t, netip.MustParsePrefix("10.10.10.0/31"), got[0].Subnet)
	assert.Equal(t, netip.MustParseAddr("10.10.10.0"), got[0].LocalIPv4)
	assert.Equal(t, netip.MustParseAddr("10.10.10.1"), got[0].NeighborIPv4)
	assert.Equal(t, netip.MustParsePrefix("10.10.10.2/31"), got[1].Subnet)
	assert.Equal(t, netip.MustParseAddr("10.10.10.2"), got[1].LocalIPv4)
	assert.Equal(t, netip.MustParseAddr("10.10.10.3"), got[1].NeighborIPv4)

	// IPv6 is the IPv4 embedded in the low 32 bits of fc00::/7.
	assert.Equal(t, netip.MustParseAddr("fc00::a0a:a00"), got[0].LocalIPv6)
	assert.Equal(t, netip.MustParseAddr("fc00::a0a:a01"), got[0].NeighborIPv6)
	assert.Equal(t, netip.MustParseAddr("fc00::a0a:a03"), got[1].NeighborIPv6)

	// Addresses stay oriented like the link.
	assert.Equal(t, links[1], got[1].Link)
}

func TestAllocateDeterministic(t *testing.T) {
	t.Parallel()
	var links []topology.Link
	for i := 0; i < 10; i++ {
		links = append(links, topology.Link{
			LocalNode:    fmt.Sprintf("cr%d", i),
			LocalIface:   "GigabitEthernet0/0/0/1",
			NeighborNode: fmt.Sprintf("cc%d", i), NeighborIface: "GigabitEthernet0/0/0/1",
		})
	}
	first, err := Allocate(links)
	require.NoError(t, err)
	second, err := Allocate(links)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second,
		cmpopts.EquateComparable(netip.Addr{}, netip.Prefix{})))
}

func TestAllocatePoolExhausted(t *testing.T) {
	t.Parallel()
	var links []topology.Link
	for i := 0; i < 129; i++ {
		links = append(links, topology.Link{
			LocalNode:    fmt.Sprintf("a%d", i),
			LocalIface:   "GigabitEthernet0/0/0/1",
			NeighborNode: fmt.Sprintf("b%d", i), NeighborIface: "GigabitEthernet0/0/0/1",
		})
	}
	_, err := Allocate(links)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestEmbed6(t *testing.T) {
	t.Parallel()
	assert.Equal(t, netip.MustParseAddr("fc00::a0a:a7f"),
		Embed6(netip.MustParseAddr("10.10.10.127")))
}

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

package device

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoopback0(t *testing.T) {
	t.Parallel()
	out := `interface Loopback0
 ipv4 address 1.1.1.4 255.255.255.255
 ipv6 address fd00::4/128
!`
	addr, err := ParseLoopback0(out)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("1.1.1.4"), addr)
}

func TestParseLoopback0Missing(t *testing.T) {
	t.Parallel()
	out := `interface Loopback0
 description unconfigured
!`
	_, err := ParseLoopback0(out)
	assert.ErrorIs(t, err, ErrNoLoopback)
}

func TestParseOSPFProcessIDs(t *testing.T) {
	testCases := map[string]struct {
		Output string
		IDs    []int
	}{
		"multiple": {
			Output: "router ospf 1\nrouter ospf 10\nrouter ospf 100\n",
			IDs:    []int{1, 10, 100},
		},
		"duplicates collapse": {
			Output: "router ospf 10\nrouter ospf 10\n",
			IDs:    []int{10},
		},
		"prompt noise ignored": {
			Output: "RP/0/RP0/CPU0:cc1#show running-config router ospf | include router ospf\nrouter ospf 1\n",
			IDs:    []int{1},
		},
		"none": {
			Output: "% No such configuration item(s)\n",
			IDs:    nil,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.IDs, ParseOSPFProcessIDs(tc.Output))
		})
	}
}

func TestParseGigabitInterfaces(t *testing.T) {
	t.Parallel()
	out := `Interface                      IP-Address      Status          Protocol Vrf-Name
Loopback0                      1.1.1.4         Up              Up       default
GigabitEthernet0/0/0/0         unassigned      Shutdown        Down     default
GigabitEthernet0/0/0/1         10.10.10.2      Up              Up       default
MgmtEth0/RP0/CPU0/0            172.20.20.4     Up              Up       default
`
	got := ParseGigabitInterfaces(out)
	assert.Equal(t, []string{
		"GigabitEthernet0/0/0/0",
		"GigabitEthernet0/0/0/1",
	}, got)
}

func TestParseGigabitInterfacesNone(t *testing.T) {
	t.Parallel()
	out := `Interface                      IP-Address      Status          Protocol Vrf-Name
Loopback0                      1.1.1.4         Up              Up       default
`
	assert.Nil(t, ParseGigabitInterfaces(out))
}

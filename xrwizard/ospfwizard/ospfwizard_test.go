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

package ospfwizard_test

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/xrwizard/ospfwizard"
)

const inspectOutput = `{
  "corelab": [
    {"name": "clab-corelab-cc1", "kind": "cisco_xrd", "ipv4_address": "172.20.20.2/24"},
    {"name": "clab-corelab-cr1", "kind": "cisco_xrd", "ipv4_address": "172.20.20.3/24"},
    {"name": "clab-corelab-dh1", "kind": "cisco_xrd", "ipv4_address": "172.20.20.4/24"},
    {"name": "clab-corelab-host1", "kind": "linux", "ipv4_address": "172.20.20.9/24"}
  ]
}`

const topologyFile = `
name: corelab
topology:
  links:
    - endpoints: ["cc1:Gi0-0-0-1", "cr1:Gi0-0-0-1"]
    - endpoints: ["cr1:Gi0-0-0-2", "dh1:Gi0-0-0-1"]
    - endpoints: ["dh1:Gi0-0-0-9", "host1:eth1"]
`

func fakeInspect(ctx context.Context) ([]byte, error) {
	return []byte(inspectOutput), nil
}

// labDialer fakes device sessions: it answers loopback discovery from a
// fixed address table and records configuration pushes.
type labDialer struct {
	mu        sync.Mutex
	loopbacks map[netip.Addr]string
	pushed    map[netip.Addr][]string
}

func newLabDialer() *labDialer {
	return &labDialer{
		loopbacks: map[netip.Addr]string{
			netip.MustParseAddr("172.20.20.2"): "1.1.1.1",
			netip.MustParseAddr("172.20.20.3"): "1.1.1.2",
			netip.MustParseAddr("172.20.20.4"): "1.1.1.51",
		},
		pushed: make(map[netip.Addr][]string),
	}
}

func (d *labDialer) Dial(ctx context.Context, host netip.Addr) (device.Session, error) {
	loopback, ok := d.loopbacks[host]
	if !ok {
		return nil, serrors.New("unreachable", "host", host)
	}
	return &labSession{dialer: d, host: host, loopback: loopback}, nil
}

type labSession struct {
	dialer   *labDialer
	host     netip.Addr
	loopback string
}

func (s *labSession) Run(ctx context.Context, cmd string) (string, error) {
	switch {
	case strings.Contains(cmd, "interface Loopback0"):
		if s.loopback == "" {
			return "interface Loopback0\n!", nil
		}
		return fmt.Sprintf("interface Loopback0\n ipv4 address %s 255.255.255.255\n!",
			s.loopback), nil
	case strings.Contains(cmd, "include router ospf"):
		return "router ospf 1\nrouter ospf 10\n", nil
	default:
		return "", nil
	}
}

func (s *labSession) Configure(ctx context.Context, lines []string) error {
	s.dialer.mu.Lock()
	defer s.dialer.mu.Unlock()
	s.dialer.pushed[s.host] = append(s.dialer.pushed[s.host], lines...)
	return nil
}

func (s *labSession) Close() error { return nil }

func writeTopology(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corelab.clab.yml")
	require.NoError(t, os.WriteFile(path, []byte(topologyFile), 0o644))
	return path
}

func testConfig(t *testing.T, dialer device.Dialer) ospfwizard.Config {
	t.Helper()
	return ospfwizard.Config{
		Wizard:       config.Default(),
		TopologyFile: writeTopology(t),
		Inspect:      fakeInspect,
		Dialer:       dialer,
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()
	dialer := newLabDialer()
	res, err := ospfwizard.Plan(context.Background(), testConfig(t, dialer))
	require.NoError(t, err)

	assert.Equal(t, "corelab", res.Lab)
	assert.False(t, res.NeedsFallback())
	assert.Empty(t, res.Warnings)
	// The linux host is filtered out along with its link.
	require.Len(t, res.Topology.Nodes, 3)
	require.Len(t, res.Plan.Links, 2)
	assert.Equal(t, 1, res.Plan.Links[0].Process)
	assert.Equal(t, 10, res.Plan.Links[1].Process)

	// Discovered loopbacks become router-ids.
	for _, na := range res.Plan.Nodes {
		assert.True(t, na.RouterID.IsValid(), na.Node)
	}
}

func TestPlanDiscoveryWarning(t *testing.T) {
	t.Parallel()
	dialer := newLabDialer()
	delete(dialer.loopbacks, netip.MustParseAddr("172.20.20.4"))

	res, err := ospfwizard.Plan(context.Background(), testConfig(t, dialer))
	require.NoError(t, err)
	// Discovery failure is a warning, not a fatal error; the node plans
	// without a router-id.
	require.Len(t, res.Warnings, 1)
	for _, na := range res.Plan.Nodes {
		if na.Node == "dh1" {
			assert.False(t, na.RouterID.IsValid())
		}
	}
}

func TestApply(t *testing.T) {
	t.Parallel()
	dialer := newLabDialer()
	cfg := testConfig(t, dialer)
	res, err := ospfwizard.Plan(context.Background(), cfg)
	require.NoError(t, err)

	reports := ospfwizard.Apply(context.Background(), cfg, res)
	require.Len(t, reports, 3)
	for _, r := range reports {
		assert.NoError(t, r.Err, r.Node)
	}

	pushed := dialer.pushed[netip.MustParseAddr("172.20.20.2")]
	cfgText := strings.Join(pushed, "\n")
	assert.Contains(t, cfgText, "router ospf 1")
	assert.Contains(t, cfgText, " router-id 1.1.1.1")
	assert.Contains(t, cfgText, "  interface GigabitEthernet0/0/0/1")
}

func TestWipe(t *testing.T) {
	t.Parallel()
	dialer := newLabDialer()
	cfg := testConfig(t, dialer)
	res, err := ospfwizard.PlanWipe(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Nodes, 3)
	assert.Equal(t, []int{1, 10}, res.Nodes[0].Processes)

	reports := ospfwizard.ApplyWipe(context.Background(), cfg, res)
	require.Len(t, reports, 3)
	pushed := dialer.pushed[netip.MustParseAddr("172.20.20.3")]
	assert.Equal(t, []string{"no router ospf 1", "no router ospf 10"}, pushed)
}

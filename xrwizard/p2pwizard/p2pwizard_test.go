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

package p2pwizard_test

import (
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/xrwizard/p2pwizard"
)

const inspectOutput = `{
  "p2plab": [
    {"name": "clab-p2plab-cr1", "kind": "cisco_xrd", "ipv4_address": "172.20.20.2/24"},
    {"name": "clab-p2plab-cc1", "kind": "cisco_xrd", "ipv4_address": "172.20.20.3/24"},
    {"name": "clab-p2plab-dh1", "kind": "cisco_xrd", "ipv4_address": "172.20.20.4/24"}
  ]
}`

const topologyFile = `
name: p2plab
topology:
  links:
    - endpoints: ["cr1:Gi0-0-0-1", "cc1:Gi0-0-0-1"]
    - endpoints: ["cc1:Gi0-0-0-2", "dh1:Gi0-0-0-1"]
`

func fakeInspect(ctx context.Context) ([]byte, error) {
	return []byte(inspectOutput), nil
}

type recordingDialer struct {
	mu     sync.Mutex
	pushed map[netip.Addr][]string
}

func (d *recordingDialer) Dial(ctx context.Context, host netip.Addr) (device.Session, error) {
	return &recordingSession{dialer: d, host: host}, nil
}

type recordingSession struct {
	dialer *recordingDialer
	host   netip.Addr
}

func (s *recordingSession) Run(ctx context.Context, cmd string) (string, error) {
	return "", nil
}

func (s *recordingSession) Configure(ctx context.Context, lines []string) error {
	s.dialer.mu.Lock()
	defer s.dialer.mu.Unlock()
	s.dialer.pushed[s.host] = append(s.dialer.pushed[s.host], lines...)
	return nil
}

func (s *recordingSession) Close() error { return nil }

func testConfig(t *testing.T, dialer device.Dialer) p2pwizard.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "p2plab.clab.yml")
	require.NoError(t, os.WriteFile(path, []byte(topologyFile), 0o644))
	return p2pwizard.Config{
		Wizard:       config.Default(),
		TopologyFile: path,
		Inspect:      fakeInspect,
		Dialer:       dialer,
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()
	res, err := p2pwizard.Plan(context.Background(), testConfig(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "p2plab", res.Lab)
	require.Len(t, res.Assignments, 2)

	first := res.Assignments[0]
	assert.Equal(t, "cr1", first.Link.LocalNode)
	assert.Equal(t, "GigabitEthernet0/0/0/1", first.Link.LocalIface)
	assert.Equal(t, "10.10.10.0/31", first.Subnet.String())
	assert.Equal(t, "10.10.10.0", first.LocalIPv4.String())
	assert.Equal(t, "10.10.10.1", first.NeighborIPv4.String())

	second := res.Assignments[1]
	assert.Equal(t, "10.10.10.2/31", second.Subnet.String())
	assert.Equal(t, "fc00::a0a:a02", second.LocalIPv6.String())
}

func TestApply(t *testing.T) {
	t.Parallel()
	dialer := &recordingDialer{pushed: make(map[netip.Addr][]string)}
	cfg := testConfig(t, dialer)
	res, err := p2pwizard.Plan(context.Background(), cfg)
	require.NoError(t, err)

	reports := p2pwizard.Apply(context.Background(), cfg, res)
	require.Len(t, reports, 3)
	for _, r := range reports {
		assert.NoError(t, r.Err, r.Node)
	}

	// cc1 sits on both links, so its unit numbers both interfaces.
	pushed := strings.Join(dialer.pushed[netip.MustParseAddr("172.20.20.3")], "\n")
	assert.Contains(t, pushed, "interface GigabitEthernet0/0/0/1")
	assert.Contains(t, pushed, " description To neighbor cr1 GigabitEthernet0/0/0/1")
	assert.Contains(t, pushed, " ipv4 address 10.10.10.1 255.255.255.254")
	assert.Contains(t, pushed, " ipv6 address fc00::a0a:a01/127")
	assert.Contains(t, pushed, "interface GigabitEthernet0/0/0/2")
	assert.Contains(t, pushed, " description To neighbor dh1 GigabitEthernet0/0/0/1")
	assert.Contains(t, pushed, " ipv4 address 10.10.10.2 255.255.255.254")
	assert.Contains(t, pushed, " no shutdown")

	// cr1 only has the one link end.
	cr1 := strings.Join(dialer.pushed[netip.MustParseAddr("172.20.20.2")], "\n")
	assert.Contains(t, cr1, " ipv4 address 10.10.10.0 255.255.255.254")
	assert.NotContains(t, cr1, "GigabitEthernet0/0/0/2")
}

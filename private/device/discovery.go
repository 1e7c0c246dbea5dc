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
	"context"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
)

// ErrNoLoopback reports that a router has no IPv4 address configured
// under Loopback0.
var ErrNoLoopback = serrors.New("no Loopback0 IPv4 address configured")

var (
	loopbackRE    = regexp.MustCompile(`ipv4 address (\d+\.\d+\.\d+\.\d+)`)
	ospfProcessRE = regexp.MustCompile(`router ospf (\d+)`)
)

// Loopback0 reads the Loopback0 IPv4 address off the running
// configuration. Returns ErrNoLoopback if none is configured.
func Loopback0(ctx context.Context, s Session) (netip.Addr, error) {
	out, err := s.Run(ctx, "show running-config interface Loopback0")
	if err != nil {
		return netip.Addr{}, err
	}
	return ParseLoopback0(out)
}

// ParseLoopback0 extracts the first ipv4 address line from Loopback0
// running configuration output.
func ParseLoopback0(out string) (netip.Addr, error) {
	for _, line := range strings.Split(out, "\n") {
		if m := loopbackRE.FindStringSubmatch(line); m != nil {
			addr, err := netip.ParseAddr(m[1])
			if err != nil {
				return netip.Addr{}, serrors.Wrap("parsing loopback address", err)
			}
			return addr, nil
		}
	}
	return netip.Addr{}, ErrNoLoopback
}

// GigabitInterfaces lists a router's GigabitEthernet interfaces off
// the brief interface table, used to build the enablement list.
func GigabitInterfaces(ctx context.Context, s Session) ([]string, error) {
	out, err := s.Run(ctx, "show ip int brief")
	if err != nil {
		return nil, err
	}
	return ParseGigabitInterfaces(out), nil
}

// ParseGigabitInterfaces extracts GigabitEthernet interface names from
// show ip int brief output, in order of appearance.
func ParseGigabitInterfaces(out string) []string {
	var ifaces []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.HasPrefix(fields[0], "GigabitEthernet") {
			ifaces = append(ifaces, fields[0])
		}
	}
	return ifaces
}

// OSPFProcessIDs discovers configured OSPF process IDs, used by the
// wipe command to build the per-node removal list.
func OSPFProcessIDs(ctx context.Context, s Session) ([]int, error) {
	// The prompt timestamp would pollute the include filter output.
	if _, err := s.Run(ctx, "terminal exec prompt no-timestamp"); err != nil {
		return nil, err
	}
	out, err := s.Run(ctx, "show running-config router ospf | include router ospf")
	if err != nil {
		return nil, err
	}
	return ParseOSPFProcessIDs(out), nil
}

// ParseOSPFProcessIDs extracts OSPF process IDs from filtered running
// configuration output, de-duplicated, in order of appearance.
func ParseOSPFProcessIDs(out string) []int {
	var ids []int
	seen := make(map[int]bool)
	for _, line := range strings.Split(out, "\n") {
		if m := ospfProcessRE.FindStringSubmatch(line); m != nil {
			id, err := strconv.Atoi(m[1])
			if err != nil || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

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

// Package loopback allocates Loopback0 addresses from 1.1.1.0/24 in
// per-role bands, so a node's tier is readable off its loopback.
package loopback

import (
	"net/netip"
	"strings"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/topology"
)

// Band boundaries within 1.1.1.0/24. Each band holds 50 addresses
// except the customer band, which runs to .254.
var bands = []struct {
	prefix string
	base   int
}{
	{"CE", 201},
	{"s", 151},
	{"a", 101},
	{"d", 51},
}

const defaultBase = 1 // core band

// Assignment is one allocated loopback.
type Assignment struct {
	Node  string
	IPv4  netip.Addr
	IPv6  netip.Addr
	Iface string
}

// Allocate assigns Loopback0 addresses to the given nodes in input
// order, sequentially within each role band. It fails if a band
// overflows into the next one.
func Allocate(nodes []topology.Node) ([]Assignment, error) {
	next := make(map[int]int)
	out := make([]Assignment, 0, len(nodes))
	for _, n := range nodes {
		base := baseFor(n.Name)
		offset := next[base]
		next[base]++
		last := base + offset
		if last > bandEnd(base) {
			return nil, serrors.New("loopback band exhausted",
				"node", n.Name, "base", base)
		}
		v4 := netip.AddrFrom4([4]byte{1, 1, 1, byte(last)})
		out = append(out, Assignment{
			Node:  n.Name,
			IPv4:  v4,
			IPv6:  topology.Node{Loopback: v4}.Loopback6(),
			Iface: "Loopback0",
		})
	}
	return out, nil
}

func baseFor(name string) int {
	for _, b := range bands {
		if strings.HasPrefix(name, b.prefix) {
			return b.base
		}
	}
	return defaultBase
}

func bandEnd(base int) int {
	if base == 201 {
		return 254
	}
	return base + 49
}

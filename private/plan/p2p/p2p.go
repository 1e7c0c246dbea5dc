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

// Package p2p numbers the point-to-point links of a lab: one IPv4 /31
// per link out of 10.10.10.0/24, with a companion IPv6 /127 derived by
// embedding the IPv4 address in the low 32 bits of fc00::/7.
package p2p

import (
	"net/netip"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/topology"
)

// ErrPoolExhausted reports that the lab has more links than the /24
// pool has /31 subnets.
var ErrPoolExhausted = serrors.New("point-to-point address pool exhausted")

// pool is the IPv4 range the /31 subnets are carved from.
var pool = netip.MustParsePrefix("10.10.10.0/24")

// subnetBits is the per-link subnet size; each /31 holds exactly the
// two endpoint addresses.
const subnetBits = 31

// Assignment is the numbering of one link. Addresses are oriented like
// the link: Local* belongs to Link.LocalNode's interface.
type Assignment struct {
	Link         topology.Link
	Subnet       netip.Prefix
	LocalIPv4    netip.Addr
	NeighborIPv4 netip.Addr
	LocalIPv6    netip.Addr
	NeighborIPv6 netip.Addr
}

// Allocate assigns one /31 per link, in link order. Running out of
// subnets is fatal; re-running on the same topology reproduces the
// same numbering.
func Allocate(links []topology.Link) ([]Assignment, error) {
	max := 1 << (subnetBits - pool.Bits())
	out := make([]Assignment, 0, len(links))
	for i, l := range links {
		if i >= max {
			return nil, serrors.WithCtx(ErrPoolExhausted,
				"pool", pool, "links", len(links))
		}
		a4 := addrAt(2 * i)
		b4 := addrAt(2*i + 1)
		out = append(out, Assignment{
			Link:         l,
			Subnet:       netip.PrefixFrom(a4, subnetBits),
			LocalIPv4:    a4,
			NeighborIPv4: b4,
			LocalIPv6:    Embed6(a4),
			NeighborIPv6: Embed6(b4),
		})
	}
	return out, nil
}

func addrAt(offset int) netip.Addr {
	b := pool.Addr().As4()
	b[3] = byte(offset)
	return netip.AddrFrom4(b)
}

// Embed6 maps an IPv4 address into fc00::/7 by embedding it in the low
// 32 bits, so 10.10.10.1 becomes fc00::a0a:a01.
func Embed6(v4 netip.Addr) netip.Addr {
	var b [16]byte
	b[0] = 0xfc
	a4 := v4.As4()
	copy(b[12:], a4[:])
	return netip.AddrFrom16(b)
}

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

// Package bgp builds the hierarchical iBGP peering plan: a full mesh
// among the top-tier route reflectors and reflector-to-client fan-out
// down the tiers, with per-node rendered attributes.
package bgp

import "strings"

// Role is a node's position in the BGP naming convention. The tag set
// overlaps the OSPF one but reflects the reflector tiering.
type Role int

// The BGP roles.
const (
	Other Role = iota
	CE
	CRR // central route reflector
	CCR // core/compute reflector
	CHR // core/HQ reflector
	SAR // service/aggregation reflector
	DHR // distribution high reflector
	DSR // distribution secondary reflector
	AHR // aggregation/hybrid reflector
	ASR // access reflector
)

func (r Role) String() string {
	switch r {
	case CE:
		return "ce"
	case CRR:
		return "crr"
	case CCR:
		return "ccr"
	case CHR:
		return "chr"
	case SAR:
		return "sar"
	case DHR:
		return "dhr"
	case DSR:
		return "dsr"
	case AHR:
		return "ahr"
	case ASR:
		return "asr"
	default:
		return "other"
	}
}

// Tier is the reflector hierarchy level a role belongs to.
type Tier int

// The tiers. Edges only run between adjacent tiers, never skipping one.
const (
	TierNone Tier = iota
	// TierReflectorCore nodes form the full mesh.
	TierReflectorCore
	// TierDistribution nodes are clients of every core reflector and
	// reflectors for the access tier.
	TierDistribution
	// TierAccess nodes are clients of every distribution reflector.
	TierAccess
)

// roleTable is the ordered prefix table for BGP classification. The
// two-letter prefixes cover both the plain and the reflector spellings
// (cr1 and crr1 both land in the reflector core). First match wins.
var roleTable = []struct {
	prefix string
	role   Role
}{
	{"CE", CE},
	{"cr", CRR},
	{"cc", CCR},
	{"ch", CHR},
	{"sa", SAR},
	{"dh", DHR},
	{"ds", DSR},
	{"ah", AHR},
	{"as", ASR},
}

// Classify returns the BGP role for a node name. It is total.
func Classify(name string) Role {
	for _, e := range roleTable {
		if strings.HasPrefix(name, e.prefix) {
			return e.role
		}
	}
	return Other
}

// Tier returns the hierarchy tier of the role. CE has no tier unless
// the plan includes CE nodes, in which case it joins the access tier.
func (r Role) Tier() Tier {
	switch r {
	case CRR:
		return TierReflectorCore
	case CCR, CHR, SAR:
		return TierDistribution
	case DHR, DSR, AHR, ASR:
		return TierAccess
	default:
		return TierNone
	}
}

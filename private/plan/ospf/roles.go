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

// Package ospf derives OSPF process and area placement from the lab
// naming convention: an ordered role table classifies nodes, and an
// ordered link rule table maps role pairs to process/area assignments.
package ospf

import "strings"

// Role is a node's position in the OSPF naming convention.
type Role int

// The OSPF roles. Other is the catch-all for unmatched names.
const (
	Other Role = iota
	CE         // customer edge
	CH         // core/HQ
	CC         // core/compute
	CR         // core route reflector
	SA         // service/aggregation
	DH         // distribution high
	DS         // distribution secondary
	AH         // aggregation/hybrid
	AS         // access
	Core       // generic core ("c"/"s" not matched above)
	Dist       // generic distribution
)

func (r Role) String() string {
	switch r {
	case CE:
		return "ce"
	case CH:
		return "ch"
	case CC:
		return "cc"
	case CR:
		return "cr"
	case SA:
		return "sa"
	case DH:
		return "dh"
	case DS:
		return "ds"
	case AH:
		return "ah"
	case AS:
		return "as"
	case Core:
		return "core"
	case Dist:
		return "d"
	default:
		return "other"
	}
}

// roleTable is the ordered prefix table for classification. More
// specific prefixes come before the generic single-letter ones; the
// first match wins. Precedence is the declaration order below.
var roleTable = []struct {
	prefix string
	role   Role
}{
	{"CE", CE},
	{"ch", CH},
	{"cc", CC},
	{"cr", CR},
	{"sa", SA},
	{"dh", DH},
	{"ds", DS},
	{"ah", AH},
	{"as", AS},
	{"c", Core},
	{"s", Core},
	{"d", Dist},
}

// Classify returns the OSPF role for a node name. It is total: names
// matching no prefix classify as Other.
func Classify(name string) Role {
	for _, e := range roleTable {
		if strings.HasPrefix(name, e.prefix) {
			return e.role
		}
	}
	return Other
}

// Processes returns the OSPF process IDs a node of this role
// participates in. CE and Other get none unless the fallback overrides.
func (r Role) Processes() []int {
	switch r {
	case CC, CR, SA, Core:
		return []int{ProcessCore}
	case CH:
		return []int{ProcessCore, ProcessDistribution}
	case DH, DS, Dist:
		return []int{ProcessDistribution}
	case AH:
		return []int{ProcessDistribution, ProcessAccess}
	case AS:
		return []int{ProcessAccess}
	default:
		return nil
	}
}

// coreTier reports whether the role sits in the core tier. CH is
// core-tier for mixed links; the CH-CH pair has its own interface-based
// rule.
func (r Role) coreTier() bool {
	switch r {
	case CH, CC, CR, SA, Core:
		return true
	}
	return false
}

func (r Role) distTier() bool {
	switch r {
	case DH, DS, Dist:
		return true
	}
	return false
}

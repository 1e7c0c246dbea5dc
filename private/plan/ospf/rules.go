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

package ospf

import (
	"strings"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/plan"
)

// The OSPF processes and their areas.
const (
	ProcessCore         = 1
	ProcessDistribution = 10
	ProcessAccess       = 100

	AreaCore         = "0.0.0.0"
	AreaDistribution = "0.0.0.10"
	AreaAccess       = "0.0.0.100"
)

// coreFacingIfaceSuffix marks the interface that carries the core-side
// process on dual-process CH-CH links.
const coreFacingIfaceSuffix = "0/0/0/0"

// Name fragments identifying the special-cased aggregation-hybrid pair
// whose parallel links are split across processes by occurrence order.
const (
	statefulPairGreen = "ahrg"
	statefulPairBlue  = "ahrb"
)

// ErrRuleExhausted reports a link that matched no rule while no fallback
// was requested. The link is left unassigned; the run continues.
var ErrRuleExhausted = serrors.New("no link rule matched")

// ErrStatefulRuleOverflow reports a third parallel link between the
// special-cased node pair, which makes the topology ambiguous. Plan
// construction for that link aborts; the rest of the plan proceeds.
var ErrStatefulRuleOverflow = serrors.New("too many links between stateful pair")

// Assignment places a link into an OSPF process and area.
type Assignment struct {
	Process int
	Area    string
}

// linkEval is everything a link rule sees: the endpoint roles and
// names, the interface names, and the per-run occurrence tracker.
type linkEval struct {
	LocalNode, NeighborNode   string
	LocalIface, NeighborIface string
	Local, Neighbor           Role
	Tracker                   plan.OccurrenceTracker
}

// linkRule is one entry of the ordered rule table. Match decides
// whether the rule applies; Resolve produces the assignment (nil means
// no OSPF on the link) or an error. The first matching rule wins.
type linkRule struct {
	Name    string
	Match   func(e *linkEval) bool
	Resolve func(e *linkEval) (*Assignment, error)
}

// linkRules is the ordered link rule table. The CH-CH pair is carved
// out of the generic core rule so its interface-based split stays
// reachable.
var linkRules = []linkRule{
	{
		Name: "core-core",
		Match: func(e *linkEval) bool {
			return e.Local.coreTier() && e.Neighbor.coreTier() &&
				!(e.Local == CH && e.Neighbor == CH)
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			return &Assignment{Process: ProcessCore, Area: AreaCore}, nil
		},
	},
	{
		Name: "ch-ch",
		Match: func(e *linkEval) bool {
			return e.Local == CH && e.Neighbor == CH
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			if strings.HasSuffix(e.LocalIface, coreFacingIfaceSuffix) ||
				strings.HasSuffix(e.NeighborIface, coreFacingIfaceSuffix) {
				return &Assignment{Process: ProcessCore, Area: AreaCore}, nil
			}
			return &Assignment{Process: ProcessDistribution, Area: AreaDistribution}, nil
		},
	},
	{
		Name: "core-distribution",
		Match: func(e *linkEval) bool {
			return (e.Local.coreTier() && e.Neighbor.distTier()) ||
				(e.Neighbor.coreTier() && e.Local.distTier())
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			return &Assignment{Process: ProcessDistribution, Area: AreaDistribution}, nil
		},
	},
	{
		Name: "distribution-distribution",
		Match: func(e *linkEval) bool {
			if e.Local.distTier() && e.Neighbor.distTier() {
				return true
			}
			return (e.Local.distTier() && e.Neighbor == AH) ||
				(e.Neighbor.distTier() && e.Local == AH)
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			return &Assignment{Process: ProcessDistribution, Area: AreaDistribution}, nil
		},
	},
	{
		Name: "access-access",
		Match: func(e *linkEval) bool {
			if e.Local == AS && e.Neighbor == AS {
				return true
			}
			return (e.Local == AH && e.Neighbor == AS) ||
				(e.Neighbor == AH && e.Local == AS)
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			return &Assignment{Process: ProcessAccess, Area: AreaAccess}, nil
		},
	},
	{
		Name: "stateful-hybrid-pair",
		Match: func(e *linkEval) bool {
			return (strings.Contains(e.LocalNode, statefulPairGreen) &&
				strings.Contains(e.NeighborNode, statefulPairBlue)) ||
				(strings.Contains(e.LocalNode, statefulPairBlue) &&
					strings.Contains(e.NeighborNode, statefulPairGreen))
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			key := plan.NewOccurrenceKey(e.LocalNode, e.NeighborNode)
			switch e.Tracker.Next(key) {
			case 1:
				return &Assignment{Process: ProcessDistribution, Area: AreaDistribution}, nil
			case 2:
				return &Assignment{Process: ProcessAccess, Area: AreaAccess}, nil
			default:
				return nil, ErrStatefulRuleOverflow
			}
		},
	},
	{
		Name: "ce-excluded",
		Match: func(e *linkEval) bool {
			return e.Local == CE || e.Neighbor == CE
		},
		Resolve: func(e *linkEval) (*Assignment, error) {
			return nil, nil
		},
	},
}

// resolveLink runs the link through the ordered rule table. A nil
// assignment with nil error means the link carries no OSPF.
func resolveLink(e *linkEval) (*Assignment, error) {
	for _, r := range linkRules {
		if r.Match(e) {
			return r.Resolve(e)
		}
	}
	return nil, ErrRuleExhausted
}

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
	"net/netip"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/plan"
	"github.com/xrdlab/xrwizard/private/topology"
)

// LoopbackIface is always passive in every process a node joins.
const LoopbackIface = "Loopback0"

// Config configures one OSPF planning run. There is no ambient state:
// every toggle is passed in here.
type Config struct {
	// ForceFallback applies process 1/area 0.0.0.0 to all nodes and
	// links regardless of role.
	ForceFallback bool
	// VerboseTrace logs every link rule decision at debug level.
	VerboseTrace bool
	// Logger used for tracing. Nil uses the root logger.
	Logger log.Logger
}

// NodeAssignment is the per-node part of the plan.
type NodeAssignment struct {
	Node     string
	Role     Role
	RouterID netip.Addr
	// Processes is the ordered set of OSPF processes the node joins.
	// Empty for CE and unmatched roles.
	Processes []int
	// Passive lists interfaces advertised but never forming adjacencies,
	// in every member process.
	Passive []string
}

// LinkAssignment is the per-link part of the plan. Ignored links carry
// no OSPF; they are kept so the outcome of every input link is visible.
type LinkAssignment struct {
	Link    topology.Link
	Ignored bool
	Process int
	Area    string
}

// Plan is a complete OSPF placement for one topology. Per-link failures
// are collected in Errors; they never abort the run.
type Plan struct {
	Nodes        []NodeAssignment
	Links        []LinkAssignment
	Completeness plan.Completeness
	Errors       serrors.List
}

// Build computes the OSPF plan. It visits every topology link exactly
// once, in topology order, and is deterministic: identical input in
// identical order reproduces the identical plan. The tracker must be
// fresh for each run.
func Build(topo *topology.Topology, tracker plan.OccurrenceTracker, cfg Config) *Plan {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	p := &Plan{Completeness: plan.Complete}

	roles := make(map[string]Role, len(topo.Nodes))
	allOther := len(topo.Nodes) > 0
	for _, n := range topo.Nodes {
		role := Classify(n.Name)
		roles[n.Name] = role
		if role != Other {
			allOther = false
		}
	}
	if allOther {
		p.Completeness = plan.AllOther
		if !cfg.ForceFallback {
			// The caller decides whether to re-plan with the flat
			// fallback.
			return p
		}
	}

	for _, n := range topo.Nodes {
		na := NodeAssignment{
			Node:     n.Name,
			Role:     roles[n.Name],
			RouterID: n.Loopback,
		}
		if cfg.ForceFallback {
			na.Processes = []int{ProcessCore}
		} else {
			na.Processes = na.Role.Processes()
		}
		if len(na.Processes) > 0 {
			na.Passive = []string{LoopbackIface}
		}
		p.Nodes = append(p.Nodes, na)
	}

	for _, l := range topo.Links {
		if cfg.ForceFallback {
			p.Links = append(p.Links, LinkAssignment{
				Link:    l,
				Process: ProcessCore,
				Area:    AreaCore,
			})
			continue
		}
		eval := &linkEval{
			LocalNode:     l.LocalNode,
			NeighborNode:  l.NeighborNode,
			LocalIface:    l.LocalIface,
			NeighborIface: l.NeighborIface,
			Local:         roles[l.LocalNode],
			Neighbor:      roles[l.NeighborNode],
			Tracker:       tracker,
		}
		assignment, err := resolveLink(eval)
		if err != nil {
			p.Errors = append(p.Errors, serrors.WithCtx(err,
				"local", l.LocalNode+":"+l.LocalIface,
				"neighbor", l.NeighborNode+":"+l.NeighborIface))
			p.Links = append(p.Links, LinkAssignment{Link: l, Ignored: true})
			continue
		}
		if assignment == nil {
			if cfg.VerboseTrace {
				logger.Debug("link carries no OSPF",
					"local", l.LocalNode+":"+l.LocalIface,
					"neighbor", l.NeighborNode+":"+l.NeighborIface)
			}
			p.Links = append(p.Links, LinkAssignment{Link: l, Ignored: true})
			continue
		}
		if cfg.VerboseTrace {
			logger.Debug("link assigned",
				"local", l.LocalNode+":"+l.LocalIface,
				"neighbor", l.NeighborNode+":"+l.NeighborIface,
				"process", assignment.Process,
				"area", assignment.Area)
		}
		p.Links = append(p.Links, LinkAssignment{
			Link:    l,
			Process: assignment.Process,
			Area:    assignment.Area,
		})
	}
	return p
}

// NodeLinks returns the link assignments involving the given node,
// oriented so the node is the local end.
func (p *Plan) NodeLinks(node string) []LinkAssignment {
	var out []LinkAssignment
	for _, la := range p.Links {
		if la.Ignored {
			continue
		}
		switch node {
		case la.Link.LocalNode:
			out = append(out, la)
		case la.Link.NeighborNode:
			flipped := la
			flipped.Link = topology.Link{
				LocalNode:     la.Link.NeighborNode,
				LocalIface:    la.Link.NeighborIface,
				NeighborNode:  la.Link.LocalNode,
				NeighborIface: la.Link.LocalIface,
			}
			out = append(out, flipped)
		}
	}
	return out
}

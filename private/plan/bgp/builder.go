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

package bgp

import (
	"fmt"
	"net/netip"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/plan"
	"github.com/xrdlab/xrwizard/private/topology"
)

// DefaultASN is the single AS used for iBGP when none is configured.
const DefaultASN = 65000

// The neighbor groups referenced by the rendered configuration.
// GroupMesh is plain iBGP over Loopback0; GroupClient additionally
// marks the peer as a route-reflector client.
const (
	GroupMesh   = "RR-Mesh"
	GroupClient = "RR-Client"
)

// ErrMissingLoopback reports a node without a discoverable Loopback0.
// The node is excluded from the plan; the run continues.
var ErrMissingLoopback = serrors.New("no Loopback0 address discovered")

// RelationshipKind distinguishes the two edge types of the hierarchy.
type RelationshipKind int

// The relationship kinds.
const (
	FullMesh RelationshipKind = iota + 1
	ReflectorClient
)

func (k RelationshipKind) String() string {
	switch k {
	case FullMesh:
		return "full-mesh"
	case ReflectorClient:
		return "reflector-client"
	default:
		return "unknown"
	}
}

// Config configures one BGP planning run.
type Config struct {
	// ASN is the shared AS number. Zero means DefaultASN.
	ASN uint32
	// IncludeCE admits CE nodes into the access tier.
	IncludeCE bool
	// ForceFallback builds a degenerate single-tier full mesh over all
	// nodes, used when classification found no known roles.
	ForceFallback bool
	// VerboseTrace logs every edge decision at debug level.
	VerboseTrace bool
	// Logger used for tracing. Nil uses the root logger.
	Logger log.Logger
}

// Edge is one reflector hierarchy edge. FullMesh edges appear once per
// direction; ReflectorClient edges are oriented reflector -> client and
// appear once per pair.
type Edge struct {
	From, To    string
	Kind        RelationshipKind
	Description string
}

// Peer is one neighbor statement on a node.
type Peer struct {
	Name        string
	Addr        netip.Addr
	Group       string
	Kind        RelationshipKind
	Description string
}

// NodeAttrs is the per-node rendered part of the plan.
type NodeAttrs struct {
	Node     string
	Role     Role
	ASN      uint32
	RouterID netip.Addr
	// LabelPolicyScope restricts labeled-unicast allocation to exactly
	// the node's own Loopback0 /32, never another node's prefix.
	LabelPolicyScope netip.Prefix
	PeerGroups       []string
	Peers            []Peer
}

// Plan is a complete iBGP peering plan. Nodes without a loopback are
// excluded and reported in Errors.
type Plan struct {
	Nodes        []NodeAttrs
	Edges        []Edge
	Completeness plan.Completeness
	Errors       serrors.List
}

// Build computes the hierarchy: full mesh among the reflector core,
// core -> distribution and distribution -> access client fan-out, no
// edges skipping a tier. Node order is preserved, making the plan
// deterministic for identical input.
func Build(nodes []topology.Node, cfg Config) *Plan {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	asn := cfg.ASN
	if asn == 0 {
		asn = DefaultASN
	}
	p := &Plan{Completeness: plan.Complete}

	allOther := len(nodes) > 0
	for _, n := range nodes {
		if Classify(n.Name) != Other {
			allOther = false
		}
	}
	if allOther {
		p.Completeness = plan.AllOther
		if !cfg.ForceFallback {
			return p
		}
	}

	// Filter down to plan members, reporting missing loopbacks.
	var members []topology.Node
	for _, n := range nodes {
		role := Classify(n.Name)
		if role == CE && !cfg.IncludeCE {
			continue
		}
		if !cfg.ForceFallback && role != CE && role.Tier() == TierNone {
			if cfg.VerboseTrace {
				logger.Debug("node outside hierarchy, skipped", "node", n.Name)
			}
			continue
		}
		if !n.Loopback.IsValid() {
			p.Errors = append(p.Errors, serrors.WithCtx(ErrMissingLoopback,
				"node", n.Name))
			continue
		}
		members = append(members, n)
	}

	b := builder{plan: p, asn: asn, peers: make(map[string]*NodeAttrs)}
	for _, n := range members {
		b.addNode(n)
	}

	if cfg.ForceFallback {
		// Degenerate single tier: everything meshes with everything.
		b.mesh(members)
		b.finish()
		return p
	}

	var core, dist, access []topology.Node
	for _, n := range members {
		role := Classify(n.Name)
		tier := role.Tier()
		if role == CE {
			tier = TierAccess
		}
		switch tier {
		case TierReflectorCore:
			core = append(core, n)
		case TierDistribution:
			dist = append(dist, n)
		case TierAccess:
			access = append(access, n)
		}
	}

	b.mesh(core)
	b.fanOut(core, dist)
	b.fanOut(dist, access)
	b.finish()
	return p
}

type builder struct {
	plan  *Plan
	asn   uint32
	peers map[string]*NodeAttrs
	order []string
}

func (b *builder) addNode(n topology.Node) {
	attrs := &NodeAttrs{
		Node:             n.Name,
		Role:             Classify(n.Name),
		ASN:              b.asn,
		RouterID:         n.Loopback,
		LabelPolicyScope: netip.PrefixFrom(n.Loopback, 32),
	}
	b.peers[n.Name] = attrs
	b.order = append(b.order, n.Name)
}

// mesh connects every pair of the given nodes, both directions.
func (b *builder) mesh(nodes []topology.Node) {
	for _, a := range nodes {
		for _, c := range nodes {
			if a.Name == c.Name {
				continue
			}
			b.plan.Edges = append(b.plan.Edges, Edge{
				From:        a.Name,
				To:          c.Name,
				Kind:        FullMesh,
				Description: peerDescription(c),
			})
			b.addPeer(a.Name, c, GroupMesh, FullMesh)
		}
	}
}

// fanOut makes every node of the lower tier a client of every reflector
// of the upper tier.
func (b *builder) fanOut(upper, lower []topology.Node) {
	for _, r := range upper {
		for _, c := range lower {
			b.plan.Edges = append(b.plan.Edges, Edge{
				From:        r.Name,
				To:          c.Name,
				Kind:        ReflectorClient,
				Description: peerDescription(c),
			})
			// The reflector sees the client under the client group; the
			// client peers back over plain iBGP.
			b.addPeer(r.Name, c, GroupClient, ReflectorClient)
			b.addPeer(c.Name, r, GroupMesh, ReflectorClient)
		}
	}
}

func (b *builder) addPeer(on string, peer topology.Node, group string, kind RelationshipKind) {
	attrs := b.peers[on]
	for _, existing := range attrs.Peers {
		if existing.Addr == peer.Loopback && existing.Group == group {
			return
		}
	}
	attrs.Peers = append(attrs.Peers, Peer{
		Name:        peer.Name,
		Addr:        peer.Loopback,
		Group:       group,
		Kind:        kind,
		Description: peerDescription(peer),
	})
}

// finish assembles the node list in input order and derives the group
// membership sets.
func (b *builder) finish() {
	for _, name := range b.order {
		attrs := b.peers[name]
		seen := make(map[string]bool, 2)
		for _, peer := range attrs.Peers {
			if !seen[peer.Group] {
				seen[peer.Group] = true
				attrs.PeerGroups = append(attrs.PeerGroups, peer.Group)
			}
		}
		b.plan.Nodes = append(b.plan.Nodes, *attrs)
	}
}

func peerDescription(n topology.Node) string {
	return fmt.Sprintf("to %s Loopback0 %s", n.Name, n.Loopback)
}

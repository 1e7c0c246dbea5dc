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

// Package topology models the lab inventory the planners consume: an
// ordered list of nodes and an ordered list of point-to-point links.
// Link order is significant; it drives the stateful link rules and must
// be preserved exactly as discovered.
package topology

import (
	"fmt"
	"net/netip"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
)

// ErrUnknownEndpoint is returned when a link references a node that is
// not part of the inventory. This is the only fatal input condition.
var ErrUnknownEndpoint = serrors.New("link references unknown node")

// Node is one router in the lab inventory. Loopback is the zero Addr
// until discovery fills it in; it must not be mutated afterwards within
// a planning run.
type Node struct {
	// Name is the short node name, unique within the lab.
	Name string
	// Kind is the containerlab node kind, e.g. "cisco_xrd".
	Kind string
	// MgmtIPv4 is the management address used to reach the node.
	MgmtIPv4 netip.Addr
	// Loopback is the Loopback0 IPv4 address, filled in after device
	// discovery.
	Loopback netip.Addr
}

// Loopback6 derives the node's IPv6 loopback from the IPv4 one by
// writing the last octet's decimal digits into the low hextet of
// fd00::/8, so 1.1.1.51 maps to fd00::51.
func (n Node) Loopback6() netip.Addr {
	if !n.Loopback.Is4() {
		return netip.Addr{}
	}
	v4 := n.Loopback.As4()
	addr, err := netip.ParseAddr(fmt.Sprintf("fd00::%d", v4[3]))
	if err != nil {
		return netip.Addr{}
	}
	return addr
}

// Link is one point-to-point adjacency. Endpoints are ordered as
// discovered; identity for de-duplication purposes is undirected.
type Link struct {
	LocalNode     string
	LocalIface    string
	NeighborNode  string
	NeighborIface string
}

// Canonical returns the link with its endpoints in lexicographic order,
// so that the same physical link seen from either side maps to the same
// value.
func (l Link) Canonical() Link {
	if l.LocalNode > l.NeighborNode ||
		(l.LocalNode == l.NeighborNode && l.LocalIface > l.NeighborIface) {
		return Link{
			LocalNode:     l.NeighborNode,
			LocalIface:    l.NeighborIface,
			NeighborNode:  l.LocalNode,
			NeighborIface: l.LocalIface,
		}
	}
	return l
}

// Topology is a validated inventory. Nodes and Links preserve input
// order; Links are de-duplicated on their canonical endpoint pair, the
// first occurrence wins.
type Topology struct {
	Nodes []Node
	Links []Link

	byName map[string]int
}

// New validates the inventory and builds a Topology. A link referencing
// a node that is not in nodes fails with ErrUnknownEndpoint.
func New(nodes []Node, links []Link) (*Topology, error) {
	t := &Topology{
		Nodes:  nodes,
		byName: make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		t.byName[n.Name] = i
	}
	seen := make(map[Link]struct{}, len(links))
	for _, l := range links {
		if _, ok := t.byName[l.LocalNode]; !ok {
			return nil, serrors.WithCtx(ErrUnknownEndpoint, "node", l.LocalNode)
		}
		if _, ok := t.byName[l.NeighborNode]; !ok {
			return nil, serrors.WithCtx(ErrUnknownEndpoint, "node", l.NeighborNode)
		}
		canon := l.Canonical()
		if _, ok := seen[canon]; ok {
			continue
		}
		seen[canon] = struct{}{}
		t.Links = append(t.Links, l)
	}
	return t, nil
}

// FilterKind returns a topology restricted to nodes of the given kind
// and the links between them, preserving order. An empty kind returns
// the receiver unchanged.
func (t *Topology) FilterKind(kind string) *Topology {
	if kind == "" {
		return t
	}
	out := &Topology{byName: make(map[string]int)}
	for _, n := range t.Nodes {
		if n.Kind != kind {
			continue
		}
		out.byName[n.Name] = len(out.Nodes)
		out.Nodes = append(out.Nodes, n)
	}
	for _, l := range t.Links {
		if _, ok := out.byName[l.LocalNode]; !ok {
			continue
		}
		if _, ok := out.byName[l.NeighborNode]; !ok {
			continue
		}
		out.Links = append(out.Links, l)
	}
	return out
}

// Node returns the node with the given name.
func (t *Topology) Node(name string) (Node, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Node{}, false
	}
	return t.Nodes[i], true
}

// SetLoopback records a discovered Loopback0 address for a node.
func (t *Topology) SetLoopback(name string, addr netip.Addr) bool {
	i, ok := t.byName[name]
	if !ok {
		return false
	}
	t.Nodes[i].Loopback = addr
	return true
}

// LinksOf returns the links that have the given node as an endpoint, in
// topology order, oriented so that the node is the local end.
func (t *Topology) LinksOf(name string) []Link {
	var out []Link
	for _, l := range t.Links {
		switch name {
		case l.LocalNode:
			out = append(out, l)
		case l.NeighborNode:
			out = append(out, Link{
				LocalNode:     l.NeighborNode,
				LocalIface:    l.NeighborIface,
				NeighborNode:  l.LocalNode,
				NeighborIface: l.LocalIface,
			})
		}
	}
	return out
}

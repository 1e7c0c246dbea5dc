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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/plan/bgp"
	"github.com/xrdlab/xrwizard/xrwizard/bgpwizard"
	"github.com/xrdlab/xrwizard/xrwizard/loopbackwizard"
	"github.com/xrdlab/xrwizard/xrwizard/noshutwizard"
	"github.com/xrdlab/xrwizard/xrwizard/ospfwizard"
	"github.com/xrdlab/xrwizard/xrwizard/p2pwizard"
)

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ospfPlanJSON is the machine-readable view of an OSPF plan.
type ospfPlanJSON struct {
	Lab      string         `json:"lab"`
	Complete bool           `json:"complete"`
	Nodes    []ospfNodeJSON `json:"nodes"`
	Links    []ospfLinkJSON `json:"links"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

type ospfNodeJSON struct {
	Node      string   `json:"node"`
	Role      string   `json:"role"`
	RouterID  string   `json:"router_id,omitempty"`
	Processes []int    `json:"processes"`
	Passive   []string `json:"passive,omitempty"`
}

type ospfLinkJSON struct {
	A       string `json:"a"`
	AIface  string `json:"a_interface"`
	B       string `json:"b"`
	BIface  string `json:"b_interface"`
	Ignored bool   `json:"ignored"`
	Process int    `json:"process,omitempty"`
	Area    string `json:"area,omitempty"`
}

func errStrings(errs []error) []string {
	var out []string
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func printOSPFPlan(w io.Writer, res *ospfwizard.Result, format string) error {
	if format == "json" {
		out := ospfPlanJSON{
			Lab:      res.Lab,
			Complete: !res.NeedsFallback(),
			Errors:   errStrings(res.Plan.Errors),
			Warnings: errStrings(res.Warnings),
		}
		for _, na := range res.Plan.Nodes {
			n := ospfNodeJSON{
				Node:      na.Node,
				Role:      na.Role.String(),
				Processes: na.Processes,
				Passive:   na.Passive,
			}
			if na.RouterID.IsValid() {
				n.RouterID = na.RouterID.String()
			}
			out.Nodes = append(out.Nodes, n)
		}
		for _, la := range res.Plan.Links {
			out.Links = append(out.Links, ospfLinkJSON{
				A:       la.Link.LocalNode,
				AIface:  la.Link.LocalIface,
				B:       la.Link.NeighborNode,
				BIface:  la.Link.NeighborIface,
				Ignored: la.Ignored,
				Process: la.Process,
				Area:    la.Area,
			})
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Lab: %s\n\n", res.Lab)
	nodes := newTable(w)
	nodes.SetHeader([]string{"NODE", "ROLE", "ROUTER-ID", "PROCESSES", "PASSIVE"})
	for _, na := range res.Plan.Nodes {
		routerID := ""
		if na.RouterID.IsValid() {
			routerID = na.RouterID.String()
		}
		nodes.Append([]string{
			na.Node,
			na.Role.String(),
			routerID,
			joinInts(na.Processes),
			strings.Join(na.Passive, ","),
		})
	}
	nodes.Render()

	fmt.Fprintln(w)
	links := newTable(w)
	links.SetHeader([]string{"LINK", "PROCESS", "AREA"})
	for _, la := range res.Plan.Links {
		name := fmt.Sprintf("%s:%s <-> %s:%s",
			la.Link.LocalNode, la.Link.LocalIface,
			la.Link.NeighborNode, la.Link.NeighborIface)
		if la.Ignored {
			links.Append([]string{name, "-", "ignored"})
			continue
		}
		links.Append([]string{name, strconv.Itoa(la.Process), la.Area})
	}
	links.Render()

	printWarnings(w, res.Warnings)
	for _, err := range res.Plan.Errors {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return nil
}

func printOSPFWipe(w io.Writer, res *ospfwizard.WipeResult, format string) error {
	if format == "json" {
		type nodeJSON struct {
			Node      string `json:"node"`
			Processes []int  `json:"processes"`
		}
		out := struct {
			Lab      string     `json:"lab"`
			Nodes    []nodeJSON `json:"nodes"`
			Warnings []string   `json:"warnings,omitempty"`
		}{Lab: res.Lab, Warnings: errStrings(res.Warnings)}
		for _, wn := range res.Nodes {
			out.Nodes = append(out.Nodes, nodeJSON{Node: wn.Node, Processes: wn.Processes})
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Lab: %s\n\n", res.Lab)
	table := newTable(w)
	table.SetHeader([]string{"NODE", "OSPF PROCESSES"})
	for _, wn := range res.Nodes {
		procs := joinInts(wn.Processes)
		if procs == "" {
			procs = "none"
		}
		table.Append([]string{wn.Node, procs})
	}
	table.Render()
	printWarnings(w, res.Warnings)
	return nil
}

// bgpPlanJSON is the machine-readable view of a BGP plan.
type bgpPlanJSON struct {
	Lab      string        `json:"lab"`
	Complete bool          `json:"complete"`
	Nodes    []bgpNodeJSON `json:"nodes"`
	Edges    []bgpEdgeJSON `json:"edges"`
	Errors   []string      `json:"errors,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

type bgpNodeJSON struct {
	Node       string        `json:"node"`
	Role       string        `json:"role"`
	ASN        uint32        `json:"asn"`
	RouterID   string        `json:"router_id"`
	LabelScope string        `json:"label_policy_scope"`
	PeerGroups []string      `json:"peer_groups,omitempty"`
	Peers      []bgpPeerJSON `json:"peers"`
}

type bgpPeerJSON struct {
	Name  string `json:"name"`
	Addr  string `json:"address"`
	Group string `json:"group"`
}

type bgpEdgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

func relationship(k bgp.RelationshipKind) string {
	if k == bgp.FullMesh {
		return "full-mesh"
	}
	return "reflector-client"
}

func printBGPPlan(w io.Writer, res *bgpwizard.Result, format string) error {
	if format == "json" {
		out := bgpPlanJSON{
			Lab:      res.Lab,
			Complete: !res.NeedsFallback(),
			Errors:   errStrings(res.Plan.Errors),
			Warnings: errStrings(res.Warnings),
		}
		for _, na := range res.Plan.Nodes {
			n := bgpNodeJSON{
				Node:       na.Node,
				Role:       na.Role.String(),
				ASN:        na.ASN,
				RouterID:   na.RouterID.String(),
				LabelScope: na.LabelPolicyScope.String(),
				PeerGroups: na.PeerGroups,
			}
			for _, p := range na.Peers {
				n.Peers = append(n.Peers, bgpPeerJSON{
					Name:  p.Name,
					Addr:  p.Addr.String(),
					Group: p.Group,
				})
			}
			out.Nodes = append(out.Nodes, n)
		}
		for _, e := range res.Plan.Edges {
			out.Edges = append(out.Edges, bgpEdgeJSON{
				From: e.From,
				To:   e.To,
				Kind: relationship(e.Kind),
			})
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Lab: %s\n\n", res.Lab)
	nodes := newTable(w)
	nodes.SetHeader([]string{"NODE", "ROLE", "ROUTER-ID", "LABEL SCOPE", "PEERS"})
	for _, na := range res.Plan.Nodes {
		nodes.Append([]string{
			na.Node,
			na.Role.String(),
			na.RouterID.String(),
			na.LabelPolicyScope.String(),
			strconv.Itoa(len(na.Peers)),
		})
	}
	nodes.Render()

	fmt.Fprintln(w)
	edges := newTable(w)
	edges.SetHeader([]string{"RELATIONSHIP", "FROM", "TO"})
	for _, e := range res.Plan.Edges {
		edges.Append([]string{relationship(e.Kind), e.From, e.To})
	}
	edges.Render()

	printWarnings(w, res.Warnings)
	for _, err := range res.Plan.Errors {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return nil
}

func printLoopbackPlan(w io.Writer, res *loopbackwizard.Result, format string) error {
	if format == "json" {
		type assignmentJSON struct {
			Node string `json:"node"`
			IPv4 string `json:"ipv4"`
			IPv6 string `json:"ipv6"`
		}
		out := struct {
			Lab         string           `json:"lab"`
			Assignments []assignmentJSON `json:"assignments"`
		}{Lab: res.Lab}
		for _, a := range res.Assignments {
			out.Assignments = append(out.Assignments, assignmentJSON{
				Node: a.Node,
				IPv4: a.IPv4.String(),
				IPv6: a.IPv6.String(),
			})
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Lab: %s\n\n", res.Lab)
	table := newTable(w)
	table.SetHeader([]string{"NODE", "IPV4", "IPV6"})
	for _, a := range res.Assignments {
		table.Append([]string{a.Node, a.IPv4.String(), a.IPv6.String()})
	}
	table.Render()
	return nil
}

func printP2PPlan(w io.Writer, res *p2pwizard.Result, format string) error {
	if format == "json" {
		type endJSON struct {
			Node  string `json:"node"`
			Iface string `json:"interface"`
			IPv4  string `json:"ipv4"`
			IPv6  string `json:"ipv6"`
		}
		type linkJSON struct {
			Subnet string  `json:"subnet"`
			A      endJSON `json:"a"`
			B      endJSON `json:"b"`
		}
		out := struct {
			Lab   string     `json:"lab"`
			Links []linkJSON `json:"links"`
		}{Lab: res.Lab}
		for _, a := range res.Assignments {
			out.Links = append(out.Links, linkJSON{
				Subnet: a.Subnet.String(),
				A: endJSON{
					Node:  a.Link.LocalNode,
					Iface: a.Link.LocalIface,
					IPv4:  a.LocalIPv4.String(),
					IPv6:  a.LocalIPv6.String(),
				},
				B: endJSON{
					Node:  a.Link.NeighborNode,
					Iface: a.Link.NeighborIface,
					IPv4:  a.NeighborIPv4.String(),
					IPv6:  a.NeighborIPv6.String(),
				},
			})
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Lab: %s\n\n", res.Lab)
	table := newTable(w)
	table.SetHeader([]string{"SUBNET", "NODE", "INTERFACE", "IPV4", "IPV6"})
	for _, a := range res.Assignments {
		table.Append([]string{
			a.Subnet.String(),
			a.Link.LocalNode,
			a.Link.LocalIface,
			a.LocalIPv4.String(),
			a.LocalIPv6.String(),
		})
		table.Append([]string{
			"",
			a.Link.NeighborNode,
			a.Link.NeighborIface,
			a.NeighborIPv4.String(),
			a.NeighborIPv6.String(),
		})
	}
	table.Render()
	return nil
}

func printNoShutPlan(w io.Writer, res *noshutwizard.Result, format string) error {
	if format == "json" {
		type nodeJSON struct {
			Node       string   `json:"node"`
			Interfaces []string `json:"interfaces"`
		}
		out := struct {
			Lab      string     `json:"lab"`
			Nodes    []nodeJSON `json:"nodes"`
			Warnings []string   `json:"warnings,omitempty"`
		}{Lab: res.Lab, Warnings: errStrings(res.Warnings)}
		for _, ni := range res.Nodes {
			out.Nodes = append(out.Nodes, nodeJSON{
				Node:       ni.Node,
				Interfaces: ni.Interfaces,
			})
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Lab: %s\n\n", res.Lab)
	table := newTable(w)
	table.SetHeader([]string{"NODE", "INTERFACES"})
	for _, ni := range res.Nodes {
		ifaces := strings.Join(ni.Interfaces, ",")
		if ifaces == "" {
			ifaces = "none"
		}
		table.Append([]string{ni.Node, ifaces})
	}
	table.Render()
	printWarnings(w, res.Warnings)
	return nil
}

// checkFormat rejects unknown --format values before any work happens.
func checkFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return serrors.New("unsupported format", "format", format)
	}
}

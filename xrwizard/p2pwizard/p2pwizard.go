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

// Package p2pwizard numbers the lab's point-to-point links and pushes
// the per-interface addressing to the routers.
package p2pwizard

import (
	"context"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/deliver"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/private/plan/p2p"
	"github.com/xrdlab/xrwizard/private/render"
	"github.com/xrdlab/xrwizard/private/topology"
)

// Config configures a link numbering run.
type Config struct {
	Wizard       config.Config
	TopologyFile string
	Inspect      topology.InspectRunner
	Dialer       device.Dialer
}

// Result is the computed link numbering.
type Result struct {
	Lab         string
	Topology    *topology.Topology
	Assignments []p2p.Assignment
}

func (cfg *Config) dialer() device.Dialer {
	if cfg.Dialer != nil {
		return cfg.Dialer
	}
	return device.SSHDialer{
		Username: cfg.Wizard.Credentials.Username,
		Password: cfg.Wizard.Credentials.Password,
	}
}

// Plan numbers every link in the lab.
func Plan(ctx context.Context, cfg Config) (*Result, error) {
	topo, lab, err := app.GatherTopology(ctx, cfg.Inspect, cfg.Wizard.NodeKind,
		cfg.TopologyFile)
	if err != nil {
		return nil, err
	}
	assignments, err := p2p.Allocate(topo.Links)
	if err != nil {
		return nil, err
	}
	return &Result{Lab: lab, Topology: topo, Assignments: assignments}, nil
}

// Apply pushes the interface addressing to the routers, all of a node's
// link ends batched into one unit.
func Apply(ctx context.Context, cfg Config, res *Result) []deliver.Report {
	blocks := make(map[string][]string)
	for _, a := range res.Assignments {
		l := a.Link
		blocks[l.LocalNode] = append(blocks[l.LocalNode],
			render.P2PInterface(render.P2PInterfaceInput{
				Iface:         l.LocalIface,
				NeighborNode:  l.NeighborNode,
				NeighborIface: l.NeighborIface,
				IPv4:          a.LocalIPv4.String(),
				IPv6:          a.LocalIPv6.String(),
			})...)
		blocks[l.NeighborNode] = append(blocks[l.NeighborNode],
			render.P2PInterface(render.P2PInterfaceInput{
				Iface:         l.NeighborIface,
				NeighborNode:  l.LocalNode,
				NeighborIface: l.LocalIface,
				IPv4:          a.NeighborIPv4.String(),
				IPv6:          a.NeighborIPv6.String(),
			})...)
	}
	var units []deliver.Unit
	for _, n := range res.Topology.Nodes {
		lines, ok := blocks[n.Name]
		if !ok {
			continue
		}
		units = append(units, deliver.Unit{
			Node:  n.Name,
			Host:  n.MgmtIPv4,
			Lines: lines,
		})
	}
	pusher := deliver.Pusher{
		Dialer:  cfg.dialer(),
		Workers: cfg.Wizard.Workers,
		Logger:  log.FromCtx(ctx),
	}
	return pusher.Push(ctx, units)
}

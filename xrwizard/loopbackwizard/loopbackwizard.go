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

// Package loopbackwizard provisions Loopback0 interfaces across the lab
// from the per-role address bands.
package loopbackwizard

import (
	"context"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/deliver"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/private/plan/loopback"
	"github.com/xrdlab/xrwizard/private/render"
	"github.com/xrdlab/xrwizard/private/topology"
)

// Config configures a loopback provisioning run.
type Config struct {
	Wizard       config.Config
	TopologyFile string
	Inspect      topology.InspectRunner
	Dialer       device.Dialer
}

// Result is the computed allocation.
type Result struct {
	Lab         string
	Topology    *topology.Topology
	Assignments []loopback.Assignment
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

// Plan allocates loopbacks for every node in the lab.
func Plan(ctx context.Context, cfg Config) (*Result, error) {
	topo, lab, err := app.GatherTopology(ctx, cfg.Inspect, cfg.Wizard.NodeKind,
		cfg.TopologyFile)
	if err != nil {
		return nil, err
	}
	assignments, err := loopback.Allocate(topo.Nodes)
	if err != nil {
		return nil, err
	}
	return &Result{Lab: lab, Topology: topo, Assignments: assignments}, nil
}

// Apply pushes the allocated loopbacks to the routers.
func Apply(ctx context.Context, cfg Config, res *Result) []deliver.Report {
	var units []deliver.Unit
	for _, a := range res.Assignments {
		node, _ := res.Topology.Node(a.Node)
		units = append(units, deliver.Unit{
			Node: a.Node,
			Host: node.MgmtIPv4,
			Lines: render.Loopback(render.LoopbackInput{
				Iface: a.Iface,
				IPv4:  a.IPv4.String(),
				IPv6:  a.IPv6.String(),
			}),
		})
	}
	pusher := deliver.Pusher{
		Dialer:  cfg.dialer(),
		Workers: cfg.Wizard.Workers,
		Logger:  log.FromCtx(ctx),
	}
	return pusher.Push(ctx, units)
}

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

// Package noshutwizard brings up the GigabitEthernet interfaces of
// every router in the lab, discovering the per-node interface list off
// the devices themselves.
package noshutwizard

import (
	"context"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/deliver"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/private/render"
	"github.com/xrdlab/xrwizard/private/topology"
)

// Config configures an interface enablement run.
type Config struct {
	Wizard       config.Config
	TopologyFile string
	Inspect      topology.InspectRunner
	Dialer       device.Dialer
}

// Result is the per-node view of discovered GigabitEthernet interfaces.
type Result struct {
	Lab      string
	Topology *topology.Topology
	Nodes    []NodeInterfaces
	// Warnings are per-node discovery failures.
	Warnings serrors.List
}

// NodeInterfaces is one node's enablement list.
type NodeInterfaces struct {
	Node       string
	Interfaces []string
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

// Plan discovers the GigabitEthernet interfaces on every router.
// Per-node discovery failures become warnings, the node is left out of
// the result.
func Plan(ctx context.Context, cfg Config) (*Result, error) {
	topo, lab, err := app.GatherTopology(ctx, cfg.Inspect, cfg.Wizard.NodeKind,
		cfg.TopologyFile)
	if err != nil {
		return nil, err
	}
	res := &Result{Lab: lab, Topology: topo}
	dialer := cfg.dialer()
	for _, n := range topo.Nodes {
		ifaces, err := discoverOne(ctx, dialer, n)
		if err != nil {
			res.Warnings = append(res.Warnings, serrors.WithCtx(err, "node", n.Name))
			continue
		}
		res.Nodes = append(res.Nodes, NodeInterfaces{Node: n.Name, Interfaces: ifaces})
	}
	return res, nil
}

// Apply pushes no shutdown for the discovered interfaces. Nodes with
// none are skipped.
func Apply(ctx context.Context, cfg Config, res *Result) []deliver.Report {
	var units []deliver.Unit
	for _, ni := range res.Nodes {
		if len(ni.Interfaces) == 0 {
			continue
		}
		node, _ := res.Topology.Node(ni.Node)
		units = append(units, deliver.Unit{
			Node:  ni.Node,
			Host:  node.MgmtIPv4,
			Lines: render.NoShut(ni.Interfaces),
		})
	}
	pusher := deliver.Pusher{
		Dialer:  cfg.dialer(),
		Workers: cfg.Wizard.Workers,
		Logger:  log.FromCtx(ctx),
	}
	return pusher.Push(ctx, units)
}

func discoverOne(ctx context.Context, dialer device.Dialer,
	n topology.Node) ([]string, error) {

	sess, err := dialer.Dial(ctx, n.MgmtIPv4)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	return device.GigabitInterfaces(ctx, sess)
}

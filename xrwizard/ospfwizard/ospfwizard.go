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

// Package ospfwizard wires discovery, the OSPF planner, rendering and
// delivery into the ospf plan/apply/wipe commands.
package ospfwizard

import (
	"context"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/deliver"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/private/plan"
	"github.com/xrdlab/xrwizard/private/plan/ospf"
	"github.com/xrdlab/xrwizard/private/render"
	"github.com/xrdlab/xrwizard/private/topology"
)

// Config configures an OSPF wizard run.
type Config struct {
	Wizard config.Config
	// TopologyFile is the *.clab.yml path. Empty means the single file
	// in the current directory.
	TopologyFile string
	// Inspect provides the containerlab inventory. Nil shells out to
	// containerlab.
	Inspect topology.InspectRunner
	// Dialer opens device sessions. Nil builds an SSH dialer from the
	// wizard credentials.
	Dialer device.Dialer

	ForceFallback bool
	VerboseTrace  bool
}

// Result is a computed OSPF plan together with the topology it was
// computed from.
type Result struct {
	Lab      string
	Topology *topology.Topology
	Plan     *ospf.Plan
	// Warnings are non-fatal per-node discovery failures.
	Warnings serrors.List
}

// NeedsFallback reports whether classification found no known roles and
// the caller has to decide on the flat fallback.
func (r *Result) NeedsFallback() bool {
	return r.Plan.Completeness == plan.AllOther
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

// Plan discovers the lab and computes the OSPF plan. Loopback discovery
// failures are warnings: the affected router-id falls back to the
// renderer default.
func Plan(ctx context.Context, cfg Config) (*Result, error) {
	logger := log.FromCtx(ctx)
	topo, lab, err := gather(ctx, cfg)
	if err != nil {
		return nil, err
	}
	warnings := app.DiscoverLoopbacks(ctx, cfg.dialer(), topo, logger)
	p := ospf.Build(topo, plan.NewTracker(), ospf.Config{
		ForceFallback: cfg.ForceFallback,
		VerboseTrace:  cfg.VerboseTrace,
		Logger:        logger,
	})
	return &Result{Lab: lab, Topology: topo, Plan: p, Warnings: warnings}, nil
}

// Apply renders the planned configuration and pushes it to the routers,
// one independent unit per node. The returned reports carry per-node
// outcomes.
func Apply(ctx context.Context, cfg Config, res *Result) []deliver.Report {
	var units []deliver.Unit
	for _, na := range res.Plan.Nodes {
		links := res.Plan.NodeLinks(na.Node)
		if len(na.Processes) == 0 && len(links) == 0 {
			continue
		}
		node, _ := res.Topology.Node(na.Node)
		in := render.OSPFNodeInput{
			Processes: na.Processes,
			Passive:   na.Passive,
		}
		if na.RouterID.IsValid() {
			in.RouterID = na.RouterID.String()
		}
		for _, la := range links {
			in.Links = append(in.Links, render.OSPFLinkInput{
				Process:    la.Process,
				Area:       la.Area,
				LocalIface: la.Link.LocalIface,
			})
		}
		units = append(units, deliver.Unit{
			Node:  na.Node,
			Host:  node.MgmtIPv4,
			Lines: render.OSPFNode(in),
		})
	}
	pusher := deliver.Pusher{
		Dialer:  cfg.dialer(),
		Workers: cfg.Wizard.Workers,
		Logger:  log.FromCtx(ctx),
	}
	return pusher.Push(ctx, units)
}

// WipeResult is the per-node view of configured OSPF processes.
type WipeResult struct {
	Lab      string
	Topology *topology.Topology
	Nodes    []WipeNode
	// Warnings are per-node discovery failures.
	Warnings serrors.List
}

// WipeNode is one node's removal list.
type WipeNode struct {
	Node      string
	Processes []int
}

// PlanWipe discovers the configured OSPF processes on every router.
func PlanWipe(ctx context.Context, cfg Config) (*WipeResult, error) {
	topo, lab, err := gather(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res := &WipeResult{Lab: lab, Topology: topo}
	dialer := cfg.dialer()
	for _, n := range topo.Nodes {
		ids, err := wipeOne(ctx, dialer, n)
		if err != nil {
			res.Warnings = append(res.Warnings, serrors.WithCtx(err, "node", n.Name))
			continue
		}
		res.Nodes = append(res.Nodes, WipeNode{Node: n.Name, Processes: ids})
	}
	return res, nil
}

// ApplyWipe removes the discovered processes from all routers.
func ApplyWipe(ctx context.Context, cfg Config, res *WipeResult) []deliver.Report {
	var units []deliver.Unit
	for _, wn := range res.Nodes {
		if len(wn.Processes) == 0 {
			continue
		}
		node, _ := res.Topology.Node(wn.Node)
		units = append(units, deliver.Unit{
			Node:  wn.Node,
			Host:  node.MgmtIPv4,
			Lines: render.WipeOSPF(wn.Processes),
		})
	}
	pusher := deliver.Pusher{
		Dialer:  cfg.dialer(),
		Workers: cfg.Wizard.Workers,
		Logger:  log.FromCtx(ctx),
	}
	return pusher.Push(ctx, units)
}

func wipeOne(ctx context.Context, dialer device.Dialer,
	n topology.Node) ([]int, error) {

	sess, err := dialer.Dial(ctx, n.MgmtIPv4)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	return device.OSPFProcessIDs(ctx, sess)
}

func gather(ctx context.Context, cfg Config) (*topology.Topology, string, error) {
	return app.GatherTopology(ctx, cfg.Inspect, cfg.Wizard.NodeKind, cfg.TopologyFile)
}

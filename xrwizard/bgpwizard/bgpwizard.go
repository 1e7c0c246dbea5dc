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

// Package bgpwizard wires discovery, the BGP hierarchy builder,
// rendering and delivery into the bgp plan/apply commands.
package bgpwizard

import (
	"context"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/deliver"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/private/plan"
	"github.com/xrdlab/xrwizard/private/plan/bgp"
	"github.com/xrdlab/xrwizard/private/render"
	"github.com/xrdlab/xrwizard/private/topology"
)

// Config configures a BGP wizard run.
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

	IncludeCE     bool
	ForceFallback bool
	VerboseTrace  bool
}

// Result is a computed BGP plan together with the topology it was
// computed from.
type Result struct {
	Lab      string
	Topology *topology.Topology
	Plan     *bgp.Plan
	// Warnings are non-fatal per-node discovery failures. Nodes without
	// a loopback are additionally reported in Plan.Errors and excluded.
	Warnings serrors.List
}

// NeedsFallback reports whether classification found no known roles and
// the caller has to decide on the degenerate full-mesh fallback.
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

// Plan discovers the lab, collects Loopback0 addresses and computes the
// iBGP hierarchy.
func Plan(ctx context.Context, cfg Config) (*Result, error) {
	logger := log.FromCtx(ctx)
	topo, lab, err := app.GatherTopology(ctx, cfg.Inspect, cfg.Wizard.NodeKind,
		cfg.TopologyFile)
	if err != nil {
		return nil, err
	}
	warnings := app.DiscoverLoopbacks(ctx, cfg.dialer(), topo, logger)
	p := bgp.Build(topo.Nodes, bgp.Config{
		ASN:           cfg.Wizard.BGP.ASN,
		IncludeCE:     cfg.IncludeCE,
		ForceFallback: cfg.ForceFallback,
		VerboseTrace:  cfg.VerboseTrace,
		Logger:        logger,
	})
	return &Result{Lab: lab, Topology: topo, Plan: p, Warnings: warnings}, nil
}

// Apply renders the planned configuration and pushes it to the routers,
// one independent unit per node.
func Apply(ctx context.Context, cfg Config, res *Result) []deliver.Report {
	var units []deliver.Unit
	for _, na := range res.Plan.Nodes {
		node, _ := res.Topology.Node(na.Node)
		in := render.BGPNodeInput{
			ASN:        na.ASN,
			RouterID:   na.RouterID.String(),
			LabelScope: na.LabelPolicyScope.String(),
			Password:   cfg.Wizard.BGP.Password,
		}
		for _, p := range na.Peers {
			in.Peers = append(in.Peers, render.BGPPeerInput{
				Addr:        p.Addr.String(),
				Group:       p.Group,
				Description: p.Description,
			})
		}
		units = append(units, deliver.Unit{
			Node:  na.Node,
			Host:  node.MgmtIPv4,
			Lines: render.BGPNode(in),
		})
	}
	pusher := deliver.Pusher{
		Dialer:  cfg.dialer(),
		Workers: cfg.Wizard.Workers,
		Logger:  log.FromCtx(ctx),
	}
	return pusher.Push(ctx, units)
}

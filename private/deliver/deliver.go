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

// Package deliver pushes configuration blocks to routers. Each node is
// one independent unit of work: delivery failures are reported per node
// and never block or roll back the other nodes.
package deliver

import (
	"context"
	"net/netip"

	"golang.org/x/sync/errgroup"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/private/device"
)

// DefaultWorkers bounds concurrent device sessions.
const DefaultWorkers = 8

// Unit is the configuration block for one node.
type Unit struct {
	Node  string
	Host  netip.Addr
	Lines []string
}

// Report is the per-node delivery outcome.
type Report struct {
	Node string
	Err  error
}

// Pusher fans configuration out to nodes concurrently.
type Pusher struct {
	Dialer device.Dialer
	// Workers bounds concurrency. Zero means DefaultWorkers.
	Workers int
	// Logger used for per-node progress. Nil uses the root logger.
	Logger log.Logger
}

// Push delivers all units and returns one report per unit, in unit
// order. Partial success is expected; the returned reports carry the
// per-node errors.
func (p Pusher) Push(ctx context.Context, units []Unit) []Report {
	logger := p.Logger
	if logger == nil {
		logger = log.Root()
	}
	workers := p.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	reports := make([]Report, len(units))

	// The group limits concurrency only; worker errors land in the
	// reports, never in the group, so one failure cannot cancel the
	// siblings.
	g := &errgroup.Group{}
	g.SetLimit(workers)
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			reports[i] = Report{Node: u.Node, Err: p.pushOne(ctx, u, logger)}
			return nil
		})
	}
	g.Wait()
	return reports
}

func (p Pusher) pushOne(ctx context.Context, u Unit, logger log.Logger) error {
	logger.Info("configuring node", "node", u.Node, "host", u.Host, "lines", len(u.Lines))
	sess, err := p.Dialer.Dial(ctx, u.Host)
	if err != nil {
		return err
	}
	defer sess.Close()
	if err := sess.Configure(ctx, u.Lines); err != nil {
		return err
	}
	logger.Info("node configured", "node", u.Node)
	return nil
}

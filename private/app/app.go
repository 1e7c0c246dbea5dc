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

// Package app contains helpers shared by the wizard commands.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/xrdlab/xrwizard/pkg/log"
	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/device"
	"github.com/xrdlab/xrwizard/private/topology"
)

// SetupLog initializes the root logger at the given level.
func SetupLog(level string) error {
	if err := log.Setup(log.Config{Level: level}); err != nil {
		return serrors.Wrap("setting up logging", err)
	}
	return nil
}

// Confirm prompts the user on a TTY and returns whether they agreed.
// Off-TTY it returns assumeYes, so scripted runs need --yes to proceed.
func Confirm(out io.Writer, in *os.File, prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	if !isatty.IsTerminal(in.Fd()) {
		return false
	}
	fmt.Fprintf(out, "%s (y/N): ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}

// FindTopologyFile locates the single *.clab.yml in dir.
func FindTopologyFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.clab.yml"))
	if err != nil {
		return "", serrors.Wrap("globbing topology file", err)
	}
	switch len(matches) {
	case 0:
		return "", serrors.New("no .clab.yml file found", "dir", dir)
	case 1:
		return matches[0], nil
	default:
		return "", serrors.New("multiple .clab.yml files found", "dir", dir)
	}
}

// GatherTopology builds the validated, kind-filtered topology from
// containerlab inspect output and the lab's topology file. The full
// inventory is validated first, so a link referencing a node that is
// not in the lab at all is a fatal input error; only then is the
// inventory narrowed to the given node kind.
func GatherTopology(ctx context.Context, inspect topology.InspectRunner,
	kind, path string) (*topology.Topology, string, error) {

	if inspect == nil {
		inspect = topology.RunContainerlabInspect
	}
	raw, err := inspect(ctx)
	if err != nil {
		return nil, "", err
	}
	inv, err := topology.ParseInspect(raw, "")
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		if path, err = FindTopologyFile("."); err != nil {
			return nil, "", err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", serrors.Wrap("reading topology file", err, "path", path)
	}
	links, err := topology.ParseLinks(data)
	if err != nil {
		return nil, "", err
	}
	topo, err := topology.New(inv.Nodes, links)
	if err != nil {
		return nil, "", err
	}
	return topo.FilterKind(kind), inv.Lab, nil
}

// DiscoverLoopbacks queries every node for its Loopback0 address and
// records it on the topology. Per-node failures are collected and
// returned; they do not abort discovery for the remaining nodes.
func DiscoverLoopbacks(ctx context.Context, dialer device.Dialer,
	topo *topology.Topology, logger log.Logger) serrors.List {

	var errs serrors.List
	for _, n := range topo.Nodes {
		addr, err := discoverOne(ctx, dialer, n)
		if err != nil {
			errs = append(errs, serrors.WithCtx(err, "node", n.Name))
			continue
		}
		topo.SetLoopback(n.Name, addr)
		logger.Debug("discovered loopback", "node", n.Name, "loopback", addr)
	}
	return errs
}

func discoverOne(ctx context.Context, dialer device.Dialer,
	n topology.Node) (netip.Addr, error) {

	sess, err := dialer.Dial(ctx, n.MgmtIPv4)
	if err != nil {
		return netip.Addr{}, err
	}
	defer sess.Close()
	return device.Loopback0(ctx, sess)
}

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

package topology

import (
	"context"
	"encoding/json"
	"net/netip"
	"os/exec"
	"strings"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
)

// rawClabNode mirrors one entry of `containerlab inspect -f json`.
type rawClabNode struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	IPv4Addr string `json:"ipv4_address"`
}

// Inventory is the parsed containerlab inspect output for one lab.
type Inventory struct {
	Lab   string
	Nodes []Node
}

// InspectRunner produces the raw `containerlab inspect -f json` output.
// It exists so tests and alternative discovery sources can stand in for
// the containerlab binary.
type InspectRunner func(ctx context.Context) ([]byte, error)

// RunContainerlabInspect shells out to containerlab.
func RunContainerlabInspect(ctx context.Context) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "containerlab", "inspect", "-f", "json").Output()
	if err != nil {
		return nil, serrors.Wrap("running containerlab inspect", err)
	}
	return out, nil
}

// ParseInspect parses containerlab inspect JSON into an Inventory,
// keeping only nodes of the given kind (all kinds if empty). Node names
// are shortened by stripping the clab-<lab>- prefix. Node order is
// preserved as reported.
func ParseInspect(data []byte, kind string) (*Inventory, error) {
	var labs map[string][]rawClabNode
	if err := json.Unmarshal(data, &labs); err != nil {
		return nil, serrors.Wrap("parsing containerlab inspect output", err)
	}
	if len(labs) == 0 {
		return nil, serrors.New("no lab found in containerlab inspect output")
	}
	// The inspect output holds a single lab keyed by name.
	var lab string
	for name := range labs {
		lab = name
	}
	inv := &Inventory{Lab: lab}
	for _, raw := range labs[lab] {
		if kind != "" && raw.Kind != kind {
			continue
		}
		addr, err := parseMgmtAddr(raw.IPv4Addr)
		if err != nil {
			return nil, serrors.Wrap("parsing management address", err,
				"node", raw.Name)
		}
		inv.Nodes = append(inv.Nodes, Node{
			Name:     ShortName(raw.Name, lab),
			Kind:     raw.Kind,
			MgmtIPv4: addr,
		})
	}
	return inv, nil
}

// ShortName strips the leading clab-<lab>- prefix if present.
func ShortName(raw, lab string) string {
	return strings.TrimPrefix(raw, "clab-"+lab+"-")
}

// parseMgmtAddr accepts both plain addresses and CIDR notation, as
// containerlab reports the management address with its prefix length.
func parseMgmtAddr(s string) (netip.Addr, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return netip.ParseAddr(s)
}

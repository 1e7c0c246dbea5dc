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
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
)

// clabTopologyFile mirrors the subset of a *.clab.yml file the link
// parser needs.
type clabTopologyFile struct {
	Links []clabLink `yaml:"links"`
	Topo  *struct {
		Links []clabLink `yaml:"links"`
	} `yaml:"topology"`
}

type clabLink struct {
	Endpoints []string `yaml:"endpoints"`
}

// ParseLinks extracts the link list from a containerlab topology file,
// preserving file order. Endpoints have the form "node:iface"; interface
// short names are expanded (Gi0-0-0-1 -> GigabitEthernet0/0/0/1).
func ParseLinks(data []byte) ([]Link, error) {
	var file clabTopologyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, serrors.Wrap("parsing topology file", err)
	}
	raw := file.Links
	if len(raw) == 0 && file.Topo != nil {
		raw = file.Topo.Links
	}
	links := make([]Link, 0, len(raw))
	for _, l := range raw {
		if len(l.Endpoints) != 2 {
			return nil, serrors.New("link must have exactly two endpoints",
				"endpoints", len(l.Endpoints))
		}
		localNode, localIface, err := splitEndpoint(l.Endpoints[0])
		if err != nil {
			return nil, err
		}
		neighNode, neighIface, err := splitEndpoint(l.Endpoints[1])
		if err != nil {
			return nil, err
		}
		links = append(links, Link{
			LocalNode:     localNode,
			LocalIface:    ExpandIfName(localIface),
			NeighborNode:  neighNode,
			NeighborIface: ExpandIfName(neighIface),
		})
	}
	return links, nil
}

func splitEndpoint(ep string) (string, string, error) {
	node, iface, ok := strings.Cut(ep, ":")
	if !ok {
		return "", "", serrors.New("unsupported endpoint format", "endpoint", ep)
	}
	return strings.TrimSpace(node), strings.TrimSpace(iface), nil
}

// ExpandIfName translates interface short names like Gi0-0-0-1 into
// GigabitEthernet0/0/0/1. Names that already carry the long form, and
// names with an unknown prefix, are returned unchanged.
func ExpandIfName(short string) string {
	s := strings.TrimSpace(short)
	if strings.HasPrefix(strings.ToLower(s), "gigabit") {
		return s
	}
	if strings.HasPrefix(s, "Gi") || strings.HasPrefix(s, "gi") {
		return "GigabitEthernet" + strings.ReplaceAll(s[2:], "-", "/")
	}
	return s
}

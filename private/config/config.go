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

// Package config holds the wizard configuration: device credentials and
// lab-wide defaults. Everything here is explicit state handed to the
// planners and the delivery engine; there are no ambient toggles.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
)

// Config is the wizard configuration file content.
type Config struct {
	// NodeKind filters the containerlab inventory. Only nodes of this
	// kind are planned and configured.
	NodeKind string `toml:"node_kind"`
	// Workers bounds concurrent device sessions during delivery.
	Workers int `toml:"workers"`

	Credentials Credentials `toml:"credentials"`
	BGP         BGP         `toml:"bgp"`
}

// Credentials authenticate device sessions.
type Credentials struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// BGP holds the iBGP defaults.
type BGP struct {
	// ASN is the single AS for iBGP.
	ASN uint32 `toml:"asn"`
	// Password is the neighbor-group session password.
	Password string `toml:"password"`
}

// Default returns the lab defaults used when no file is given.
func Default() Config {
	return Config{
		NodeKind: "cisco_xrd",
		Workers:  8,
		Credentials: Credentials{
			Username: "clab",
			Password: "clab@123",
		},
		BGP: BGP{
			ASN:      65000,
			Password: "hurz123",
		},
	}
}

// Load reads a TOML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, serrors.Wrap("reading config file", err, "path", path)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, serrors.Wrap("parsing config file", err, "path", path)
	}
	return cfg, nil
}

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

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
	"github.com/xrdlab/xrwizard/private/app"
	"github.com/xrdlab/xrwizard/private/config"
	"github.com/xrdlab/xrwizard/private/deliver"
)

// setup loads the wizard configuration and initializes logging.
func setup(flags *rootFlags) (config.Config, error) {
	if err := app.SetupLog(flags.logLevel); err != nil {
		return config.Config{}, err
	}
	if flags.noColor {
		color.NoColor = true
	}
	return config.Load(flags.configFile)
}

// printWarnings lists non-fatal discovery problems.
func printWarnings(w io.Writer, warnings serrors.List) {
	for _, err := range warnings {
		color.New(color.FgYellow).Fprintf(w, "warning: %v\n", err)
	}
}

// printReports prints the per-node delivery outcomes and returns an
// error if any node failed, so the command exits non-zero on partial
// failure.
func printReports(w io.Writer, reports []deliver.Report) error {
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			color.New(color.FgRed).Fprintf(w, "failed: %s: %v\n", r.Node, r.Err)
			continue
		}
		color.New(color.FgGreen).Fprintf(w, "configured: %s\n", r.Node)
	}
	if failed > 0 {
		return serrors.New("delivery failed on some nodes",
			"failed", failed, "total", len(reports))
	}
	fmt.Fprintf(w, "%d nodes configured.\n", len(reports))
	return nil
}

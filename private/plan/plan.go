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

// Package plan holds the pieces shared by the OSPF and BGP planners:
// the per-run link occurrence tracker and the plan completeness signal.
package plan

// Completeness reports whether role classification produced a usable
// plan. AllOther means every node classified to the catch-all role; the
// caller must explicitly decide whether to apply the flat fallback, the
// planner never guesses.
type Completeness int

const (
	// Complete means at least one node classified to a known role.
	Complete Completeness = iota
	// AllOther means classification failed for every node and the plan
	// contains no assignments unless fallback was forced.
	AllOther
)

func (c Completeness) String() string {
	switch c {
	case Complete:
		return "complete"
	case AllOther:
		return "all-other"
	default:
		return "unknown"
	}
}

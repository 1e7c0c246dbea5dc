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

package plan

// OccurrenceKey identifies a node pair for stateful link rules. Keys are
// canonical: the same pair in either order maps to the same key.
type OccurrenceKey struct {
	A, B string
}

// NewOccurrenceKey returns the canonical key for the given node pair.
func NewOccurrenceKey(a, b string) OccurrenceKey {
	if a > b {
		a, b = b, a
	}
	return OccurrenceKey{A: a, B: b}
}

// OccurrenceTracker counts how often a stateful link pattern has been
// seen within one planning run. The count depends on link traversal
// order: the same physical link gets a different outcome if the input
// link list is reordered, so link order must be preserved from discovery
// through planning.
type OccurrenceTracker interface {
	// Next returns the occurrence index for the key, starting at 1 and
	// increasing by one per call.
	Next(key OccurrenceKey) int
}

// Tracker is the standard OccurrenceTracker, scoped to one planning run
// and not safe for concurrent use.
type Tracker struct {
	counts map[OccurrenceKey]int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{counts: make(map[OccurrenceKey]int)}
}

// Next implements OccurrenceTracker.
func (t *Tracker) Next(key OccurrenceKey) int {
	t.counts[key]++
	return t.counts[key]
}

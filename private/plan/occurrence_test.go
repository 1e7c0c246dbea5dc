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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOccurrenceKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NewOccurrenceKey("a", "b"), NewOccurrenceKey("b", "a"))
	assert.Equal(t, OccurrenceKey{A: "ahrb1", B: "ahrg1"},
		NewOccurrenceKey("ahrg1", "ahrb1"))
}

func TestTracker(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	key := NewOccurrenceKey("ahrg1", "ahrb1")
	assert.Equal(t, 1, tr.Next(key))
	// The same pair seen from the other side continues the count.
	assert.Equal(t, 2, tr.Next(NewOccurrenceKey("ahrb1", "ahrg1")))
	assert.Equal(t, 3, tr.Next(key))
	// Distinct pairs count independently.
	assert.Equal(t, 1, tr.Next(NewOccurrenceKey("ahrg2", "ahrb2")))
}

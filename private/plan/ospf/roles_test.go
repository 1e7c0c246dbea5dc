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

package ospf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := map[string]struct {
		Name string
		Role Role
	}{
		"customer edge":          {Name: "CE1", Role: CE},
		"core hq":                {Name: "ch2", Role: CH},
		"core compute":           {Name: "cc1", Role: CC},
		"core reflector":         {Name: "cr1", Role: CR},
		"core reflector double":  {Name: "crr1", Role: CR},
		"service aggregation":    {Name: "sa3", Role: SA},
		"distribution high":      {Name: "dh1", Role: DH},
		"distribution secondary": {Name: "ds2", Role: DS},
		"aggregation hybrid":     {Name: "ah1", Role: AH},
		"access":                 {Name: "as1", Role: AS},
		"generic core c":         {Name: "c9", Role: Core},
		"generic core s":         {Name: "spine1", Role: Core},
		"generic distribution":   {Name: "d7", Role: Dist},
		"specific beats generic": {Name: "ahrg1", Role: AH},
		"case sensitive ce":      {Name: "ce1", Role: Core},
		"unknown":                {Name: "xrd1", Role: Other},
		"empty":                  {Name: "", Role: Other},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Role, Classify(tc.Name))
		})
	}
}

func TestRoleProcesses(t *testing.T) {
	testCases := map[string]struct {
		Role      Role
		Processes []int
	}{
		"ce has none":          {Role: CE, Processes: nil},
		"other has none":       {Role: Other, Processes: nil},
		"cc core only":         {Role: CC, Processes: []int{1}},
		"cr core only":         {Role: CR, Processes: []int{1}},
		"sa core only":         {Role: SA, Processes: []int{1}},
		"generic core":         {Role: Core, Processes: []int{1}},
		"ch bridges tiers":     {Role: CH, Processes: []int{1, 10}},
		"dh distribution":      {Role: DH, Processes: []int{10}},
		"ds distribution":      {Role: DS, Processes: []int{10}},
		"generic distribution": {Role: Dist, Processes: []int{10}},
		"ah bridges tiers":     {Role: AH, Processes: []int{10, 100}},
		"as access only":       {Role: AS, Processes: []int{100}},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Processes, tc.Role.Processes())
		})
	}
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, checkFormat("table"))
	assert.NoError(t, checkFormat("json"))

	err := checkFormat("yaml")
	require.Error(t, err)
	// The rejected value travels as error context, like every other
	// command error.
	assert.Equal(t, "unsupported format {format=yaml}", err.Error())
}

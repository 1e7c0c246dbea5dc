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

package render

import (
	"fmt"
)

// LoopbackInput is one provisioned loopback interface.
type LoopbackInput struct {
	Iface string
	IPv4  string
	IPv6  string
}

// Loopback renders the Loopback0 provisioning block.
func Loopback(in LoopbackInput) []string {
	return []string{
		fmt.Sprintf("interface %s", in.Iface),
		fmt.Sprintf(" ipv4 address %s 255.255.255.255", in.IPv4),
		fmt.Sprintf(" ipv6 address %s/128", in.IPv6),
		" no shutdown",
		"!",
	}
}

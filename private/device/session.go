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

// Package device provides the command session to a router: running show
// commands and pushing configuration blocks. The planners never touch
// this package; it is the delivery collaborator.
package device

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/xrdlab/xrwizard/pkg/private/serrors"
)

// Session is an interactive command session to one router.
type Session interface {
	// Run executes a single show command and returns its output.
	Run(ctx context.Context, cmd string) (string, error)
	// Configure enters configuration mode, applies the given lines and
	// commits.
	Configure(ctx context.Context, lines []string) error
	Close() error
}

// Dialer opens sessions to routers by management address.
type Dialer interface {
	Dial(ctx context.Context, host netip.Addr) (Session, error)
}

// SSHDialer dials routers over SSH with password authentication, the
// way containerlab exposes XRd management access.
type SSHDialer struct {
	Username string
	Password string
	// Port defaults to 22.
	Port int
	// Timeout bounds the TCP and SSH handshake. Defaults to 30s.
	Timeout time.Duration
}

// Dial implements Dialer.
func (d SSHDialer) Dial(ctx context.Context, host netip.Addr) (Session, error) {
	port := d.Port
	if port == 0 {
		port = 22
	}
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cfg := &ssh.ClientConfig{
		User: d.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.Password),
			ssh.KeyboardInteractive(
				func(_, _ string, questions []string, _ []bool) ([]string, error) {
					answers := make([]string, len(questions))
					for i := range questions {
						answers[i] = d.Password
					}
					return answers, nil
				},
			),
		},
		// Lab routers regenerate host keys on every deploy.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
	addr := net.JoinHostPort(host.String(), fmt.Sprint(port))
	conn, err := (&net.Dialer{Timeout: timeout}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, serrors.Wrap("dialing", err, "addr", addr)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, serrors.Wrap("ssh handshake", err, "addr", addr)
	}
	return &sshSession{client: ssh.NewClient(sshConn, chans, reqs)}, nil
}

type sshSession struct {
	client *ssh.Client
}

func (s *sshSession) Run(ctx context.Context, cmd string) (string, error) {
	sess, err := s.client.NewSession()
	if err != nil {
		return "", serrors.Wrap("opening session", err)
	}
	defer sess.Close()

	var out bytes.Buffer
	sess.Stdout = &out
	done := make(chan error, 1)
	go func() { done <- sess.Run(cmd) }()
	select {
	case <-ctx.Done():
		sess.Signal(ssh.SIGKILL)
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", serrors.Wrap("running command", err, "cmd", cmd)
		}
	}
	return out.String(), nil
}

func (s *sshSession) Configure(ctx context.Context, lines []string) error {
	// XR accepts a whole configuration block as one exec invocation of
	// config mode, terminated by commit and end.
	block := make([]string, 0, len(lines)+3)
	block = append(block, "configure terminal")
	block = append(block, lines...)
	block = append(block, "commit", "end")
	_, err := s.Run(ctx, strings.Join(block, "\n"))
	return err
}

func (s *sshSession) Close() error {
	return s.client.Close()
}

// General Isolation
//
// Copyright (c) 2025, 2026  The go-arena authors
//
// This file is part of go-arena.
//
// go-arena is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-arena is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-arena. If not, see
// <http://www.gnu.org/licenses/>

// Package isol runs one untrusted player per isolated process and
// exchanges line-delimited protocol messages with it under per-call
// timeouts.  Two interchangeable implementations exist: a bare
// subprocess and a resource-limited container.  A transport is good
// for one match only; it is never restarted or reused.
package isol

import (
	"context"
	"fmt"
	"time"

	arena "go-arena"
	"go-arena/cmd"
)

type Transport interface {
	fmt.Stringer

	// Start spawns the player process with its streams piped and
	// the diagnostic drain running.
	Start(ctx context.Context) error

	// Send writes one message followed by a newline and flushes.
	// Fails with arena.ErrExited if the process is gone.
	Send(msg arena.Message) error

	// Recv blocks until one full line arrived or the timeout
	// elapsed.  The wait is readiness-based; an idle Recv costs no
	// CPU.  Fails with arena.ErrTimeout, arena.ErrDisconnected or
	// arena.ErrMalformed.
	Recv(timeout time.Duration) (arena.Message, error)

	// Drain returns and clears all queued diagnostic lines, in
	// arrival order.  Never blocks.
	Drain() []string

	// Stop closes the input stream, waits out a short grace period
	// and then terminates the process forcibly.  Idempotent.
	Stop() error
}

// Make picks the transport implementation selected by the
// configuration.  NAME identifies the player in faults and logs, REF
// is the executable reference.
func Make(name, ref string, conf *cmd.Conf) Transport {
	if conf.Isol.Docker {
		return MakeDocker(name, ref, conf)
	}
	return MakeProcess(name, ref, conf)
}

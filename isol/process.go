// Subprocess-Based Players
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

package isol

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"

	arena "go-arena"
	"go-arena/cmd"
)

// process runs a player executable as a plain subprocess, without any
// resource limits.  Used for local development and testing; the
// container transport covers untrusted entrants.
type process struct {
	stream
	ref   string
	conf  *cmd.Conf
	run   *exec.Cmd
	stdin io.WriteCloser
	werr  error
	halt  func()
}

func MakeProcess(name, ref string, conf *cmd.Conf) Transport {
	p := &process{ref: ref, conf: conf}
	p.init(name)
	return p
}

// command builds the argument vector for an executable reference.
// Python scripts run unbuffered, everything else is executed as is.
func command(ref string) *exec.Cmd {
	if strings.HasSuffix(ref, ".py") {
		return exec.Command("python3", "-u", ref)
	}
	return exec.Command(ref)
}

func (p *process) Start(ctx context.Context) error {
	p.run = command(p.ref)

	stdin, err := p.run.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := p.run.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := p.run.StderrPipe()
	if err != nil {
		return err
	}

	if err := p.run.Start(); err != nil {
		return errors.Wrapf(err, "failed to start %s", p.ref)
	}
	arena.Debug.Printf("Started %s (pid %d)", p.ref, p.run.Process.Pid)

	p.stdin = stdin
	p.in = stdin
	p.watch(stdout, stderr)
	go func() {
		// Wait closes the parent ends of the pipes, so the
		// pumps must have read everything the player wrote
		// before the process is reaped.
		p.pumps.Wait()
		p.werr = p.run.Wait()
		close(p.dead)
	}()

	p.halt = func() {
		close(p.quit)
		p.stdin.Close()

		select {
		case <-p.dead:
			return
		case <-time.After(p.conf.Isol.Grace):
		}

		arena.Debug.Printf("Killing unresponsive %s", p)
		if err := p.run.Process.Kill(); err != nil {
			arena.Debug.Printf("Failed to kill %s: %s", p, err)
		}
		<-p.dead
	}
	return nil
}

func (p *process) Stop() error {
	if p.halt == nil {
		return nil
	}
	halt := p.halt
	p.halt = nil
	halt()
	return nil
}

var _ Transport = &process{}

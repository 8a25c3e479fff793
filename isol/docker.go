// Docker-Based Player Isolation
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
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/pkg/errors"

	arena "go-arena"
	"go-arena/cmd"
)

// docker runs a player inside a container with a CPU share, a memory
// ceiling and no network.  The caps are configuration of this
// transport, not part of the protocol; from the outside it behaves
// exactly like the subprocess transport.
type docker struct {
	stream
	ref  string
	conf *cmd.Conf
	cont *client.Client
	id   string
	att  types.HijackedResponse
	halt func()
}

func MakeDocker(name, ref string, conf *cmd.Conf) Transport {
	d := &docker{ref: ref, conf: conf}
	d.init(name)
	return d
}

func (d *docker) Start(ctx context.Context) error {
	var err error
	d.cont, err = client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		return err
	}

	ref, err := filepath.Abs(d.ref)
	if err != nil {
		return err
	}

	// The player executable is mounted read-only into a throwaway
	// container of the configured image.
	run := []string{"/arena/player"}
	if strings.HasSuffix(ref, ".py") {
		run = []string{"python", "-u", "/arena/player"}
	}

	// The documentation for the library is sparse, but it is also
	// just a wrapper around a HTTP API.  To understand what this
	// configuration does, it is necessary to read
	// https://docs.docker.com/engine/api/v1.41/#operation/ContainerCreate
	iso := &d.conf.Isol
	resp, err := d.cont.ContainerCreate(ctx, &container.Config{
		Image:       iso.Image,
		Cmd:         run,
		WorkingDir:  "/arena",
		OpenStdin:   true,
		StdinOnce:   true,
		AttachStdin: true,
	}, &container.HostConfig{
		Binds: []string{ref + ":/arena/player:ro"},
		Resources: container.Resources{
			CPUCount:   iso.CPUs,
			Memory:     iso.Memory,
			MemorySwap: iso.Swap,
		},
		NetworkMode:    container.NetworkMode(iso.Network),
		ReadonlyRootfs: true,
		AutoRemove:     true,
	}, nil, nil, fmt.Sprintf("arena-%s-%d", d.name, time.Now().UnixNano()))
	if err != nil {
		return errors.Wrapf(err, "Failed to create container for %s", d.ref)
	}
	d.id = resp.ID

	d.att, err = d.cont.ContainerAttach(ctx, d.id, types.ContainerAttachOptions{
		Stream: true,
		Stdin:  true,
		Stdout: true,
		Stderr: true,
	})
	if err != nil {
		return errors.Wrapf(err, "Failed to attach to container %s", d.id)
	}

	// The attached stream multiplexes stdout and stderr; stdcopy
	// demultiplexes it into the two pipes the stream pump expects.
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(outW, errW, d.att.Reader)
		outW.CloseWithError(err)
		errW.CloseWithError(err)
	}()

	d.in = d.att.Conn
	d.watch(outR, errR)

	okC, errC := d.cont.ContainerWait(ctx, d.id, container.WaitConditionNotRunning)
	go func() {
		select {
		case err := <-errC:
			arena.Debug.Printf("Container %s signalled an error: %s", d.id, err)
		case <-okC:
		}
		close(d.dead)
	}()

	if err := d.cont.ContainerStart(ctx, d.id, types.ContainerStartOptions{}); err != nil {
		return errors.Wrapf(err, "Failed to start container %s", d.id)
	}
	arena.Debug.Printf("Started container %s for %s", d.id, d)

	d.halt = func() {
		close(d.quit)
		if err := d.att.CloseWrite(); err != nil {
			arena.Debug.Printf("Failed to close input of %s: %s", d, err)
		}

		select {
		case <-d.dead:
		case <-time.After(iso.Grace):
			arena.Debug.Printf("Killing unresponsive container %s", d.id)
			err := d.cont.ContainerKill(context.Background(), d.id, "SIGKILL")
			if err != nil {
				arena.Debug.Printf("Failed to kill container %s: %s", d.id, err)
			}
			<-d.dead
		}
		d.att.Close()
	}
	return nil
}

func (d *docker) Stop() error {
	if d.halt == nil {
		return nil
	}
	halt := d.halt
	d.halt = nil
	halt()
	return nil
}

var _ Transport = &docker{}

// Line-oriented Message Streams
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
	"bufio"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	arena "go-arena"
	"go-arena/proto"
)

// Diagnostic lines kept per player.  When the queue is full the
// oldest lines are discarded, so a chatty player can neither block
// the protocol stream nor grow memory without bound.
const diagBacklog = 256

// A line longer than this is treated as a broken stream.
const maxLine = 1 << 20

// stream pumps the three pipes of one player process.  One goroutine
// reads protocol lines, one reads diagnostics; the control goroutine
// is the only consumer.
type stream struct {
	name string

	wlock sync.Mutex
	in    io.Writer

	lines chan []byte
	diag  chan string
	dead  chan struct{} // closed once the process has exited
	quit  chan struct{} // closed on Stop; unblocks an unread line

	// pumps counts the two reader goroutines.  Whoever reaps the
	// process must wait for them first: reaping closes the parent
	// ends of the pipes, and lines a fast-exiting player wrote
	// before the end must still be read out.
	pumps sync.WaitGroup
}

func (s *stream) init(name string) {
	s.name = name
	s.lines = make(chan []byte)
	s.diag = make(chan string, diagBacklog)
	s.dead = make(chan struct{})
	s.quit = make(chan struct{})
}

// watch consumes the protocol and diagnostic outputs of the process.
// Both goroutines end when their stream does.
func (s *stream) watch(out, diag io.Reader) {
	s.pumps.Add(2)
	go func() {
		defer s.pumps.Done()
		defer close(s.lines)
		scan := bufio.NewScanner(out)
		scan.Buffer(make([]byte, 0, 4096), maxLine)
		for scan.Scan() {
			line := make([]byte, len(scan.Bytes()))
			copy(line, scan.Bytes())
			select {
			case s.lines <- line:
			case <-s.quit:
				return
			}
		}
		if err := scan.Err(); err != nil {
			arena.Debug.Printf("%s: output stream broke: %s", s.name, err)
		}
	}()

	go func() {
		defer s.pumps.Done()
		scan := bufio.NewScanner(diag)
		scan.Buffer(make([]byte, 0, 4096), maxLine)
		for scan.Scan() {
			line := strings.TrimRight(scan.Text(), "\r")
			for {
				select {
				case s.diag <- line:
				default:
					// Queue full, drop the oldest line
					select {
					case <-s.diag:
					default:
					}
					continue
				}
				break
			}
		}
	}()
}

func (s *stream) Send(msg arena.Message) error {
	select {
	case <-s.dead:
		return errors.Wrapf(arena.ErrExited, "cannot send to %s", s.name)
	default:
	}

	s.wlock.Lock()
	defer s.wlock.Unlock()
	if err := proto.Encode(s.in, msg); err != nil {
		return errors.Wrapf(err, "send to %s", s.name)
	}
	return nil
}

func (s *stream) Recv(timeout time.Duration) (arena.Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-s.lines:
		if !ok {
			return nil, arena.ErrDisconnected
		}
		return proto.Decode(line)
	case <-timer.C:
		return nil, arena.ErrTimeout
	}
}

func (s *stream) Drain() (msgs []string) {
	for {
		select {
		case line := <-s.diag:
			msgs = append(msgs, line)
		default:
			return
		}
	}
}

func (s *stream) String() string { return s.name }

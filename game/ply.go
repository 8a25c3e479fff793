// Move Collection
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

package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	arena "go-arena"
	"go-arena/proto"
)

// A slot is the write-once result of one player's move collection.
// In a simultaneous ply each slot is written by exactly one goroutine,
// so the join barrier is the only synchronisation needed.
type slot struct {
	move interface{}
	took time.Duration
	err  *arena.Fault
}

// ply executes one step of the protocol for the given movers.  It
// returns nil on success, after which the rule set has advanced by
// exactly one ply, or a *arena.MatchError naming every fault.
func (r *runner) ply(movers []string) error {
	if r.m.Rules.Simultaneous() {
		return r.simultaneous(movers)
	}
	if len(movers) != 1 {
		panic(fmt.Sprintf("Sequential rules want %d movers", len(movers)))
	}
	return r.sequential(movers[0])
}

// collect receives and validates one move.  It runs on the control
// goroutine for sequential games and on a per-player goroutine for
// simultaneous ones; it must not touch anything but its arguments and
// the transport it was given.
func (r *runner) collect(p string) *slot {
	s := &slot{}

	start := time.Now()
	msg, err := r.m.Players[p].Recv(r.conf.Game.MoveTimeout)
	s.took = time.Since(start)
	if err != nil {
		s.err = arena.Blame(p, err)
		return s
	}

	move, ok := proto.Move(msg)
	if !ok {
		s.err = arena.Blame(p, errors.Wrapf(arena.ErrMalformed,
			"reply %v carries no move", msg))
		return s
	}

	if err := r.m.Rules.Validate(p, move); err != nil {
		s.err = arena.Blame(p, err)
		return s
	}

	s.move = move
	return s
}

func (r *runner) sequential(p string) error {
	if err := r.m.Players[p].Send(r.m.Rules.Request(p)); err != nil {
		return &arena.MatchError{Faults: []*arena.Fault{arena.Blame(p, err)}}
	}

	s := r.collect(p)
	if s.err != nil {
		return &arena.MatchError{Faults: []*arena.Fault{s.err}}
	}

	r.times[p] += s.took
	r.moves[p]++
	r.m.Rules.Apply(p, s.move)
	r.publish("move", arena.Message{"player": p, "move": s.move})
	return nil
}

// simultaneous collects one move from every mover at once.  All
// requests go out before any answer is awaited, so no player can
// learn about another's move, and every collection enforces its own
// timeout; a failure never cancels the siblings.
func (r *runner) simultaneous(movers []string) error {
	for _, p := range movers {
		if err := r.m.Players[p].Send(r.m.Rules.Request(p)); err != nil {
			return &arena.MatchError{Faults: []*arena.Fault{arena.Blame(p, err)}}
		}
	}

	slots := make([]*slot, len(movers))
	var join sync.WaitGroup
	for i, p := range movers {
		join.Add(1)
		go func(i int, p string) {
			defer join.Done()
			slots[i] = r.collect(p)
		}(i, p)
	}
	join.Wait()

	var faults []*arena.Fault
	for _, s := range slots {
		if s.err != nil {
			faults = append(faults, s.err)
		}
	}
	if len(faults) > 0 {
		return &arena.MatchError{Faults: faults}
	}

	// Only now, with every answer in, may the shared state change.
	// Staged moves apply in roster order, never arrival order.
	for i, p := range movers {
		r.times[p] += slots[i].took
		r.moves[p]++
		r.m.Rules.Apply(p, slots[i].move)
		r.publish("move", arena.Message{"player": p, "move": slots[i].move})
	}
	r.m.Rules.Resolve()
	return nil
}

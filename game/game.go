// Match Runner
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

// Package game drives one complete match between a rule set and its
// player transports: handshake, game-start broadcast, ply loop,
// game-over broadcast, teardown.  The driver knows nothing about any
// concrete game; the rule set knows nothing about processes or
// concurrency.
package game

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	arena "go-arena"
	"go-arena/cmd"
	"go-arena/isol"
	"go-arena/proto"
)

// A Match wires one rule set to its transports for a single game.
// Neither the rule set nor the transports survive the match.
type Match struct {
	Id      uuid.UUID
	Rules   arena.Manager
	Roster  []string
	Players map[string]isol.Transport
}

func MakeMatch(rules arena.Manager, roster []string, players map[string]isol.Transport) *Match {
	return &Match{
		Id:      uuid.New(),
		Rules:   rules,
		Roster:  roster,
		Players: players,
	}
}

type runner struct {
	st    *cmd.State
	conf  *cmd.Conf
	m     *Match
	times map[string]time.Duration
	moves map[string]uint
}

// Run plays M to completion and converts the final state into a
// result record.  Any player fault aborts the match with a
// *arena.MatchError naming every offender; the transports are stopped
// on every exit path.  ST may be nil when no observer is attached.
func Run(st *cmd.State, conf *cmd.Conf, m *Match) (*arena.MatchResult, error) {
	r := &runner{
		st:    st,
		conf:  conf,
		m:     m,
		times: make(map[string]time.Duration),
		moves: make(map[string]uint),
	}

	defer func() {
		for _, p := range m.Roster {
			if err := m.Players[p].Stop(); err != nil {
				log.Printf("Failed to stop %s: %s", p, err)
			}
		}
	}()

	ctx := context.Background()
	if st != nil {
		ctx = st.Context
	}

	if err := m.Rules.Init(m.Roster); err != nil {
		return nil, err
	}

	start := time.Now()
	for _, p := range m.Roster {
		if err := m.Players[p].Start(ctx); err != nil {
			return nil, r.abort(arena.Blame(p, err))
		}
	}

	// Every player has to announce itself before the first
	// game_start goes out.
	for _, p := range m.Roster {
		msg, err := m.Players[p].Recv(conf.Game.ReadyTimeout)
		if err != nil {
			return nil, r.abort(arena.Blame(p, err))
		}
		if !proto.IsReady(msg) {
			return nil, r.abort(arena.Blame(p,
				errors.Wrapf(arena.ErrNotReady, "got %v", msg)))
		}
		arena.Debug.Printf("%s is ready", p)
	}
	r.drain()

	for _, p := range m.Roster {
		if err := m.Players[p].Send(m.Rules.Opening(p)); err != nil {
			return nil, r.abort(arena.Blame(p, err))
		}
	}
	r.drain()
	r.publish("match_start", arena.Message{"players": m.Roster})

	for !m.Rules.Over() {
		movers := r.movers()
		if len(movers) == 0 {
			// Concluded by exhaustion rather than by an
			// explicit final state.
			break
		}
		if conf.Verbose {
			log.Printf("Current position:\n%s", m.Rules)
		}
		if err := r.ply(movers); err != nil {
			return nil, r.abort(err)
		}
		r.drain()
	}

	res := m.Rules.Result()
	res.Id = m.Id
	res.Times = r.times
	res.Moves = r.moves
	res.Duration = time.Since(start)

	over := proto.GameOver(res)
	for _, p := range m.Roster {
		if err := m.Players[p].Send(over); err != nil {
			arena.Debug.Printf("Failed to notify %s: %s", p, err)
		}
	}
	r.drain()
	r.publish("match_end", arena.Message{
		"result":       res.Summary,
		"winner":       res.Winner,
		"final_scores": res.Scores,
	})

	return res, nil
}

// abort notifies the surviving players and normalises ERR into a
// *arena.MatchError.
func (r *runner) abort(err error) error {
	match := &arena.MatchError{}
	if !errors.As(err, &match) {
		match = &arena.MatchError{Faults: []*arena.Fault{arena.Blame("", err)}}
	}

	notice := proto.Error(match.Error())
	for _, p := range r.m.Roster {
		if err := r.m.Players[p].Send(notice); err != nil {
			arena.Debug.Printf("Failed to notify %s: %s", p, err)
		}
	}
	r.drain()
	r.publish("match_abort", arena.Message{"error": match.Error()})
	return match
}

// movers returns the eligible players of the current ply in roster
// order, so that moves are later applied deterministically no matter
// in what order the answers arrived.
func (r *runner) movers() []string {
	eligible := make(map[string]bool)
	for _, p := range r.m.Rules.Movers() {
		eligible[p] = true
	}

	var movers []string
	for _, p := range r.m.Roster {
		if eligible[p] {
			movers = append(movers, p)
		}
	}
	return movers
}

// drain surfaces or discards the diagnostic backlog of every player.
func (r *runner) drain() {
	for _, p := range r.m.Roster {
		for _, line := range r.m.Players[p].Drain() {
			if r.conf.Verbose {
				log.Printf("[%s LOG] %s", p, line)
			}
		}
	}
}

func (r *runner) publish(kind string, payload arena.Message) {
	if r.st != nil {
		r.st.Publish(kind, r.m.Id, payload)
	}
}

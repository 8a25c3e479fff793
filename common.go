// Common Interfaces and Types
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

package arena

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// A Message is one line on the wire: a loosely structured mapping from
// field names to values with a "type" discriminator.  Messages are
// serialised as a single JSON object per line.
type Message map[string]interface{}

// Type returns the message discriminator, or "" if there is none.
func (m Message) Type() string {
	t, _ := m["type"].(string)
	return t
}

// Manager is the contract between the game-agnostic driver and a
// concrete rule set.  The driver never touches game state except
// through these methods, and only ever calls Apply with a move that
// Validate has accepted for the same player in the same ply.
//
// The embedded Stringer renders the current position for observers;
// its output is never sent to players.
type Manager interface {
	fmt.Stringer

	// Init seeds the rule set with the fixed roster of the match.
	// It fails with a RosterError if the roster has the wrong size.
	Init(roster []string) error

	// Opening builds the game_start payload for one player.
	Opening(player string) Message

	// Simultaneous reports whether all movers of a ply act at once.
	// The answer is fixed for the lifetime of a match.
	Simultaneous() bool

	// Movers returns the players eligible to act in the current
	// ply.  An empty slice means the game has run out of plies.
	Movers() []string

	// Request builds the your_turn payload for one eligible player.
	Request(player string) Message

	// Validate checks a move structurally and against the rules.
	// It must be free of side effects.
	Validate(player string, move interface{}) error

	// Apply commits a validated move.  In simultaneous games the
	// move is only staged; outcomes are settled by Resolve.
	Apply(player string, move interface{})

	// Resolve settles one ply of a simultaneous game after every
	// eligible mover has staged a move.  Sequential rule sets never
	// see this call.
	Resolve()

	// Over reports whether the game has reached a final state.
	Over() bool

	// Result reports the final outcome.  Only meaningful once Over
	// returns true or Movers has returned an empty slice.
	Result() *MatchResult
}

// MatchResult is the immutable record of one finished match.  The rule
// set fills in the outcome fields; the match runner adds identity and
// accounting before handing the record on.
type MatchResult struct {
	Id      uuid.UUID
	Summary string
	Winner  string // empty on a draw
	Scores  map[string]float64

	// Extra carries game-specific result fields (final board, move
	// history) that are merged into the game_over payload.
	Extra Message

	// Per-player accounting, filled in by the match runner.
	Times    map[string]time.Duration
	Moves    map[string]uint
	Duration time.Duration
}

func (r *MatchResult) String() string {
	if r.Winner == "" {
		return fmt.Sprintf("%s (draw)", r.Summary)
	}
	return fmt.Sprintf("%s (%s won)", r.Summary, r.Winner)
}

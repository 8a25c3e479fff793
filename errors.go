// Fault Taxonomy
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
	"errors"
	"fmt"
	"strings"
)

// Every way a player can break a match.  A fault during a ply is never
// retried: the match ends immediately and the fault is attributed to
// the offending player.
var (
	// ErrTimeout: no complete line arrived within the ply's bound.
	ErrTimeout = errors.New("timed out")

	// ErrDisconnected: the player's output stream closed before a
	// complete line arrived.
	ErrDisconnected = errors.New("disconnected")

	// ErrMalformed: a line arrived but was not a well-formed
	// protocol message.
	ErrMalformed = errors.New("malformed message")

	// ErrNotReady: the player's first message did not signal
	// readiness.
	ErrNotReady = errors.New("no ready signal")

	// ErrExited: an attempt to write to a player whose process has
	// already terminated.
	ErrExited = errors.New("player process has exited")
)

// A RosterError reports a match started with the wrong number of
// participants for the rule set.
type RosterError struct {
	Want, Got int
}

func (e *RosterError) Error() string {
	return fmt.Sprintf("roster has %d players, rules require %d", e.Got, e.Want)
}

// A ValidationError carries the human-readable reason a rule set
// rejected a structurally delivered move.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Reject is a convenience constructor used by rule sets.
func Reject(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// A Fault attributes an error to the player that caused it.
type Fault struct {
	Player string
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Player, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Blame wraps an error with the identity of the offending player.
// Errors that are already attributed pass through unchanged.
func Blame(player string, err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Player: player, Err: err}
}

// A MatchError aggregates all faults of one aborted match.  A
// simultaneous ply can fail for more than one player at once, and no
// fault may shadow another.
type MatchError struct {
	Faults []*Fault
}

func (e *MatchError) Error() string {
	parts := make([]string, len(e.Faults))
	for i, f := range e.Faults {
		parts[i] = f.Error()
	}
	return "match aborted: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual faults to errors.Is and errors.As.
func (e *MatchError) Unwrap() []error {
	errs := make([]error, len(e.Faults))
	for i, f := range e.Faults {
		errs[i] = f
	}
	return errs
}

// Offenders lists the players at fault, in roster order.
func (e *MatchError) Offenders() []string {
	seen := make(map[string]bool)
	var players []string
	for _, f := range e.Faults {
		if !seen[f.Player] {
			seen[f.Player] = true
			players = append(players, f.Player)
		}
	}
	return players
}

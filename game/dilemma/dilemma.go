// Iterated Prisoner's Dilemma Rules
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

// Package dilemma implements the simultaneous reference game: an
// iterated prisoner's dilemma over a fixed number of rounds with the
// classic payoff table.
package dilemma

import (
	"fmt"
	"strings"

	arena "go-arena"
	"go-arena/proto"
)

const (
	Cooperate = "C"
	Defect    = "D"

	// DefaultRounds is the usual tournament length.
	DefaultRounds = 100
)

// payoff maps one pair of staged moves onto the points gained.
func payoff(mine, theirs string) int {
	switch {
	case mine == Cooperate && theirs == Cooperate:
		return 3
	case mine == Cooperate && theirs == Defect:
		return 0
	case mine == Defect && theirs == Cooperate:
		return 5
	default:
		return 1
	}
}

type round struct {
	moves [2]string
	gains [2]int
}

type pd struct {
	rounds  int
	roster  []string
	current int
	scores  map[string]int
	staged  map[string]string
	history []round
}

func Make(rounds int) arena.Manager {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return &pd{
		rounds: rounds,
		scores: make(map[string]int),
		staged: make(map[string]string),
	}
}

func (g *pd) Init(roster []string) error {
	if len(roster) != 2 {
		return &arena.RosterError{Want: 2, Got: len(roster)}
	}
	g.roster = roster
	for _, p := range roster {
		g.scores[p] = 0
	}
	return nil
}

func (g *pd) Opening(player string) arena.Message {
	return arena.Message{
		"type":   proto.TypeGameStart,
		"game":   "prisoners_dilemma",
		"rounds": g.rounds,
		"rules": arena.Message{
			"both_cooperate":                 arena.Message{"you": 3, "opponent": 3},
			"you_cooperate_opponent_defects": arena.Message{"you": 0, "opponent": 5},
			"you_defect_opponent_cooperates": arena.Message{"you": 5, "opponent": 0},
			"both_defect":                    arena.Message{"you": 1, "opponent": 1},
		},
	}
}

func (*pd) Simultaneous() bool { return true }

func (g *pd) Movers() []string {
	if g.current < g.rounds {
		return g.roster
	}
	return nil
}

func (g *pd) side(player string) int {
	if player == g.roster[0] {
		return 0
	}
	return 1
}

func (g *pd) Request(player string) arena.Message {
	msg := arena.Message{
		"type":       proto.TypeYourTurn,
		"round":      g.current + 1,
		"your_score": g.scores[player],
	}
	if len(g.history) > 0 {
		last := g.history[len(g.history)-1]
		me := g.side(player)
		msg["last_round"] = arena.Message{
			"your_move":         last.moves[me],
			"opponent_move":     last.moves[1-me],
			"your_score_gained": last.gains[me],
		}
	}
	return msg
}

func (g *pd) Validate(player string, move interface{}) error {
	s, ok := move.(string)
	if !ok {
		return arena.Reject("move must be a string, got %v", move)
	}
	switch strings.ToUpper(s) {
	case Cooperate, Defect:
		return nil
	default:
		return arena.Reject("move must be %q (cooperate) or %q (defect), got %q",
			Cooperate, Defect, s)
	}
}

// Apply only stages the move; the outcome of the round is settled in
// Resolve once both players have committed.
func (g *pd) Apply(player string, move interface{}) {
	g.staged[player] = strings.ToUpper(move.(string))
}

func (g *pd) Resolve() {
	if len(g.staged) != len(g.roster) {
		panic(fmt.Sprintf("Resolving with %d of %d moves staged",
			len(g.staged), len(g.roster)))
	}

	a, b := g.staged[g.roster[0]], g.staged[g.roster[1]]
	ga, gb := payoff(a, b), payoff(b, a)
	g.scores[g.roster[0]] += ga
	g.scores[g.roster[1]] += gb
	g.history = append(g.history, round{
		moves: [2]string{a, b},
		gains: [2]int{ga, gb},
	})

	g.staged = make(map[string]string)
	g.current++
}

func (g *pd) Over() bool { return g.current >= g.rounds }

func (g *pd) Result() *arena.MatchResult {
	res := &arena.MatchResult{
		Scores: make(map[string]float64),
	}
	for _, p := range g.roster {
		res.Scores[p] = float64(g.scores[p])
	}

	history := make([][4]interface{}, len(g.history))
	for i, r := range g.history {
		history[i] = [4]interface{}{r.moves[0], r.moves[1], r.gains[0], r.gains[1]}
	}
	res.Extra = arena.Message{"history": history}

	a, b := g.roster[0], g.roster[1]
	switch {
	case g.scores[a] > g.scores[b]:
		res.Winner = a
		res.Summary = fmt.Sprintf("%s wins with %d points", a, g.scores[a])
	case g.scores[b] > g.scores[a]:
		res.Winner = b
		res.Summary = fmt.Sprintf("%s wins with %d points", b, g.scores[b])
	default:
		res.Summary = fmt.Sprintf("Draw with %d points each", g.scores[a])
	}
	return res
}

func (g *pd) String() string {
	return fmt.Sprintf("Round %d/%d\nScores: %s=%d, %s=%d",
		g.current, g.rounds,
		g.roster[0], g.scores[g.roster[0]],
		g.roster[1], g.scores[g.roster[1]])
}

var _ arena.Manager = &pd{}

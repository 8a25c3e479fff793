// Tic-Tac-Toe Rules
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

// Package tictactoe implements the turn-based reference game: a 3x3
// board addressed by cell indices 0 to 8, first player X, second
// player O.
package tictactoe

import (
	"fmt"
	"strings"

	arena "go-arena"
	"go-arena/proto"
)

// The eight winning lines
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

type ttt struct {
	roster  []string
	symbols map[string]string
	board   [9]string
	current string // symbol to move
	last    int    // previous move, -1 before the first
	count   int
	winner  string // "X", "O", "draw" or "" while ongoing
}

func Make() arena.Manager {
	return &ttt{last: -1}
}

func (t *ttt) Init(roster []string) error {
	if len(roster) != 2 {
		return &arena.RosterError{Want: 2, Got: len(roster)}
	}
	t.roster = roster
	t.symbols = map[string]string{
		roster[0]: "X",
		roster[1]: "O",
	}
	t.current = "X"
	return nil
}

func (t *ttt) Opening(player string) arena.Message {
	return arena.Message{
		"type":   proto.TypeGameStart,
		"game":   "tictactoe",
		"symbol": t.symbols[player],
	}
}

func (*ttt) Simultaneous() bool { return false }

func (t *ttt) Movers() []string {
	if t.winner != "" {
		return nil
	}
	for _, p := range t.roster {
		if t.symbols[p] == t.current {
			return []string{p}
		}
	}
	return nil
}

func (t *ttt) Request(player string) arena.Message {
	msg := arena.Message{
		"type":       proto.TypeYourTurn,
		"time_index": t.count,
	}
	if t.last >= 0 {
		opponent := "O"
		if t.symbols[player] == "O" {
			opponent = "X"
		}
		msg["opponent_move"] = arena.Message{
			"position": t.last,
			"symbol":   opponent,
		}
	}
	return msg
}

func (t *ttt) Validate(player string, move interface{}) error {
	pos, ok := proto.Int(move)
	if !ok {
		return arena.Reject("move must be a cell index, got %v", move)
	}
	if pos < 0 || pos >= 9 {
		return arena.Reject("move must be between 0 and 8, got %d", pos)
	}
	if t.board[pos] != "" {
		return arena.Reject("position %d is already occupied", pos)
	}
	if t.symbols[player] != t.current {
		return arena.Reject("it is not your turn")
	}
	return nil
}

func (t *ttt) Apply(player string, move interface{}) {
	pos, ok := proto.Int(move)
	if !ok {
		panic(fmt.Sprintf("Unvalidated move %v", move))
	}

	symbol := t.symbols[player]
	t.board[pos] = symbol
	t.last = pos
	t.count++

	t.winner = t.check()
	if t.winner == "" {
		if t.current == "X" {
			t.current = "O"
		} else {
			t.current = "X"
		}
	}
}

func (*ttt) Resolve() {}

func (t *ttt) Over() bool { return t.winner != "" }

func (t *ttt) check() string {
	for _, l := range lines {
		if t.board[l[0]] != "" &&
			t.board[l[0]] == t.board[l[1]] &&
			t.board[l[1]] == t.board[l[2]] {
			return t.board[l[0]]
		}
	}
	if t.count == 9 {
		return "draw"
	}
	return ""
}

func (t *ttt) Result() *arena.MatchResult {
	res := &arena.MatchResult{
		Scores: make(map[string]float64),
		Extra:  arena.Message{"board": t.board[:]},
	}

	switch t.winner {
	case "draw", "":
		res.Summary = "Draw"
		for _, p := range t.roster {
			res.Scores[p] = 0.5
		}
	default:
		for _, p := range t.roster {
			if t.symbols[p] == t.winner {
				res.Winner = p
				res.Scores[p] = 1
			} else {
				res.Scores[p] = 0
			}
		}
		res.Summary = fmt.Sprintf("%s wins", t.winner)
	}
	return res
}

func (t *ttt) String() string {
	cell := func(i int) string {
		if t.board[i] == "" {
			return fmt.Sprint(i)
		}
		return t.board[i]
	}

	var b strings.Builder
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&b, "  %s | %s | %s\n",
			cell(3*row), cell(3*row+1), cell(3*row+2))
		if row < 2 {
			b.WriteString(" -----------\n")
		}
	}
	return b.String()
}

var _ arena.Manager = &ttt{}

// Tic-tac-toe strategies
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

package bot

import (
	arena "go-arena"
	"go-arena/proto"
)

// rows, columns and diagonals of the 3x3 grid
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// grid tracks the board as seen by one player.
type grid struct {
	board  [9]string
	symbol string
}

func (g *grid) Begin(opening arena.Message) {
	if s, ok := opening["symbol"].(string); ok {
		g.symbol = s
	}
}

// note records the opponent's move from a turn request.
func (g *grid) note(req arena.Message) {
	var om map[string]interface{}
	switch v := req["opponent_move"].(type) {
	case arena.Message:
		om = v
	case map[string]interface{}:
		om = v
	default:
		return
	}
	pos, ok := proto.Int(om["position"])
	if !ok || pos < 0 || pos > 8 {
		return
	}
	if s, ok := om["symbol"].(string); ok {
		g.board[pos] = s
	}
}

// winning returns a free position completing a line for symbol, or -1.
func (g *grid) winning(symbol string) int {
	for _, line := range lines {
		var mine, free, at int
		at = -1
		for _, i := range line {
			switch g.board[i] {
			case symbol:
				mine++
			case "":
				free++
				at = i
			}
		}
		if mine == 2 && free == 1 {
			return at
		}
	}
	return -1
}

func (g *grid) free() int {
	for i, c := range g.board {
		if c == "" {
			return i
		}
	}
	return -1
}

// firstfree takes the lowest-numbered free position.
type firstfree struct{ grid }

func (f *firstfree) Move(req arena.Message) interface{} {
	f.note(req)
	pos := f.free()
	if pos >= 0 {
		f.board[pos] = f.symbol
	}
	return pos
}

func (*firstfree) String() string { return "firstfree" }

func MakeFirstFree() Strategy { return &firstfree{} }

// blocker completes its own lines first, then blocks the opponent,
// then falls back to the first free position.
type blocker struct{ grid }

func (b *blocker) Move(req arena.Message) interface{} {
	b.note(req)
	other := "X"
	if b.symbol == "X" {
		other = "O"
	}
	pos := b.winning(b.symbol)
	if pos < 0 {
		pos = b.winning(other)
	}
	if pos < 0 {
		pos = b.free()
	}
	if pos >= 0 {
		b.board[pos] = b.symbol
	}
	return pos
}

func (*blocker) String() string { return "blocker" }

func MakeBlocker() Strategy { return &blocker{} }

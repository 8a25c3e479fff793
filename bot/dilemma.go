// Iterated prisoner's dilemma strategies
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
	"go-arena/game/dilemma"
)

type cooperate struct{}

func (cooperate) Begin(arena.Message)            {}
func (cooperate) Move(arena.Message) interface{} { return dilemma.Cooperate }
func (cooperate) String() string                 { return "cooperate" }

func MakeCooperate() Strategy { return cooperate{} }

type defect struct{}

func (defect) Begin(arena.Message)            {}
func (defect) Move(arena.Message) interface{} { return dilemma.Defect }
func (defect) String() string                 { return "defect" }

func MakeDefect() Strategy { return defect{} }

// titfortat cooperates on the first round and thereafter repeats
// whatever the opponent did last.
type titfortat struct{}

func (titfortat) Begin(arena.Message) {}

func (titfortat) Move(req arena.Message) interface{} {
	var last map[string]interface{}
	switch v := req["last_round"].(type) {
	case arena.Message:
		last = v
	case map[string]interface{}:
		last = v
	default:
		return dilemma.Cooperate
	}
	if move, ok := last["opponent_move"].(string); ok {
		return move
	}
	return dilemma.Cooperate
}

func (titfortat) String() string { return "titfortat" }

func MakeTitForTat() Strategy { return titfortat{} }

// Built-in player strategies
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
	"fmt"
	"sort"
	"strings"

	arena "go-arena"
)

// A Strategy decides on moves for one game on behalf of a player
// process.  Begin is invoked once with the opening message, Move once
// for every turn request.
type Strategy interface {
	fmt.Stringer
	Begin(opening arena.Message)
	Move(req arena.Message) interface{}
}

var strategies = map[string]func() Strategy{
	"cooperate": MakeCooperate,
	"defect":    MakeDefect,
	"titfortat": MakeTitForTat,
	"firstfree": MakeFirstFree,
	"blocker":   MakeBlocker,
}

// Make resolves a strategy by name.
func Make(name string) (Strategy, error) {
	make, ok := strategies[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (have %s)",
			name, strings.Join(Names(), ", "))
	}
	return make(), nil
}

// Names lists all registered strategies.
func Names() []string {
	var names []string
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

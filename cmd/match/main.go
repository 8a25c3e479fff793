// Single match entry point
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	arena "go-arena"
	"go-arena/cmd"
	"go-arena/game"
	"go-arena/game/dilemma"
	"go-arena/game/tictactoe"
	"go-arena/isol"
)

func main() {
	gname := flag.String("game", "dilemma", "Game to play (dilemma, tictactoe)")
	rounds := flag.Int("rounds", dilemma.DefaultRounds, "Rounds per dilemma game")

	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [options] player player\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	var rules arena.Manager
	switch *gname {
	case "dilemma":
		rules = dilemma.Make(*rounds)
	case "tictactoe":
		rules = tictactoe.Make()
	default:
		log.Fatalf("Unknown game %q", *gname)
	}

	st := cmd.MakeState()
	conf := cmd.LoadConf()

	var (
		roster  []string
		players = make(map[string]isol.Transport)
	)
	for _, ref := range flag.Args() {
		name := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
		for _, have := range roster {
			if have == name {
				name = name + "_2"
			}
		}
		roster = append(roster, name)
		players[name] = isol.Make(name, ref, conf)
	}

	res, err := game.Run(st, conf, game.MakeMatch(rules, roster, players))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(rules)
	fmt.Println(res)
}

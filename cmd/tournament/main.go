// Round robin tournament entry point
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

	arena "go-arena"
	"go-arena/cmd"
	"go-arena/db"
	"go-arena/game/dilemma"
	"go-arena/game/tictactoe"
	"go-arena/sched"
	"go-arena/web"
)

func main() {
	game := flag.String("game", "dilemma", "Game to play (dilemma, tictactoe)")
	rounds := flag.Int("rounds", dilemma.DefaultRounds, "Rounds per dilemma game")

	flag.Parse()
	if flag.NArg() < 2 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [options] player...\n\nAt least two players are required.\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	var rules func() arena.Manager
	switch *game {
	case "dilemma":
		rules = func() arena.Manager { return dilemma.Make(*rounds) }
	case "tictactoe":
		rules = tictactoe.Make
	default:
		log.Fatalf("Unknown game %q", *game)
	}

	st := cmd.MakeState()
	conf := cmd.LoadConf()

	// Load components
	if conf.Database.File != "" {
		db.Register(st, conf)
	}
	web.Register(st, conf)

	t := sched.MakeTournament(rules, flag.Args())
	st.Register(t)

	// Run the tournament to completion
	st.Start(conf)

	t.PrintResults(os.Stdout)
	if err := t.Err(); err != nil {
		log.Fatal(err)
	}
}

// Built-in player entry point
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
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	arena "go-arena"
	"go-arena/bot"
	"go-arena/proto"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("player: ")
	log.SetFlags(0)

	name := flag.String("strategy", "titfortat",
		"Strategy to play ("+strings.Join(bot.Names(), ", ")+")")
	flag.Parse()

	strat, err := bot.Make(*name)
	if err != nil {
		log.Fatal(err)
	}

	out := bufio.NewWriter(os.Stdout)
	send := func(msg arena.Message) {
		if err := proto.Encode(out, msg); err != nil {
			log.Fatal(err)
		}
		if err := out.Flush(); err != nil {
			log.Fatal(err)
		}
	}

	send(proto.Ready())

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		msg, err := proto.Decode(scanner.Bytes())
		if err != nil {
			log.Fatal(err)
		}

		switch msg.Type() {
		case proto.TypeGameStart:
			log.Printf("%s joins as %v", strat, msg)
			strat.Begin(msg)
		case proto.TypeYourTurn:
			send(proto.MoveReply(strat.Move(msg)))
		case proto.TypeGameOver:
			log.Printf("game over: %v", msg)
			return
		case proto.TypeError:
			log.Fatalf("referee error: %v", msg["message"])
		default:
			log.Printf("ignoring message %q", msg.Type())
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

// Round Robin Tournament
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

// Package sched enumerates all unordered pairs of tournament entrants,
// plays a configured number of games per pairing, one match at a time,
// and folds every result into the running standings.  One broken
// player invalidates all remaining comparisons, so the first match
// fault aborts the whole tournament.
package sched

import (
	"log"
	"time"

	"github.com/pkg/errors"

	arena "go-arena"
	"go-arena/cmd"
	"go-arena/game"
	"go-arena/isol"
)

// An Entrant pairs the display name of a player with its executable
// reference.  Names are unique within a tournament even when two
// entrants run the same executable.
type Entrant struct {
	Name string
	Ref  string
}

// A record is one line of the game-by-game log.
type record struct {
	num    int
	first  string
	second string
	res    *arena.MatchResult
}

type Tournament struct {
	rules    func() arena.Manager
	entrants []Entrant

	standings map[string]*arena.Standing
	records   []*record
	err       error
	elapsed   time.Duration
	done      chan struct{}
}

// MakeTournament sets up a round-robin tournament over the given
// executable references.  RULES constructs a fresh manager per game;
// manager state is not resettable, so nothing is ever reused between
// matches.
func MakeTournament(rules func() arena.Manager, refs []string) *Tournament {
	t := &Tournament{
		rules:     rules,
		entrants:  entrants(refs),
		standings: make(map[string]*arena.Standing),
		done:      make(chan struct{}),
	}
	for _, e := range t.entrants {
		t.standings[e.Name] = &arena.Standing{Name: e.Name}
	}
	return t
}

func (*Tournament) String() string { return "Round Robin" }

func (t *Tournament) Start(st *cmd.State, conf *cmd.Conf) {
	defer close(t.done)
	defer st.Kill()

	start := time.Now()
	t.err = t.run(st, conf)
	t.elapsed = time.Since(start)

	if t.err != nil {
		log.Printf("Tournament aborted: %s", t.err)
	}
}

func (t *Tournament) Shutdown() {
	<-t.done
}

// Err reports why the tournament aborted, or nil.
func (t *Tournament) Err() error { return t.err }

func (t *Tournament) run(st *cmd.State, conf *cmd.Conf) error {
	var pairs [][2]Entrant
	for i := 0; i < len(t.entrants); i++ {
		for j := i + 1; j < len(t.entrants); j++ {
			pairs = append(pairs, [2]Entrant{t.entrants[i], t.entrants[j]})
		}
	}

	total := len(pairs) * int(conf.Tourn.Games)
	log.Printf("Round robin: %d players, %d matchups, %d games",
		len(t.entrants), len(pairs), total)

	num := 0
	for _, pair := range pairs {
		for g := uint(0); g < conf.Tourn.Games; g++ {
			select {
			case <-st.Context.Done():
				return errors.New("tournament interrupted")
			default:
			}

			num++
			log.Printf("Game %d/%d: %s vs %s",
				num, total, pair[0].Name, pair[1].Name)

			res, err := t.play(st, conf, pair)
			if err != nil {
				return errors.Wrapf(err, "game %d (%s vs %s)",
					num, pair[0].Name, pair[1].Name)
			}

			t.fold(num, pair, res)
			if st.Database != nil {
				st.Database.RecordMatch(st.Context, res,
					[]string{pair[0].Name, pair[1].Name})
			}
			log.Printf("Game %d/%d: %s", num, total, res)
		}
	}

	if st.Database != nil {
		for _, e := range t.entrants {
			st.Database.RecordStanding(st.Context, t.standings[e.Name])
		}
	}
	return nil
}

// play runs one match with freshly constructed transports and a
// freshly constructed manager.
func (t *Tournament) play(st *cmd.State, conf *cmd.Conf, pair [2]Entrant) (*arena.MatchResult, error) {
	roster := []string{pair[0].Name, pair[1].Name}
	players := map[string]isol.Transport{
		pair[0].Name: isol.Make(pair[0].Name, pair[0].Ref, conf),
		pair[1].Name: isol.Make(pair[1].Name, pair[1].Ref, conf),
	}

	return game.Run(st, conf, game.MakeMatch(t.rules(), roster, players))
}

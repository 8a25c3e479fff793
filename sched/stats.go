// Tournament Statistics
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

package sched

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	arena "go-arena"
)

// entrants derives unique display names from executable references.
// Duplicate basenames get a numeric suffix, so the same script can
// enter a tournament against itself.
func entrants(refs []string) []Entrant {
	seen := make(map[string]int)
	out := make([]Entrant, len(refs))
	for i, ref := range refs {
		base := filepath.Base(ref)
		base = strings.TrimSuffix(base, filepath.Ext(base))

		seen[base]++
		name := base
		if seen[base] > 1 {
			name = fmt.Sprintf("%s_%d", base, seen[base])
		}
		out[i] = Entrant{Name: name, Ref: ref}
	}
	return out
}

// fold merges one match result into the running standings.  Standings
// only ever grow; a folded result is never rolled back.
func (t *Tournament) fold(num int, pair [2]Entrant, res *arena.MatchResult) {
	for _, e := range pair {
		s := t.standings[e.Name]
		s.Score += res.Scores[e.Name]
		s.Games++
		s.Time += res.Times[e.Name]
		s.Moves += res.Moves[e.Name]

		switch res.Winner {
		case e.Name:
			s.Wins++
		case "":
			s.Draws++
		default:
			s.Losses++
		}
	}

	t.records = append(t.records, &record{
		num:    num,
		first:  pair[0].Name,
		second: pair[1].Name,
		res:    res,
	})
}

// Standings returns the current standings ranked by average score per
// game, ties broken by win count.
func (t *Tournament) Standings() []*arena.Standing {
	ranked := make([]*arena.Standing, 0, len(t.standings))
	for _, e := range t.entrants {
		ranked = append(ranked, t.standings[e.Name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Better(ranked[j])
	})
	return ranked
}

// PrintResults writes the final rankings, the timing summary and the
// game-by-game log.
func (t *Tournament) PrintResults(w io.Writer) {
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "FINAL RANKINGS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-6s %-30s %-10s %-8s %-8s %-12s\n",
		"Rank", "Player", "Avg/Game", "Total", "Games", "W-D-L")
	for i, s := range t.Standings() {
		fmt.Fprintf(w, "%-6d %-30s %-10.2f %-8.6g %-8d %d-%d-%d\n",
			i+1, s.Name, s.Average(), s.Score, s.Games,
			s.Wins, s.Draws, s.Losses)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TIMING")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total tournament time: %s over %d games\n",
		t.elapsed.Round(time.Millisecond), len(t.records))
	fmt.Fprintf(w, "%-30s %-15s %-15s %-12s\n",
		"Player", "Total Time", "Avg per Move", "Move Count")
	for _, e := range t.entrants {
		s := t.standings[e.Name]
		var avg time.Duration
		if s.Moves > 0 {
			avg = s.Time / time.Duration(s.Moves)
		}
		fmt.Fprintf(w, "%-30s %-15s %-15s %-12d\n",
			s.Name, s.Time.Round(time.Microsecond),
			avg.Round(time.Microsecond), s.Moves)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "GAME-BY-GAME RESULTS")
	fmt.Fprintln(w, rule)
	for _, r := range t.records {
		winner := r.res.Winner
		if winner == "" {
			winner = "Draw"
		}
		fmt.Fprintf(w, "Game %3d: %-25s vs %-25s | %g-%g | %s\n",
			r.num, r.first, r.second,
			r.res.Scores[r.first], r.res.Scores[r.second], winner)
	}
}

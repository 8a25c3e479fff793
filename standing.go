// Tournament Standings
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

package arena

import "time"

// A Standing is the running aggregate for one player across a
// tournament.  It is owned by the scheduler, updated only after a
// match produced a result, and never rolled back.
type Standing struct {
	Name   string
	Score  float64
	Games  uint
	Wins   uint
	Draws  uint
	Losses uint

	// Cumulative response time and move count, for the timing
	// summary.
	Time  time.Duration
	Moves uint
}

// Average is the ranking criterion: score per game played.
func (s *Standing) Average() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Score / float64(s.Games)
}

// Better orders standings for the final ranking: average score per
// game descending, ties broken by win count.
func (s *Standing) Better(o *Standing) bool {
	if s.Average() != o.Average() {
		return s.Average() > o.Average()
	}
	return s.Wins > o.Wins
}

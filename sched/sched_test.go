package sched

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	arena "go-arena"
	"go-arena/cmd"
	"go-arena/game/dilemma"
)

func testConf(games uint) *cmd.Conf {
	return &cmd.Conf{
		Game: cmd.GameConf{
			MoveTimeout:  5 * time.Second,
			ReadyTimeout: 5 * time.Second,
		},
		Isol: cmd.IsolConf{
			Grace: 100 * time.Millisecond,
		},
		Tourn: cmd.TournConf{
			Games: games,
		},
	}
}

func TestEntrantNames(t *testing.T) {
	for _, test := range []struct {
		refs []string
		want []string
	}{
		{
			[]string{"players/alice.py", "players/bob.py"},
			[]string{"alice", "bob"},
		},
		{
			[]string{"a/strategy.py", "b/strategy.py", "c/strategy.py"},
			[]string{"strategy", "strategy_2", "strategy_3"},
		},
		{
			[]string{"./coop", "defect.py", "./coop"},
			[]string{"coop", "defect", "coop_2"},
		},
	} {
		got := entrants(test.refs)
		if len(got) != len(test.want) {
			t.Fatalf("entrants(%v) = %v", test.refs, got)
		}
		for i, e := range got {
			if e.Name != test.want[i] {
				t.Errorf("entrants(%v)[%d] = %q, want %q",
					test.refs, i, e.Name, test.want[i])
			}
			if e.Ref != test.refs[i] {
				t.Errorf("entrants(%v)[%d] kept ref %q", test.refs, i, e.Ref)
			}
		}
	}
}

func result(winner string, scores map[string]float64) *arena.MatchResult {
	return &arena.MatchResult{
		Winner: winner,
		Scores: scores,
		Times:  map[string]time.Duration{},
		Moves:  map[string]uint{},
	}
}

func TestFoldAndRanking(t *testing.T) {
	tour := MakeTournament(nil, []string{"a", "b", "c"})
	pick := func(name string) Entrant {
		for _, e := range tour.entrants {
			if e.Name == name {
				return e
			}
		}
		t.Fatalf("no entrant %q", name)
		return Entrant{}
	}

	// a beats b, b and c draw, a beats c
	tour.fold(1, [2]Entrant{pick("a"), pick("b")},
		result("a", map[string]float64{"a": 1, "b": 0}))
	tour.fold(2, [2]Entrant{pick("b"), pick("c")},
		result("", map[string]float64{"b": 0.5, "c": 0.5}))
	tour.fold(3, [2]Entrant{pick("a"), pick("c")},
		result("a", map[string]float64{"a": 1, "c": 0}))

	ranked := tour.Standings()
	if len(ranked) != 3 {
		t.Fatalf("got %d standings", len(ranked))
	}
	if ranked[0].Name != "a" || ranked[1].Name != "b" || ranked[2].Name != "c" {
		t.Errorf("ranking is %s, %s, %s",
			ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}

	a := ranked[0]
	if a.Games != 2 || a.Wins != 2 || a.Score != 2 {
		t.Errorf("a's standing is %+v", a)
	}
	b := ranked[1]
	if b.Games != 2 || b.Wins != 0 || b.Draws != 1 || b.Losses != 1 {
		t.Errorf("b's standing is %+v", b)
	}
	if len(tour.records) != 3 {
		t.Errorf("kept %d records", len(tour.records))
	}
}

// script writes BODY as an executable shell script and returns its path.
func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	ref := filepath.Join(dir, name)
	if err := os.WriteFile(ref, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return ref
}

const playerScript = `echo '{"status": "ready"}'
while read line; do
	case "$line" in
	*game_over*) exit 0 ;;
	*your_turn*) echo '{"move": "%s"}' ;;
	esac
done
`

// Three entrants at two games per matchup make six games, with the
// defector ahead of both cooperators.
func TestRoundRobin(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns subprocesses")
	}

	dir := t.TempDir()
	coop := script(t, dir, "coop", strings.Replace(playerScript, "%s", "C", 1))
	defect := script(t, dir, "defect", strings.Replace(playerScript, "%s", "D", 1))

	rules := func() arena.Manager { return dilemma.Make(5) }
	tour := MakeTournament(rules, []string{coop, defect, coop})

	st := cmd.MakeState()
	if err := tour.run(st, testConf(2)); err != nil {
		t.Fatal(err)
	}

	if len(tour.records) != 6 {
		t.Fatalf("played %d games, want 6", len(tour.records))
	}

	ranked := tour.Standings()
	if ranked[0].Name != "defect" {
		t.Errorf("winner is %s", ranked[0].Name)
	}
	// 25 points in each of the four games against a cooperator
	if ranked[0].Score != 100 {
		t.Errorf("defect scored %g, want 100", ranked[0].Score)
	}
	for _, name := range []string{"coop", "coop_2"} {
		s := tour.standings[name]
		if s == nil {
			t.Fatalf("no standing for %s", name)
		}
		// 0 against the defector twice, 15 in each mirror game
		if s.Score != 30 {
			t.Errorf("%s scored %g, want 30", name, s.Score)
		}
		if s.Games != 4 {
			t.Errorf("%s played %d games", name, s.Games)
		}
	}
}

package dilemma

import (
	"testing"

	arena "go-arena"
)

func setup(t *testing.T, rounds int) arena.Manager {
	t.Helper()
	m := Make(rounds)
	if err := m.Init([]string{"alice", "bob"}); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPayoff(t *testing.T) {
	for _, test := range []struct {
		mine, theirs string
		want         int
	}{
		{Cooperate, Cooperate, 3},
		{Cooperate, Defect, 0},
		{Defect, Cooperate, 5},
		{Defect, Defect, 1},
	} {
		if got := payoff(test.mine, test.theirs); got != test.want {
			t.Errorf("payoff(%s, %s) = %d, want %d",
				test.mine, test.theirs, got, test.want)
		}
	}
}

func TestDefaultRounds(t *testing.T) {
	for _, rounds := range []int{0, -5} {
		g := Make(rounds).(*pd)
		if g.rounds != DefaultRounds {
			t.Errorf("Make(%d) plays %d rounds", rounds, g.rounds)
		}
	}
}

func TestValidate(t *testing.T) {
	m := setup(t, 10)
	for _, test := range []struct {
		move interface{}
		ok   bool
	}{
		{"C", true},
		{"D", true},
		{"c", true},
		{"d", true},
		{"cooperate", false},
		{"", false},
		{float64(1), false},
		{nil, false},
	} {
		err := m.Validate("alice", test.move)
		if (err == nil) != test.ok {
			t.Errorf("Validate(%v) = %v", test.move, err)
		}
	}
}

func TestMoversAndStaging(t *testing.T) {
	m := setup(t, 2)

	if !m.Simultaneous() {
		t.Error("the dilemma is a simultaneous game")
	}
	movers := m.Movers()
	if len(movers) != 2 {
		t.Fatalf("movers = %v, want both players", movers)
	}

	// Staging a move must not change anything until Resolve.
	m.Apply("alice", "C")
	if m.(*pd).scores["alice"] != 0 {
		t.Error("apply already changed the score")
	}
	m.Apply("bob", "d")
	m.Resolve()

	g := m.(*pd)
	if g.scores["alice"] != 0 || g.scores["bob"] != 5 {
		t.Errorf("scores after C/D round: %v", g.scores)
	}
	if g.current != 1 {
		t.Errorf("round counter is %d", g.current)
	}
}

func TestResolveIncomplete(t *testing.T) {
	m := setup(t, 2)
	m.Apply("alice", "C")

	defer func() {
		if recover() == nil {
			t.Error("resolving an incomplete round did not panic")
		}
	}()
	m.Resolve()
}

func TestRequestHistory(t *testing.T) {
	m := setup(t, 5)

	req := m.Request("alice")
	if req["round"] != 1 {
		t.Errorf("first round number is %v", req["round"])
	}
	if _, ok := req["last_round"]; ok {
		t.Error("history before the first round")
	}

	m.Apply("alice", "C")
	m.Apply("bob", "D")
	m.Resolve()

	req = m.Request("alice")
	last, ok := req["last_round"].(arena.Message)
	if !ok {
		t.Fatalf("no history in %v", req)
	}
	if last["your_move"] != "C" || last["opponent_move"] != "D" {
		t.Errorf("alice sees %v", last)
	}
	if last["your_score_gained"] != 0 {
		t.Errorf("alice gained %v, want 0", last["your_score_gained"])
	}

	last = m.Request("bob")["last_round"].(arena.Message)
	if last["your_move"] != "D" || last["opponent_move"] != "C" {
		t.Errorf("bob sees %v", last)
	}
	if last["your_score_gained"] != 5 {
		t.Errorf("bob gained %v, want 5", last["your_score_gained"])
	}
}

// A full game of unconditional cooperation against unconditional
// defection ends 0 to 500 over 100 rounds.
func TestLopsidedGame(t *testing.T) {
	m := setup(t, DefaultRounds)

	rounds := 0
	for m.Movers() != nil {
		for _, p := range m.Movers() {
			move := Cooperate
			if p == "bob" {
				move = Defect
			}
			if err := m.Validate(p, move); err != nil {
				t.Fatal(err)
			}
			m.Apply(p, move)
		}
		m.Resolve()
		rounds++
	}

	if rounds != DefaultRounds {
		t.Errorf("played %d rounds", rounds)
	}
	if !m.Over() {
		t.Fatal("game not over")
	}

	res := m.Result()
	if res.Scores["alice"] != 0 || res.Scores["bob"] != 500 {
		t.Errorf("scores are %v, want 0 and 500", res.Scores)
	}
	if res.Winner != "bob" {
		t.Errorf("winner is %q", res.Winner)
	}
	history, ok := res.Extra["history"].([][4]interface{})
	if !ok || len(history) != DefaultRounds {
		t.Errorf("history has %d entries", len(history))
	}
}

func TestDrawnGame(t *testing.T) {
	m := setup(t, 3)
	for !m.Over() {
		m.Apply("alice", "C")
		m.Apply("bob", "C")
		m.Resolve()
	}

	res := m.Result()
	if res.Winner != "" {
		t.Errorf("draw has winner %q", res.Winner)
	}
	if res.Scores["alice"] != 9 || res.Scores["bob"] != 9 {
		t.Errorf("scores are %v", res.Scores)
	}
}

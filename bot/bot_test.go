package bot

import (
	"testing"

	arena "go-arena"
	"go-arena/game/dilemma"
)

func TestMake(t *testing.T) {
	for _, name := range Names() {
		s, err := Make(name)
		if err != nil {
			t.Errorf("Make(%q): %s", name, err)
		}
		if s.String() != name {
			t.Errorf("Make(%q) calls itself %q", name, s)
		}
	}
	if _, err := Make("no such thing"); err == nil {
		t.Error("unknown strategy accepted")
	}
	if _, err := Make("TitForTat"); err != nil {
		t.Errorf("strategy names should be case insensitive: %s", err)
	}
}

func TestUnconditional(t *testing.T) {
	req := arena.Message{"type": "your_turn", "round": float64(1)}
	if move := MakeCooperate().Move(req); move != dilemma.Cooperate {
		t.Errorf("cooperate played %v", move)
	}
	if move := MakeDefect().Move(req); move != dilemma.Defect {
		t.Errorf("defect played %v", move)
	}
}

func TestTitForTat(t *testing.T) {
	s := MakeTitForTat()

	if move := s.Move(arena.Message{"round": float64(1)}); move != dilemma.Cooperate {
		t.Errorf("opening move is %v, want C", move)
	}

	// as decoded from the wire
	req := arena.Message{"last_round": map[string]interface{}{
		"your_move":     "C",
		"opponent_move": "D",
	}}
	if move := s.Move(req); move != "D" {
		t.Errorf("after a defection: %v", move)
	}

	// as built in-process
	req = arena.Message{"last_round": arena.Message{
		"your_move":     "D",
		"opponent_move": "C",
	}}
	if move := s.Move(req); move != "C" {
		t.Errorf("after cooperation: %v", move)
	}
}

func turn(pos int, symbol string) arena.Message {
	msg := arena.Message{"type": "your_turn"}
	if pos >= 0 {
		msg["opponent_move"] = arena.Message{
			"position": float64(pos),
			"symbol":   symbol,
		}
	}
	return msg
}

func TestFirstFree(t *testing.T) {
	s := MakeFirstFree()
	s.Begin(arena.Message{"symbol": "X"})

	if move := s.Move(turn(-1, "")); move != 0 {
		t.Errorf("first move is %v, want 0", move)
	}
	// Opponent took 1, so the next free cell is 2.
	if move := s.Move(turn(1, "O")); move != 2 {
		t.Errorf("second move is %v, want 2", move)
	}
}

func TestBlockerWins(t *testing.T) {
	s := MakeBlocker().(*blocker)
	s.Begin(arena.Message{"symbol": "X"})
	s.board = [9]string{
		"X", "X", "",
		"O", "O", "",
		"", "", "",
	}

	// Completing the own row beats blocking the opponent's.
	if move := s.Move(arena.Message{}); move != 2 {
		t.Errorf("played %v, want the winning 2", move)
	}
}

func TestBlockerBlocks(t *testing.T) {
	s := MakeBlocker().(*blocker)
	s.Begin(arena.Message{"symbol": "X"})
	s.board = [9]string{
		"X", "", "",
		"O", "O", "",
		"", "", "",
	}

	if move := s.Move(arena.Message{}); move != 5 {
		t.Errorf("played %v, want the blocking 5", move)
	}
}

func TestBlockerFallsBack(t *testing.T) {
	s := MakeBlocker().(*blocker)
	s.Begin(arena.Message{"symbol": "O"})
	s.board = [9]string{
		"X", "", "",
		"", "", "",
		"", "", "",
	}

	if move := s.Move(arena.Message{}); move != 1 {
		t.Errorf("played %v, want the first free 1", move)
	}
}

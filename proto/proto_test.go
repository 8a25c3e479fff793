package proto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	arena "go-arena"
)

func TestEncodeDecode(t *testing.T) {
	for i, msg := range []arena.Message{
		{"type": TypeGameStart, "game": "dilemma"},
		{"status": "ready"},
		{"move": float64(4)},
		{"move": "COOPERATE"},
		{"type": TypeYourTurn, "round": float64(17), "last_round": map[string]interface{}{
			"your_move": "C", "opponent_move": "D",
		}},
	} {
		var buf bytes.Buffer
		if err := Encode(&buf, msg); err != nil {
			t.Fatalf("(%d) encode: %s", i, err)
		}

		line := buf.String()
		if !strings.HasSuffix(line, "\n") {
			t.Errorf("(%d) no trailing newline in %q", i, line)
		}
		if strings.Count(line, "\n") != 1 {
			t.Errorf("(%d) more than one line in %q", i, line)
		}

		got, err := Decode([]byte(line))
		if err != nil {
			t.Fatalf("(%d) decode: %s", i, err)
		}
		if len(got) != len(msg) {
			t.Errorf("(%d) got %v, want %v", i, got, msg)
		}
		for k := range msg {
			if _, ok := got[k]; !ok {
				t.Errorf("(%d) missing key %q in %v", i, k, got)
			}
		}
	}
}

func TestEncodeRejectsNewlines(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, arena.Message{"note": "first\nsecond"})
	if err == nil {
		t.Error("expected an error for an embedded newline")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q despite the error", buf.String())
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"not json",
		"{\"unterminated\": ",
		"[1, 2, 3]",
		"42",
	} {
		_, err := Decode([]byte(line))
		if !errors.Is(err, arena.ErrMalformed) {
			t.Errorf("Decode(%q) = %v, want ErrMalformed", line, err)
		}
	}
}

func TestIsReady(t *testing.T) {
	if !IsReady(Ready()) {
		t.Error("handshake line not recognised")
	}
	for _, msg := range []arena.Message{
		{},
		{"status": "almost"},
		{"status": 1},
		{"ready": true},
	} {
		if IsReady(msg) {
			t.Errorf("%v accepted as ready", msg)
		}
	}
}

func TestMove(t *testing.T) {
	if move, ok := Move(MoveReply(7)); !ok || move != 7 {
		t.Errorf("got %v (%v)", move, ok)
	}
	if move, ok := Move(arena.Message{"move": nil}); !ok || move != nil {
		t.Errorf("explicit null move: got %v (%v)", move, ok)
	}
	if _, ok := Move(arena.Message{"status": "ready"}); ok {
		t.Error("found a move where there is none")
	}
}

func TestInt(t *testing.T) {
	for _, test := range []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{float64(4), 4, true},
		{float64(0), 0, true},
		{float64(-3), -3, true},
		{int(9), 9, true},
		{float64(1.5), 0, false},
		{"4", 0, false},
		{nil, 0, false},
		{true, 0, false},
	} {
		got, ok := Int(test.in)
		if got != test.want || ok != test.ok {
			t.Errorf("Int(%v) = %v, %v; want %v, %v",
				test.in, got, ok, test.want, test.ok)
		}
	}
}

func TestGameOver(t *testing.T) {
	res := &arena.MatchResult{
		Summary: "alice wins",
		Winner:  "alice",
		Scores:  map[string]float64{"alice": 1, "bob": 0},
		Extra:   arena.Message{"final_board": "XOX"},
	}
	msg := GameOver(res)
	if msg.Type() != TypeGameOver {
		t.Errorf("wrong type %q", msg.Type())
	}
	if msg["winner"] != "alice" {
		t.Errorf("wrong winner %v", msg["winner"])
	}
	if msg["final_board"] != "XOX" {
		t.Error("extra fields not merged")
	}

	draw := GameOver(&arena.MatchResult{Summary: "draw"})
	if w, ok := draw["winner"]; !ok || w != nil {
		t.Errorf("draw winner should be explicit null, got %v (%v)", w, ok)
	}
}

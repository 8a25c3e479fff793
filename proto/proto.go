// Protocol Handling
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

// Package proto implements the wire format spoken between the referee
// and a player process: one JSON object per line, no multi-line
// messages, no binary payloads.  Everything a player prints to stderr
// is out of band and never passes through this package.
package proto

import (
	"bytes"
	"encoding/json"
	"io"
	"math"

	"github.com/pkg/errors"

	arena "go-arena"
)

// Message types sent by the referee.
const (
	TypeGameStart = "game_start"
	TypeYourTurn  = "your_turn"
	TypeGameOver  = "game_over"
	TypeError     = "error"
)

// Encode serialises MSG as a single line and writes it, newline
// included, in one call.  Callers flush themselves if needed.
func Encode(w io.Writer, msg arena.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to encode message")
	}
	if bytes.ContainsRune(data, '\n') {
		return errors.Errorf("message spans multiple lines: %q", data)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Decode parses one line into a message.  A line that is not a JSON
// object is reported as arena.ErrMalformed.
func Decode(line []byte) (arena.Message, error) {
	var msg arena.Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, errors.Wrapf(arena.ErrMalformed, "%q", bytes.TrimSpace(line))
	}
	return msg, nil
}

// IsReady recognises the handshake line every player must send first.
func IsReady(msg arena.Message) bool {
	status, _ := msg["status"].(string)
	return status == "ready"
}

// Move extracts the move value from a player's reply to your_turn.
func Move(msg arena.Message) (interface{}, bool) {
	move, ok := msg["move"]
	return move, ok
}

// Ready builds the handshake line.  Only player implementations send
// this; the referee merely checks for it.
func Ready() arena.Message {
	return arena.Message{"status": "ready"}
}

// MoveReply builds a player's answer to a your_turn request.
func MoveReply(move interface{}) arena.Message {
	return arena.Message{"move": move}
}

// GameOver builds the final broadcast from a match result.  Extra
// result fields of the rule set are merged into the payload.
func GameOver(res *arena.MatchResult) arena.Message {
	msg := arena.Message{
		"type":         TypeGameOver,
		"result":       res.Summary,
		"final_scores": res.Scores,
	}
	if res.Winner != "" {
		msg["winner"] = res.Winner
	} else {
		msg["winner"] = nil
	}
	for k, v := range res.Extra {
		msg[k] = v
	}
	return msg
}

// Error builds the error notice sent to a player before its match is
// torn down.
func Error(reason string) arena.Message {
	return arena.Message{"type": TypeError, "message": reason}
}

// Int coerces a JSON number into an int.  encoding/json delivers all
// numbers as float64, so rule sets expecting integer moves go through
// this.
func Int(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

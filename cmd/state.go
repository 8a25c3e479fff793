// Shared State
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

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	arena "go-arena"

	"github.com/google/uuid"
)

type Manager interface {
	fmt.Stringer
	Start(*State, *Conf)
	Shutdown()
}

type Database interface {
	Manager

	RecordMatch(context.Context, *arena.MatchResult, []string)
	RecordStanding(context.Context, *arena.Standing)
}

// An Event is one observable step of a running tournament, consumed by
// the web observer.
type Event struct {
	Type    string
	Match   uuid.UUID
	Stamp   time.Time
	Payload arena.Message
}

type State struct {
	Context context.Context
	Kill    context.CancelFunc
	Events  chan *Event
	Running bool

	Database Database
	Managers []Manager
}

func MakeState() *State {
	ctx, kill := context.WithCancel(context.Background())
	return &State{
		Context: ctx,
		Kill:    kill,
		Events:  make(chan *Event, 16),
	}
}

func (st *State) Register(m Manager) {
	if st.Running {
		panic(fmt.Sprintf("Late register: %#v", m))
	}

	if d, ok := m.(Database); ok {
		st.Database = d
	}

	st.Managers = append(st.Managers, m)
}

// Publish hands an event to whoever is listening.  Without a consumer
// events are dropped, so an observer can never slow down a match.
func (st *State) Publish(kind string, match uuid.UUID, payload arena.Message) {
	ev := &Event{
		Type:    kind,
		Match:   match,
		Stamp:   time.Now(),
		Payload: payload,
	}
	select {
	case st.Events <- ev:
	default:
		arena.Debug.Printf("Dropped event %q", kind)
	}
}

func (st *State) Start(c *Conf) {
	// Start the services
	for _, m := range st.Managers {
		arena.Debug.Printf("Starting %s", m)
		go m.Start(st, c)
	}
	st.Running = true

	// Catch an interrupt request...
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	select {
	case <-intr:
		log.Println("Caught interrupt")
		st.Kill()
	case <-st.Context.Done():
		arena.Debug.Println("Requested shutdown")
	}

	done := make(chan struct{})
	go func() {
		// ...and request all managers to shut down.
		arena.Debug.Println("Waiting for managers to shutdown...")
		for i := len(st.Managers) - 1; i >= 0; i-- {
			m := st.Managers[i]
			arena.Debug.Printf("Shutting %s down", m)
			m.Shutdown()
		}
		done <- struct{}{}
	}()

	select {
	case <-intr:
		log.Println("Forced shutdown")
	case <-done:
		arena.Debug.Println("Shutting down regularly")
	}
}

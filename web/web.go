// Web interface
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

// Package web lets a browser watch a running tournament.  It serves a
// backlog of match events over plain HTTP and a live feed over a
// websocket.  Events are delivered best effort; a slow observer never
// slows down a match.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	arena "go-arena"
	"go-arena/cmd"
)

// Events kept for late-joining observers
const backlog = 512

var index = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>Arena</title></head>
<body>
<h1>Arena</h1>
<p>There {{if eq .Count 1}}is one recorded event{{else}}are {{.Count}} recorded events{{end}}.
See <a href="/log">the event log</a> or subscribe to <code>/socket</code>.</p>
</body>
</html>`))

type web struct {
	srv *http.Server

	lock    sync.Mutex
	events  []*cmd.Event
	clients map[chan<- *cmd.Event]struct{}
}

func (w *web) record(ev *cmd.Event) {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.events = append(w.events, ev)
	if len(w.events) > backlog {
		w.events = w.events[len(w.events)-backlog:]
	}

	for c := range w.clients {
		select {
		case c <- ev:
		default:
			// The client's writer is behind, it will catch
			// up from the backlog if it cares.
		}
	}
}

func (w *web) handleIndex(hw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(hw, r)
		return
	}

	w.lock.Lock()
	count := len(w.events)
	w.lock.Unlock()

	err := index.Execute(hw, struct{ Count int }{count})
	if err != nil {
		arena.Debug.Print(err)
	}
}

func (w *web) handleLog(hw http.ResponseWriter, r *http.Request) {
	w.lock.Lock()
	events := make([]*cmd.Event, len(w.events))
	copy(events, w.events)
	w.lock.Unlock()

	hw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(hw).Encode(events); err != nil {
		arena.Debug.Print(err)
	}
}

func (w *web) Start(st *cmd.State, conf *cmd.Conf) {
	go func() {
		for {
			select {
			case ev := <-st.Events:
				w.record(ev)
			case <-st.Context.Done():
				return
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", w.handleIndex)
	mux.HandleFunc("/log", w.handleLog)
	mux.HandleFunc("/socket", w.handleSocket)

	w.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.Web.Port),
		Handler: mux,
	}
	log.Printf("Listening on http://localhost:%d", conf.Web.Port)
	if err := w.srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Print(err)
	}
}

func (w *web) Shutdown() {
	if w.srv != nil {
		if err := w.srv.Shutdown(context.Background()); err != nil {
			log.Print(err)
		}
	}
}

func (*web) String() string { return "Web Server" }

func Register(st *cmd.State, conf *cmd.Conf) {
	if !conf.Web.Enabled {
		return
	}
	st.Register(&web{
		clients: make(map[chan<- *cmd.Event]struct{}),
	})
}

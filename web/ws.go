// Websocket interface
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

package web

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	arena "go-arena"
	"go-arena/cmd"
)

// handleSocket upgrades the connection and streams every event of the
// running tournament to it, starting with the backlog.
func (w *web) handleSocket(hw http.ResponseWriter, r *http.Request) {
	conn, err := (&websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}).Upgrade(hw, r, nil)
	if err != nil {
		arena.Debug.Printf("Unable to upgrade connection: %s", err)
		return
	}
	log.Printf("New observer from %s", conn.RemoteAddr())

	feed := make(chan *cmd.Event, 64)
	done := make(chan struct{})

	w.lock.Lock()
	replay := make([]*cmd.Event, len(w.events))
	copy(replay, w.events)
	w.clients[feed] = struct{}{}
	w.lock.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			w.lock.Lock()
			delete(w.clients, feed)
			w.lock.Unlock()
			close(done)
			conn.Close()
		})
	}

	// Discard whatever the observer sends; reading is still needed
	// to notice a closed connection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				unsubscribe()
				return
			}
		}
	}()

	go func() {
		defer unsubscribe()
		for _, ev := range replay {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
		for {
			select {
			case ev := <-feed:
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()
}

// Live-game web observer
//
// Copyright (c) 2024, 2025  The go-mancala authors
//
// This file is part of go-mancala.
//
// go-mancala is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-mancala is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-mancala. If not, see
// <http://www.gnu.org/licenses/>

package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	mancala "go-mancala"

	"github.com/gorilla/websocket"
)

//go:embed *.tmpl
var html embed.FS

var tmpl = template.Must(template.ParseFS(html, "*.tmpl"))

// snapshot is what goes over the wire, one message per completed
// move.
type snapshot struct {
	Rows    [2][]int `json:"rows"`
	Stores  [2]int   `json:"stores"`
	Turn    int      `json:"turn"`
	Ply     int      `json:"ply"`
	Outcome string   `json:"outcome"`
}

func snap(s mancala.State) snapshot {
	return snapshot{
		Rows: [2][]int{
			s.Row(mancala.Player1),
			s.Row(mancala.Player2),
		},
		Stores: [2]int{
			s.Store(mancala.Player1),
			s.Store(mancala.Player2),
		},
		Turn:    s.Turn().Number(),
		Ply:     s.Ply(),
		Outcome: mancala.OutcomeOf(s).String(),
	}
}

// Server pushes game states to websocket observers.  A late observer
// receives the most recent state on connecting.
type Server struct {
	mux  *http.ServeMux
	port uint

	lock  sync.Mutex
	conns map[*websocket.Conn]struct{}
	last  *snapshot
}

// NewServer prepares an observer listening on the given port.
func NewServer(port uint) *Server {
	s := &Server{
		mux:   http.NewServeMux(),
		port:  port,
		conns: make(map[*websocket.Conn]struct{}),
	}
	s.mux.HandleFunc("/", s.index)
	s.mux.HandleFunc("/ws", s.upgrade)
	return s
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "index.tmpl", nil); err != nil {
		mancala.Debug.Print(err)
	}
}

func (s *Server) upgrade(w http.ResponseWriter, r *http.Request) {
	// upgrade to websocket or bail out
	conn, err := (&websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}).Upgrade(w, r, nil)
	if err != nil {
		mancala.Debug.Printf("Unable to upgrade connection: %s", err)
		w.WriteHeader(400)
		return
	}
	log.Printf("New observer from %s", conn.RemoteAddr())

	s.lock.Lock()
	s.conns[conn] = struct{}{}
	if s.last != nil {
		if err := conn.WriteJSON(s.last); err != nil {
			mancala.Debug.Print(err)
		}
	}
	s.lock.Unlock()
}

// Broadcast pushes a state to every connected observer.  Connections
// that fail to accept the message are dropped.
func (s *Server) Broadcast(state mancala.State) {
	msg := snap(state)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.last = &msg
	for conn := range s.conns {
		if err := conn.WriteJSON(&msg); err != nil {
			mancala.Debug.Printf("Dropping observer %s: %s",
				conn.RemoteAddr(), err)
			conn.Close()
			delete(s.conns, conn)
		}
	}
}

// ListenAndServe starts the observer.  It blocks, so most callers run
// it in a goroutine.
func (s *Server) ListenAndServe() error {
	log.Printf("Web observer on http://localhost:%d", s.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.mux)
}

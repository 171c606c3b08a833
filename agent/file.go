// File-based external-agent protocol
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

package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	mancala "go-mancala"
)

// FileAgent exchanges moves with an external program through a shared
// directory.  For each ply the board is written to board_<ply>.txt,
// oriented so that the mover's side comes first:
//
//	ownStore oppStore ownPits... oppPits...
//
// The agent answers in move_<ply>.txt with whitespace-separated
// integers, 0 for swap and k for pit k.  The first legal value wins,
// which lets an agent list fallbacks.
type FileAgent struct {
	// Exchange directory, created on demand.
	Dir string
	// Interval between checks for the move file.
	Poll time.Duration
	// Total time the agent is given to answer.
	Timeout time.Duration
}

func (fa *FileAgent) boardFile(ply int) string {
	return filepath.Join(fa.Dir, fmt.Sprintf("board_%d.txt", ply))
}

func (fa *FileAgent) moveFile(ply int) string {
	return filepath.Join(fa.Dir, fmt.Sprintf("move_%d.txt", ply))
}

// encode renders a state from the mover's perspective.
func encode(s mancala.State) string {
	me := s.Turn()
	fields := []string{
		strconv.Itoa(s.Store(me)),
		strconv.Itoa(s.Store(me.Other())),
	}
	for _, p := range []mancala.Player{me, me.Other()} {
		for i := 0; i < s.Pits(); i++ {
			fields = append(fields, strconv.Itoa(s.Stones(p, i)))
		}
	}
	return strings.Join(fields, " ")
}

// Request writes the board for the agent and waits for its move.  It
// fails if no legal move arrives within the timeout.
func (fa *FileAgent) Request(s mancala.State) (mancala.Move, error) {
	if err := os.MkdirAll(fa.Dir, 0o755); err != nil {
		return 0, err
	}
	ply := s.Ply()
	if err := os.WriteFile(fa.boardFile(ply), []byte(encode(s)+"\n"), 0o644); err != nil {
		return 0, err
	}

	deadline := time.Now().Add(fa.Timeout)
	name := fa.moveFile(ply)
	for {
		data, err := os.ReadFile(name)
		switch {
		case err == nil:
			if m, ok := fa.pick(s, string(data)); ok {
				return m, nil
			}
			// The agent may still be writing, keep polling
			// until the deadline.
			mancala.Debug.Printf("No legal move in %s yet", name)
		case !os.IsNotExist(err):
			return 0, err
		}

		if !time.Now().Before(deadline) {
			return 0, fmt.Errorf("agent did not answer %s within %s",
				name, fa.Timeout)
		}
		time.Sleep(fa.Poll)
	}
}

// pick returns the first value in the agent's answer that is legal in
// the given state.
func (fa *FileAgent) pick(s mancala.State, answer string) (mancala.Move, bool) {
	legal := make(map[mancala.Move]bool)
	for _, m := range mancala.ValidMoves(s) {
		legal[m] = true
	}

	for _, field := range strings.Fields(answer) {
		n, err := strconv.Atoi(field)
		if err != nil {
			mancala.Debug.Printf("Ignoring malformed move %q", field)
			continue
		}
		if m := mancala.Move(n); legal[m] {
			return m, true
		}
	}
	return 0, false
}

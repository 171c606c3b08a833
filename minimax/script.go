// Lua-scripted evaluation functions
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

package minimax

import (
	"fmt"
	"sync"

	mancala "go-mancala"

	lua "github.com/yuin/gopher-lua"
)

// Script is an evaluation function loaded from a Lua file.  The file
// must define
//
//	function evaluate(stores, rows, turn, ply, player)
//
// where stores is a two-element table, rows a table of two pit
// tables, and turn/player are the 1-based player numbers.  It must
// return a number; higher means better for player.
//
// A single Lua state backs all calls, guarded by a mutex, so a Script
// shared between concurrent searches serialises them.  Give each
// goroutine its own Script when that matters.
type Script struct {
	mu sync.Mutex
	ls *lua.LState
	fn lua.LValue
}

// LoadScript compiles and runs a Lua file and binds its evaluate
// function.
func LoadScript(path string) (*Script, error) {
	ls := lua.NewState()
	if err := ls.DoFile(path); err != nil {
		ls.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	fn := ls.GetGlobal("evaluate")
	if fn.Type() != lua.LTFunction {
		ls.Close()
		return nil, fmt.Errorf("%s does not define evaluate()", path)
	}
	return &Script{ls: ls, fn: fn}, nil
}

// Close releases the underlying Lua state.
func (sc *Script) Close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.ls.Close()
}

// Eval satisfies EvalFunc.  A script error is reported on the debug
// log and scored as zero, since evaluation has no error channel.
func (sc *Script) Eval(s mancala.State, p mancala.Player) float64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	ls := sc.ls
	stores := ls.NewTable()
	stores.Append(lua.LNumber(s.Store(mancala.Player1)))
	stores.Append(lua.LNumber(s.Store(mancala.Player2)))

	rows := ls.NewTable()
	for _, pl := range []mancala.Player{mancala.Player1, mancala.Player2} {
		row := ls.NewTable()
		for i := 0; i < s.Pits(); i++ {
			row.Append(lua.LNumber(s.Stones(pl, i)))
		}
		rows.Append(row)
	}

	err := ls.CallByParam(lua.P{Fn: sc.fn, NRet: 1, Protect: true},
		stores, rows,
		lua.LNumber(s.Turn().Number()),
		lua.LNumber(s.Ply()),
		lua.LNumber(p.Number()))
	if err != nil {
		mancala.Debug.Printf("Script evaluation failed: %s", err)
		return 0
	}

	ret := ls.Get(-1)
	ls.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		mancala.Debug.Printf("Script returned %s, not a number", ret.Type())
		return 0
	}
	return float64(n)
}

// Terminal front end
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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	mancala "go-mancala"
	"go-mancala/agent"
	"go-mancala/minimax"
	"go-mancala/web"
)

var mode = flag.String("mode", "pvm",
	"Game mode: pvp (two humans), pvm (human vs. search), mvf (search vs. file agent)")

// mover produces the next move for the side to move.
type mover func(s mancala.State) (mancala.Move, error)

func humanMover(in *bufio.Scanner) mover {
	return func(s mancala.State) (mancala.Move, error) {
		legal := make(map[mancala.Move]bool)
		for _, m := range mancala.ValidMoves(s) {
			legal[m] = true
		}

		for {
			fmt.Printf("Move for %s (1-%d%s): ",
				s.Turn(), s.Pits(), swapHint(legal))
			if !in.Scan() {
				return 0, fmt.Errorf("input closed: %w", in.Err())
			}

			line := strings.ToLower(strings.TrimSpace(in.Text()))
			var m mancala.Move
			if line == "swap" {
				m = mancala.Swap
			} else if n, err := strconv.Atoi(line); err == nil {
				m = mancala.Move(n)
			} else {
				fmt.Println("Enter a pit number or \"swap\".")
				continue
			}

			if legal[m] {
				return m, nil
			}
			fmt.Printf("%s is not a legal move here.\n", m)
		}
	}
}

func swapHint(legal map[mancala.Move]bool) string {
	if legal[mancala.Swap] {
		return " or swap"
	}
	return ""
}

func searchMover(b *minimax.Builder) mover {
	return func(s mancala.State) (mancala.Move, error) {
		mm := b.Clone().OptimizeFor(s.Turn()).Build()
		m, ok := mm.Search(s)
		if !ok {
			// The budget ran out before any move was solved;
			// any legal move beats forfeiting.
			moves := mancala.ValidMoves(s)
			m = moves[rand.Intn(len(moves))]
		}
		fmt.Printf("Search selected: %s\n", m)
		return m, nil
	}
}

func fileMover(fa *agent.FileAgent) mover {
	return func(s mancala.State) (mancala.Move, error) {
		m, err := fa.Request(s)
		if err != nil {
			return 0, err
		}
		fmt.Printf("Agent selected: %s\n", m)
		return m, nil
	}
}

func builder(conf *mancala.Conf) (*minimax.Builder, error) {
	b := minimax.NewBuilder()
	if conf.Search.Depth < 0 {
		b.NoDepthLimit()
	} else {
		b.MaxDepth(conf.Search.Depth)
	}
	b.MaxTime(conf.Search.Time)

	if conf.Search.Script != "" {
		sc, err := minimax.LoadScript(conf.Search.Script)
		if err != nil {
			return nil, err
		}
		b.Heuristic(sc.Eval)
	}
	return b, nil
}

func play(s mancala.State, movers [2]mover, observe func(mancala.State)) error {
	observe(s)
	for !mancala.IsOver(s) {
		fmt.Println(s)
		m, err := movers[s.Turn()](s)
		if err != nil {
			return err
		}
		next, ok := mancala.MakeMove(s, m)
		if !ok {
			return fmt.Errorf("move %s rejected", m)
		}
		s = next
		observe(s)
		fmt.Println()
	}

	fmt.Println(s)
	fmt.Println(mancala.OutcomeOf(s))
	return nil
}

func main() {
	flag.Parse()
	conf := mancala.LoadConf()

	var start mancala.State
	if conf.Game.Size == mancala.StdPits && conf.Game.Init == mancala.StdInit {
		start = mancala.Start()
	} else {
		start = mancala.MakeDynState(conf.Game.Size, conf.Game.Init)
	}

	in := bufio.NewScanner(os.Stdin)
	var movers [2]mover
	switch *mode {
	case "pvp":
		movers[0] = humanMover(in)
		movers[1] = humanMover(in)
	case "pvm":
		b, err := builder(conf)
		if err != nil {
			log.Fatal(err)
		}
		movers[0] = humanMover(in)
		movers[1] = searchMover(b)
	case "mvf":
		b, err := builder(conf)
		if err != nil {
			log.Fatal(err)
		}
		fa := &agent.FileAgent{
			Dir:     conf.Agent.Dir,
			Poll:    conf.Agent.Poll,
			Timeout: conf.Agent.Timeout,
		}
		if conf.Agent.Image != "" {
			d := agent.NewDocker(conf.Agent.Image)
			if err := d.Start(context.Background(), conf.Agent.Dir); err != nil {
				log.Fatal(err)
			}
			defer func() {
				if err := d.Shutdown(); err != nil {
					log.Print(err)
				}
			}()
		}
		movers[0] = searchMover(b)
		movers[1] = fileMover(fa)
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}

	observe := func(mancala.State) {}
	if conf.Web.Enabled {
		srv := web.NewServer(conf.Web.Port)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.Print(err)
			}
		}()
		observe = srv.Broadcast
	}

	if err := play(start, movers, observe); err != nil {
		log.Fatal(err)
	}
}

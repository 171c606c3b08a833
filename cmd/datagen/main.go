// Dataset generation CLI
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
	"context"
	"flag"
	"os"
	"time"

	mancala "go-mancala"
	"go-mancala/dataset"
	"go-mancala/minimax"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	runs     = flag.Int("runs", 1000, "Number of examples to generate")
	maxMoves = flag.Int("max-moves", 30, "Upper bound on random moves per example")
	dedup    = flag.Bool("dedup", true, "Drop duplicate examples")
)

func main() {
	flag.Parse()
	conf := mancala.LoadConf()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var start mancala.State
	if conf.Game.Size == mancala.StdPits && conf.Game.Init == mancala.StdInit {
		start = mancala.Start()
	} else {
		start = mancala.MakeDynState(conf.Game.Size, conf.Game.Init)
	}

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
			log.Fatal().Err(err).Msg("Failed to load heuristic script")
		}
		b.Heuristic(sc.Eval)
	}

	log.Info().
		Int("runs", *runs).
		Int("max-moves", *maxMoves).
		Int("size", conf.Game.Size).
		Msg("Generating dataset")
	begin := time.Now()
	d := dataset.Generate(b, start, *maxMoves, *runs)
	log.Info().
		Int("examples", len(d.Examples)).
		Dur("took", time.Since(begin)).
		Msg("Generation finished")

	if *dedup {
		before := len(d.Examples)
		d = d.Deduplicated()
		log.Info().
			Int("dropped", before-len(d.Examples)).
			Msg("Deduplicated dataset")
	}

	if conf.Data.CSV != "" {
		if err := d.SaveCSV(conf.Data.CSV); err != nil {
			log.Fatal().Err(err).Msg("Failed to write CSV")
		}
		log.Info().Str("file", conf.Data.CSV).Msg("Wrote CSV dataset")
	}

	if conf.Data.Sqlite != "" {
		ctx := context.Background()
		st, err := dataset.OpenStore(ctx, conf.Data.Sqlite)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database")
		}
		defer st.Close()
		if err := st.SaveDataset(ctx, d); err != nil {
			log.Fatal().Err(err).Msg("Failed to save dataset")
		}
		log.Info().Str("file", conf.Data.Sqlite).Msg("Saved dataset to database")
	}
}

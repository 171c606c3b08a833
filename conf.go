// Configuration
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

package mancala

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const defconf = "mancala.toml"

func init() {
	def := &defaultConfig

	flag.IntVar(&def.Game.Size, "board-size", def.Game.Size,
		"Number of pits per player")
	flag.IntVar(&def.Game.Init, "board-init", def.Game.Init,
		"Number of stones per pit at the start of a game")

	flag.IntVar(&def.Search.Depth, "search-depth", def.Search.Depth,
		"Plies the search may look ahead (negative for no limit)")
	flag.DurationVar(&def.Search.Time, "search-time", def.Search.Time,
		"Wall-clock budget per search (0 for no limit)")
	flag.StringVar(&def.Search.Script, "search-script", def.Search.Script,
		"Lua file supplying a custom heuristic")

	flag.StringVar(&def.Agent.Dir, "agent-dir", def.Agent.Dir,
		"Exchange directory for the file-based agent protocol")
	flag.StringVar(&def.Agent.Image, "agent-image", def.Agent.Image,
		"Docker image to run as the external agent")

	flag.BoolVar(&def.Web.Enabled, "web", def.Web.Enabled,
		"Enable the web observer")
	flag.UintVar(&def.Web.Port, "wwwport", def.Web.Port,
		"Port that the web observer listens on")

	flag.StringVar(&def.Data.Sqlite, "db", def.Data.Sqlite,
		"File to use for the dataset database")
	flag.StringVar(&def.Data.CSV, "csv", def.Data.CSV,
		"File to use for CSV dataset output")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Disable verbose output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

type GameConf struct {
	Size int `toml:"size"`
	Init int `toml:"init"`
}

type SearchConf struct {
	Depth  int           `toml:"depth"`
	Time   time.Duration `toml:"time"`
	Script string        `toml:"script,omitempty"`
}

type AgentConf struct {
	Dir     string        `toml:"dir"`
	Poll    time.Duration `toml:"poll"`
	Timeout time.Duration `toml:"timeout"`
	Image   string        `toml:"image,omitempty"`
}

type WebConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

type DataConf struct {
	Sqlite string `toml:"sqlite,omitempty"`
	CSV    string `toml:"csv,omitempty"`
}

// Internal representation
type Conf struct {
	Game   GameConf   `toml:"game"`
	Search SearchConf `toml:"search"`
	Agent  AgentConf  `toml:"agent"`
	Web    WebConf    `toml:"web"`
	Data   DataConf   `toml:"data"`
}

// Configuration object used by default
var defaultConfig = Conf{
	Game: GameConf{
		Size: StdPits,
		Init: StdInit,
	},
	Search: SearchConf{
		Depth: 12,
	},
	Agent: AgentConf{
		Dir:     "exchange",
		Poll:    100 * time.Millisecond,
		Timeout: 30 * time.Second,
	},
	Web: WebConf{
		Enabled: false,
		Port:    8080,
	},
	Data: DataConf{
		Sqlite: "mancala.db",
		CSV:    "dataset.csv",
	},
}

var (
	debug  = false
	silent = false
	dump   = false
	cfile  = defconf
)

// LoadConf opens the configuration file and returns it, falling back
// to the flag-adjusted defaults when the default file does not exist.
// Call flag.Parse before this.
func LoadConf() (c *Conf) {
	file, err := os.Open(cfile)
	if err != nil {
		if !os.IsNotExist(err) || cfile != defconf {
			log.Fatal(err)
		}
		c = &defaultConfig
	} else {
		defer file.Close()
		conf := defaultConfig
		if _, err := toml.NewDecoder(file).Decode(&conf); err != nil {
			log.Print(err)
			conf = defaultConfig
		}
		c = &conf
	}

	switch {
	case debug:
		Debug.SetOutput(os.Stderr)
		log.Default().SetFlags(log.LstdFlags | log.Lshortfile)
		Debug.Println("Debug logging has been enabled")
	case silent:
		log.Default().SetOutput(io.Discard)
	}

	if dump {
		if err := c.Dump(os.Stdout); err != nil {
			log.Fatalln("Failed to dump configuration:", err)
		}
		os.Exit(0)
	}

	return c
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}

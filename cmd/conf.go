// Configuration
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
	"flag"
	"io"
	"log"
	"os"
	"time"

	arena "go-arena"

	"github.com/BurntSushi/toml"
)

const defconf = "go-arena.toml"

func init() {
	def := &defaultConfig

	flag.DurationVar(&def.Game.MoveTimeout, "move-timeout", def.Game.MoveTimeout,
		"Time a player has to answer one move request")
	flag.DurationVar(&def.Game.ReadyTimeout, "ready-timeout", def.Game.ReadyTimeout,
		"Time a player has to signal readiness after starting")

	flag.BoolVar(&def.Isol.Docker, "docker", def.Isol.Docker,
		"Run players in resource-limited containers instead of bare processes")
	flag.StringVar(&def.Isol.Image, "image", def.Isol.Image,
		"Container image used to run player scripts")

	flag.UintVar(&def.Tourn.Games, "games", def.Tourn.Games,
		"Number of games per matchup")

	flag.StringVar(&def.Database.File, "db", def.Database.File,
		"File to use for the result database (empty disables it)")

	flag.BoolVar(&def.Web.Enabled, "web", def.Web.Enabled,
		"Enable the live web observer")
	flag.UintVar(&def.Web.Port, "wwwport", def.Web.Port,
		"Port to use for the HTTP server")

	flag.BoolVar(&def.Verbose, "verbose", def.Verbose,
		"Surface player diagnostics on the console")
	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

type GameConf struct {
	MoveTimeout  time.Duration `toml:"move-timeout"`
	ReadyTimeout time.Duration `toml:"ready-timeout"`
}

type IsolConf struct {
	Docker  bool          `toml:"docker"`
	Image   string        `toml:"image"`
	CPUs    int64         `toml:"cpus"`
	Memory  int64         `toml:"memory"`
	Swap    int64         `toml:"swap"`
	Network string        `toml:"network"`
	Grace   time.Duration `toml:"grace"`
}

type TournConf struct {
	Games uint `toml:"games"`
}

type DatabaseConf struct {
	File string `toml:"file"`
}

type WebConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

// Internal representation
type Conf struct {
	Game     GameConf     `toml:"game"`
	Isol     IsolConf     `toml:"isol"`
	Tourn    TournConf    `toml:"tournament"`
	Database DatabaseConf `toml:"database"`
	Web      WebConf      `toml:"web"`

	Verbose bool `toml:"-"`
}

// Configuration object used by default
var defaultConfig = Conf{
	Game: GameConf{
		MoveTimeout:  time.Second * 10,
		ReadyTimeout: time.Second * 30,
	},
	Isol: IsolConf{
		Image:   "python:3.11-alpine",
		CPUs:    1,
		Memory:  128 * 1024 * 1024,
		Swap:    128 * 1024 * 1024,
		Network: "none",
		Grace:   time.Second * 5,
	},
	Tourn: TournConf{
		Games: 5,
	},
	Database: DatabaseConf{
		File: "arena.db",
	},
	Web: WebConf{
		Enabled: false,
		Port:    8080,
	},
}

var (
	debug = false
	dump  = false
	cfile = defconf
)

// Open a configuration file and return it.  Flags are folded into the
// defaults before the file is decoded over them, so a value set in the
// file takes precedence over the same value on the command line.
func LoadConf() *Conf {
	c := defaultConfig

	file, err := os.Open(cfile)
	if err != nil {
		if !os.IsNotExist(err) || cfile != defconf {
			log.Fatal(err)
		}
	} else {
		_, err := toml.NewDecoder(file).Decode(&c)
		file.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	if debug {
		arena.Debug.SetOutput(os.Stderr)
		log.Default().SetFlags(log.LstdFlags | log.Lshortfile)
		arena.Debug.Println("Debug logging has been enabled")
	}

	// Dump the configuration onto the disk if requested
	if dump {
		err = c.Dump(os.Stdout)
		if err != nil {
			log.Fatalln("Failed to dump default configuration:", err)
		}
		os.Exit(0)
	}

	return &c
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}

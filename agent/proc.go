// Launching external agents as processes
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
	"io"
	"log"
	"os"
	"os/exec"
)

// Process runs an external agent from a directory containing an
// optional build.sh and a run.sh.  run.sh receives the exchange
// directory as its only argument and is expected to speak the
// FileAgent protocol in there.
type Process struct {
	prefix []string
	run    *exec.Cmd
	dir    string
}

// NewProcess prepares an agent from dir.  A non-empty prefix is
// prepended to every command, e.g. to interpose a sandbox wrapper.
func NewProcess(dir string, prefix ...string) *Process {
	return &Process{prefix: prefix, dir: dir}
}

func (p *Process) command(name string, args ...string) *exec.Cmd {
	if len(p.prefix) != 0 {
		all := append(append([]string{}, p.prefix[1:]...), name)
		all = append(all, args...)
		return exec.Command(p.prefix[0], all...)
	}
	return exec.Command(name, args...)
}

// Run builds and starts the agent, blocking until it exits.
func (p *Process) Run(exchange string) error {
	build := p.command("./build.sh")
	build.Dir = p.dir
	err := build.Run()
	if err != nil && !os.IsNotExist(err) {
		log.Print("Failed to build ", p.dir)
		return err
	}

	p.run = p.command("./run.sh", exchange)

	var file *os.File
	file, err = os.Create(p.dir + ".stdout")
	if err != nil {
		log.Printf("Failed to redirect stdout for %s: %s",
			p.dir, err)
		p.run.Stdout = io.Discard
	} else {
		p.run.Stdout = file
		defer file.Close()
	}
	file, err = os.Create(p.dir + ".stderr")
	if err != nil {
		log.Printf("Failed to redirect stderr for %s: %s",
			p.dir, err)
		p.run.Stderr = io.Discard
	} else {
		p.run.Stderr = file
		defer file.Close()
	}
	p.run.Dir = p.dir

	err = p.run.Run()
	if err != nil {
		log.Printf("Failed to start %v: %s", p.dir, err)
		return err
	}
	return nil
}

// Halt kills the agent if it is still running.
func (p *Process) Halt() error {
	if p.run != nil && p.run.Process != nil {
		return p.run.Process.Kill()
	}
	return nil
}

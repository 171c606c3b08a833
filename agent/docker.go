// Docker-based agent isolation
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
	"context"
	"fmt"
	"path/filepath"
	"time"

	mancala "go-mancala"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/pkg/errors"
)

// Docker runs an agent image with the exchange directory bind-mounted
// at /data, where the image is expected to speak the FileAgent
// protocol.  The container gets one CPU, a gigabyte of memory and a
// read-only root file system.
type Docker struct {
	image string
	id    string
	cont  *client.Client
}

// NewDocker prepares a container for the given image.
func NewDocker(image string) *Docker {
	return &Docker{image: image}
}

// exchangeBind builds the bind mount for the exchange directory.  The
// Docker API rejects relative host paths, so the directory is
// resolved first.
func exchangeBind(exchange string) (string, error) {
	abs, err := filepath.Abs(exchange)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to resolve exchange directory %s", exchange)
	}
	return abs + ":/data", nil
}

// Start creates and starts the container.
func (d *Docker) Start(ctx context.Context, exchange string) error {
	bind, err := exchangeBind(exchange)
	if err != nil {
		return err
	}

	d.cont, err = client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		return err
	}

	// The documentation for the library is sparse, but it is also
	// just a wrapper around a HTTP API.  To understand what this
	// configuration does, it is necessary to read
	// https://docs.docker.com/engine/api/v1.41/#operation/ContainerCreate
	resp, err := d.cont.ContainerCreate(ctx, &container.Config{
		Image: d.image,
	}, &container.HostConfig{
		Binds: []string{bind},
		Resources: container.Resources{
			CPUCount: 1,
			Memory:   1024 * 1024 * 1024,
		},
		ReadonlyRootfs: true,
		AutoRemove:     true,
	}, nil, nil, fmt.Sprintf("%s-%d", d.image, time.Now().UnixNano()))
	if err != nil {
		return errors.Wrapf(err, "Failed to create container %s", d.image)
	}

	d.id = resp.ID
	if err := d.cont.ContainerStart(ctx, d.id, types.ContainerStartOptions{}); err != nil {
		return errors.Wrapf(err, "Failed to start container %s", d.image)
	}
	return nil
}

// Alive reports whether the container is still running.
func (d *Docker) Alive() bool {
	ctx := context.Background()
	resp, err := d.cont.ContainerInspect(ctx, d.id)
	if err != nil {
		mancala.Debug.Print(err)
		return false
	}
	return !resp.State.Dead // XXX: Is this enough?
}

// Shutdown kills the container.  With AutoRemove set Docker cleans up
// the rest.
func (d *Docker) Shutdown() error {
	ctx := context.Background()
	err := d.cont.ContainerKill(ctx, d.id, "SIGKILL")
	if err != nil {
		return errors.Wrapf(err, "Failed to kill container %s", d.image)
	}
	return nil
}

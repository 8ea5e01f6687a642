// entrypoint_container.go: containerized execution via the Docker engine
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"context"
	"fmt"
	"os"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/docker/client"
)

// ContainerEntryPoint runs a plugin's scoring logic inside an isolated
// container. The variant table is encoded via the declared input codec to a
// host temp file bind-mounted at the declared exchange path, auxiliary
// bindings are mounted read-only, the declared command runs to completion,
// and the declared output file is decoded via the matching output codec.
//
// Container lifetime and mounts are acquired strictly per invocation, with
// teardown on every exit path.
type ContainerEntryPoint struct {
	image      string
	runCommand string
	input      ExchangeSpec
	output     ExchangeSpec
	bindings   map[string]string
	codecs     *CodecRegistry
	logger     Logger
}

// Mode implements EntryPoint.
func (e *ContainerEntryPoint) Mode() EntryPointMode { return ModeContainer }

// Image returns the container image the entry point runs.
func (e *ContainerEntryPoint) Image() string { return e.image }

// Run implements EntryPoint.
func (e *ContainerEntryPoint) Run(ctx context.Context, table VariantTable) (ScoreTable, error) {
	inputCodec, err := e.codecs.Get(e.input.Format)
	if err != nil {
		return nil, err
	}
	outputCodec, err := e.codecs.Get(e.output.Format)
	if err != nil {
		return nil, err
	}

	inFile, err := os.CreateTemp("", "vpmbench-in-*")
	if err != nil {
		return nil, NewContainerExecutionError(e.image, err)
	}
	defer os.Remove(inFile.Name())
	outFile, err := os.CreateTemp("", "vpmbench-out-*")
	if err != nil {
		inFile.Close()
		return nil, NewContainerExecutionError(e.image, err)
	}
	defer os.Remove(outFile.Name())
	outFile.Close()

	if err := inputCodec.EncodeInput(table, inFile); err != nil {
		inFile.Close()
		return nil, err
	}
	if err := inFile.Close(); err != nil {
		return nil, NewContainerExecutionError(e.image, err)
	}

	if err := e.runContainer(ctx, inFile.Name(), outFile.Name()); err != nil {
		return nil, err
	}

	decoded, err := os.Open(outFile.Name())
	if err != nil {
		return nil, NewContainerExecutionError(e.image, err)
	}
	defer decoded.Close()
	scores, err := outputCodec.DecodeOutput(table, decoded)
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// runContainer creates, starts and waits for one container run, removing
// the container on every exit path.
func (e *ContainerEntryPoint) runContainer(ctx context.Context, inPath, outPath string) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return NewContainerExecutionError(e.image, err)
	}
	defer cli.Close()

	if _, err := cli.Ping(ctx); err != nil {
		return NewContainerExecutionError(e.image, err)
	}

	mounts := []mount.Mount{
		{Type: mount.TypeBind, Source: inPath, Target: e.input.FilePath},
		{Type: mount.TypeBind, Source: outPath, Target: e.output.FilePath},
	}
	for localPath, remotePath := range e.bindings {
		mounts = append(mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   localPath,
			Target:   remotePath,
			ReadOnly: true,
		})
	}

	created, err := cli.ContainerCreate(ctx,
		&container.Config{
			Image: e.image,
			Cmd:   strslice.StrSlice{"/bin/sh", "-c", e.runCommand},
		},
		&container.HostConfig{Mounts: mounts},
		nil, nil, "")
	if err != nil {
		return NewContainerExecutionError(e.image, err)
	}
	defer func() {
		// Teardown must survive a cancelled invocation context.
		if err := cli.ContainerRemove(context.Background(), created.ID, container.RemoveOptions{Force: true}); err != nil {
			e.logger.Warn("Failed to remove plugin container", "image", e.image, "container_id", created.ID, "error", err)
		}
	}()

	e.logger.Debug("Running plugin container", "image", e.image, "container_id", created.ID)

	if err := cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return NewContainerExecutionError(e.image, err)
	}

	statusCh, errCh := cli.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return NewContainerExecutionError(e.image, err)
	case status := <-statusCh:
		if status.StatusCode != 0 {
			return NewContainerExecutionError(e.image,
				fmt.Errorf("container exited with status %d", status.StatusCode))
		}
	case <-ctx.Done():
		return NewContainerExecutionError(e.image, ctx.Err())
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs one-shot converter images under docker or podman.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime runs a container image as a stdin-to-stdout filter.
type Runtime interface {
	// Name returns the runtime binary ("docker" or "podman").
	Name() string

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run executes image with stdin piped in and stdout captured. The
	// container has no network access and is removed on exit.
	Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error
}

// commander abstracts process execution for testing.
type commander interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osCommander) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// cli implements Runtime for one binary. Docker and podman differ only in
// how they test for a local image.
type cli struct {
	bin        string
	imageCheck []string
	cmd        commander
}

func (c *cli) Name() string { return c.bin }

func (c *cli) available(ctx context.Context) bool {
	if _, err := c.cmd.LookPath(c.bin); err != nil {
		return false
	}
	return c.cmd.Run(ctx, c.bin, []string{"info"}, nil, io.Discard, io.Discard) == nil
}

func (c *cli) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, c.imageCheck...), image)
	var stderr bytes.Buffer
	if err := c.cmd.Run(ctx, c.bin, args, nil, io.Discard, &stderr); err != nil {
		return fmt.Errorf("image %s not found in %s: %w%s", image, c.bin, err, detail(&stderr))
	}
	return nil
}

func (c *cli) Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", "--network", "none", image}
	var stderr bytes.Buffer
	if err := c.cmd.Run(ctx, c.bin, args, stdin, stdout, &stderr); err != nil {
		return fmt.Errorf("running %s in %s: %w%s", image, c.bin, err, detail(&stderr))
	}
	return nil
}

func detail(stderr *bytes.Buffer) string {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return ""
	}
	return ": " + msg
}

func candidates(cmd commander) []*cli {
	return []*cli{
		{bin: binDocker, imageCheck: []string{"image", "inspect"}, cmd: cmd},
		{bin: binPodman, imageCheck: []string{"image", "exists"}, cmd: cmd},
	}
}

// Detect returns the first operational runtime, preferring docker.
func Detect(ctx context.Context) (Runtime, error) {
	return detect(ctx, osCommander{})
}

func detect(ctx context.Context, cmd commander) (Runtime, error) {
	for _, rt := range candidates(cmd) {
		if rt.available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: neither %s nor %s is installed and running", binDocker, binPodman)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommander answers LookPath from a set of installed binaries and Run
// from a map of "bin arg..." command lines to results.
type fakeCommander struct {
	installed map[string]bool
	ok        map[string]bool
	stderr    string
	onRun     func(args []string, stdin io.Reader, stdout io.Writer)
	ran       []string
}

func (f *fakeCommander) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeCommander) Run(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	line := name + " " + strings.Join(args, " ")
	f.ran = append(f.ran, line)
	if f.onRun != nil {
		f.onRun(args, stdin, stdout)
	}
	if f.ok[line] {
		return nil
	}
	io.WriteString(stderr, f.stderr)
	return errors.New("exit status 1")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *fakeCommander
		wantName string
		wantErr  bool
	}{
		{
			name:     "docker preferred",
			cmd:      &fakeCommander{installed: map[string]bool{"docker": true, "podman": true}, ok: map[string]bool{"docker info": true, "podman info": true}},
			wantName: "docker",
		},
		{
			name:     "podman when docker missing",
			cmd:      &fakeCommander{installed: map[string]bool{"podman": true}, ok: map[string]bool{"podman info": true}},
			wantName: "podman",
		},
		{
			name:     "podman when docker daemon is down",
			cmd:      &fakeCommander{installed: map[string]bool{"docker": true, "podman": true}, ok: map[string]bool{"podman info": true}},
			wantName: "podman",
		},
		{
			name:    "nothing available",
			cmd:     &fakeCommander{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(context.Background(), tt.cmd)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	cmd := &fakeCommander{ok: map[string]bool{"docker image inspect markitdown:latest": true, "podman image exists markitdown:latest": true}}
	for _, rt := range candidates(cmd) {
		assert.NoError(t, rt.ImageExists(context.Background(), "markitdown:latest"), rt.Name())
	}

	missing := &fakeCommander{stderr: "No such image"}
	err := candidates(missing)[0].ImageExists(context.Background(), "markitdown:latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such image")
}

func TestRunPipesAndIsolates(t *testing.T) {
	cmd := &fakeCommander{
		ok: map[string]bool{"docker run --rm -i --network none markitdown:latest": true},
		onRun: func(_ []string, stdin io.Reader, stdout io.Writer) {
			if stdin != nil {
				io.Copy(stdout, stdin)
			}
		},
	}
	rt := candidates(cmd)[0]

	var out strings.Builder
	require.NoError(t, rt.Run(context.Background(), "markitdown:latest", strings.NewReader("%PDF"), &out))
	assert.Equal(t, "%PDF", out.String())
	assert.Equal(t, []string{"docker run --rm -i --network none markitdown:latest"}, cmd.ran)
}

func TestRunReportsStderr(t *testing.T) {
	cmd := &fakeCommander{stderr: "conversion crashed"}
	err := candidates(cmd)[1].Run(context.Background(), "markitdown:latest", strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "podman")
	assert.Contains(t, err.Error(), "conversion crashed")
}

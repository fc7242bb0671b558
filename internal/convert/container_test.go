// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pandoc-fixtures/internal/container"
)

type fakeRuntime struct {
	images map[string]bool
	runErr error
	stdout string
	specs  []container.RunSpec
}

func (f *fakeRuntime) Name() string    { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error {
	if f.images[image] {
		return nil
	}
	return errors.New("no such image: " + image)
}

func (f *fakeRuntime) Run(spec container.RunSpec) error {
	f.specs = append(f.specs, spec)
	if f.stdout != "" && spec.Stdout != nil {
		_, _ = io.WriteString(spec.Stdout, f.stdout)
	}
	return f.runErr
}

func TestNewContainerConverter_MissingImage(t *testing.T) {
	_, err := newContainerConverter(&fakeRuntime{}, "", "/work", "markdown", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultImage)
	assert.Contains(t, err.Error(), "docker")
}

func TestContainerConverter_Convert(t *testing.T) {
	rt := &fakeRuntime{images: map[string]bool{DefaultImage: true}}
	c, err := newContainerConverter(rt, "", "/work", "markdown", "json")
	require.NoError(t, err)
	assert.Equal(t, "docker:"+DefaultImage, c.Name())

	tests := []struct {
		name     string
		input    string
		output   string
		wantArgs []string
		wantErr  string
	}{
		{
			name:     "relative paths pass through",
			input:    "markdown/intro.md",
			output:   "intro.json",
			wantArgs: []string{"-f", "markdown", "-t", "json", "-o", "intro.json", "markdown/intro.md"},
		},
		{
			name:     "absolute paths under workdir are made relative",
			input:    "/work/markdown/guide/setup.md",
			output:   "/work/out/setup.json",
			wantArgs: []string{"-f", "markdown", "-t", "json", "-o", "out/setup.json", "markdown/guide/setup.md"},
		},
		{
			name:    "paths outside workdir are rejected",
			input:   "/elsewhere/notes.md",
			output:  "notes.json",
			wantErr: "outside the mounted directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt.specs = nil
			err := c.Convert(tt.input, tt.output)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, rt.specs)
				return
			}
			require.NoError(t, err)
			require.Len(t, rt.specs, 1)
			assert.Equal(t, "/work", rt.specs[0].Workdir)
			assert.Equal(t, DefaultImage, rt.specs[0].Image)
			assert.Equal(t, tt.wantArgs, rt.specs[0].Args)
		})
	}
}

func TestContainerConverter_Version(t *testing.T) {
	rt := &fakeRuntime{
		images: map[string]bool{"pandoc/core:3.1": true},
		stdout: "pandoc 3.1\nUser data directory: /root/.local/share/pandoc\n",
	}
	c, err := newContainerConverter(rt, "pandoc/core:3.1", "/work", "markdown", "json")
	require.NoError(t, err)

	v, err := c.Version()
	require.NoError(t, err)
	assert.Equal(t, "pandoc 3.1", v)
	assert.Empty(t, rt.specs[0].Workdir)
}

func TestContainerConverter_RunFailure(t *testing.T) {
	rt := &fakeRuntime{images: map[string]bool{DefaultImage: true}, runErr: errors.New("exit status 1")}
	c, err := newContainerConverter(rt, DefaultImage, "/work", "markdown", "json")
	require.NoError(t, err)

	err = c.Convert("markdown/a.md", "a.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
}

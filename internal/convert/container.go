// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pandoc-fixtures/internal/container"
)

// DefaultImage is the pandoc image used by the container backend.
const DefaultImage = "pandoc/core:latest"

// ContainerConverter runs pandoc inside a container. The host working
// directory is bind-mounted into the container, so inputs and outputs must
// live below it.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
	workdir string
	from    string
	to      string

	Stdout io.Writer
	Stderr io.Writer
}

// NewContainerConverter verifies that image exists in rt and returns a
// converter rooted at the current working directory.
func NewContainerConverter(rt container.Runtime, image, from, to string) (*ContainerConverter, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return newContainerConverter(rt, image, wd, from, to)
}

func newContainerConverter(rt container.Runtime, image, workdir, from, to string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("%s image not available in %s: %w", image, rt.Name(), err)
	}
	return &ContainerConverter{
		runtime: rt,
		image:   image,
		workdir: workdir,
		from:    from,
		to:      to,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Name returns "<runtime>:<image>".
func (c *ContainerConverter) Name() string {
	return c.runtime.Name() + ":" + c.image
}

// Version returns the first line of the image's "--version" output.
func (c *ContainerConverter) Version() (string, error) {
	var out bytes.Buffer
	err := c.runtime.Run(container.RunSpec{
		Image:  c.image,
		Args:   []string{"--version"},
		Stdout: &out,
		Stderr: io.Discard,
	})
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", c.image, err)
	}
	return firstLine(out.String()), nil
}

// Convert runs one container and waits for it to exit.
func (c *ContainerConverter) Convert(input, output string) error {
	in, err := c.mounted(input)
	if err != nil {
		return err
	}
	out, err := c.mounted(output)
	if err != nil {
		return err
	}

	return c.runtime.Run(container.RunSpec{
		Image:   c.image,
		Workdir: c.workdir,
		Args:    Args(c.from, c.to, in, out),
		Stdout:  c.Stdout,
		Stderr:  c.Stderr,
	})
}

// mounted translates a host path into its path inside the container,
// relative to the mount point.
func (c *ContainerConverter) mounted(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(c.workdir, p)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", p, err)
		}
		p = rel
	}
	p = filepath.ToSlash(filepath.Clean(p))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%s is outside the mounted directory %s", p, c.workdir)
	}
	return p, nil
}

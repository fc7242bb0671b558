// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrToolNotFound is returned when the converter binary is not on PATH.
var ErrToolNotFound = errors.New("converter not found on PATH")

// executor abstracts process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// PandocConverter invokes a pandoc-compatible binary:
//
//	<tool> -f <from> -t <to> -o <output> <input>
type PandocConverter struct {
	tool string
	from string
	to   string
	exec executor

	// Stdout and Stderr receive the tool's own output. They default to the
	// process streams so the tool reports its errors directly.
	Stdout io.Writer
	Stderr io.Writer
}

// NewPandocConverter resolves tool on PATH and returns a converter using the
// given format flags. It fails with ErrToolNotFound when the tool is missing,
// so a run aborts before the first file.
func NewPandocConverter(tool, from, to string) (*PandocConverter, error) {
	return newPandocConverter(osExecutor{}, tool, from, to)
}

func newPandocConverter(exec executor, tool, from, to string) (*PandocConverter, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", tool, ErrToolNotFound, err)
	}
	return &PandocConverter{
		tool:   tool,
		from:   from,
		to:     to,
		exec:   exec,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Name returns the tool name.
func (p *PandocConverter) Name() string { return p.tool }

// Version returns the first line of "<tool> --version".
func (p *PandocConverter) Version() (string, error) {
	var out bytes.Buffer
	if err := p.exec.Run(p.tool, []string{"--version"}, &out, io.Discard); err != nil {
		return "", fmt.Errorf("querying %s version: %w", p.tool, err)
	}
	return firstLine(out.String()), nil
}

// Convert runs the tool once and waits for it to exit.
func (p *PandocConverter) Convert(input, output string) error {
	if err := p.exec.Run(p.tool, Args(p.from, p.to, input, output), p.Stdout, p.Stderr); err != nil {
		return fmt.Errorf("%s %s: %w", p.tool, input, err)
	}
	return nil
}

// Args builds the converter argument list for one file.
func Args(from, to, input, output string) []string {
	return []string{"-f", from, "-t", to, "-o", output, input}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

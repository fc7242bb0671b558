// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds Markdown sources in a directory tree.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

// MarkdownExt is the suffix a file name must carry to be picked up.
const MarkdownExt = ".md"

// ErrNotDirectory is returned when the discovery root exists but is a file.
var ErrNotDirectory = errors.New("not a directory")

// Markdown walks root and every subdirectory below it and returns one
// Fixture per file whose name ends in ".md". Symlinked files are kept; a
// symlinked root is followed, symlinked subdirectories are not. Other
// entries are skipped without notice. Results follow lexical walk order and
// every Source is reported under root, even when root is a symlink.
//
// Any walk error, including a missing root, aborts discovery.
func Markdown(fs afero.Fs, root string) ([]types.Fixture, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s: %w", root, ErrNotDirectory)
	}

	walkRoot, err := resolveRoot(fs, root)
	if err != nil {
		return nil, err
	}

	var fixtures []types.Fixture
	err = afero.Walk(fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !strings.HasSuffix(info.Name(), MarkdownExt) || !isFile(fs, path, info) {
			return nil
		}
		f, err := newFixture(root, underRoot(root, walkRoot, path))
		if err != nil {
			return err
		}
		fixtures = append(fixtures, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return fixtures, nil
}

// resolveRoot returns the directory to walk. afero.Walk lstats its root, so a
// symlinked root on the OS filesystem is resolved first.
func resolveRoot(fs afero.Fs, root string) (string, error) {
	if _, ok := fs.(*afero.OsFs); !ok {
		return root, nil
	}
	info, err := os.Lstat(root)
	if err != nil {
		return "", fmt.Errorf("reading source directory %s: %w", root, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return root, nil
	}
	target, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolving source directory %s: %w", root, err)
	}
	return target, nil
}

// underRoot maps a path found below walkRoot back under root.
func underRoot(root, walkRoot, path string) string {
	if walkRoot == root {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// isFile reports whether a walk entry names a file. A symlink counts unless
// it points at a directory. A dangling link is kept so the converter reports
// it as a failed conversion.
func isFile(fs afero.Fs, path string, info os.FileInfo) bool {
	mode := info.Mode()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	target, err := fs.Stat(path)
	if err != nil {
		return true
	}
	return !target.IsDir()
}

func newFixture(root, path string) (types.Fixture, error) {
	dir, name := filepath.Split(path)
	dir = filepath.Clean(dir)

	rel, err := filepath.Rel(filepath.Clean(root), dir)
	if err != nil {
		return types.Fixture{}, fmt.Errorf("resolving %s against %s: %w", path, root, err)
	}

	return types.Fixture{
		Source: path,
		Dir:    dir,
		Name:   name,
		Ext:    filepath.Ext(name),
		RelDir: rel,
	}, nil
}

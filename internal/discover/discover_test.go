// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte("# "+p+"\n"), 0o644))
	}
}

func sources(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()
	fixtures, err := Markdown(fs, root)
	require.NoError(t, err)
	out := make([]string, len(fixtures))
	for i, f := range fixtures {
		out[i] = f.Source
	}
	return out
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "top-level and nested files",
			files: []string{"markdown/intro.md", "markdown/guide/setup.md"},
			want:  []string{"markdown/guide/setup.md", "markdown/intro.md"},
		},
		{
			name:  "non-markdown files are skipped",
			files: []string{"markdown/notes.txt", "markdown/readme.markdown", "markdown/a.md"},
			want:  []string{"markdown/a.md"},
		},
		{
			name:  "extension match is case-sensitive",
			files: []string{"markdown/UPPER.MD", "markdown/lower.md"},
			want:  []string{"markdown/lower.md"},
		},
		{
			name:  "no depth limit",
			files: []string{"markdown/a/b/c/d/e/deep.md"},
			want:  []string{"markdown/a/b/c/d/e/deep.md"},
		},
		{
			name:  "same base name in different directories",
			files: []string{"markdown/a/x.md", "markdown/b/x.md"},
			want:  []string{"markdown/a/x.md", "markdown/b/x.md"},
		},
		{
			name:  "only non-markdown files",
			files: []string{"markdown/notes.txt"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll("markdown", 0o755))
			writeFiles(t, fs, tt.files...)

			got := sources(t, fs, "markdown")
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdown_FixtureFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "markdown/guide/setup.md", "markdown/intro.md")

	fixtures, err := Markdown(fs, "markdown")
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	setup := fixtures[0]
	assert.Equal(t, "markdown/guide/setup.md", setup.Source)
	assert.Equal(t, "markdown/guide", setup.Dir)
	assert.Equal(t, "setup.md", setup.Name)
	assert.Equal(t, ".md", setup.Ext)
	assert.Equal(t, "guide", setup.RelDir)
	assert.Equal(t, "setup", setup.BaseName())
	assert.Empty(t, setup.Output)

	intro := fixtures[1]
	assert.Equal(t, ".", intro.RelDir)
	assert.Equal(t, "intro", intro.BaseName())
}

func TestMarkdown_MissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Markdown(fs, "markdown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
	assert.Contains(t, err.Error(), "markdown")
}

func TestMarkdown_RootIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "markdown")

	_, err := Markdown(fs, "markdown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestMarkdown_OsFs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "markdown")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guide"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "intro.md"), []byte("# Intro"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "guide", "setup.md"), []byte("# Setup"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("notes"), 0o644))

	got := sources(t, afero.NewOsFs(), root)
	assert.Equal(t, []string{
		filepath.Join(root, "guide", "setup.md"),
		filepath.Join(root, "intro.md"),
	}, got)
}

func TestMarkdown_SymlinkedRoot(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "guide"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "intro.md"), []byte("# Intro"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target, "guide", "setup.md"), []byte("# Setup"), 0o644))

	root := filepath.Join(tmp, "markdown")
	require.NoError(t, os.Symlink(target, root))

	fixtures, err := Markdown(afero.NewOsFs(), root)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, filepath.Join(root, "guide", "setup.md"), fixtures[0].Source)
	assert.Equal(t, "guide", fixtures[0].RelDir)
	assert.Equal(t, filepath.Join(root, "intro.md"), fixtures[1].Source)
	assert.Equal(t, ".", fixtures[1].RelDir)
}

func TestMarkdown_SymlinkedFiles(t *testing.T) {
	tmp := t.TempDir()
	shared := filepath.Join(tmp, "shared.md")
	require.NoError(t, os.WriteFile(shared, []byte("# Shared"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "elsewhere"), 0o755))

	root := filepath.Join(tmp, "markdown")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "intro.md"), []byte("# Intro"), 0o644))
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "linked.md")))
	require.NoError(t, os.Symlink(filepath.Join(tmp, "missing.md"), filepath.Join(root, "dangling.md")))
	require.NoError(t, os.Symlink(filepath.Join(tmp, "elsewhere"), filepath.Join(root, "dir.md")))

	got := sources(t, afero.NewOsFs(), root)
	assert.Equal(t, []string{
		filepath.Join(root, "dangling.md"),
		filepath.Join(root, "intro.md"),
		filepath.Join(root, "linked.md"),
	}, got)
}

//go:build integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/mdshare/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ThenSearch(t *testing.T) {
	dataDir := t.TempDir()
	for name, content := range sampleIndex() {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), content, 0o644))
	}
	tmplPath := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(tmplPath, []byte(`url: https://example.org/data/
name: built
include: ["*.npz", "*.pdb"]
containers:
  frames.tar.gz: ["frame_*.npz"]
`), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	_, logs, err := runCLI(t, "--config", cfgPath, "--no-color", "build", "-C", dataDir, tmplPath)
	require.NoError(t, err)
	assert.Contains(t, logs, "Catalogue built")

	cataloguePath := filepath.Join(dataDir, "built.yaml")
	checksumPath := filepath.Join(dataDir, "built.md5")
	repo, err := repository.Load(cataloguePath, checksumPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	assert.Len(t, repo.Index(), 3)
	assert.Contains(t, repo.Containers(), "frames.tar.gz")

	out, _, err := runCLI(t, "--config", cfgPath, "--catalogue", cataloguePath, "--checksum", checksumPath, "search", "*.pdb")
	require.NoError(t, err)
	assert.Contains(t, out, "topology.pdb")
}

func TestBuild_InvalidTemplate(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(tmplPath, []byte("url: https://example.org/\n"), 0o644))

	_, _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "config.yaml"), "build", "-C", t.TempDir(), tmplPath)
	require.Error(t, err)
}

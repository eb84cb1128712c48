package archive

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mholt/archives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTarGz builds a gzip tar archive whose member names are the keys of members.
func writeTarGz(t *testing.T, archivePath string, members map[string]string) {
	t.Helper()
	ctx := context.Background()
	source := t.TempDir()
	names := make(map[string]string, len(members))
	for name, content := range members {
		p := filepath.Join(source, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		names[p] = name
	}
	files, err := archives.FilesFromDisk(ctx, nil, names)
	require.NoError(t, err)
	sort.Slice(files, func(i, j int) bool { return files[i].NameInArchive < files[j].NameInArchive })

	out, err := os.Create(archivePath)
	require.NoError(t, err)
	defer out.Close()
	format := archives.CompressedArchive{Compression: archives.Gz{}, Archival: archives.Tar{}}
	require.NoError(t, format.Archive(ctx, out, files))
}

func TestIsTopLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"x.txt", true},
		{"sub/z.txt", false},
		{"./x.txt", false},
		{"sub/", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTopLevel(tt.name))
		})
	}
}

func TestManager_ExtractTopLevel(t *testing.T) {
	tempDir := t.TempDir()
	archivePath := filepath.Join(tempDir, "bundle.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"x.txt":     "content x",
		"y.txt":     "content y",
		"sub/z.txt": "nested",
	})

	destDir := filepath.Join(tempDir, "out")
	extracted, err := NewManager().ExtractTopLevel(context.Background(), archivePath, destDir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(destDir, "x.txt"), filepath.Join(destDir, "y.txt")}, extracted)

	content, err := os.ReadFile(filepath.Join(destDir, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content x", string(content))

	_, err = os.Stat(filepath.Join(destDir, "sub"))
	assert.True(t, os.IsNotExist(err), "nested members must not be extracted")
	_, err = os.Stat(filepath.Join(destDir, "z.txt"))
	assert.True(t, os.IsNotExist(err), "nested members must not be flattened")
}

func TestManager_ExtractTopLevel_Errors(t *testing.T) {
	tempDir := t.TempDir()

	_, err := NewManager().ExtractTopLevel(context.Background(), filepath.Join(tempDir, "missing.tar.gz"), tempDir)
	assert.Error(t, err)

	notArchive := filepath.Join(tempDir, "plain.tar.gz")
	require.NoError(t, os.WriteFile(notArchive, []byte("not gzip data"), 0o644))
	_, err = NewManager().ExtractTopLevel(context.Background(), notArchive, filepath.Join(tempDir, "out"))
	assert.Error(t, err)
}

func TestManager_CreateRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	source := filepath.Join(tempDir, "src")
	require.NoError(t, os.MkdirAll(source, 0o755))

	files := []string{filepath.Join(source, "b.txt"), filepath.Join(source, "a.txt")}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte(filepath.Base(f)), 0o644))
	}

	archivePath := filepath.Join(tempDir, "c.tar.gz")
	am := NewManager()
	require.NoError(t, am.Create(context.Background(), archivePath, files))

	destDir := filepath.Join(tempDir, "dest")
	extracted, err := am.ExtractTopLevel(context.Background(), archivePath, destDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(destDir, "a.txt"), filepath.Join(destDir, "b.txt")}, extracted)

	content, err := os.ReadFile(filepath.Join(destDir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b.txt", string(content))
}

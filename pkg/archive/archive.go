// Package archive handles the gzip-compressed tar containers listed in a
// catalogue: extracting their top-level members after download and building
// them when a catalogue is generated.
package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/mdshare/pkg/fsutil"
	"github.com/mholt/archives"
)

// Manager handles archive extraction and creation operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

func containerFormat() archives.CompressedArchive {
	return archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
		Extraction:  archives.Tar{},
	}
}

// IsTopLevel reports whether a stored member name has no directory component.
func IsTopLevel(nameInArchive string) bool {
	return nameInArchive != "" && !strings.Contains(nameInArchive, "/")
}

// ExtractTopLevel extracts the regular files stored at the top level of the
// gzip tar archive at archivePath into destDir. Nested members are skipped,
// not flattened. The returned paths follow the member order of the archive.
func (am *Manager) ExtractTopLevel(ctx context.Context, archivePath, destDir string) ([]string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := fsutil.EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	var extracted []string
	handler := func(_ context.Context, f archives.FileInfo) error {
		if !IsTopLevel(f.NameInArchive) {
			slog.Debug("skipping nested archive member", slog.String("member", f.NameInArchive))
			return nil
		}
		if !f.Mode().IsRegular() {
			slog.Debug("skipping non-regular archive member", slog.String("member", f.NameInArchive))
			return nil
		}
		targetPath := filepath.Join(destDir, f.NameInArchive)
		if err := am.writeRegularFile(f, targetPath); err != nil {
			return err
		}
		extracted = append(extracted, targetPath)
		return nil
	}

	if err := containerFormat().Extract(ctx, file, handler); err != nil {
		return nil, fmt.Errorf("failed to extract archive %s: %w", archivePath, err)
	}
	return extracted, nil
}

// Create writes a gzip tar archive at archivePath holding each of files as a
// top-level member named after its base name.
func (am *Manager) Create(ctx context.Context, archivePath string, files []string) error {
	names := make(map[string]string, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for %s: %w", f, err)
		}
		names[abs] = filepath.Base(f)
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, names)
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}
	sort.Slice(archiveFiles, func(i, j int) bool {
		return archiveFiles[i].NameInArchive < archiveFiles[j].NameInArchive
	})

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() {
		_ = out.Sync()
		_ = out.Close()
	}()

	if err := containerFormat().Archive(ctx, out, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}

// writeRegularFile copies an archive member to targetPath and keeps its mode and mtime.
func (am *Manager) writeRegularFile(f archives.FileInfo, targetPath string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive member %s: %w", f.NameInArchive, err)
	}
	defer func() { _ = src.Close() }()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dst, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", f.NameInArchive, err)
	}

	if err := os.Chmod(targetPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	if err := os.Chtimes(targetPath, f.ModTime(), f.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
	}
	return nil
}

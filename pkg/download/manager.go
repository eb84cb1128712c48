// Package download fetches single catalogue entries over HTTP, verifies them
// against their recorded MD5 digest and retries transient faults.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/glorpus-work/mdshare/pkg/catalogue"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/glorpus-work/mdshare/pkg/fsutil"
	"github.com/glorpus-work/mdshare/pkg/repository"
	"github.com/hashicorp/go-retryablehttp"
)

// StatusError is returned when the server answers with anything but 200.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d (%s)", e.Code, e.URL)
}

// Manager downloads entries of a single repository using its HTTP client.
type Manager struct {
	repo *repository.Repository
}

// NewManager creates a download manager for repo.
func NewManager(repo *repository.Repository) *Manager {
	return &Manager{repo: repo}
}

// DownloadFile fetches name into localPath and verifies its digest. On a
// digest mismatch the written file is left in place.
func (m *Manager) DownloadFile(ctx context.Context, name, localPath string, progress Progress) (string, error) {
	_, entry, err := m.repo.Lookup(name)
	if err != nil {
		return "", err
	}

	resp, err := m.doRequest(ctx, name)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := writeBody(resp.Body, resp.ContentLength, localPath, orNoProgress(progress)); err != nil {
		return "", err
	}

	got, err := catalogue.FileHash(localPath)
	if err != nil {
		return "", err
	}
	if got != catalogue.NormalizeHash(entry.Hash) {
		slog.Debug("checksum mismatch",
			slog.String("file", name),
			slog.String("expected", entry.Hash),
			slog.String("actual", got))
		return "", errors.NewLoadError(errors.ErrIntegrity, name, "checksum test failed")
	}
	return localPath, nil
}

func (m *Manager) doRequest(ctx context.Context, name string) (*http.Response, error) {
	target := m.repo.URL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	if err := m.repo.Authorize(req); err != nil {
		return nil, errors.Wrap(err, "failed to authorize request")
	}

	slog.Debug("requesting file", slog.String("url", target))
	resp, err := m.repo.Client().Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request for %s failed", target)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: target}
	}
	return resp, nil
}

// writeBody copies body to localPath in ChunkSize pieces. A body that ends
// before expected bytes (when expected >= 0) or breaks off with a read error
// is reported as io.ErrUnexpectedEOF or the read error, never as success.
func writeBody(body io.Reader, expected int64, localPath string, progress Progress) error {
	out, err := fsutil.CreateFilePerm(localPath, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", localPath)
	}

	buf := make([]byte, ChunkSize)
	var written int64
	for index := 0; ; index++ {
		n, readErr := readChunk(body, buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				_ = out.Close()
				return errors.Wrapf(err, "could not write %s", localPath)
			}
			written += int64(n)
			progress.OnChunk(index, n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = out.Close()
			return errors.Wrapf(readErr, "could not read response body after %d bytes", written)
		}
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", localPath)
	}
	if expected >= 0 && written != expected {
		return fmt.Errorf("%w: received %d of %d bytes", io.ErrUnexpectedEOF, written, expected)
	}
	return nil
}

// readChunk fills buf from r. It returns io.EOF only when the stream ended
// cleanly; any other read error is passed through unchanged.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// AttemptDownload calls DownloadFile up to maxAttempts times. Transient
// faults remove the partial file and are retried at once; any other fault is
// returned immediately.
func (m *Manager) AttemptDownload(ctx context.Context, name, localPath string, maxAttempts int, progress Progress) (string, error) {
	if maxAttempts < 1 {
		return "", errors.Wrapf(errors.ErrConfiguration, "max attempts must be at least 1, got %d", maxAttempts)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		path, err := m.DownloadFile(ctx, name, localPath, progress)
		if err == nil {
			return path, nil
		}
		if !IsTransient(ctx, err) {
			return "", err
		}

		lastErr = err
		slog.Warn("download attempt failed",
			slog.String("file", name),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxAttempts),
			slog.Any("error", err))
		if rmErr := fsutil.RemoveIfExists(localPath); rmErr != nil {
			slog.Debug("could not remove partial download", slog.Any("error", rmErr))
		}
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
	}
	return "", fmt.Errorf("%w: %s: %w", errors.ErrDownloadExhausted, name, lastErr)
}

// DownloadIfNeeded makes sure workingDir/name exists. An existing file is
// returned untouched unless force is set.
func (m *Manager) DownloadIfNeeded(ctx context.Context, name, workingDir string, maxAttempts int, force bool, progress Progress) (string, error) {
	if workingDir == "" {
		return "", errors.Wrap(errors.ErrConfiguration, "a working directory is required")
	}
	if fsutil.Exists(workingDir) && !fsutil.IsDir(workingDir) {
		return "", errors.Wrapf(errors.ErrConfiguration, "working directory %s is not a directory", workingDir)
	}

	localPath := filepath.Join(workingDir, name)
	if !force && fsutil.Exists(localPath) {
		slog.Debug("file already present", slog.String("path", localPath))
		return localPath, nil
	}
	if err := fsutil.EnsureDir(workingDir); err != nil {
		return "", err
	}
	return m.AttemptDownload(ctx, name, localPath, maxAttempts, progress)
}

// IsTransient reports whether err is worth another attempt. Status codes and
// transport errors follow retryablehttp's default policy, with 408 added.
// Context cancellation counts as transient so the partial file is cleaned up.
func IsTransient(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, errors.ErrIntegrity) || errors.Is(err, errors.ErrNotFound) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusRequestTimeout {
			return true
		}
		retry, _ := retryablehttp.DefaultRetryPolicy(context.WithoutCancel(ctx), &http.Response{StatusCode: statusErr.Code}, nil)
		return retry
	}

	// The retry policy recognises permanent transport faults only on a bare
	// *url.Error.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr
	}
	retry, _ := retryablehttp.DefaultRetryPolicy(context.WithoutCancel(ctx), nil, err)
	return retry
}

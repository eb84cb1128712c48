// Package testutil provides fixtures for tests that talk to a catalogue
// served over HTTP.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/glorpus-work/mdshare/pkg/catalogue"
	"github.com/glorpus-work/mdshare/pkg/repository"
	"github.com/mholt/archives"
)

// TestServer serves in-memory files and counts the requests it receives.
// Scripted status codes can be queued per file to simulate flaky hosts.
type TestServer struct {
	Server *httptest.Server
	URL    string

	mu       sync.Mutex
	files    map[string][]byte
	failures map[string][]int
	requests map[string]int
}

// NewTestServer starts a server for files. It is closed when the test ends.
func NewTestServer(t *testing.T, files map[string][]byte) *TestServer {
	t.Helper()
	ts := &TestServer{
		files:    make(map[string][]byte, len(files)),
		failures: make(map[string][]int),
		requests: make(map[string]int),
	}
	for name, data := range files {
		ts.files[name] = data
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.serve))
	ts.URL = ts.Server.URL
	t.Cleanup(ts.Server.Close)
	return ts
}

func (ts *TestServer) serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")

	ts.mu.Lock()
	ts.requests[name]++
	var status int
	if queue := ts.failures[name]; len(queue) > 0 {
		status, ts.failures[name] = queue[0], queue[1:]
	}
	data, ok := ts.files[name]
	ts.mu.Unlock()

	switch {
	case status != 0:
		w.WriteHeader(status)
	case !ok:
		http.NotFound(w, r)
	default:
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// FailNext makes the next requests for name answer with codes, in order.
func (ts *TestServer) FailNext(name string, codes ...int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failures[name] = append(ts.failures[name], codes...)
}

// SetFile replaces the content served for name.
func (ts *TestServer) SetFile(name string, data []byte) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.files[name] = data
}

// Requests returns how many requests were made for name.
func (ts *TestServer) Requests(name string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests[name]
}

// TotalRequests returns the number of requests made for any file.
func (ts *TestServer) TotalRequests() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	total := 0
	for _, n := range ts.requests {
		total += n
	}
	return total
}

// NewDocument describes the given files as a catalogue served from baseURL.
func NewDocument(baseURL string, index, containers map[string][]byte) *catalogue.Document {
	doc := &catalogue.Document{URL: baseURL, Index: catalogue.Category{}, Containers: catalogue.Category{}}
	for name, data := range index {
		doc.Index[name] = catalogue.Entry{Hash: catalogue.HashBytes(data), Size: int64(len(data))}
	}
	for name, data := range containers {
		doc.Containers[name] = catalogue.Entry{Hash: catalogue.HashBytes(data), Size: int64(len(data))}
	}
	return doc
}

// WriteCatalogue writes doc and its checksum into a temporary directory.
func WriteCatalogue(t *testing.T, doc *catalogue.Document) (cataloguePath, checksumPath string) {
	t.Helper()
	dir := t.TempDir()
	cataloguePath = filepath.Join(dir, "catalogue.yaml")
	checksumPath = filepath.Join(dir, "catalogue.md5")
	if err := doc.WriteFiles(cataloguePath, checksumPath); err != nil {
		t.Fatalf("Failed to write catalogue: %v", err)
	}
	return cataloguePath, checksumPath
}

// ServeCatalogue starts a server for index and containers and returns it
// together with a repository describing it, loaded from disk.
func ServeCatalogue(t *testing.T, index, containers map[string][]byte) (*TestServer, *repository.Repository) {
	t.Helper()
	files := make(map[string][]byte, len(index)+len(containers))
	for name, data := range index {
		files[name] = data
	}
	for name, data := range containers {
		files[name] = data
	}
	ts := NewTestServer(t, files)

	cataloguePath, checksumPath := WriteCatalogue(t, NewDocument(ts.URL, index, containers))
	repo, err := repository.Load(cataloguePath, checksumPath)
	if err != nil {
		t.Fatalf("Failed to load test catalogue: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return ts, repo
}

// TarGz returns a gzip tar archive holding members under their keys.
// Keys may contain slashes to create nested members.
func TarGz(t *testing.T, members map[string]string) []byte {
	t.Helper()
	ctx := context.Background()
	source := t.TempDir()
	names := make(map[string]string, len(members))
	for name, content := range members {
		p := filepath.Join(source, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", p, err)
		}
		names[p] = name
	}
	files, err := archives.FilesFromDisk(ctx, nil, names)
	if err != nil {
		t.Fatalf("Failed to collect archive members: %v", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].NameInArchive < files[j].NameInArchive })

	var buf bytes.Buffer
	format := archives.CompressedArchive{Compression: archives.Gz{}, Archival: archives.Tar{}}
	if err := format.Archive(ctx, &buf, files); err != nil {
		t.Fatalf("Failed to build archive: %v", err)
	}
	return buf.Bytes()
}

// SetupTestConfig writes a config file pointing at the given catalogue and
// returns its path.
func SetupTestConfig(t *testing.T, cataloguePath, checksumPath, workingDir string) string {
	t.Helper()
	content := fmt.Sprintf(`settings:
  catalogue_file: %q
  checksum_file: %q
  working_dir: %q
  max_attempts: 3
  show_progress: false
  log_level: warn
`, cataloguePath, checksumPath, workingDir)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

//go:build integration

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/mdshare/internal/logger"
	"github.com/glorpus-work/mdshare/test/testutil"
)

// cliEnv is a served catalogue together with a config pointing at it.
type cliEnv struct {
	server        *testutil.TestServer
	configPath    string
	cataloguePath string
	checksumPath  string
	workDir       string
}

// newCLIEnv serves index and containers and writes a config whose working
// directory is a fresh temporary directory.
func newCLIEnv(t *testing.T, index, containers map[string][]byte) *cliEnv {
	t.Helper()
	files := make(map[string][]byte, len(index)+len(containers))
	for name, data := range index {
		files[name] = data
	}
	for name, data := range containers {
		files[name] = data
	}
	ts := testutil.NewTestServer(t, files)
	cataloguePath, checksumPath := testutil.WriteCatalogue(t, testutil.NewDocument(ts.URL, index, containers))
	workDir := filepath.Join(t.TempDir(), "work")

	return &cliEnv{
		server:        ts,
		configPath:    testutil.SetupTestConfig(t, cataloguePath, checksumPath, workDir),
		cataloguePath: cataloguePath,
		checksumPath:  checksumPath,
		workDir:       workDir,
	}
}

// run executes the root command with the environment's config and returns
// stdout and the captured log output.
func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, append([]string{"--config", e.configPath, "--no-color"}, args...)...)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr, logs bytes.Buffer
	logger.SetTestOutput(&logs)
	logger.InitLogger("info", true)
	t.Cleanup(logger.UnsetTestOutput)

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), logs.String(), err
}

func sampleIndex() map[string][]byte {
	return map[string][]byte{
		"frame_00.npz": []byte("frame zero payload"),
		"frame_01.npz": []byte("frame one payload"),
		"topology.pdb": []byte("ATOM      1  N   ALA A   1\n"),
	}
}

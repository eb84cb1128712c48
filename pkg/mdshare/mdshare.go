// Package mdshare is the library entry point: it loads catalogues, searches
// them and fetches matching files into a working directory.
//
//	client := mdshare.NewDefault(cfg)
//	paths, err := client.Fetch(ctx, "alanine-dipeptide-*.npz", mdshare.FetchOptions{WorkingDir: "data"})
package mdshare

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/glorpus-work/mdshare/pkg/archive"
	"github.com/glorpus-work/mdshare/pkg/config"
	"github.com/glorpus-work/mdshare/pkg/download"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/glorpus-work/mdshare/pkg/orchestrator"
	"github.com/glorpus-work/mdshare/pkg/repository"
)

// DefaultMaxAttempts is used when FetchOptions.MaxAttempts is zero.
const DefaultMaxAttempts = 3

// Client answers queries against an explicit repository or, when none is
// given, against its default one.
type Client struct {
	Default *repository.Repository
}

// Option configures a Client.
type Option func(*Client)

// WithDefaultRepository sets the repository used when a call names none.
func WithDefaultRepository(repo *repository.Repository) Option {
	return func(c *Client) { c.Default = repo }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault creates a Client whose default repository is the catalogue named
// in cfg. If it cannot be loaded a warning is logged and the client has no
// default.
func NewDefault(cfg *config.Config) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	repo, err := LoadRepository(cfg.Settings.CatalogueFile, cfg.Settings.ChecksumFile, RepositoryOptions(cfg)...)
	if err != nil {
		slog.Warn("default catalogue unavailable",
			slog.String("catalogue", cfg.Settings.CatalogueFile),
			slog.Any("error", err))
		return New()
	}
	return New(WithDefaultRepository(repo))
}

// RepositoryOptions translates the network settings of cfg.
func RepositoryOptions(cfg *config.Config) []repository.Option {
	opts := []repository.Option{
		repository.WithHTTPTimeout(cfg.Settings.HTTPTimeout),
		repository.WithUserAgent(cfg.Settings.UserAgent),
	}
	if a := cfg.Settings.Auth.Authenticator(); a != nil {
		opts = append(opts, repository.WithAuth(a))
	}
	return opts
}

// LoadRepository loads and verifies a catalogue and its checksum.
func LoadRepository(cataloguePath, checksumPath string, opts ...repository.Option) (*repository.Repository, error) {
	return repository.Load(cataloguePath, checksumPath, opts...)
}

func (c *Client) resolve(repo *repository.Repository) (*repository.Repository, error) {
	if repo != nil {
		return repo, nil
	}
	if c.Default != nil {
		return c.Default, nil
	}
	return nil, errors.Wrap(errors.ErrConfiguration, "no repository given and no default catalogue loaded")
}

// Search returns the sorted names matching pattern in repo, or in the
// default repository when repo is nil.
func (c *Client) Search(pattern string, repo *repository.Repository) ([]string, error) {
	r, err := c.resolve(repo)
	if err != nil {
		return nil, err
	}
	return r.Search(pattern)
}

// Catalogue writes the listing of repo, or of the default repository, to w.
func (c *Client) Catalogue(w io.Writer, repo *repository.Repository) error {
	r, err := c.resolve(repo)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, r.String())
	return err
}

// FetchOptions control a fetch.
type FetchOptions struct {
	// WorkingDir receives the files. Empty means a fresh temporary directory.
	WorkingDir string
	// Repository overrides the client's default.
	Repository *repository.Repository
	// MaxAttempts per file; zero means DefaultMaxAttempts.
	MaxAttempts int
	// Force re-downloads files already present in WorkingDir.
	Force bool
	// ShowProgress logs completed downloads when Progress is nil.
	ShowProgress bool
	Progress     orchestrator.ProgressReporter
	Hooks        orchestrator.Hooks
}

// Fetch downloads every catalogue entry matching pattern and returns the
// local paths in catalogue order. Containers contribute their top-level
// members instead of themselves.
func (c *Client) Fetch(ctx context.Context, pattern string, opts FetchOptions) ([]string, error) {
	repo, err := c.resolve(opts.Repository)
	if err != nil {
		return nil, err
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	progress := opts.Progress
	if progress == nil && opts.ShowProgress {
		progress = NewLogProgress()
	}

	orch := &orchestrator.Orchestrator{
		Resolver: repo,
		DL:       download.NewManager(repo),
		Unpacker: archive.NewManager(),
		Hooks:    opts.Hooks,
	}
	return orch.Fetch(ctx, pattern, orchestrator.FetchOptions{
		WorkingDir:  opts.WorkingDir,
		MaxAttempts: opts.MaxAttempts,
		Force:       opts.Force,
		Progress:    progress,
	})
}

// FetchOne is Fetch for patterns expected to produce exactly one file.
func (c *Client) FetchOne(ctx context.Context, pattern string, opts FetchOptions) (string, error) {
	paths, err := c.Fetch(ctx, pattern, opts)
	if err != nil {
		return "", err
	}
	if len(paths) != 1 {
		return "", errors.Wrapf(errors.ErrConfiguration, "pattern %q produced %d files, use Fetch", pattern, len(paths))
	}
	return paths[0], nil
}

package cli

import (
	"fmt"

	"github.com/glorpus-work/mdshare/internal/logger"
	"github.com/glorpus-work/mdshare/pkg/config"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/glorpus-work/mdshare/pkg/mdshare"
	"github.com/glorpus-work/mdshare/pkg/repository"
)

// These variables will be set by the main package
var (
	ConfigPath    *string
	Verbose       *bool
	NoColor       *bool
	CataloguePath *string
	ChecksumPath  *string
)

func stringFlag(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolFlag(p *bool) bool {
	return p != nil && *p
}

// loadConfig loads the configuration file and sets up logging. The returned
// config is what is stored on disk; flag overrides are not applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Settings.LogLevel
	if boolFlag(Verbose) {
		level = "debug"
	}
	logger.InitLogger(level, boolFlag(NoColor))
	return cfg, nil
}

// applyFlagOverrides replaces the configured catalogue files with the ones
// given on the command line.
func applyFlagOverrides(cfg *config.Config) {
	if p := stringFlag(CataloguePath); p != "" {
		cfg.Settings.CatalogueFile = p
	}
	if p := stringFlag(ChecksumPath); p != "" {
		cfg.Settings.ChecksumFile = p
	}
}

func getConfigPath() string {
	if p := stringFlag(ConfigPath); p != "" {
		return p
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes LoadConfig fail with a descriptive error
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// loadRepository loads the configured catalogue. Unlike the library default,
// a catalogue the CLI cannot load is an error.
func loadRepository(cfg *config.Config) (*repository.Repository, error) {
	repo, err := mdshare.LoadRepository(cfg.Settings.CatalogueFile, cfg.Settings.ChecksumFile, mdshare.RepositoryOptions(cfg)...)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, fmt.Errorf("%w (set one with --catalogue or 'mdshare config set catalogue_file PATH')", err)
		}
		return nil, err
	}
	logger.Debug("catalogue loaded", logger.Fields{"path": cfg.Settings.CatalogueFile, "url": repo.BaseURL()})
	return repo, nil
}

// loadClient loads the configuration and a client whose default repository
// is the configured catalogue.
func loadClient() (*config.Config, *mdshare.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	applyFlagOverrides(cfg)
	repo, err := loadRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mdshare.New(mdshare.WithDefaultRepository(repo)), nil
}

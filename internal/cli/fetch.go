package cli

import (
	"fmt"

	"github.com/glorpus-work/mdshare/internal/logger"
	"github.com/glorpus-work/mdshare/pkg/mdshare"
	"github.com/glorpus-work/mdshare/pkg/orchestrator"
	"github.com/spf13/cobra"
)

type fetchFlags struct {
	dir        string
	temp       bool
	attempts   int
	force      bool
	noProgress bool
}

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch <pattern>",
		Short: "Download files from the catalogue",
		Long: `Download every catalogue entry matching a shell-style pattern into the
working directory. Containers are unpacked and replaced by their top-level
files. Files already present are not downloaded again unless --force is given.

The local paths of the fetched files are printed one per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "Working directory (default from config)")
	cmd.Flags().BoolVar(&flags.temp, "temp", false, "Download into a fresh temporary directory")
	cmd.Flags().IntVar(&flags.attempts, "attempts", 0, "Download attempts per file (default from config)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Download files even if they already exist")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable progress bars")
	cmd.MarkFlagsMutuallyExclusive("dir", "temp")

	return cmd
}

func runFetch(cmd *cobra.Command, pattern string, flags fetchFlags) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	opts := mdshare.FetchOptions{
		WorkingDir:  cfg.Settings.WorkingDir,
		MaxAttempts: cfg.Settings.MaxAttempts,
		Force:       flags.force,
		Hooks: orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			logger.Debug(e.Msg, logger.Fields{"phase": e.Phase, "name": e.ID})
		}},
	}
	switch {
	case flags.temp:
		opts.WorkingDir = ""
	case flags.dir != "":
		opts.WorkingDir = flags.dir
	}
	if flags.attempts != 0 {
		opts.MaxAttempts = flags.attempts
	}
	if cfg.Settings.ShowProgress && !flags.noProgress {
		opts.Progress = newProgressReporter(cmd.ErrOrStderr())
	}

	paths, err := client.Fetch(cmd.Context(), pattern, opts)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		_, _ = fmt.Fprintln(out, p)
	}
	logger.Debug("fetch complete", logger.Fields{"pattern": pattern, "files": len(paths)})
	return nil
}

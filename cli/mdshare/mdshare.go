package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/mdshare/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	cataloguePath string
	checksumPath  string
	verbose       bool
	noColor       bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdshare",
		Short: "Fetch shared data files from a checksummed catalogue",
		Long: `mdshare downloads data files listed in a catalogue from a remote location:
- fetch files or archive containers matching a pattern, verified by MD5
- search and list the catalogue
- build a catalogue from a directory of files`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().StringVar(&cataloguePath, "catalogue", "", "catalogue file (overrides config)")
	cmd.PersistentFlags().StringVar(&checksumPath, "checksum", "", "catalogue checksum file (overrides config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.CataloguePath = &cataloguePath
	cli.ChecksumPath = &checksumPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor

	cmd.AddCommand(
		cli.NewFetchCmd(),
		cli.NewSearchCmd(),
		cli.NewCatalogueCmd(),
		cli.NewBuildCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}

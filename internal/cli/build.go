package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/mdshare/internal/logger"
	"github.com/glorpus-work/mdshare/pkg/archive"
	"github.com/glorpus-work/mdshare/pkg/catalogue"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "build <template>",
		Short: "Build a catalogue from a directory",
		Long: `Build a catalogue and its checksum file from the files of a directory.

The template names the base URL, the catalogue name, the include patterns and
the containers to create:

  url: https://example.org/data/
  name: my-catalogue
  include: ["*.npz"]
  containers:
    bundle.tar.gz: ["*.npz"]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "C", ".", "Directory holding the files to catalogue")

	return cmd
}

func runBuild(cmd *cobra.Command, templatePath, dir string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	tmpl, err := catalogue.LoadTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	result, err := catalogue.NewBuilder(dir, tmpl, archive.NewManager()).Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	var total int64
	for _, e := range result.Document.Index {
		total += e.Size
	}
	logger.Success("Catalogue built", logger.Fields{
		"catalogue":  result.CataloguePath,
		"checksum":   result.ChecksumPath,
		"files":      len(result.Document.Index),
		"containers": len(result.Document.Containers),
		"size":       humanize.Bytes(uint64(total)),
	})
	return nil
}

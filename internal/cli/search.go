package cli

import (
	"fmt"

	"github.com/glorpus-work/mdshare/pkg/catalogue"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search the catalogue",
		Long: `Search the plain files and the containers of the catalogue with a
shell-style pattern ("*", "?", "[abc]", "[!abc]").

Matches are printed in lexicographic order with their size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0])
		},
	}

	return cmd
}

func runSearch(cmd *cobra.Command, pattern string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	names, err := client.Search(pattern, nil)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		_, _ = fmt.Fprintf(out, "No files found matching '%s'\n", pattern)
		return nil
	}

	for _, name := range names {
		size, err := client.Default.Size(name)
		if err != nil {
			return err
		}
		value, unit := catalogue.FormatSize(size)
		_, _ = fmt.Fprintf(out, "%-50s   %6.1f %s\n", name, value, unit)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d file(s) matching '%s'\n", len(names), pattern)
	return nil
}

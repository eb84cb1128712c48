package cli

import (
	"github.com/spf13/cobra"
)

// NewCatalogueCmd creates the catalogue command.
func NewCatalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "List the catalogue",
		Long:  "Print the base URL, every file and every container of the catalogue with its size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			return client.Catalogue(cmd.OutOrStdout(), nil)
		},
	}

	return cmd
}

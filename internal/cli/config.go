package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/glorpus-work/mdshare/internal/logger"
	"github.com/glorpus-work/mdshare/pkg/config"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/spf13/cobra"
)

// settingGroup is a titled block of keys in the output of 'config show'.
type settingGroup struct {
	title string
	keys  []string
}

var settingGroups = []settingGroup{
	{"Catalogue", []string{"catalogue_file", "checksum_file"}},
	{"Fetch", []string{"working_dir", "max_attempts"}},
	{"Network", []string{"http_timeout", "user_agent"}},
	{"Output", []string{"show_progress", "log_level"}},
}

// authKey is shown in its own group since it is not a scalar setting.
const authKey = "auth"

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Inspect and edit the mdshare settings file.

Scalar settings are changed with 'config set'. Credentials are edited in the
file itself under settings.auth (basic, header or bearer).`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return writeDefaultConfig(getConfigPath(), force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the settings grouped by topic",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return printSettings(cmd.OutOrStdout(), cfg)
			},
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				value, err := cfg.GetValue(args[0])
				if err != nil {
					return fmt.Errorf("failed to get configuration value: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting and save the file",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return updateSetting(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the location of the configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), getConfigPath())
				return nil
			},
		},
		initCmd,
	)

	return cmd
}

// printSettings writes one block per settingGroup, then the credentials.
// Keys that belong to no group are listed under "Other".
func printSettings(out io.Writer, cfg *config.Config) error {
	values := cfg.ToMap()
	tw := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)

	grouped := []string{authKey}
	for _, g := range settingGroups {
		writeGroup(tw, g.title, g.keys, values)
		grouped = append(grouped, g.keys...)
	}
	var other []string
	for _, key := range cfg.Keys() {
		if !slices.Contains(grouped, key) {
			other = append(other, key)
		}
	}
	if len(other) > 0 {
		writeGroup(tw, "Other", other, values)
	}

	_, _ = fmt.Fprintln(tw, "Credentials")
	if a := cfg.Settings.Auth.Authenticator(); a != nil {
		_, _ = fmt.Fprintf(tw, "  scheme\t%s\n", a.Type())
		_, _ = fmt.Fprintf(tw, "  identity\t%s\n", a)
	} else {
		_, _ = fmt.Fprintln(tw, "  scheme\tnone")
	}
	return tw.Flush()
}

func writeGroup(w io.Writer, title string, keys []string, values map[string]string) {
	_, _ = fmt.Fprintln(w, title)
	for _, key := range keys {
		value := values[key]
		if value == "" {
			value = "-"
		}
		_, _ = fmt.Fprintf(w, "  %s\t%s\n", key, value)
	}
	_, _ = fmt.Fprintln(w)
}

// updateSetting changes one key of the stored configuration. Flag
// overrides of the current invocation are not written back.
func updateSetting(key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.SetValue(key, value); err != nil {
		return fmt.Errorf("failed to set configuration value: %w", err)
	}
	path := getConfigPath()
	if err := cfg.SaveConfig(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	logger.Success("Configuration updated", logger.Fields{"key": key, "value": value, "path": path})
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite): %w", path, errors.ErrConfigFileExists)
	}
	if err := config.DefaultConfig().SaveConfig(path); err != nil {
		return fmt.Errorf("failed to save default configuration: %w", err)
	}
	logger.Success("Configuration file created", logger.Fields{"path": path})
	return nil
}

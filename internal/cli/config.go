package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/praxis-labs/praxis/internal/branding"
	"github.com/praxis-labs/praxis/internal/config"
	"github.com/praxis-labs/praxis/internal/errs"
)

// configKeys are the settings the CLI reads; set and get reject anything else.
var configKeys = []string{config.KeyWorkspaceRoot, config.KeyCatalog, config.KeyAuto}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write ` + branding.DisplayName() + ` configuration stored at ~/` +
		branding.HomeDir() + `/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configGet(cmd.OutOrStdout(), args[0])
	},
}

func configSet(w io.Writer, key, value string) error {
	if !knownConfigKey(key) {
		return unknownConfigKey(key)
	}
	config.Load()
	if err := config.Set(key, value); err != nil {
		return errs.Wrap(errs.CodeConfig, err, "setting config key %q", key)
	}
	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

func configGet(w io.Writer, key string) error {
	if !knownConfigKey(key) {
		return unknownConfigKey(key)
	}
	config.Load()
	fmt.Fprintln(w, config.Get(key))
	return nil
}

func knownConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

func unknownConfigKey(key string) error {
	return errs.New(errs.CodeUsage, "unknown config key %q (known keys: %s)",
		key, strings.Join(configKeys, ", "))
}

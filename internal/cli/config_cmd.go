package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tilemon/internal/config"
	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

var (
	configInitForce  bool
	configInitGlobal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create and edit the tilemon config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Long: `Write tilemon.yaml in the current directory, or
~/.config/tilemon/config.yaml with --global, filled with every default.

Examples:
  tilemon config init
  tilemon config init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(".", config.ConfigFileName)
		if configInitGlobal {
			path = config.GlobalConfigPath()
			if path == "" {
				return errors.New(errors.ErrConfig,
					"Cannot find your home directory",
					"Run without --global to write tilemon.yaml here")
			}
		}
		return initConfig(cmd.OutOrStdout(), path, configInitForce, confirmOverwrite)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one value in the config file",
	Long: `Set a dotted key in the config file found for this directory, keeping
its comments and layout. The result is validated before it is kept.

Examples:
  tilemon config set endpoint 192.168.1.5
  tilemon config set serve.port 9000
  tilemon config set interval 5s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Find(cfgFile)
		if err != nil {
			return err
		}
		if path == "" {
			return errors.New(errors.ErrConfig,
				"No config file found",
				"Run 'tilemon config init' first")
		}
		return setConfigValue(cmd.OutOrStdout(), path, args[0], args[1])
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write the per-user config instead")
	configCmd.AddCommand(configInitCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig writes the default config to path. An existing file is only
// replaced with force or when confirm agrees; confirm may be nil.
func initConfig(w io.Writer, path string, force bool, confirm func(path string) (bool, error)) error {
	if _, err := os.Stat(path); err == nil && !force {
		if confirm == nil || !isInteractive() {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}
		ok, err := confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
		force = true
	}

	if err := config.WriteDefault(path, config.DefaultConfig(), force); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path, "Check the directory is writable")
	}
	fmt.Fprintf(w, "%s Wrote %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	return nil
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("'%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	return overwrite, nil
}

// setConfigValue writes key=value, then reloads and validates. An invalid
// result restores the previous file.
func setConfigValue(w io.Writer, path, key, value string) error {
	before, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot read "+path, "")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot set '%s'", key), "Keys are dotted, e.g. serve.port")
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		_ = os.WriteFile(path, before, 0o644)
		return err
	}

	fmt.Fprintf(w, "%s %s = %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), key, value)
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/invowk/iffchunk/internal/config"
	"github.com/invowk/iffchunk/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `iffchunk config` command tree.
// Subcommands that read configuration use what the root pre-run hook loaded.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage iffchunk configuration",
		Long: `Manage iffchunk configuration.

Configuration is stored in:
  - Linux: ~/.config/iffchunk/config.cue
  - macOS: ~/Library/Application Support/iffchunk/config.cue
  - Windows: %APPDATA%\iffchunk\config.cue

Any key can be overridden with an IFFCHUNK_* environment variable,
for example IFFCHUNK_BYTE_ORDER=little or IFFCHUNK_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgErr != nil {
				return app.cfgErr
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(app.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	if app.cfgErr != nil {
		if rendered, err := issue.Get(issue.ConfigLoadFailedId).Render(glamourStyle(app.cfg.UI.ColorScheme)); err == nil {
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
		}
		return app.cfgErr
	}

	out := cmd.OutOrStdout()
	cfg := app.cfg
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if app.cfgPath != "" {
		fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("Config file"), app.cfgPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("byte_order"), valueStyle.Render(cfg.ByteOrder.String()))
	fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("max_file_size"), valueStyle.Render(fmt.Sprintf("%d", cfg.MaxFileSize)))
	fmt.Fprintf(out, "%s: %s\n", KeyStyle.Render("strict"), valueStyle.Render(fmt.Sprintf("%v", cfg.Strict)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(cmd *cobra.Command) error {
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(cfgPath); statErr == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n", warningIcon, cfgPath)
		return nil
	}

	if _, err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", successIcon, cfgPath)
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(out, "Config file: %s\n", cfgPath)
	if app.cfgPath != "" && app.cfgPath != cfgPath {
		fmt.Fprintf(out, "Loaded from: %s\n", app.cfgPath)
	}

	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/iffchunk/internal/config"
	"github.com/invowk/iffchunk/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference; the root command's pre-run hook fills
	// in the per-invocation configuration and logger.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		cfg     *config.Config
		cfgPath string
		cfgErr  error
		verbose bool
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootFlags holds the persistent flags shared by every subcommand.
	rootFlags struct {
		verbose    bool
		configPath string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: log.NewWithOptions(deps.Stderr, log.Options{Prefix: config.AppName, Level: log.WarnLevel}),
	}, nil
}

// configure loads configuration for this invocation and builds the logger.
// A broken config file is reported as a warning and defaults are used, so
// commands such as `config path` keep working.
func (a *App) configure(cmd *cobra.Command, flags *rootFlags) {
	stderr := cmd.ErrOrStderr()

	loaded, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})
	a.cfgErr = err
	if err != nil {
		a.cfg = config.DefaultConfig()
		a.cfgPath = ""
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
	} else {
		a.cfg = loaded.Config
		a.cfgPath = loaded.Path
	}

	// The flag can only turn verbose output on; config supplies the default.
	a.verbose = flags.verbose || a.cfg.UI.Verbose

	level := log.WarnLevel
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(stderr, log.Options{Prefix: config.AppName, Level: level})
	a.logger.Debug("configuration loaded", "path", a.cfgPath, "byte_order", a.cfg.ByteOrder, "strict", a.cfg.Strict)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// reportError prints err to stderr and, in verbose mode, the linked issue
// guide rendered for the configured color scheme. The returned ExitError
// carries no message because the error has already been shown.
func (a *App) reportError(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	var ae *issue.ActionableError
	if a.verbose && errors.As(err, &ae) {
		if guide := ae.Issue(); guide != nil {
			if rendered, renderErr := guide.Render(glamourStyle(a.cfg.UI.ColorScheme)); renderErr == nil {
				fmt.Fprint(stderr, rendered)
			}
		}
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: ExitFailure}
}

// glamourStyle maps a color scheme to a glamour standard style name.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark, config.ColorSchemeLight:
		return string(scheme)
	default:
		return "auto"
	}
}

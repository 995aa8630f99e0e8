// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/iffchunk/pkg/iff"

	"github.com/spf13/cobra"
)

func newIDCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "id <fourcc>...",
		Short: "Validate chunk identifiers",
		Long: `Validate one or more chunk identifiers.

Only the first four bytes of each argument are used. An identifier is valid
when every byte is printable ASCII (0x20-0x7E) and no space is directly
followed by a non-space. Reserved identifiers such as FORM, LIST and "CAT "
are valid but marked as reserved.

Exits with status 1 when any identifier is invalid.`,
		Example: `  iffchunk id FORM
  iffchunk id "CAT " "fmt " data`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runID(cmd, app, args)
		},
	}
}

func runID(cmd *cobra.Command, app *App, args []string) error {
	out := cmd.OutOrStdout()

	invalid := 0
	for _, arg := range args {
		id, err := iff.ParseChunkID(arg)
		if err != nil {
			invalid++
			kind := "invalid"
			var idErr *iff.InvalidChunkIDError
			if errors.As(err, &idErr) {
				kind = idErr.Kind.String()
			}
			app.logger.Debug("invalid chunk id", "source", arg, "kind", kind)
			fmt.Fprintf(out, "%s %q %s %s\n", errorIcon, arg, ErrorStyle.Render(kind), SubtitleStyle.Render(err.Error()))
			continue
		}

		status := SuccessStyle.Render("ok")
		if id.IsReserved() {
			status = WarningStyle.Render("reserved")
		}
		fmt.Fprintf(out, "%s %q %s\n", successIcon, id.String(), status)
	}

	if invalid > 0 {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d chunk ids are invalid", invalid, len(args))}
	}
	return nil
}

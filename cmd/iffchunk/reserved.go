// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/invowk/iffchunk/pkg/iff"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newReservedCommand(app *App) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "reserved",
		Short: "List identifiers reserved for structural chunks",
		Long: `List the 32 identifiers reserved for structural use: the LIST, FORM and
"CAT " group families with their numbered variants, PROP, and the
all-space filler identifier.

Identifiers are printed quoted so trailing spaces stay visible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReserved(cmd, app, markdown)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the list as a styled Markdown table")

	return cmd
}

func runReserved(cmd *cobra.Command, app *App, markdown bool) error {
	ids := iff.ReservedChunkIDs()
	out := cmd.OutOrStdout()

	if !markdown {
		for _, id := range ids {
			fmt.Fprintf(out, "%q\n", id.String())
		}
		return nil
	}

	rendered, err := glamour.Render(reservedMarkdown(ids), glamourStyle(app.cfg.UI.ColorScheme))
	if err != nil {
		return fmt.Errorf("failed to render reserved identifiers: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}

// reservedMarkdown builds a Markdown table of ids grouped by family.
func reservedMarkdown(ids []iff.ChunkID) string {
	var sb strings.Builder
	sb.WriteString("# Reserved chunk identifiers\n\n")
	sb.WriteString("| Identifier | Family |\n")
	sb.WriteString("|------------|--------|\n")
	for _, id := range ids {
		fmt.Fprintf(&sb, "| `%q` | %s |\n", id.String(), reservedFamily(id))
	}
	return sb.String()
}

func reservedFamily(id iff.ChunkID) string {
	switch string(id[:3]) {
	case "LIS":
		return "LIST"
	case "FOR":
		return "FORM"
	case "CAT":
		return "CAT"
	case "PRO":
		return "PROP"
	default:
		return "filler"
	}
}

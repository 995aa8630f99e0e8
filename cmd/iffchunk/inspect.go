// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/invowk/iffchunk/internal/config"
	"github.com/invowk/iffchunk/internal/issue"
	"github.com/invowk/iffchunk/pkg/iff"
	"github.com/invowk/iffchunk/pkg/iffscan"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

const (
	outputText = "text"
	outputTOML = "toml"
)

type (
	inspectFlags struct {
		byteOrder string
		strict    bool
		output    string
	}

	// inspectReport is the TOML form of a scan.
	inspectReport struct {
		File          string         `toml:"file"`
		ByteOrder     string         `toml:"byte_order"`
		Truncated     bool           `toml:"truncated"`
		TruncatedAt   int64          `toml:"truncated_at,omitempty"`
		TrailingBytes int            `toml:"trailing_bytes"`
		Summary       map[string]int `toml:"summary"`
		Chunks        []chunkReport  `toml:"chunks"`
	}

	chunkReport struct {
		Offset    int64       `toml:"offset"`
		ID        iff.ChunkID `toml:"id"`
		Size      uint32      `toml:"size"`
		Reserved  bool        `toml:"reserved"`
		GroupType string      `toml:"group_type,omitempty"`
	}
)

func newInspectCommand(app *App) *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the top-level chunks of an IFF or RIFF file",
		Long: `List the top-level chunks of an IFF-family file.

Each chunk is shown with its offset, identifier and declared size. Group
chunks (FORM, LIST, RIFF, ...) also show their type identifier. Nested
chunks inside groups are not walked.

A chunk that declares more bytes than the file holds ends the listing with a
warning, or an error with --strict.`,
		Example: `  iffchunk inspect sound.wav
  iffchunk inspect --byte-order big --strict picture.iff
  iffchunk inspect -o toml sound.aiff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, app, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.byteOrder, "byte-order", "", "size byte order: auto, big or little (default from config)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on truncated chunks and trailing bytes (default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputText, "output format: text or toml")

	return cmd
}

func runInspect(cmd *cobra.Command, app *App, flags *inspectFlags, path string) error {
	if flags.output != outputText && flags.output != outputTOML {
		return fmt.Errorf("invalid output format %q (valid: %s, %s)", flags.output, outputText, outputTOML)
	}

	order := app.cfg.ByteOrder
	if flags.byteOrder != "" {
		order = iffscan.ByteOrder(flags.byteOrder)
		if valid, errs := order.IsValid(); !valid {
			return errs[0]
		}
	}
	strict := app.cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict = flags.strict
	}

	data, err := readInputFile(path, app.cfg.MaxFileSize)
	if err != nil {
		return app.reportError(cmd, err)
	}

	app.logger.Debug("inspecting file", "path", path, "bytes", len(data), "byte_order", order, "strict", strict)
	res, err := iffscan.Scan(data, iffscan.Options{ByteOrder: order, Strict: strict, Logger: app.logger})
	if err != nil {
		return app.reportError(cmd, scanError(path, err))
	}

	out := cmd.OutOrStdout()
	if flags.output == outputTOML {
		return writeTOMLReport(out, path, res)
	}
	writeTextReport(out, path, res)
	return nil
}

// readInputFile reads path after checking it against the size limit.
func readInputFile(path string, limit config.FileSizeLimit) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	if info.IsDir() {
		return nil, issue.NewErrorContext().
			WithOperation("inspect file").
			WithResource(path).
			WithSuggestion("Pass a regular file, not a directory").
			WithIssue(issue.FileNotFoundId).
			Wrap(fmt.Errorf("%s is a directory", path)).
			BuildError()
	}
	if info.Size() > int64(limit) {
		return nil, issue.NewErrorContext().
			WithOperation("inspect file").
			WithResource(path).
			WithSuggestion(fmt.Sprintf("Raise max_file_size in the configuration (currently %d bytes)", limit)).
			WithSuggestion("Or set " + config.EnvPrefix + "_MAX_FILE_SIZE for a single run").
			WithIssue(issue.FileTooLargeId).
			Wrap(fmt.Errorf("file size %d bytes exceeds maximum %d bytes", info.Size(), limit)).
			BuildError()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	return data, nil
}

// fileError wraps filesystem errors with the matching issue guide.
func fileError(path string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("inspect file").
		WithResource(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		ec = ec.WithSuggestion("Check the path for typos").
			WithIssue(issue.FileNotFoundId)
	case errors.Is(err, fs.ErrPermission):
		ec = ec.WithSuggestion("Check that you have read permission on the file").
			WithIssue(issue.PermissionDeniedId)
	}

	return ec.Wrap(err).BuildError()
}

// scanError wraps scan failures with the matching issue guide.
func scanError(path string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("inspect file").
		WithResource(path)

	switch {
	case errors.Is(err, iff.ErrInvalidChunkID):
		ec = ec.WithSuggestion("Check that the file is an IFF, RIFF or AIFF file").
			WithSuggestion("Try --byte-order if the sizes look wrong").
			WithIssue(issue.InvalidChunkIDId)
	case errors.Is(err, iffscan.ErrTruncatedChunk), errors.Is(err, iffscan.ErrShortHeader):
		ec = ec.WithSuggestion("The file may be cut short; run without --strict to list the chunks before the break").
			WithIssue(issue.TruncatedChunkId)
	}

	return ec.Wrap(err).BuildError()
}

// sortedCounts returns the per-identifier counts ordered by identifier.
func sortedCounts(res *iffscan.Result) ([]iff.ChunkID, map[iff.ChunkID]int) {
	counts := res.Counts()
	ids := slices.SortedFunc(maps.Keys(counts), func(a, b iff.ChunkID) int {
		return cmp.Compare(a.String(), b.String())
	})
	return ids, counts
}

func writeTextReport(w io.Writer, path string, res *iffscan.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Chunks in "+path))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Byte order"), res.ByteOrder)
	fmt.Fprintln(w)

	for _, e := range res.Entries {
		line := offsetStyle.Render(fmt.Sprintf("%d", e.Offset)) + "  " + e.Chunk.String()
		if e.HasGroupType {
			line += SubtitleStyle.Render(fmt.Sprintf(" (type %q)", e.GroupType.String()))
		}
		if e.Reserved {
			line += " " + WarningStyle.Render("reserved")
		}
		fmt.Fprintln(w, line)
	}

	ids, counts := sortedCounts(res)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %d chunk(s)\n", KeyStyle.Render("Summary"), len(res.Entries))
	for _, id := range ids {
		fmt.Fprintf(w, "  %q %d\n", id.String(), counts[id])
	}

	if res.Truncated {
		fmt.Fprintf(w, "\n%s %s\n", warningIcon, WarningStyle.Render(fmt.Sprintf("chunk at offset %d is truncated; listing stopped", res.TruncatedAt)))
	}
	if res.TrailingBytes > 0 {
		fmt.Fprintf(w, "\n%s %s\n", warningIcon, WarningStyle.Render(fmt.Sprintf("%d trailing byte(s) ignored", res.TrailingBytes)))
	}
}

func writeTOMLReport(w io.Writer, path string, res *iffscan.Result) error {
	ids, counts := sortedCounts(res)

	report := inspectReport{
		File:          path,
		ByteOrder:     res.ByteOrder.String(),
		Truncated:     res.Truncated,
		TruncatedAt:   res.TruncatedAt,
		TrailingBytes: res.TrailingBytes,
		Summary:       make(map[string]int, len(ids)),
		Chunks:        make([]chunkReport, 0, len(res.Entries)),
	}
	for _, id := range ids {
		report.Summary[id.String()] = counts[id]
	}
	for _, e := range res.Entries {
		cr := chunkReport{
			Offset:   e.Offset,
			ID:       e.Chunk.ID(),
			Size:     e.Chunk.Len(),
			Reserved: e.Reserved,
		}
		if e.HasGroupType {
			cr.GroupType = e.GroupType.String()
		}
		report.Chunks = append(report.Chunks, cr)
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

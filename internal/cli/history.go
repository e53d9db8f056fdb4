package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/decor/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB string
}

// ExportDetail is the JSON payload for a single journaled export.
type ExportDetail struct {
	Export store.Export        `json:"export"`
	Blocks []store.ExportBlock `json:"blocks"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [export-id]",
		Short: "Show journaled exports",
		Long: `List the exports recorded in a journal, oldest first, or show the blocks
of one export.

Examples:
  decor history --db journal.db
  decor history --db journal.db 0190a5c4-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(opts, args[0], cmd)
			}
			return runHistoryList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "journal database path (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func openJournal(formatter *OutputFormatter, path string) (*store.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("journal not found: %s", path), nil)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}
	return st, nil
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openJournal(formatter, opts.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	exports, err := st.ReadExports(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}

	if formatter.Format == "json" {
		if exports == nil {
			exports = []store.Export{}
		}
		return formatter.Success(exports)
	}

	w := formatter.Writer
	if len(exports) == 0 {
		fmt.Fprintln(w, "No exports recorded.")
		return nil
	}

	var totalBytes uint64
	for _, e := range exports {
		fmt.Fprintf(w, "%4d  %s  %s  %s block(s)  %s  decorators %s\n",
			e.Seq, e.ID, e.Source,
			humanize.Comma(int64(e.BlockCount)),
			humanize.Bytes(uint64(e.MarkupBytes)),
			shortDigest(e.DecoratorsDigest))
		totalBytes += uint64(e.MarkupBytes)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s export(s), %s of markup\n", humanize.Comma(int64(len(exports))), humanize.Bytes(totalBytes))
	return nil
}

func runHistoryShow(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openJournal(formatter, opts.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	exp, err := st.ReadExport(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("export not found: %s", id), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}

	blocks, err := st.ReadExportBlocks(cmd.Context(), id)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}

	if formatter.Format == "json" {
		if blocks == nil {
			blocks = []store.ExportBlock{}
		}
		return formatter.Success(ExportDetail{Export: exp, Blocks: blocks})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Export %s (seq %d)\n", exp.ID, exp.Seq)
	fmt.Fprintf(w, "  source:     %s\n", exp.Source)
	fmt.Fprintf(w, "  decorators: %s\n", exp.DecoratorsDigest)
	fmt.Fprintf(w, "  markup:     %s (%s)\n", exp.MarkupDigest, humanize.Bytes(uint64(exp.MarkupBytes)))
	fmt.Fprintln(w)
	for _, b := range blocks {
		marker := " "
		if b.Decorated {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3d  %-8s %-22s %s\n", marker, b.Index, b.Key, b.Type, b.Markup)
	}
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/roach88/decor/internal/block"
	"github.com/roach88/decor/internal/compiler"
	"github.com/roach88/decor/internal/decorator"
	"github.com/roach88/decor/internal/dom"
	"github.com/roach88/decor/internal/exporter"
	"github.com/roach88/decor/internal/store"
)

func init() {
	pp.ColoringEnabled = false
}

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Config string // CUE decorator configuration (defaults to the built-in set)
	DB     string // journal database; empty disables journaling
	Output string // markup output file; empty writes to stdout

	// IDs generates journal export IDs. Defaults to UUIDv7.
	IDs store.IDGenerator
}

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	ExportID string                 `json:"export_id,omitempty"`
	Markup   string                 `json:"markup"`
	Blocks   []exporter.BlockResult `json:"blocks"`
}

// treeBlock is one entry of the --format tree dump.
type treeBlock struct {
	Key  string
	Type string
	Node dom.Node
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	return newRenderCommand(&RenderOptions{RootOptions: rootOpts})
}

func newRenderCommand(opts *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <content.json>",
		Short: "Render a content state to markup",
		Long: `Render every block of a content state JSON file through the decorator list.

Without --config the built-in decorators are used: linkify, hashtag, br.
With --db the export is appended to the journal.

Output formats:
  text - the markup
  json - markup plus per-block results
  tree - the node tree of each block

Examples:
  decor render content.json
  decor render content.json --config decorators.cue --output out.html
  decor render content.json --db journal.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "CUE decorator configuration file")
	cmd.Flags().StringVar(&opts.DB, "db", "", "journal database path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write markup to file instead of stdout")

	return cmd
}

func runRender(opts *RenderOptions, contentPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return configFailure(formatter, err)
	}
	formatter.VerboseLog("Using %d decorator(s)", len(cfg.Decorators))

	cs, err := loadContent(contentPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("content file not found: %s", contentPath), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeDecode, err.Error(), nil)
	}
	formatter.VerboseLog("Decoded %d block(s) from %s", len(cs.Blocks), contentPath)

	exp := exporter.New(cfg.ExporterOptions())
	out, err := exp.Export(cmd.Context(), cs)
	if err != nil {
		return formatter.Fail(ExitCommandError, renderErrorCode(err), err.Error(), nil)
	}

	var exportID string
	if opts.DB != "" {
		exportID, err = journalExport(cmd, opts, contentPath, exp, cs, out)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
		}
		formatter.VerboseLog("Journaled export %s", exportID)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(out.Markup), 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write output: %v", err), nil)
		}
		formatter.VerboseLog("Wrote %d byte(s) to %s", len(out.Markup), opts.Output)
	}

	switch opts.Format {
	case "json":
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{
			Status:   "ok",
			Data:     RenderResult{ExportID: exportID, Markup: out.Markup, Blocks: out.Blocks},
			ExportID: exportID,
		})
	case "tree":
		trees, err := renderTrees(exp, cs)
		if err != nil {
			return formatter.Fail(ExitCommandError, renderErrorCode(err), err.Error(), nil)
		}
		fmt.Fprint(formatter.Writer, pp.Sprintln(trees))
		return nil
	default:
		if opts.Output == "" {
			fmt.Fprintln(formatter.Writer, out.Markup)
		}
		return nil
	}
}

// loadConfig compiles the configuration at path, or returns the default
// configuration when path is empty.
func loadConfig(path string) (*compiler.Config, error) {
	if path == "" {
		return compiler.DefaultConfig(), nil
	}
	return compiler.LoadConfig(path)
}

func loadContent(path string) (*block.ContentState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cs, err := block.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}

func journalExport(cmd *cobra.Command, opts *RenderOptions, source string, exp *exporter.Exporter, cs *block.ContentState, out *exporter.Output) (string, error) {
	st, err := store.Open(opts.DB)
	if err != nil {
		return "", fmt.Errorf("failed to open journal: %w", err)
	}
	defer st.Close()

	fingerprint, err := exp.Fingerprint()
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint decorators: %w", err)
	}

	ids := opts.IDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}

	texts := make([]string, len(cs.Blocks))
	for i, b := range cs.Blocks {
		texts[i] = b.Text
	}

	record, blocks := store.NewRecord(ids.Generate(), source, fingerprint, out, texts)
	stored, _, err := st.WriteExport(cmd.Context(), record, blocks)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

func renderTrees(exp *exporter.Exporter, cs *block.ContentState) ([]treeBlock, error) {
	trees := make([]treeBlock, 0, len(cs.Blocks))
	for _, b := range cs.Blocks {
		node, _, err := exp.RenderBlock(b, cs.Blocks)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", b.Key, err)
		}
		trees = append(trees, treeBlock{Key: b.Key, Type: b.Type, Node: node})
	}
	return trees, nil
}

// configFailure reports a configuration error with its source position.
func configFailure(formatter *OutputFormatter, err error) error {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		details := map[string]any{"field": compileErr.Field}
		if compileErr.Pos.IsValid() {
			details["file"] = compileErr.Pos.Filename()
			details["line"] = compileErr.Pos.Line()
		}
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), details)
	}
	if errors.Is(err, os.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
	}
	return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
}

// renderErrorCode maps decorator errors to CLI error codes.
func renderErrorCode(err error) string {
	switch {
	case decorator.IsMalformed(err):
		return ErrCodeMalformed
	case decorator.IsNonAdvancing(err):
		return ErrCodeNonAdvancing
	case decorator.IsRendererFailure(err):
		return ErrCodeRenderer
	default:
		return ErrCodeRender
	}
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/decor/internal/compiler"
	"github.com/roach88/decor/internal/exporter"
)

// DecoratorInfo describes one compiled decorator.
type DecoratorInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Pattern string `json:"pattern"`
}

// ValidationError is one configuration problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Decorators  []DecoratorInfo   `json:"decorators,omitempty"`
	Normalize   bool              `json:"normalize,omitempty"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Errors      []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a decorator configuration",
		Long: `Compile a CUE decorator configuration and list the decorators it defines,
in priority order.

Exit codes:
  0 - Configuration valid
  1 - Configuration invalid
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("config file not found: %s", path), nil)
	}

	cfg, err := compiler.LoadConfig(path)
	if err != nil {
		return outputValidationError(formatter, err)
	}

	fingerprint, err := exporter.New(cfg.ExporterOptions()).Fingerprint()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	result := ValidationResult{
		Valid:       true,
		Decorators:  make([]DecoratorInfo, len(cfg.Decorators)),
		Normalize:   cfg.Normalize,
		Fingerprint: fingerprint,
	}
	for i, d := range cfg.Decorators {
		result.Decorators[i] = DecoratorInfo{Name: d.Name, Kind: d.Kind.String(), Pattern: d.Strategy.String()}
		formatter.VerboseLog("decorators[%d]: %s %s", i, d.Name, d.Strategy)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Configuration valid (%d decorator(s))\n", len(result.Decorators))
	for i, d := range result.Decorators {
		fmt.Fprintf(w, "  %d. %s [%s] %s\n", i+1, d.Name, d.Kind, d.Pattern)
	}
	return nil
}

// outputValidationError reports a compile error. Configuration problems
// exit 1; anything else is a command error.
func outputValidationError(formatter *OutputFormatter, err error) error {
	var compileErr *compiler.CompileError
	if !errors.As(err, &compileErr) {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	verr := ValidationError{Field: compileErr.Field, Message: compileErr.Message}
	if compileErr.Pos.IsValid() {
		verr.Line = compileErr.Pos.Line()
		verr.Column = compileErr.Pos.Column()
	}

	if formatter.Format == "json" {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: []ValidationError{verr}},
			Error:  &CLIError{Code: ErrCodeConfig, Message: err.Error()},
		}); err != nil {
			return err
		}
		return markReported(WrapExitError(ExitFailure, "validation failed", err))
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	if verr.Line > 0 {
		fmt.Fprintf(w, "line %d\n", verr.Line)
	}
	fmt.Fprintf(w, "  %s: %s: %s\n", ErrCodeConfig, verr.Field, verr.Message)

	return markReported(WrapExitError(ExitFailure, "validation failed", err))
}

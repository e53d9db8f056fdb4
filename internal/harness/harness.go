package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/decor/internal/compiler"
	"github.com/roach88/decor/internal/composite"
	"github.com/roach88/decor/internal/decorator"
	"github.com/roach88/decor/internal/exporter"
	"github.com/roach88/decor/internal/store"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Resolve decorators (CUE config or built-in names)
//  2. Export the scenario document
//  3. Record the export in a fresh in-memory journal and read it back
//  4. Evaluate assertions
//
// Run returns an error when the scenario cannot execute (bad config,
// unknown decorator, export failure). Assertion failures are reported in
// the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	opts, err := scenarioOptions(scenario)
	if err != nil {
		return nil, err
	}

	exp := exporter.New(opts)
	cs := scenario.ContentState()

	out, err := exp.Export(ctx, cs)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	gates := make([]bool, len(cs.Blocks))
	for i, b := range cs.Blocks {
		gates[i] = composite.ShouldRenderDecorators(opts.Decorators, b.Text)
	}
	result := NewResult(out, gates)

	if err := recordExport(ctx, scenario, exp, out, result); err != nil {
		return nil, err
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	slog.Debug("scenario complete", "name", scenario.Name, "pass", result.Pass)
	return result, nil
}

// ExportID is the fixed journal ID for a scenario's export.
func ExportID(scenario *Scenario) string {
	return "scenario:" + scenario.Name
}

func scenarioOptions(scenario *Scenario) (exporter.Options, error) {
	if scenario.Config != "" {
		cfg, err := compiler.LoadConfig(scenario.Config)
		if err != nil {
			return exporter.Options{}, fmt.Errorf("failed to load config: %w", err)
		}
		opts := cfg.ExporterOptions()
		opts.Normalize = opts.Normalize || scenario.Normalize
		return opts, nil
	}

	decorators := make([]decorator.Decorator, 0, len(scenario.Decorators))
	for _, name := range scenario.Decorators {
		d, ok := decorator.Builtin(name)
		if !ok {
			return exporter.Options{}, fmt.Errorf("unknown decorator %q (built-ins: %v)", name, decorator.BuiltinNames())
		}
		decorators = append(decorators, d)
	}
	return exporter.Options{Decorators: decorators, Normalize: scenario.Normalize}, nil
}

// recordExport writes the export to an in-memory journal and checks that
// the journal returns what was written.
func recordExport(ctx context.Context, scenario *Scenario, exp *exporter.Exporter, out *exporter.Output, result *Result) error {
	st, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	fingerprint, err := exp.Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to fingerprint decorators: %w", err)
	}

	texts := make([]string, len(scenario.Blocks))
	for i, b := range scenario.Blocks {
		texts[i] = b.Text
	}

	gen := store.NewFixedGenerator(ExportID(scenario))
	record, blocks := store.NewRecord(gen.Generate(), scenario.Name, fingerprint, out, texts)

	stored, _, err := st.WriteExport(ctx, record, blocks)
	if err != nil {
		return fmt.Errorf("failed to journal export: %w", err)
	}
	result.Export = stored

	journaled, err := st.ReadExportBlocks(ctx, stored.ID)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(journaled) != len(out.Blocks) {
		result.AddError(fmt.Sprintf("journal: expected %d blocks, got %d", len(out.Blocks), len(journaled)))
		return nil
	}
	for i, b := range journaled {
		if b.Markup != out.Blocks[i].Markup {
			result.AddError(fmt.Sprintf("journal: block %q markup differs from export", b.Key))
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ic10lsp/internal/trace"
)

// setupTracing builds the tracer selected by --trace, --trace-format and
// --trace-output and stores it in the command context. Stop closes it.
func setupTracing(cmd *cobra.Command) (stop func(), err error) {
	flags := cmd.Root().PersistentFlags()
	var cfg trace.Config
	var raw [3]string
	for i, name := range [...]string{"trace", "trace-format", "trace-output"} {
		if raw[i], err = flags.GetString(name); err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
	}
	if cfg.Level, err = trace.ParseLevel(raw[0]); err != nil {
		return nil, fmt.Errorf("--trace: %w", err)
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	if cfg.Format, err = trace.ParseFormat(raw[1]); err != nil {
		return nil, fmt.Errorf("--trace-format: %w", err)
	}
	cfg.OutputPath = raw[2]

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

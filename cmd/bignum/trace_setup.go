package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bignum/internal/trace"
)

// setupTracing builds the tracer from the trace flags, attaches it and a
// command-level span to the command context, and returns the cleanup.
// configLevel applies when --trace-level is not given.
func setupTracing(cmd *cobra.Command, configLevel string) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	output, _ := flags.GetString("trace")
	levelStr, _ := flags.GetString("trace-level")
	modeStr, _ := flags.GetString("trace-mode")
	ringSize, _ := flags.GetInt("trace-ring-size")
	heartbeatInterval, _ := flags.GetDuration("trace-heartbeat")

	if levelStr == "" {
		levelStr = configLevel
	}
	if levelStr == "" {
		levelStr = "off"
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace alone turns on phase tracing.
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	ctx, span := trace.Start(ctx, trace.ScopeCommand, cmd.CommandPath())
	cmd.SetContext(ctx)
	heartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	errOut := cmd.ErrOrStderr()
	return func() {
		heartbeat.Stop()
		span.End("")
		// Ring-only tracing prints its buffer once the command is over.
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(errOut, trace.FormatText); err != nil {
				fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}, nil
}

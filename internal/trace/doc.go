// Package trace records what the bignum tool is doing while it runs: one
// span per command, per prime-search batch and per search job, plus point
// events for individual candidates at the most verbose level.
//
// Enable it from the command line:
//
//	bignum prime gen --bits 1024 --count 4 --trace=- --trace-level=detail
//
// Tracers are carried through a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeJob, "prime", parentID)
//	defer span.End("")
//
// Stream tracers write each event as it happens (text or NDJSON); ring
// tracers keep the most recent events in memory for dumping after a failure.
package trace

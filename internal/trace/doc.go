// Package trace records analysis spans for diagnosing slow documents.
//
// A tracer travels in the context. Spans started from that context nest
// under the span the context already carries:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Levels select scopes:
//
//   - off: nothing
//   - error: only spans that ended with Fail
//   - phase: LSP requests, CLI batches and documents
//   - detail: adds the analysis passes
//   - debug: adds point events
//
// Output is one line per event, as text or NDJSON.
package trace

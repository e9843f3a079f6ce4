// Package trace provides the operational tracing of frtypo runs.
//
// Tracing shows where a run spends its time and why a rule chose not to
// rewrite something (ambiguous diacritics, skipped spans). Findings are not
// traced: they are records in package diag.
//
// # Usage
//
//	frtypo check --trace=- --trace-level=detail docs/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only rule failures
//   - LevelPhase: run and phase boundaries (load, classify, rules, write)
//   - LevelDetail: one span per document
//   - LevelDebug: everything, including per-rule notes
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeDocument, path, parentID)
//	defer span.End("")
package trace

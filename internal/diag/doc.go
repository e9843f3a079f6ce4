// Package diag defines the record model shared by the classifier, the rules
// and the pipeline.
//
// # Data model
//
// Record is the central type. It contains:
//
//   - Severity – fix, warn or error (severity.go).
//   - Code – the rule category or a structural code (codes.go). Rule codes
//     double as execution priorities, so the enumeration order is the
//     correction order.
//   - Primary – byte span in the document as it stood when the producer ran.
//   - Pos – the 1-based line/column of Primary.Start.
//   - Before / After – the exact text replaced and its replacement. Structural
//     records carry the offending marker in Before and leave After empty.
//
// Rules never add or remove line breaks, so Pos.Line also points into the
// original document.
//
// # Emitting records
//
// Producers emit through a Reporter; BagReporter stores them in a Bag. The
// package does no formatting or IO: rendering lives in internal/diagfmt and
// aggregation in internal/report.
package diag

// Package diag defines the diagnostic model shared by both analysis phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture rule
//     violations produced by the per-declaration analyzers and the
//     end-of-program pass.
//   - Offer light-weight utilities (Reporter, Bag) that let analyzers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the driver or CLI can
//     apply.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas synthesis and application of fixes lives in internal/fix and the
// driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric rule identifier (see codes.go) with a stable
//     string form that is part of the external contract.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing at the declaration.
//   - Notes – optional secondary spans/messages for additional context. The
//     fix synthesizer relies on notes to locate secondary edit targets (e.g.
//     the undecorated structure a parameter refers to).
//   - Fixes – optional Fix records describing how to address the problem.
//
// Diagnostics are never mutated once emitted; the Bag only appends, sorts and
// deduplicates.
//
// # Emitting diagnostics
//
// Analyzers use a diag.Reporter to decouple emission from storage. They
// construct a ReportBuilder via NewReportBuilder (or the helper functions
// ReportError/ReportWarning/ReportInfo) and chain WithNote / WithFixSuggestion
// before calling Emit. BagReporter aggregates diagnostics into a Bag, which
// supports sorting, deduplication and merging.
//
// Keep the data model deterministic: any new field must be value-typed and
// side-effect free so the CLI can serialise diagnostics for caching.
package diag

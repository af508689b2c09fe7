package diag

import (
	"addinlint/internal/source"
)

// Note attaches secondary context to a diagnostic. The fix synthesizer also
// uses notes to find edit targets outside the primary span.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a single replacement of the text covered by Span with NewText.
// OldText, when non-empty, is a guard: the fix engine refuses to apply the
// edit if the file no longer contains that exact text at the span.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind is a coarse classification of a fix suggestion.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactorRewrite
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactorRewrite:
		return "rewrite"
	}
	return "unknown"
}

// FixApplicability encodes how confidently a fix can be applied without
// human review.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix represents one automated correction. Fixes are data-only: the engine in
// internal/fix validates and applies the edits, the synthesizer never touches
// source text directly.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

// Diagnostic is one reported rule violation. Produced, never mutated.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

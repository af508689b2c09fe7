package rules

import (
	"strings"
	"unicode"

	"addinlint/internal/diag"
	"addinlint/internal/source"
)

// maxNameLength is the interop contract's limit on externally-visible names.
const maxNameLength = 50

// checkName runs the three independent, non-short-circuiting name checks
// against an externally-visible name, reporting every violation at span.
// All three can fire on one name.
func checkName(r diag.Reporter, name string, span source.Span) {
	if span.Zero() || name == "" {
		return
	}

	runes := []rune(name)

	if len(runes) > maxNameLength {
		diag.Report(r, diag.NameTooLong, span,
			"name '"+name+"' is longer than 50 characters").Emit()
	}

	if unicode.IsDigit(runes[0]) {
		diag.Report(r, diag.NameLeadingDigit, span,
			"name '"+name+"' begins with a digit").Emit()
	}

	if bad := unsupportedChars(runes); bad != "" {
		diag.Report(r, diag.NameUnsupportedChars, span,
			"name '"+name+"' contains unsupported characters: "+bad).Emit()
	}
}

// unsupportedChars returns the de-duplicated, order-preserving, comma-joined
// list of characters outside [letter, digit, underscore], or "" when the
// name is clean.
func unsupportedChars(runes []rune) string {
	var offending []rune
	seen := make(map[rune]struct{})
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		offending = append(offending, r)
	}
	if len(offending) == 0 {
		return ""
	}
	parts := make([]string, len(offending))
	for i, r := range offending {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

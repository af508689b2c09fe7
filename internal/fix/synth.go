package fix

import (
	"fmt"
	"strings"

	"addinlint/internal/diag"
	"addinlint/internal/interop"
	"addinlint/internal/source"
	"addinlint/internal/symbol"
)

// Synthesize derives an automated correction for one diagnostic, resolving
// the violating symbol back through the program. It fails closed: any
// ambiguity (missing spans, unresolvable symbols, a rename that would empty
// the name) yields no fix rather than a speculative edit.
func Synthesize(prog *symbol.Program, d diag.Diagnostic) (diag.Fix, bool) {
	if prog == nil || d.Primary.Zero() {
		return diag.Fix{}, false
	}

	switch d.Code {
	case diag.StructNotPublic, diag.IfaceNotPublic, diag.ClassImplNotPublic:
		return synthesizeDeclPublic(prog, d)
	case diag.StructFieldNotPublic, diag.StructIgnoredNotPublic:
		return synthesizeMemberPublic(prog, d)
	case diag.NameLeadingUnderscore:
		return synthesizeUnderscoreRename(prog, d)
	case diag.MethodUndecoratedStruct:
		return synthesizeStructureMarker(prog, d)
	case diag.StructTypeMapping:
		return synthesizeTagAlignedType(prog, d)
	}
	// Cardinality and default-value violations need a human decision.
	return diag.Fix{}, false
}

// Attach runs the synthesizer over every diagnostic in place, appending the
// derived fix to each one that has a safe correction.
func Attach(prog *symbol.Program, diagnostics []diag.Diagnostic) {
	for i := range diagnostics {
		if f, ok := Synthesize(prog, diagnostics[i]); ok {
			diagnostics[i].Fixes = append(diagnostics[i].Fixes, f)
		}
	}
}

func synthesizeDeclPublic(prog *symbol.Program, d diag.Diagnostic) (diag.Fix, bool) {
	decl, ok := prog.DeclAt(d.Primary)
	if !ok {
		return diag.Fix{}, false
	}
	return accessibilityFix(
		fmt.Sprintf("Make '%s' public", decl.Name),
		fixID("make-public", d.Primary),
		decl.Access, decl.AccessSpan, decl.Span,
	)
}

func synthesizeMemberPublic(prog *symbol.Program, d diag.Diagnostic) (diag.Fix, bool) {
	_, member, ok := prog.MemberAt(d.Primary)
	if !ok {
		return diag.Fix{}, false
	}
	return accessibilityFix(
		fmt.Sprintf("Make '%s' public", member.Name),
		fixID("make-public", d.Primary),
		member.Access, member.AccessSpan, member.Span,
	)
}

// accessibilityFix replaces the accessibility keyword with "public", or
// inserts one when the accessibility is implicit. The current keyword guards
// the replacement so a stale span cannot clobber unrelated text.
func accessibilityFix(title, id string, access symbol.Access, accessSpan, declSpan source.Span) (diag.Fix, bool) {
	if !accessSpan.Zero() {
		keyword := access.Keyword()
		if keyword == "" || keyword == "public" {
			return diag.Fix{}, false
		}
		return ReplaceSpan(title, accessSpan, "public", keyword,
			WithID(id), Preferred()), true
	}
	if declSpan.Zero() {
		return diag.Fix{}, false
	}
	at := source.Span{File: declSpan.File, Start: declSpan.Start, End: declSpan.Start}
	return InsertText(title, at, "public ", "", WithID(id), Preferred()), true
}

// synthesizeUnderscoreRename strips the leading underscores from a method
// name. When the flagged method sits on the add-in interface, its implementing
// classes are renamed in the same fix so the program still compiles.
func synthesizeUnderscoreRename(prog *symbol.Program, d diag.Diagnostic) (diag.Fix, bool) {
	decl, method, ok := prog.MethodAt(d.Primary)
	if !ok {
		return diag.Fix{}, false
	}
	renamed := strings.TrimLeft(method.Name, "_")
	if renamed == "" || method.NameSpan.Zero() {
		return diag.Fix{}, false
	}

	f := ReplaceSpan(
		fmt.Sprintf("Rename '%s' to '%s'", method.Name, renamed),
		method.NameSpan, renamed, method.Name,
		WithID(fixID("strip-underscore", d.Primary)),
		WithKind(diag.FixKindRefactorRewrite),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
	)

	if decl.Kind == symbol.DeclInterface {
		for _, impl := range prog.ClassesImplementing(decl.Name) {
			for i := range impl.Methods {
				m := &impl.Methods[i]
				if m.Name != method.Name || m.NameSpan.Zero() {
					continue
				}
				f.Edits = append(f.Edits, diag.TextEdit{
					Span:    m.NameSpan,
					NewText: renamed,
					OldText: m.Name,
				})
			}
		}
	}
	return f, true
}

// synthesizeStructureMarker inserts the structure marker above the structure
// named by the diagnostic's note.
func synthesizeStructureMarker(prog *symbol.Program, d diag.Diagnostic) (diag.Fix, bool) {
	var target source.Span
	for _, n := range d.Notes {
		if !n.Span.Zero() {
			target = n.Span
			break
		}
	}
	if target.Zero() || prog.Files == nil {
		return diag.Fix{}, false
	}

	decl, ok := prog.DeclAt(target)
	if !ok || decl.Kind != symbol.DeclStruct || decl.Span.Zero() {
		return diag.Fix{}, false
	}

	file := prog.Files.Get(decl.Span.File)
	if file == nil {
		return diag.Fix{}, false
	}
	lineStart := file.LineStart(decl.Span.Start)
	at := source.Span{File: decl.Span.File, Start: lineStart, End: lineStart}

	return InsertText(
		fmt.Sprintf("Mark '%s' with %s", decl.Name, symbol.AnnStructMarker.MarkerText()),
		at, symbol.AnnStructMarker.MarkerText()+"\n", "",
		WithID(fixID("add-structure-marker", at)),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
	), true
}

// synthesizeTagAlignedType rewrites the member's declared type to the one its
// type tag requires.
func synthesizeTagAlignedType(prog *symbol.Program, d diag.Diagnostic) (diag.Fix, bool) {
	_, member, ok := prog.MemberAt(d.Primary)
	if !ok || member.TypeSpan.Zero() {
		return diag.Fix{}, false
	}
	ann, ok := member.Annotations.Get(symbol.AnnFieldMarker)
	if !ok {
		return diag.Fix{}, false
	}
	accepted, ok := interop.ParseTypeTag(ann.TypeTag).AcceptedHostType()
	if !ok {
		return diag.Fix{}, false
	}

	guard := ""
	if prog.Files != nil {
		guard = prog.Files.Text(member.TypeSpan)
	}
	if guard == "" {
		return diag.Fix{}, false
	}

	return ReplaceSpan(
		fmt.Sprintf("Change type of '%s' to '%s'", member.Name, accepted),
		member.TypeSpan, accepted, guard,
		WithID(fixID("align-type-with-tag", d.Primary)),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
	), true
}

func fixID(kind string, sp source.Span) string {
	return fmt.Sprintf("%s-%d-%d", kind, sp.File, sp.Start)
}

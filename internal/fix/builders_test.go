package fix

import (
	"testing"

	"addinlint/internal/diag"
	"addinlint/internal/source"
)

func TestInsertTextDefaults(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("decl.cs", []byte("struct Payload {}"))

	span := source.Span{File: fileID, Start: 0, End: 0}
	f := InsertText("insert marker", span, "[AddInStructure]\n", "")

	if f.Kind != diag.FixKindQuickFix {
		t.Fatalf("default Kind = %v, want quickfix", f.Kind)
	}
	if f.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("default Applicability = %v, want always-safe", f.Applicability)
	}
	if len(f.Edits) != 1 || f.Edits[0].NewText != "[AddInStructure]\n" {
		t.Fatalf("unexpected edits: %+v", f.Edits)
	}
}

func TestReplaceSpanKeepsGuard(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("decl.cs", []byte("internal struct Payload {}"))

	span := source.Span{File: fileID, Start: 0, End: 8}
	f := ReplaceSpan("make public", span, "public", "internal")

	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(f.Edits))
	}
	if f.Edits[0].NewText != "public" || f.Edits[0].OldText != "internal" {
		t.Fatalf("unexpected edit: %+v", f.Edits[0])
	}
}

func TestDeleteSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("decl.cs", []byte("_Run"))

	span := source.Span{File: fileID, Start: 0, End: 1}
	f := DeleteSpan("strip underscore", span, "_")

	if len(f.Edits) != 1 || f.Edits[0].NewText != "" || f.Edits[0].OldText != "_" {
		t.Fatalf("unexpected edit: %+v", f.Edits)
	}
}

func TestOptionsCompose(t *testing.T) {
	span := source.Span{Start: 0, End: 0}
	var nilOpt Option

	f := InsertText("composed", span, "public ", "",
		nilOpt,
		Preferred(),
		WithID("custom-id"),
		WithKind(diag.FixKindRefactorRewrite),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
		WithEdit(diag.TextEdit{Span: source.Span{Start: 5, End: 5}, NewText: "x"}),
	)

	if !f.IsPreferred {
		t.Fatalf("Preferred not applied")
	}
	if f.ID != "custom-id" {
		t.Fatalf("ID = %q", f.ID)
	}
	if f.Kind != diag.FixKindRefactorRewrite {
		t.Fatalf("Kind = %v", f.Kind)
	}
	if f.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Fatalf("Applicability = %v", f.Applicability)
	}
	if len(f.Edits) != 2 {
		t.Fatalf("WithEdit not applied: %+v", f.Edits)
	}
}

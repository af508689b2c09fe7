package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"addinlint/internal/diag"
	"addinlint/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()

	fs := source.NewFileSet()
	content := []byte("internal interface ICalc {\n    void Run();\n}\n")
	fileID := fs.AddVirtual("/home/user/project/src/Calc.cs", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.NewError(
		diag.IfaceNotPublic,
		source.Span{File: fileID, Start: 19, End: 24},
		"interface 'ICalc' must be public",
	)
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 8}, "declared internal here")
	d = d.WithFixSuggestion(diag.Fix{
		ID:    "make-public-0-19",
		Title: "Make 'ICalc' public",
		Edits: []diag.TextEdit{{
			Span:    source.Span{File: fileID, Start: 0, End: 8},
			NewText: "public",
			OldText: "internal",
		}},
	})
	bag.Add(d)
	return bag, fs
}

func TestPrettyHeaderLine(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, "Calc.cs:1:20: ERROR IFC3002: interface 'ICalc' must be public") {
		t.Fatalf("header line missing:\n%s", out)
	}
	// The excerpt underlines the identifier.
	if !strings.Contains(out, "internal interface ICalc {") {
		t.Fatalf("source excerpt missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Fatalf("underline missing:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})

	out := buf.String()
	if !strings.Contains(out, "note: declared internal here (Calc.cs:1:1)") {
		t.Fatalf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "fix: Make 'ICalc' public [make-public-0-19]") {
		t.Fatalf("fix line missing:\n%s", out)
	}
}

func TestPrettyPathModes(t *testing.T) {
	bag, fs := sampleBag(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"basename", PathModeBasename, "Calc.cs:1:20"},
		{"relative", PathModeRelative, "src/Calc.cs:1:20"},
		{"absolute", PathModeAbsolute, "/home/user/project/src/Calc.cs:1:20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Fatalf("want %q in output:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyWithoutColorHasNoEscapes(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("escape sequences in colorless output:\n%q", buf.String())
	}
}

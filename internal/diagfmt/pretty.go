package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"addinlint/internal/diag"
	"addinlint/internal/source"
)

// Pretty renders diagnostics for humans. It walks bag.Items() in order (the
// caller is expected to Sort() first) and prints for each one:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline covering the span, then
// notes and fix titles when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.printDiagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

func (p *prettyPrinter) location(span source.Span) string {
	f := p.fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}

	var path string
	switch p.opts.PathMode {
	case PathModeAbsolute:
		path = f.FormatPath("absolute", "")
	case PathModeRelative:
		path = f.FormatPath("relative", p.fs.BaseDir())
	case PathModeBasename:
		path = f.FormatPath("basename", "")
	default:
		path = f.FormatPath("auto", "")
	}

	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func (p *prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	sevColor := severityColor(d.Severity)

	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.paint(color.New(color.Bold), p.location(d.Primary)),
		p.paint(sevColor, d.Severity.String()),
		p.paint(sevColor, d.Code.ID()),
		d.Message,
	)

	p.printExcerpt(d.Primary, sevColor)

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(p.w, "  %s %s (%s)\n",
				p.paint(color.New(color.FgBlue, color.Bold), "note:"),
				n.Msg,
				p.location(n.Span),
			)
		}
	}

	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			label := "fix:"
			if f.IsPreferred {
				label = "fix (preferred):"
			}
			fmt.Fprintf(p.w, "  %s %s [%s]\n",
				p.paint(color.New(color.FgGreen, color.Bold), label),
				f.Title,
				f.ID,
			)
		}
	}
}

// printExcerpt prints the first source line covered by the span with a
// ^~~~ underline beneath the spanned columns. Virtual or empty files are
// silently skipped.
func (p *prettyPrinter) printExcerpt(span source.Span, sevColor *color.Color) {
	f := p.fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}

	start, end := p.fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(p.w, "  %s\n", strings.TrimRight(line, "\n"))

	runes := []rune(line)
	startCol := int(start.Col)
	if startCol < 1 || startCol > len(runes)+1 {
		return
	}
	endCol := int(end.Col)
	if end.Line != start.Line || endCol <= startCol {
		endCol = startCol + 1
	}
	if endCol > len(runes)+1 {
		endCol = len(runes) + 1
	}

	// Columns are rune-based, the terminal cares about display cells: pad
	// with the display width of the prefix, underline with the width of the
	// spanned text.
	pad := runewidth.StringWidth(string(runes[:startCol-1]))
	width := runewidth.StringWidth(string(runes[startCol-1 : endCol-1]))
	if width < 1 {
		width = 1
	}

	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, "  %s%s\n", strings.Repeat(" ", pad), p.paint(sevColor, underline))
}

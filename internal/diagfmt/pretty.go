package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"detemplate/internal/diag"
	"detemplate/internal/source"
)

// Pretty renders diagnostics for a human terminal: one
// "<path>:<line>:<col>: <SEV> <CODE>: <message>" line per diagnostic,
// optionally followed by the source line with a caret under the span,
// its notes, and its fixes. Callers should bag.Sort() beforehand for a
// stable order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		writeDiagnosticLine(w, d.Severity, d.Code, d.Primary, d.Message, fs, opts)

		if opts.Context > 0 {
			writeSourceContext(w, fs, d.Primary, opts)
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeNoteLine(w, note, fs, opts)
			}
		}

		if opts.ShowFixes {
			for i, fix := range d.Fixes {
				writeFixLines(w, i+1, fix, fs, opts)
			}
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	case diag.SevDebug:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

func writeDiagnosticLine(w io.Writer, sev diag.Severity, code diag.Code, span source.Span, msg string, fs *source.FileSet, opts PrettyOpts) {
	path := formatSpanPath(fs, span, opts.PathMode)
	start, _ := fs.Resolve(span)

	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, code.ID(), msg)
}

func writeNoteLine(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	path := formatSpanPath(fs, note.Span, opts.PathMode)
	start, _ := fs.Resolve(note.Span)
	fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", path, start.Line, start.Col, note.Msg)
}

func writeFixLines(w io.Writer, idx int, fix diag.Fix, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "  fix #%d: %s\n", idx, fix.Title)
	for _, edit := range fix.Edits {
		fmt.Fprintf(w, "    apply=%q\n", edit.NewText)
		if opts.ShowPreview {
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "      - %s\n", line)
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "      + %s\n", line)
			}
		}
	}
}

func writeSourceContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", clampWidth(line, opts.Width))

	carets := end.Col - start.Col
	if carets == 0 {
		carets = 1
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", int(start.Col)-1), strings.Repeat("^", int(carets)))
}

func clampWidth(s string, width uint8) string {
	if width == 0 || len(s) <= int(width) {
		return s
	}
	return s[:width]
}

func formatSpanPath(fs *source.FileSet, span source.Span, mode PathMode) string {
	file := fs.Get(span.File)
	if file == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return file.FormatPath("absolute", "")
	case PathModeRelative:
		return file.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return file.FormatPath("basename", "")
	default:
		return file.FormatPath("auto", fs.BaseDir())
	}
}

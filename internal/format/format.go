// Package format pretty-prints serialized HTML using gohtml.
package format

import (
	"regexp"
	"strings"

	"github.com/yosssi/gohtml"
)

// DefaultIndentSize is the indent width used when Options.IndentSize is unset.
const DefaultIndentSize = 2

// gohtmlIndent is the fixed indent width gohtml writes.
const gohtmlIndent = 2

// blankMarker stands in for a preserved blank line while gohtml reflows
// the markup. gohtml keeps comments as their own lines.
const blankMarker = "<!--scrub:blank-->"

// blankLineBetweenTags matches a run of whitespace holding at least one
// empty line between two tags.
var blankLineBetweenTags = regexp.MustCompile(`>[ \t]*\r?\n[ \t]*\r?\n\s*<`)

// verbatimTag matches open and close tags of elements whose text content
// must not be reindented.
var verbatimTag = regexp.MustCompile(`(?i)<(/?)(pre|textarea|script|style)\b`)

// Options controls beautification.
type Options struct {
	// IndentSize is the number of spaces per nesting level.
	IndentSize int

	// PreserveNewlines keeps blank lines that separate tags in the input.
	PreserveNewlines bool

	// IndentEmptyLines pads preserved blank lines to the surrounding indent.
	IndentEmptyLines bool
}

// Beautify formats src with one element per line, indented by nesting depth.
func Beautify(src string, opts Options) string {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}

	if opts.PreserveNewlines {
		src = blankLineBetweenTags.ReplaceAllString(src, ">"+blankMarker+"<")
	}

	return reindent(gohtml.Format(src), opts)
}

// reindent rescales gohtml's two-space indentation to opts.IndentSize and
// turns blank markers back into empty lines. Lines that start inside a
// pre, textarea, script or style element are left as they are.
func reindent(formatted string, opts Options) string {
	lines := strings.Split(formatted, "\n")
	verbatim := ""
	for i, line := range lines {
		inside := verbatim != ""
		verbatim = verbatimAfter(line, verbatim)
		if inside {
			continue
		}

		body := strings.TrimLeft(line, " ")
		lead := len(line) - len(body)
		indent := strings.Repeat(" ", lead/gohtmlIndent*opts.IndentSize+lead%gohtmlIndent)

		if strings.TrimSpace(body) == blankMarker {
			if opts.IndentEmptyLines {
				lines[i] = indent
			} else {
				lines[i] = ""
			}
			continue
		}
		lines[i] = indent + strings.ReplaceAll(body, blankMarker, "")
	}
	return strings.Join(lines, "\n")
}

// verbatimAfter returns the verbatim element still open at the end of line,
// given the one open at its start ("" for none).
func verbatimAfter(line, open string) string {
	for _, m := range verbatimTag.FindAllStringSubmatch(line, -1) {
		name := strings.ToLower(m[2])
		switch {
		case open == "" && m[1] == "":
			open = name
		case open == name && m[1] == "/":
			open = ""
		}
	}
	return open
}

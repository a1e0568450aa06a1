// Package diag renders pipeline errors for people: a one-line summary with
// the phase and location, optionally followed by the offending source line.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/agenthands/nlox/pkg/compiler/lexer"
	"github.com/agenthands/nlox/pkg/engine"
)

// located is implemented by the scan, parse and runtime errors.
type located interface {
	error
	Location() lexer.Location
	Message() string
}

// Reporter writes diagnostics to Out. File, when set, prefixes locations.
type Reporter struct {
	Out     io.Writer
	File    string
	Color   bool
	Excerpt bool
}

func (r *Reporter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Report describes err, which came from running src.
func (r *Reporter) Report(src string, err error) {
	if err == nil {
		return
	}
	bold := r.paint(color.Bold)
	red := r.paint(color.FgRed, color.Bold)

	var loc located
	if !errors.As(err, &loc) {
		fmt.Fprintf(r.Out, "%s %s\n", red.Sprint("error:"), err)
		return
	}

	label := "error"
	if phase := engine.Phase(err); phase != "" {
		label = "error[" + phase + "]"
	}
	at := loc.Location()
	if at.Line == 0 {
		fmt.Fprintf(r.Out, "%s %s\n", red.Sprint(label), loc.Message())
		return
	}
	where := at.String() + ":"
	if r.File != "" {
		where = r.File + ":" + where
	}
	fmt.Fprintf(r.Out, "%s %s %s\n", red.Sprint(label), bold.Sprint(where), loc.Message())

	if r.Excerpt {
		r.excerpt(src, at)
	}
}

// excerpt prints the source line holding at with a caret under the column.
func (r *Reporter) excerpt(src string, at lexer.Location) {
	if at.Offset > len(src) {
		return
	}
	start := strings.LastIndexByte(src[:at.Offset], '\n') + 1
	end := strings.IndexByte(src[start:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += start
	}
	line := strings.TrimRight(src[start:end], "\r")

	var pad strings.Builder
	for i, ch := range []rune(line) {
		if i >= at.Column {
			break
		}
		if ch == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}

	gutter := fmt.Sprintf("%4d | ", at.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	blue := r.paint(color.FgBlue)
	fmt.Fprintf(r.Out, "%s%s\n", blue.Sprint(gutter), line)
	fmt.Fprintf(r.Out, "%s%s%s\n", blue.Sprint(blank), pad.String(), r.paint(color.FgRed).Sprint("^"))
}

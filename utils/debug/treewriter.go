// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultIndent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}, indent: defaultIndent}
}

// WithIndent changes indentation unit, empty unit is ignored.
func (tw *TreeWriter) WithIndent(unit string) *TreeWriter {
	if len(unit) > 0 {
		tw.indent = unit
	}
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "label: value" at depth. Strings are quoted so that empty and
// whitespace values are visible, nothing is written for empty strings when
// omitEmpty is set.
func (tw *TreeWriter) Field(depth int, label string, value any, omitEmpty bool) {
	var text string
	switch v := value.(type) {
	case string:
		if len(v) == 0 && omitEmpty {
			return
		}
		text = strconv.Quote(v)
	case fmt.Stringer:
		text = strconv.Quote(v.String())
	default:
		text = fmt.Sprintf("%v", v)
	}
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(text)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

package ui

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// WrapIndented word-wraps value to fit after a hang-wide prefix on lines of
// width columns and indents continuation lines by hang spaces. A width of
// zero or less leaves value unwrapped.
func WrapIndented(value string, width int, hang int) string {
	if width <= 0 || displayWidth(value)+hang <= width {
		return value
	}
	wrapped := wordwrap.String(value, max(width-hang, 1))
	first, rest, found := strings.Cut(wrapped, "\n")
	if !found {
		return first
	}
	return first + "\n" + indent.String(rest, uint(max(hang, 0)))
}

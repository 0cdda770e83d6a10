// Package format renders values for user-facing messages.
package format

import "strings"

// DefaultWidth is the wrap width used for supported-value listings.
const DefaultWidth = 115

const (
	prefix = "  ["
	indent = "   "
	suffix = "]"
)

// List renders items as a bracketed, comma-separated listing wrapped at
// width. width bounds the displayed line, framing and indentation
// included, unless a single item is too long to fit on its own.
// Continuation lines are indented so that they align with the first item:
//
//	  [nl, af, sq,
//	   am, ar]
func List(items []string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	// every line carries the 3-column prefix and may carry the closing bracket
	budget := max(width-len(prefix)-len(suffix), 1)

	var lines []string
	var line strings.Builder
	for i, item := range items {
		piece := item
		if i < len(items)-1 {
			piece += ","
		}

		if line.Len() > 0 {
			if line.Len()+1+len(piece) > budget {
				lines = append(lines, line.String())
				line.Reset()
			} else {
				line.WriteByte(' ')
			}
		}
		line.WriteString(piece)
	}
	if line.Len() > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}

	return prefix + strings.Join(lines, "\n"+indent) + suffix
}

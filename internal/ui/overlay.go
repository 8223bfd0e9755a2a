package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// overlayCenter draws fg centered over bg in a w×h area. Lines of bg
// outside the dialog stay visible.
func overlayCenter(bg, fg string, w, h int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < h {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	fgW := 0
	for _, ln := range fgLines {
		fgW = max(fgW, xansi.StringWidth(ln))
	}
	fgW = min(fgW, w)
	if fgW <= 0 {
		return bg
	}

	x := max((w-fgW)/2, 0)
	y := max((h-len(fgLines))/2, 0)
	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = spliceLine(bgLines[row], fgLine, x, fgW)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLine replaces columns [x, x+width) of line with fg.
func spliceLine(line, fg string, x, width int) string {
	left := xansi.Cut(line, 0, x)
	if n := xansi.StringWidth(left); n < x {
		left += strings.Repeat(" ", x-n)
	}
	if n := xansi.StringWidth(fg); n < width {
		fg += strings.Repeat(" ", width-n)
	} else if n > width {
		fg = xansi.Cut(fg, 0, width)
	}
	right := xansi.Cut(line, x+width, xansi.StringWidth(line))
	return left + fg + right
}

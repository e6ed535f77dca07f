package viewer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

// minimapWidth returns the minimap column width for a screen width. Narrow
// screens drop the minimap entirely.
func minimapWidth(screenW int) int {
	if screenW < 60 {
		return 0
	}
	return 12
}

// bucketRange maps one minimap row to its half-open range of document
// lines. Every document line lands in exactly one row.
func bucketRange(row, rows, lineCount int) (int, int) {
	if rows <= 0 || lineCount <= 0 || row < 0 || row >= rows {
		return 0, 0
	}
	start := row * lineCount / rows
	end := (row + 1) * lineCount / rows
	if end > lineCount {
		end = lineCount
	}
	if end < start {
		end = start
	}
	return start, end
}

// viewportDocRange returns the half-open document line range currently on
// screen, for the minimap's viewport indicator.
func (v *Viewer) viewportDocRange(rows int) (int, int) {
	if len(v.visible) == 0 || rows <= 0 {
		return 0, 0
	}
	last := v.top + rows
	if last > len(v.visible) {
		last = len(v.visible)
	}
	if v.top >= last {
		return 0, 0
	}
	return v.visible[v.top], v.visible[last-1] + 1
}

// drawMinimap paints one row per bucket of document lines. A bucket takes
// the resolved background of its first highlighted line, so matches and
// bookmarks stay findable at any zoom. The minimap reflects the whole
// document, including lines the filters hide from the text area.
func (v *Viewer) drawMinimap(x0, width, rows int, matchers []highlight.Matcher) {
	total := v.doc.LineCount()
	winStart, winEnd := v.viewportDocRange(rows)
	for row := 0; row < rows; row++ {
		start, end := bucketRange(row, rows, total)
		var bg *highlight.Color
		for line := start; line < end; line++ {
			text, _ := v.doc.Line(line)
			res := highlight.ResolveLine(text, line, matchers, v.bookmarks)
			if res.Background != nil {
				bg = res.Background
				break
			}
		}

		ind := ' '
		if start < end && start < winEnd && end > winStart {
			ind = '▐'
		}
		v.screen.SetContent(x0, row, ind, nil, tcell.StyleDefault)

		cell := ' '
		style := tcell.StyleDefault
		switch {
		case bg != nil:
			cell = '█'
			style = style.Foreground(toTCell(*bg))
		case start < end:
			cell = '░'
			style = style.Foreground(tcell.ColorDarkGray)
		}
		for x := 1; x < width; x++ {
			v.screen.SetContent(x0+x, row, cell, nil, style)
		}
	}
}

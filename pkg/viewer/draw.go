package viewer

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

const tabWidth = 4

func toTCell(c highlight.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// gutterWidth returns the gutter column width for a document of lineCount
// lines: the line number digits plus a bookmark marker and a spacer.
func gutterWidth(lineCount int) int {
	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}
	return digits + 2
}

func (v *Viewer) redraw() {
	v.screen.Clear()
	if v.showResults {
		v.drawResults()
	} else {
		v.drawMain()
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawMain() {
	width, _ := v.screen.Size()
	rows := v.textRows()
	if rows <= 0 || v.doc == nil {
		return
	}
	total := v.doc.LineCount()
	gutter := gutterWidth(total)
	mapW := minimapWidth(width)
	textW := width - gutter - mapW
	if textW <= 0 {
		return
	}

	matchers := v.patterns.ActiveMatchers()
	for row := 0; row < rows; row++ {
		vi := v.top + row
		if vi >= len(v.visible) {
			break
		}
		line := v.visible[vi]
		text, _ := v.doc.Line(line)
		res := highlight.ResolveLine(text, line, matchers, v.bookmarks)
		v.drawGutter(row, line, gutter, vi == v.cursor)
		v.drawText(row, gutter, textW, text, res)
	}
	if mapW > 0 {
		v.drawMinimap(width-mapW, mapW, rows, matchers)
	}
}

func (v *Viewer) drawGutter(row, line, width int, current bool) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if current {
		style = style.Reverse(true)
	}
	num := strconv.Itoa(line + 1)
	x := 0
	for ; x < width-2-len(num); x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}
	for _, r := range num {
		if x >= width-2 {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x++
	}
	marker := ' '
	mstyle := tcell.StyleDefault
	if v.bookmarks.IsBookmarked(line) {
		marker = '▌'
		mstyle = mstyle.Foreground(toTCell(v.bookmarks.Color()))
	}
	v.screen.SetContent(width-2, row, marker, nil, mstyle)
	v.screen.SetContent(width-1, row, ' ', nil, tcell.StyleDefault)
}

func (v *Viewer) drawText(row, x0, maxW int, text string, res highlight.Resolved) {
	base := tcell.StyleDefault
	if res.Background != nil {
		base = base.Background(toTCell(*res.Background))
	}
	x := 0
	for i, r := range text {
		if x >= maxW {
			break
		}
		style := base
		if c, ok := res.ForegroundAt(i); ok {
			style = style.Foreground(toTCell(c))
		}
		if r == '\t' {
			for j := 0; j < tabWidth && x < maxW; j++ {
				v.screen.SetContent(x0+x, row, ' ', nil, style)
				x++
			}
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		v.screen.SetContent(x0+x, row, r, nil, style)
		x += w
	}
	// extend the line background to the edge of the text area
	for ; x < maxW; x++ {
		v.screen.SetContent(x0+x, row, ' ', nil, base)
	}
}

func (v *Viewer) drawStatus() {
	width, height := v.screen.Size()
	if height == 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	v.puts(0, height-1, width, v.statusText(), style)
}

func (v *Viewer) statusText() string {
	if v.status != "" {
		return " " + v.status
	}
	if v.showResults {
		return fmt.Sprintf(" %d matching lines, ↑/↓ scroll, r close", len(v.results))
	}
	if v.doc == nil {
		return " no file loaded, q to quit"
	}
	line := v.cursorLine()
	s := fmt.Sprintf(" %s  %d/%d", v.doc.Path, line+1, v.doc.LineCount())
	if text, ok := v.doc.Line(line); ok && v.stamps != nil {
		if ts, ok := v.stamps.Parse(text); ok {
			s += "  " + ts
		}
	}
	return s + "  [b]ookmark [c]lear [r]esults [q]uit"
}

// puts writes s at (x, y), padding with spaces to maxW and truncating on
// display width.
func (v *Viewer) puts(x, y, maxW int, s string, style tcell.Style) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 || x+w > maxW {
			continue
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < maxW; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}

package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawResults paints the aggregate results overlay: every bookmarked or
// matching line with its contribution labels, colored by its resolved
// pattern (or bookmark) colors.
func (v *Viewer) drawResults() {
	width, _ := v.screen.Size()
	rows := v.textRows()
	if rows <= 0 {
		return
	}
	header := fmt.Sprintf(" line    type%s  text", spaces(24))
	v.puts(0, 0, width, header, tcell.StyleDefault.Bold(true))
	for row := 1; row < rows; row++ {
		i := v.resultTop + row - 1
		if i >= len(v.results) {
			break
		}
		r := v.results[i]
		style := tcell.StyleDefault.
			Foreground(toTCell(r.Foreground)).
			Background(toTCell(r.Background))
		label := runewidth.Truncate(r.TypeLabel, 28, "…")
		line := fmt.Sprintf(" %6d  %-28s  %s", r.Line+1, label, r.Text)
		v.puts(0, row, width, line, style)
	}
}

func spaces(n int) string {
	return fmt.Sprintf("%*s", n, "")
}

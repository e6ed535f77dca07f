package highlight

import "strings"

// Row is one entry in the aggregate results table.
type Row struct {
	Line       int
	Text       string
	TypeLabel  string
	Foreground Color
	Background Color
}

// Collect scans the whole document and returns one row per line that is
// bookmarked or matched by an active pattern, ascending by line index. When
// a line is both, the first matching pattern's colors win over the bookmark
// color, and the label records every contribution ("Bookmark" first, then
// the matching pattern sources in precedence order).
//
// This is a full O(lines x patterns) pass, meant to run on explicit request
// rather than on every change.
func Collect(lines []string, patterns *PatternStore, marks BookmarkView) []Row {
	var active []Pattern
	if patterns != nil {
		for _, p := range patterns.List() {
			if p.Active {
				active = append(active, p)
			}
		}
	}

	var rows []Row
	for i, text := range lines {
		var labels []string
		var fg, bg Color
		matched := false
		if text != "" {
			for _, p := range active {
				if !p.CompiledRegex().MatchString(text) {
					continue
				}
				if !matched {
					fg = p.Foreground
					bg = p.Background
					matched = true
				}
				labels = append(labels, p.Source)
			}
		}
		bookmarked := marks != nil && marks.IsBookmarked(i)
		if !matched && !bookmarked {
			continue
		}
		if bookmarked {
			labels = append([]string{"Bookmark"}, labels...)
			if !matched {
				fg = DefaultForeground
				bg = marks.Color()
			}
		}
		rows = append(rows, Row{
			Line:       i,
			Text:       text,
			TypeLabel:  strings.Join(labels, ", "),
			Foreground: fg,
			Background: bg,
		})
	}
	return rows
}

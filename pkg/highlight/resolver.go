package highlight

// Span is one foreground run inside a line, as byte offsets [Start, End).
type Span struct {
	Start int
	End   int
	Color Color
}

// Resolved is the highlight decision for one line. Background is nil when
// neither a pattern nor a bookmark claims the line. Spans appear in pattern
// precedence order, then by match offset within a pattern; for overlapping
// positions the later span wins.
type Resolved struct {
	Line       int
	Background *Color
	Spans      []Span
}

// BookmarkView is the resolver's read-only view of bookmark state.
type BookmarkView interface {
	IsBookmarked(line int) bool
	Color() Color
}

// ResolveLine computes the highlight decision for one line of text. The
// first matcher that matches anywhere in the line supplies the background;
// a bookmark supplies it only when no pattern matched. Foreground spans come
// from every match of every matcher, regardless of which one won the
// background. The function has no side effects, so the editor, the minimap,
// and the aggregate view can call it with the same inputs independently.
func ResolveLine(text string, line int, matchers []Matcher, marks BookmarkView) Resolved {
	res := Resolved{Line: line}
	if text != "" {
		for _, m := range matchers {
			// FindAll advances past zero-width matches, so patterns
			// like `a*` cannot stall the scan.
			locs := m.Regex.FindAllStringIndex(text, -1)
			if len(locs) == 0 {
				continue
			}
			if res.Background == nil {
				bg := m.Background
				res.Background = &bg
			}
			for _, loc := range locs {
				res.Spans = append(res.Spans, Span{Start: loc[0], End: loc[1], Color: m.Foreground})
			}
		}
	}
	if res.Background == nil && marks != nil && marks.IsBookmarked(line) {
		c := marks.Color()
		res.Background = &c
	}
	return res
}

// ForegroundAt returns the foreground color governing byte offset i,
// honoring last-written-wins across overlapping spans.
func (r Resolved) ForegroundAt(i int) (Color, bool) {
	var c Color
	found := false
	for _, s := range r.Spans {
		if i >= s.Start && i < s.End {
			c = s.Color
			found = true
		}
	}
	return c, found
}

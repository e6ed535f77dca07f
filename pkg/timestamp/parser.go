// Package timestamp extracts and reformats timestamps from lines using
// user-configured rules.
package timestamp

import (
	"regexp"
	"time"

	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

// Parser finds a timestamp in a line with a regex whose first capture group
// is the timestamp text, parses it with one layout, and reformats it with
// another. An unconfigured parser never matches.
type Parser struct {
	re           *regexp.Regexp
	parseLayout  string
	outputLayout string
}

// NewParser returns an unconfigured parser.
func NewParser() *Parser {
	return &Parser{}
}

// SetRules configures parsing. A malformed regex unsets the parser and
// returns the error.
func (p *Parser) SetRules(pattern, parseLayout, outputLayout string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		p.re = nil
		return &highlight.InvalidPatternError{Pattern: pattern, Err: err}
	}
	p.re = re
	p.parseLayout = parseLayout
	p.outputLayout = outputLayout
	return nil
}

// Parse returns the reformatted timestamp found in line, if any.
func (p *Parser) Parse(line string) (string, bool) {
	if p.re == nil || p.parseLayout == "" || p.outputLayout == "" {
		return "", false
	}
	m := p.re.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	t, err := time.Parse(p.parseLayout, m[1])
	if err != nil {
		return "", false
	}
	return t.Format(p.outputLayout), true
}

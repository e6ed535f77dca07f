// Package highlight owns the regex highlight rules and the per-line match
// resolution consumed by every rendering surface.
package highlight

import "regexp"

// Pattern is one highlight rule: a regex with its colors and active flag.
// Pattern order in the store is precedence order; earlier patterns win
// background resolution.
type Pattern struct {
	ID         string
	Source     string
	Foreground Color
	Background Color
	Active     bool
	compiled   *regexp.Regexp
}

// CompiledRegex returns the compiled regular expression.
func (p *Pattern) CompiledRegex() *regexp.Regexp {
	return p.compiled
}

// Matcher is the resolver's view of one active pattern.
type Matcher struct {
	Regex      *regexp.Regexp
	Foreground Color
	Background Color
}

// PatternConfig is the persisted form of a pattern. Colors are hex strings.
type PatternConfig struct {
	ID         string `yaml:"id"`
	Regex      string `yaml:"regex"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Active     bool   `yaml:"active"`
}

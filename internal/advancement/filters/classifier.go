// Package filters maps an advancement source and a rolled total to the flags
// that decide how the table outcome is interpreted.
package filters

import (
	_ "embed"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

//go:embed patterns.yaml
var embeddedPatterns []byte

// Entry maps an inclusive range of totals to flags
type Entry struct {
	Range [2]int `yaml:"range"`
	Flags Flags  `yaml:"flags"`
}

// Contains reports whether total falls inside the entry range
func (e Entry) Contains(total int) bool {
	return total >= e.Range[0] && total <= e.Range[1]
}

// Pattern is the ordered entry list for one advancement source
type Pattern struct {
	Source  string  `yaml:"source"`
	Formula string  `yaml:"formula"`
	Entries []Entry `yaml:"entries"`
}

type patternFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// Classifier looks up interpretation flags by source id
type Classifier struct {
	patterns map[string]*Pattern
}

// Load parses and validates pattern YAML
func Load(data []byte) (*Classifier, error) {
	var file patternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.InvalidArgumentf("invalid filter patterns: %v", err)
	}

	c := &Classifier{patterns: make(map[string]*Pattern, len(file.Patterns))}
	for i := range file.Patterns {
		p := &file.Patterns[i]
		if p.Source == "" {
			return nil, errors.InvalidArgumentf("filter pattern %d has no source", i)
		}
		if _, dup := c.patterns[p.Source]; dup {
			return nil, errors.InvalidArgumentf("duplicate filter pattern for %s", p.Source)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		c.patterns[p.Source] = p
	}
	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Classifier, error) {
	return Load(embeddedPatterns)
})

// Default returns the classifier for the bundled patterns
func Default() (*Classifier, error) {
	return loadDefault()
}

// Validate checks that the entries cover every total the formula can produce
// exactly once
func (p *Pattern) Validate() error {
	low, high, err := dice.Bounds(p.Formula)
	if err != nil {
		return errors.Wrapf(err, "filter pattern %s has an invalid formula", p.Source)
	}

	for i, e := range p.Entries {
		if e.Range[0] > e.Range[1] {
			return errors.InvalidArgumentf("filter pattern %s entry %d has an inverted range", p.Source, i)
		}
		if e.Range[0] < low || e.Range[1] > high {
			return errors.InvalidArgumentf("filter pattern %s entry %d is outside %d-%d", p.Source, i, low, high)
		}
	}

	for total := low; total <= high; total++ {
		matches := 0
		for _, e := range p.Entries {
			if e.Contains(total) {
				matches++
			}
		}
		switch {
		case matches == 0:
			return errors.InvalidArgumentf("filter pattern %s has a gap at %d", p.Source, total).
				WithMeta("source", p.Source)
		case matches > 1:
			return errors.InvalidArgumentf("filter pattern %s overlaps at %d", p.Source, total).
				WithMeta("source", p.Source)
		}
	}
	return nil
}

// Classify returns the flags of the entry containing total, FlagNone when
// the source has no pattern or the total is outside it
func (c *Classifier) Classify(sourceID string, total int) Flags {
	p, ok := c.patterns[sourceID]
	if !ok {
		return FlagNone
	}
	for _, e := range p.Entries {
		if e.Contains(total) {
			return e.Flags
		}
	}
	return FlagNone
}

// Pattern returns the pattern for a source
func (c *Classifier) Pattern(sourceID string) (*Pattern, bool) {
	p, ok := c.patterns[sourceID]
	return p, ok
}

// Sources lists the source ids with patterns, sorted
func (c *Classifier) Sources() []string {
	out := make([]string, 0, len(c.patterns))
	for s := range c.patterns {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

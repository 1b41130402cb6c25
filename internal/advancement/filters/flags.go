package filters

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// Flags is a set of independent interpretation rules for a table outcome
type Flags uint16

// FlagNone means the outcome is taken as a plain item
const FlagNone Flags = 0

// Interpretation flags
const (
	// DropChooseOne removes the "choose one" instruction entry
	DropChooseOne Flags = 1 << iota
	// ChooseOne presents the matched entries as a single pick
	ChooseOne
	// HasDistributeTable marks entries that fold into a stat distribution
	HasDistributeTable
	// DistributeOnce grants two stat points, at most one per stat
	DistributeOnce
	// DistributeAny grants two stat points to any stats
	DistributeAny
	// ChooseTwoInstead offers the whole table with two picks
	ChooseTwoInstead
	// BoonOnce rolls one patron boon
	BoonOnce
	// BoonTwice rolls two patron boons
	BoonTwice
	// BoonAny rolls a boon from any patron
	BoonAny
	// WarlockComposite builds a choice from stat and boon phrases
	WarlockComposite
	// DropBlank removes empty entries
	DropBlank
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{DropChooseOne, "drop-choose-one"},
	{ChooseOne, "choose-one"},
	{HasDistributeTable, "has-distribute-table"},
	{DistributeOnce, "distribute-once"},
	{DistributeAny, "distribute-any"},
	{ChooseTwoInstead, "choose-two-instead"},
	{BoonOnce, "boon-once"},
	{BoonTwice, "boon-twice"},
	{BoonAny, "boon-any"},
	{WarlockComposite, "warlock-composite"},
	{DropBlank, "drop-blank"},
}

// Has reports whether every flag in f is set
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// HasAll is Has over several flags
func (fl Flags) HasAll(fs ...Flags) bool {
	var want Flags
	for _, f := range fs {
		want |= f
	}
	return fl.Has(want)
}

// HasAny reports whether at least one of the flags is set
func (fl Flags) HasAny(fs ...Flags) bool {
	for _, f := range fs {
		if fl&f != 0 {
			return true
		}
	}
	return false
}

// Names lists the set flags in declaration order
func (fl Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if fl&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

func (fl Flags) String() string {
	if fl == FlagNone {
		return "none"
	}
	return strings.Join(fl.Names(), "|")
}

// ParseFlag returns the flag with the given name
func ParseFlag(name string) (Flags, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "none" {
		return FlagNone, nil
	}
	for _, fn := range flagNames {
		if fn.name == n {
			return fn.flag, nil
		}
	}
	return FlagNone, errors.InvalidArgumentf("unknown filter flag %q", name)
}

// UnmarshalYAML reads a list of flag names
func (fl *Flags) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	var out Flags
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return err
		}
		out |= f
	}
	*fl = out
	return nil
}

// MarshalYAML writes the flag names
func (fl Flags) MarshalYAML() (any, error) {
	return fl.Names(), nil
}

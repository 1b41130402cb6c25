package talents

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
)

var (
	statPhrase   = regexp.MustCompile(`(?i)(distribute|[+±]?\d+\s*(?:points?\s+)?to\s).*\b(?:stats?|attributes?|strength|dexterity|constitution|intelligence|wisdom|charisma|str|dex|con|int|wis|cha)\b`)
	boonPhrase   = regexp.MustCompile(`(?i)\bpatron\s+boons?\b|\broll\b.*\bboons?\b`)
	twicePhrase  = regexp.MustCompile(`(?i)\(x2\)|\btwice\b|\btwo\b.*\bboons\b`)
	pairPhrase   = regexp.MustCompile(`(?i)\bto\s+(?:two|2)\b`)
	numberPhrase = regexp.MustCompile(`[+±]?(\d+)`)
	wordToken    = regexp.MustCompile(`[a-zA-Z]+`)
)

var statWords = map[string]string{
	"strength":     shadowdark.StatSTR,
	"str":          shadowdark.StatSTR,
	"dexterity":    shadowdark.StatDEX,
	"dex":          shadowdark.StatDEX,
	"constitution": shadowdark.StatCON,
	"con":          shadowdark.StatCON,
	"intelligence": shadowdark.StatINT,
	"int":          shadowdark.StatINT,
	"wisdom":       shadowdark.StatWIS,
	"wis":          shadowdark.StatWIS,
	"charisma":     shadowdark.StatCHA,
	"cha":          shadowdark.StatCHA,
}

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
}

// IsStatPhrase reports whether text grants stat points, such as
// "+2 to Strength" or "Distribute to Stats"
func IsStatPhrase(text string) bool {
	return statPhrase.MatchString(text)
}

// IsBoonPhrase reports whether text asks for a patron boon roll
func IsBoonPhrase(text string) bool {
	return boonPhrase.MatchString(text)
}

// IsTwicePhrase reports whether a boon phrase asks for two rolls
func IsTwicePhrase(text string) bool {
	return twicePhrase.MatchString(text)
}

// namedStats returns the stats a phrase names, in sheet order
func namedStats(text string) []string {
	seen := map[string]bool{}
	for _, w := range wordToken.FindAllString(strings.ToLower(text), -1) {
		if stat, ok := statWords[w]; ok {
			seen[stat] = true
		}
	}
	var out []string
	for _, stat := range shadowdark.Stats {
		if seen[stat] {
			out = append(out, stat)
		}
	}
	return out
}

// leadingNumber returns the first number in text, written as digits or as
// a small number word
func leadingNumber(text string, fallback int) int {
	if m := numberPhrase.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	for _, w := range wordToken.FindAllString(strings.ToLower(text), -1) {
		if n, ok := numberWords[w]; ok && w != "a" && w != "an" {
			return n
		}
	}
	return fallback
}

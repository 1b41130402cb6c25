package talents

import (
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
)

// Item config keys set by handlers
const (
	ConfigPoints     = "points"
	ConfigMaxPerStat = "maxPerStat"
	ConfigStats      = "stats"
	ConfigRolls      = "rolls"
	ConfigCount      = "count"
	ConfigSelection  = "selection"
)

// Selection kinds a handler asks the player for
const (
	SelectionStats    = "stats"
	SelectionWeapon   = "weapon"
	SelectionArmor    = "armor"
	SelectionSpell    = "spell"
	SelectionLanguage = "language"
)

// configInt reads an integer config value. Values that went through JSON
// come back as float64.
func configInt(item *shadowdark.Item, key string, fallback int) int {
	if item == nil || item.Config == nil {
		return fallback
	}
	switch v := item.Config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func configStrings(item *shadowdark.Item, key string) []string {
	if item == nil || item.Config == nil {
		return nil
	}
	switch v := item.Config[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

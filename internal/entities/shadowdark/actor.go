package shadowdark

// Ability keys used in stat maps and effect paths
const (
	StatSTR = "str"
	StatDEX = "dex"
	StatCON = "con"
	StatINT = "int"
	StatWIS = "wis"
	StatCHA = "cha"
)

// Stats lists the ability keys in sheet order
var Stats = []string{StatSTR, StatDEX, StatCON, StatINT, StatWIS, StatCHA}

// IsStat reports whether key names an ability
func IsStat(key string) bool {
	for _, s := range Stats {
		if s == key {
			return true
		}
	}
	return false
}

// HitPoints tracks current and maximum hit points
type HitPoints struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

// Actor is a character as held by the external actor service
type Actor struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Level      int            `json:"level"`
	ClassID    string         `json:"class_id,omitempty"`
	AncestryID string         `json:"ancestry_id,omitempty"`
	PatronID   string         `json:"patron_id,omitempty"`
	Stats      map[string]int `json:"stats,omitempty"`
	HP         HitPoints      `json:"hp"`
	Gold       int            `json:"gold,omitempty"`
	Items      []*Item        `json:"items,omitempty"`
}

// IsNew reports whether the actor has not gained a level yet
func (a *Actor) IsNew() bool {
	return a == nil || a.Level == 0
}

// OwnsItemNamed reports whether the actor already has an item with this name
func (a *Actor) OwnsItemNamed(name string) bool {
	if a == nil {
		return false
	}
	key := NameKey(name)
	for _, item := range a.Items {
		if item != nil && NameKey(item.Name) == key {
			return true
		}
	}
	return false
}

// Modifier returns the ability modifier for a stat, 0 when unknown
func (a *Actor) Modifier(stat string) int {
	if a == nil || a.Stats == nil {
		return 0
	}
	score, ok := a.Stats[stat]
	if !ok {
		return 0
	}
	return AbilityModifier(score)
}

const (
	minAbilityModifier = -4
	maxAbilityModifier = 4
)

// AbilityModifier converts an ability score to its modifier, capped at +/-4
func AbilityModifier(score int) int {
	d := score - 10
	var mod int
	if d < 0 {
		mod = (d - 1) / 2
	} else {
		mod = d / 2
	}
	return min(max(mod, minAbilityModifier), maxAbilityModifier)
}

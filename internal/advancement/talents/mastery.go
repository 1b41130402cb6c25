package talents

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// Mastery handler ids
const (
	HandlerWeaponMastery = "weapon-mastery"
	HandlerArmorMastery  = "armor-mastery"
)

var (
	weaponMasteryPhrase = regexp.MustCompile(`(?i)\bweapon\s+mastery\b`)
	armorMasteryPhrase  = regexp.MustCompile(`(?i)\barmor\s+mastery\b|\bkind\s+of\s+armor\b`)
)

func displayName(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// weaponMastery requires a weapon type per granting item
type weaponMastery struct{}

func (h *weaponMastery) ID() string { return HandlerWeaponMastery }

func (h *weaponMastery) Matches(item *shadowdark.Item) bool {
	return weaponMasteryPhrase.MatchString(item.Name)
}

func (h *weaponMastery) Configure(_ *shadowdark.Item) map[string]any {
	return map[string]any{ConfigSelection: SelectionWeapon}
}

func (h *weaponMastery) Stackable() bool { return true }

func (h *weaponMastery) IsBlocked(state *advancementsession.State) (bool, string) {
	for _, item := range matchingItems(h, state) {
		if strings.TrimSpace(state.WeaponMasterySelection[item.ID]) == "" {
			return true, fmt.Sprintf("%s: choose a weapon type", item.Name)
		}
	}
	return false, ""
}

func (h *weaponMastery) MutateItem(item *shadowdark.Item, state *advancementsession.State) {
	weapon := strings.TrimSpace(state.WeaponMasterySelection[item.ID])
	if weapon == "" {
		return
	}
	item.Name = fmt.Sprintf("Weapon Mastery (%s)", displayName(weapon))
	item.Effects = append(item.Effects, shadowdark.Effect{
		Key:   "system.bonuses.weaponMastery",
		Mode:  shadowdark.EffectModeAdd,
		Value: strings.ToLower(weapon),
	})
}

// armorMastery requires an armor type per granting item and grants +1 AC
// while that armor is worn
type armorMastery struct{}

func (h *armorMastery) ID() string { return HandlerArmorMastery }

func (h *armorMastery) Matches(item *shadowdark.Item) bool {
	return armorMasteryPhrase.MatchString(item.Name)
}

func (h *armorMastery) Configure(_ *shadowdark.Item) map[string]any {
	return map[string]any{ConfigSelection: SelectionArmor}
}

func (h *armorMastery) Stackable() bool { return true }

func (h *armorMastery) IsBlocked(state *advancementsession.State) (bool, string) {
	for _, item := range matchingItems(h, state) {
		if strings.TrimSpace(state.ArmorMasterySelection[item.ID]) == "" {
			return true, fmt.Sprintf("%s: choose an armor type", item.Name)
		}
	}
	return false, ""
}

func (h *armorMastery) MutateItem(item *shadowdark.Item, state *advancementsession.State) {
	armor := strings.TrimSpace(state.ArmorMasterySelection[item.ID])
	if armor == "" {
		return
	}
	item.Name = fmt.Sprintf("Armor Mastery (%s)", displayName(armor))
	item.Effects = append(item.Effects,
		shadowdark.Effect{
			Key:   "system.bonuses.armorMastery",
			Mode:  shadowdark.EffectModeAdd,
			Value: strings.ToLower(armor),
		},
		shadowdark.Effect{
			Key:   "system.bonuses.acBonus",
			Mode:  shadowdark.EffectModeAdd,
			Value: "1",
		},
	)
}

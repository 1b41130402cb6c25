package talents

import (
	"fmt"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// HandlerPatronBoon is the id of the patron boon placeholder handler
const HandlerPatronBoon = "patron-boon"

// patronBoon turns "roll a patron boon" results into pending boon rolls.
// The placeholder item itself is never written to the actor.
type patronBoon struct{}

func (h *patronBoon) ID() string { return HandlerPatronBoon }

func (h *patronBoon) Matches(item *shadowdark.Item) bool {
	return IsBoonPhrase(item.Name)
}

func (h *patronBoon) Configure(item *shadowdark.Item) map[string]any {
	rolls := 1
	if IsTwicePhrase(item.Name) {
		rolls = 2
	}
	return map[string]any{ConfigRolls: rolls}
}

func (h *patronBoon) Stackable() bool { return true }

func (h *patronBoon) OnRoll(item *shadowdark.Item, state *advancementsession.State) {
	item.Transient = true
	state.PendingBoonRolls += configInt(item, ConfigRolls, 1)
}

func (h *patronBoon) IsBlocked(state *advancementsession.State) (bool, string) {
	if state.PendingBoonRolls > 0 {
		return true, fmt.Sprintf("%d patron boon roll(s) pending", state.PendingBoonRolls)
	}
	return false, ""
}

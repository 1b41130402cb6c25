package talents

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// HandlerStatDistribution is the id of the stat point handler
const HandlerStatDistribution = "stat-distribution"

const defaultStatPoints = 2

// statDistribution handles "+N to stat" and "Distribute to Stats" grants.
// The player allocates the points per item; the once-only variant caps each
// stat at one point.
type statDistribution struct{}

func (h *statDistribution) ID() string { return HandlerStatDistribution }

func (h *statDistribution) Matches(item *shadowdark.Item) bool {
	return shadowdark.NameKey(item.Name) == shadowdark.NameKey(shadowdark.LabelDistributeToStats) ||
		IsStatPhrase(item.Name)
}

func (h *statDistribution) Configure(item *shadowdark.Item) map[string]any {
	points := leadingNumber(item.Name, defaultStatPoints)
	cfg := map[string]any{ConfigSelection: SelectionStats}
	if pairPhrase.MatchString(item.Name) {
		cfg[ConfigMaxPerStat] = points
		points *= 2
	}
	cfg[ConfigPoints] = points
	if stats := namedStats(item.Name); len(stats) > 0 {
		cfg[ConfigStats] = stats
	}
	return cfg
}

func (h *statDistribution) Stackable() bool { return true }

func (h *statDistribution) OnRoll(item *shadowdark.Item, state *advancementsession.State) {
	state.StatPool += configInt(item, ConfigPoints, defaultStatPoints)
}

func (h *statDistribution) IsBlocked(state *advancementsession.State) (bool, string) {
	for _, item := range matchingItems(h, state) {
		if reason := h.check(item, state.StatSelection[item.ID]); reason != "" {
			return true, reason
		}
	}
	return false, ""
}

func (h *statDistribution) check(item *shadowdark.Item, sel map[string]int) string {
	points := configInt(item, ConfigPoints, defaultStatPoints)
	maxPer := configInt(item, ConfigMaxPerStat, 0)
	allowed := configStrings(item, ConfigStats)

	spent := 0
	for stat, n := range sel {
		if !shadowdark.IsStat(stat) {
			return fmt.Sprintf("%s: unknown stat %q", item.Name, stat)
		}
		if len(allowed) > 0 && !slices.Contains(allowed, stat) {
			return fmt.Sprintf("%s: points cannot go to %s", item.Name, strings.ToUpper(stat))
		}
		if n < 0 {
			return fmt.Sprintf("%s: negative points for %s", item.Name, strings.ToUpper(stat))
		}
		if maxPer > 0 && n > maxPer {
			return fmt.Sprintf("%s: at most %d point per stat", item.Name, maxPer)
		}
		spent += n
	}
	if spent != points {
		return fmt.Sprintf("%s: allocate %d stat points (%d allocated)", item.Name, points, spent)
	}
	return ""
}

func (h *statDistribution) MutateItem(item *shadowdark.Item, state *advancementsession.State) {
	sel := state.StatSelection[item.ID]
	var parts []string
	for _, stat := range shadowdark.Stats {
		n := sel[stat]
		if n == 0 {
			continue
		}
		item.Effects = append(item.Effects, shadowdark.Effect{
			Key:   "system.abilities." + stat + ".base",
			Mode:  shadowdark.EffectModeAdd,
			Value: strconv.Itoa(n),
		})
		parts = append(parts, fmt.Sprintf("+%d %s", n, strings.ToUpper(stat)))
	}
	if len(parts) > 0 {
		item.Name = fmt.Sprintf("%s (%s)", item.Name, strings.Join(parts, ", "))
	}
}

package advancement

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// CalculateAdvancement returns what reaching the target level grants.
// Odd levels grant a talent. Patron classes take a boon at level 1, a
// talent-or-boon choice on later odd levels and nothing on even levels.
func (o *orchestrator) CalculateAdvancement(
	ctx context.Context, input *CalculateAdvancementInput,
) (*CalculateAdvancementOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Class == nil {
		return nil, errors.InvalidArgument("class document is required")
	}
	if input.TargetLevel < 1 || input.TargetLevel > MaxLevel {
		return nil, errors.InvalidArgumentf("target level must be between 1 and %d", MaxLevel)
	}

	req := baseRequirements(input.TargetLevel, input.Class.Bool(shadowdark.PayloadRequiresPatron))

	adj, err := o.registry.OnInit(ctx, &talents.InitInput{
		Actor:       input.Actor,
		TargetLevel: input.TargetLevel,
		Class:       input.Class,
		Ancestry:    input.Ancestry,
	})
	if err != nil {
		return nil, err
	}
	req.RequiredTalents += adj.Talents
	req.RequiredBoons += adj.Boons
	if adj.Boons > 0 {
		req.NeedsBoon = true
	}

	return &CalculateAdvancementOutput{Requirements: req}, nil
}

func baseRequirements(level int, requiresPatron bool) advancementsession.Requirements {
	var req advancementsession.Requirements
	odd := level%2 == 1

	switch {
	case !requiresPatron:
		if odd {
			req.RequiredTalents = 1
		}
	case level == 1:
		req.RequiredBoons = 1
	case odd:
		req.ChoiceRolls = 1
	}
	req.NeedsBoon = req.RequiredBoons > 0 || (requiresPatron && req.ChoiceRolls > 0)
	return req
}

// flexibleFilled counts rolls beyond the required talents and boons, each of
// which fills a talent-or-boon choice slot
func flexibleFilled(state *advancementsession.State) int {
	req := state.Requirements
	return max(len(state.RolledTalents)-req.RequiredTalents, 0) +
		max(len(state.RolledBoons)-req.RequiredBoons, 0)
}

// ValidateState reports the first unmet condition, checked in a fixed order
func (o *orchestrator) ValidateState(state *advancementsession.State) ValidationResult {
	if state == nil {
		return ValidationResult{Reason: "no advancement in progress"}
	}
	req := state.Requirements

	if n := len(state.RolledTalents); n < req.RequiredTalents {
		return invalid("%d of %d talent(s) rolled", n, req.RequiredTalents)
	}
	if n := len(state.RolledBoons); n < req.RequiredBoons {
		return invalid("%d of %d boon(s) rolled", n, req.RequiredBoons)
	}
	if n := flexibleFilled(state); n < req.ChoiceRolls {
		return invalid("%d of %d talent or boon choice(s) rolled", n, req.ChoiceRolls)
	}
	if state.PendingChoice.Remaining() > 0 {
		return invalid("choice %q is still open", state.PendingChoice.Title)
	}
	if state.HPRoll == nil {
		return invalid("hit points have not been rolled")
	}
	if blocked, reason := o.registry.Blocked(state); blocked {
		return ValidationResult{Reason: reason}
	}
	return ValidationResult{Valid: true}
}

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Reason: fmt.Sprintf(format, args...)}
}

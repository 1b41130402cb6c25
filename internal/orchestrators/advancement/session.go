package advancement

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// BeginAdvancement starts a leveling transaction for an existing actor, or
// for a new character described by a level 0 draft
func (o *orchestrator) BeginAdvancement(
	ctx context.Context, input *BeginAdvancementInput,
) (_ *BeginAdvancementOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "BeginAdvancement", "")
	defer func() { endSpan(span, err) }()

	actor, err := o.startingActor(ctx, input)
	if err != nil {
		return nil, err
	}

	target := input.TargetLevel
	if target == 0 {
		target = actor.Level + 1
	}
	if target != actor.Level+1 {
		return nil, errors.InvalidArgumentf("can only advance one level at a time (level %d to %d)", actor.Level, target)
	}
	if target > MaxLevel {
		return nil, errors.FailedPreconditionf("%s is already at the maximum level", actor.Name)
	}

	src, err := o.loadSources(ctx, actor.ClassID, actor.AncestryID, actor.PatronID)
	if err != nil {
		return nil, err
	}
	if src.class.Bool(shadowdark.PayloadRequiresPatron) && src.patron == nil {
		return nil, errors.InvalidArgumentf("class %s requires a patron", src.class.Name).
			WithMeta("class_id", src.class.ID)
	}

	calc, err := o.CalculateAdvancement(ctx, &CalculateAdvancementInput{
		Actor:       actor,
		TargetLevel: target,
		Class:       src.class,
		Ancestry:    src.ancestry,
	})
	if err != nil {
		return nil, err
	}

	state := &advancementsession.State{
		ID:           o.idGen.Generate(),
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ClassID:      actor.ClassID,
		AncestryID:   actor.AncestryID,
		PatronID:     actor.PatronID,
		Actor:        actor,
		CurrentLevel: actor.Level,
		TargetLevel:  target,
		Phase:        advancementsession.PhaseIdle,
		Requirements: calc.Requirements,
	}

	out, err := o.sessionRepo.Create(ctx, advancementsession.CreateInput{
		State: state,
		TTL:   o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create advancement session")
	}

	slog.InfoContext(ctx, "advancement started",
		"session_id", state.ID,
		"actor_id", actor.ID,
		"actor_name", actor.Name,
		"class_id", actor.ClassID,
		"target_level", target,
		"required_talents", calc.Requirements.RequiredTalents,
		"required_boons", calc.Requirements.RequiredBoons,
		"choice_rolls", calc.Requirements.ChoiceRolls)

	return &BeginAdvancementOutput{State: out.State}, nil
}

func (o *orchestrator) startingActor(ctx context.Context, input *BeginAdvancementInput) (*shadowdark.Actor, error) {
	switch {
	case input.ActorID != "" && input.Draft != nil:
		return nil, errors.InvalidArgument("provide either an actor ID or a draft, not both")
	case input.ActorID != "":
		actor, err := o.external.GetActor(ctx, input.ActorID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get actor")
		}
		return actor, nil
	case input.Draft != nil:
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("name", input.Draft.Name, vb)
		errors.ValidateRequired("class_id", input.Draft.ClassID, vb)
		if input.Draft.Level != 0 {
			vb.Field("level", "a new character starts at level 0")
		}
		if err := vb.Build(); err != nil {
			return nil, err
		}
		draft := *input.Draft
		draft.ID = ""
		draft.Items = nil
		return &draft, nil
	default:
		return nil, errors.InvalidArgument("an actor ID or a draft is required")
	}
}

func (o *orchestrator) GetAdvancement(ctx context.Context, input *GetAdvancementInput) (*GetAdvancementOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	out, err := o.sessionRepo.Get(ctx, advancementsession.GetInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get advancement session")
	}
	return &GetAdvancementOutput{
		State:      out.State,
		Validation: o.ValidateState(out.State),
	}, nil
}

func (o *orchestrator) ValidateAdvancement(
	ctx context.Context, input *ValidateAdvancementInput,
) (*ValidateAdvancementOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	return &ValidateAdvancementOutput{
		State:      state,
		Validation: o.ValidateState(state),
	}, nil
}

// RollHitPoints rolls the class hit die once for the level. Ancestries with
// hit point advantage roll two dice and keep the higher. The CON modifier is
// added and the gain is never below 1.
func (o *orchestrator) RollHitPoints(
	ctx context.Context, input *RollHitPointsInput,
) (_ *RollHitPointsOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "RollHitPoints", input.SessionID)
	defer func() { endSpan(span, err) }()

	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if state.HPRoll != nil {
		return nil, errors.FailedPrecondition("hit points were already rolled for this level")
	}

	src, err := o.loadSources(ctx, state.ClassID, state.AncestryID, "")
	if err != nil {
		return nil, err
	}
	formula := src.class.String(shadowdark.PayloadHitDie)
	if formula == "" {
		return nil, errors.FailedPreconditionf("class %s has no hit die", src.class.Name).
			WithMeta("class_id", src.class.ID)
	}
	if src.ancestry.Bool(shadowdark.PayloadHPAdvantage) {
		formula = withAdvantage(formula)
	}

	roll := dice.NewRoll(formula, &dice.Options{Roller: o.roller})
	rolled := roll.Evaluate()
	if err := roll.Err(); err != nil {
		return nil, errors.Wrapf(err, "class %s has a bad hit die", src.class.ID)
	}

	mod := state.Actor.Modifier(shadowdark.StatCON)
	state.HPRoll = &advancementsession.HPRoll{
		Formula:  formula,
		Rolled:   rolled,
		Modifier: mod,
		Value:    max(rolled+mod, 1),
	}
	if state.Phase == advancementsession.PhaseIdle {
		state.Phase = advancementsession.PhaseRolling
	}
	if _, err := o.save(ctx, state); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "hit points rolled",
		"session_id", state.ID,
		"formula", formula,
		"rolled", rolled,
		"modifier", mod,
		"value", state.HPRoll.Value)
	o.publish(ctx, EventRolled, state, map[string]any{
		"roll":  "hit_points",
		"total": state.HPRoll.Value,
	})

	return &RollHitPointsOutput{
		State:  state,
		HPRoll: state.HPRoll,
		Roll:   roll.Result(),
	}, nil
}

// withAdvantage turns a single hit die into two dice keeping the higher.
// Anything more complex is left alone.
func withAdvantage(formula string) string {
	expr, err := dice.Parse(formula)
	if err != nil {
		return formula
	}
	terms := expr.Terms()
	if len(terms) != 1 || terms[0].Count != 1 || terms[0].Keep != dice.KeepAll ||
		strings.ContainsAny(formula, "+-*/()") {
		return formula
	}
	return dice.Term{Count: 2, Faces: terms[0].Faces, Keep: dice.KeepHighest, KeepCount: 1}.String()
}

// RollGold rolls starting gold. Only a new character rolls gold.
func (o *orchestrator) RollGold(ctx context.Context, input *RollGoldInput) (_ *RollGoldOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "RollGold", input.SessionID)
	defer func() { endSpan(span, err) }()

	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !state.IsNewCharacter() {
		return nil, errors.FailedPrecondition("only a new character rolls starting gold")
	}
	if state.GoldRoll != nil {
		return nil, errors.FailedPrecondition("starting gold was already rolled")
	}

	roll := dice.NewRoll(GoldFormula, &dice.Options{Roller: o.roller})
	state.GoldRoll = &advancementsession.GoldRoll{
		Formula: GoldFormula,
		Value:   roll.Evaluate(),
	}
	if state.Phase == advancementsession.PhaseIdle {
		state.Phase = advancementsession.PhaseRolling
	}
	if _, err := o.save(ctx, state); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "starting gold rolled",
		"session_id", state.ID,
		"gold", state.GoldRoll.Value)
	o.publish(ctx, EventRolled, state, map[string]any{
		"roll":  "gold",
		"total": state.GoldRoll.Value,
	})

	return &RollGoldOutput{
		State:    state,
		GoldRoll: state.GoldRoll,
		Roll:     roll.Result(),
	}, nil
}

// UpdateSelections records player sub-selections. An empty map value clears
// the selection for that item.
func (o *orchestrator) UpdateSelections(
	ctx context.Context, input *UpdateSelectionsInput,
) (_ *UpdateSelectionsOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "UpdateSelections", input.SessionID)
	defer func() { endSpan(span, err) }()

	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	rolled := make(map[string]bool)
	for _, item := range state.RolledItems() {
		rolled[item.ID] = true
	}
	checkItem := func(id string) error {
		if !rolled[id] {
			return errors.InvalidArgumentf("no rolled item %s in this advancement", id).WithMeta("item_id", id)
		}
		return nil
	}

	for id, sel := range input.StatSelection {
		if err := checkItem(id); err != nil {
			return nil, err
		}
		if state.StatSelection == nil {
			state.StatSelection = make(map[string]map[string]int)
		}
		if len(sel) == 0 {
			delete(state.StatSelection, id)
			continue
		}
		state.StatSelection[id] = sel
	}

	if state.WeaponMasterySelection, err = mergePicks(state.WeaponMasterySelection, input.WeaponMastery, checkItem); err != nil {
		return nil, err
	}
	if state.ArmorMasterySelection, err = mergePicks(state.ArmorMasterySelection, input.ArmorMastery, checkItem); err != nil {
		return nil, err
	}

	for _, spellID := range input.ExtraSpells {
		if spellID == "" {
			continue
		}
		if _, err := o.document(ctx, spellID, shadowdark.KindSpell); err != nil {
			return nil, err
		}
	}
	if state.ExtraSpellSelection, err = mergePicks(state.ExtraSpellSelection, input.ExtraSpells, checkItem); err != nil {
		return nil, err
	}

	if input.Languages != nil {
		if err := o.checkDocuments(ctx, input.Languages, shadowdark.KindLanguage); err != nil {
			return nil, err
		}
		state.SelectedLanguages = input.Languages
	}
	if input.Spells != nil {
		if err := o.checkDocuments(ctx, input.Spells, shadowdark.KindSpell); err != nil {
			return nil, err
		}
		state.SelectedSpells = input.Spells
	}

	result, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "selections updated",
		"session_id", state.ID,
		"valid", result.Valid,
		"reason", result.Reason)

	return &UpdateSelectionsOutput{State: state, Validation: result}, nil
}

func mergePicks(current, updates map[string]string, check func(string) error) (map[string]string, error) {
	for id, pick := range updates {
		if err := check(id); err != nil {
			return current, err
		}
		if current == nil {
			current = make(map[string]string)
		}
		if pick = strings.TrimSpace(pick); pick == "" {
			delete(current, id)
			continue
		}
		current[id] = pick
	}
	return current, nil
}

func (o *orchestrator) checkDocuments(ctx context.Context, ids []string, kind shadowdark.DocumentKind) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return errors.InvalidArgumentf("%s %s selected twice", kind, id).WithMeta("document_id", id)
		}
		seen[id] = true
		if _, err := o.document(ctx, id, kind); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate resolves a dice formula. A malformed formula totals 0 unless
// Strict is set.
func (o *orchestrator) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Minimize && input.Maximize {
		return nil, errors.InvalidArgument("minimize and maximize are exclusive")
	}
	if input.Strict {
		if _, err := dice.Parse(input.Formula); err != nil {
			return nil, err
		}
	}

	result := dice.Evaluate(input.Formula, &dice.Options{
		Minimize: input.Minimize,
		Maximize: input.Maximize,
		Roller:   o.roller,
	})
	slog.DebugContext(ctx, "formula evaluated",
		"formula", input.Formula,
		"total", result.Total)
	return &EvaluateOutput{Result: result}, nil
}

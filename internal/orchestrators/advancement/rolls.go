package advancement

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/tables"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// rerollPhrase marks table text that tells the player to roll again
var rerollPhrase = regexp.MustCompile(`(?i)\b(?:re-?roll|roll\s+again)\b`)

// RollTalent draws from the class talent table
func (o *orchestrator) RollTalent(ctx context.Context, input *RollInput) (*RollOutput, error) {
	return o.roll(ctx, "RollTalent", input, shadowdark.ItemTalent)
}

// RollBoon draws from the patron boon table. A pending boon roll owed by a
// patron boon placeholder is consumed first.
func (o *orchestrator) RollBoon(ctx context.Context, input *RollInput) (*RollOutput, error) {
	return o.roll(ctx, "RollBoon", input, shadowdark.ItemBoon)
}

func (o *orchestrator) roll(
	ctx context.Context, name string, input *RollInput, target shadowdark.ItemType,
) (_ *RollOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, name, input.SessionID)
	defer func() { endSpan(span, err) }()

	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if state.PendingChoice.Remaining() > 0 {
		return nil, errors.FailedPreconditionf("resolve %q before rolling again", state.PendingChoice.Title)
	}

	tableID, sourceID, err := o.rollSource(ctx, state, target, input.TableID)
	if err != nil {
		return nil, err
	}
	consumesBoonRoll := target == shadowdark.ItemBoon && state.PendingBoonRolls > 0
	if !consumesBoonRoll && !hasOpenSlot(state, target) {
		return nil, errors.FailedPreconditionf("no %s roll is owed for level %d", target, state.TargetLevel).
			WithMeta("session_id", state.ID)
	}

	var (
		draw     *tables.Draw
		res      *tables.Resolution
		rejected string
		out      = &RollOutput{State: state}
	)
	for attempt := 1; attempt <= MaxRollAttempts; attempt++ {
		draw, res, err = o.resolver.Roll(ctx, tableID, sourceID, target)
		if err != nil {
			return nil, err
		}
		out.Attempts = attempt
		if res.NeedsChoice {
			rejected = ""
			break
		}
		if rejected = o.rejection(state, res.Item); rejected == "" {
			break
		}
		slog.DebugContext(ctx, "draw rejected",
			"session_id", state.ID,
			"table_id", tableID,
			"attempt", attempt,
			"reason", rejected)
	}
	out.Total = draw.Total
	out.Flags = res.Flags

	switch {
	case res.NeedsChoice:
		state.PendingChoice = &advancementsession.PendingChoice{
			Choice:    *res.Choice,
			TableID:   tableID,
			RollTotal: draw.Total,
		}
		out.NeedsChoice = true
		out.Choice = res.Choice
		out.Accepted = true

	case rejected != "" && o.exhaustion == ExhaustionSurface:
		out.Item = res.Item
		out.Warning = fmt.Sprintf("no acceptable result after %d attempts: %s", MaxRollAttempts, rejected)
		slog.WarnContext(ctx, "reroll budget exhausted",
			"session_id", state.ID,
			"table_id", tableID,
			"reason", rejected)
		return out, nil

	default:
		if rejected != "" {
			out.Warning = fmt.Sprintf("accepted after %d attempts: %s", MaxRollAttempts, rejected)
			slog.WarnContext(ctx, "reroll budget exhausted, keeping last draw",
				"session_id", state.ID,
				"table_id", tableID,
				"reason", rejected)
		}
		o.accept(state, target, res.Item)
		out.Item = res.Item
		out.Accepted = true
	}

	if consumesBoonRoll {
		state.PendingBoonRolls--
	}
	if _, err := o.save(ctx, state); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "advancement rolled",
		"session_id", state.ID,
		"table_id", tableID,
		"total", draw.Total,
		"flags", res.Flags.String(),
		"needs_choice", out.NeedsChoice,
		"attempts", out.Attempts)

	data := map[string]any{
		"roll":         string(target),
		"table_id":     tableID,
		"total":        draw.Total,
		"needs_choice": out.NeedsChoice,
	}
	if out.Item != nil {
		data["item"] = out.Item.Name
	}
	o.publish(ctx, EventRolled, state, data)

	return out, nil
}

// rollSource returns the table to draw from and the source id whose filter
// pattern classifies the draw
func (o *orchestrator) rollSource(
	ctx context.Context, state *advancementsession.State, target shadowdark.ItemType, override string,
) (tableID, sourceID string, err error) {
	var doc *shadowdark.Document
	var key string

	if target == shadowdark.ItemBoon {
		if state.PatronID == "" {
			return "", "", errors.FailedPrecondition("boons need a patron")
		}
		if doc, err = o.document(ctx, state.PatronID, shadowdark.KindPatron); err != nil {
			return "", "", err
		}
		key = shadowdark.PayloadBoonTable
	} else {
		if doc, err = o.document(ctx, state.ClassID, shadowdark.KindClass); err != nil {
			return "", "", err
		}
		key = shadowdark.PayloadTalentTable
	}

	tableID = override
	if tableID == "" {
		tableID = doc.RefField(key)
	}
	if tableID == "" {
		return "", "", errors.FailedPreconditionf("%s has no %s", doc.Name, key).WithMeta("document_id", doc.ID)
	}
	return tableID, doc.ID, nil
}

// hasOpenSlot reports whether the level still owes a roll of this kind,
// either as a required slot or as a talent-or-boon choice
func hasOpenSlot(state *advancementsession.State, target shadowdark.ItemType) bool {
	req := state.Requirements
	rolled, required := len(state.RolledTalents), req.RequiredTalents
	if target == shadowdark.ItemBoon {
		rolled, required = len(state.RolledBoons), req.RequiredBoons
	}
	if rolled < required {
		return true
	}
	return flexibleFilled(state) < req.ChoiceRolls
}

// rejection returns why a drawn item cannot be kept, or "" to keep it
func (o *orchestrator) rejection(state *advancementsession.State, item *shadowdark.Item) string {
	if rerollPhrase.MatchString(item.Name) {
		return fmt.Sprintf("%q asks for a reroll", item.Name)
	}
	if o.registry.IsStackable(item) {
		return ""
	}
	if state.Actor.OwnsItemNamed(item.Name) {
		return fmt.Sprintf("%s is already owned", item.Name)
	}
	if state.HasRolledName(item.Name) {
		return fmt.Sprintf("%s was already rolled", item.Name)
	}
	return ""
}

// accept appends an item to the state and runs its roll hook
func (o *orchestrator) accept(state *advancementsession.State, target shadowdark.ItemType, item *shadowdark.Item) {
	item.ID = o.idGen.Generate()
	item.Level = state.TargetLevel
	state.AppendRolled(target, item)
	o.registry.OnRoll(item, state)
}

// ResolveChoice turns one picked option of the open choice into an item.
// A picked option leaves the choice so it cannot be taken twice.
func (o *orchestrator) ResolveChoice(
	ctx context.Context, input *ResolveChoiceInput,
) (_ *ResolveChoiceOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "ResolveChoice", input.SessionID)
	defer func() { endSpan(span, err) }()

	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	pending := state.PendingChoice
	if pending.Remaining() == 0 {
		return nil, errors.FailedPrecondition("there is no open choice")
	}
	if input.OptionIndex < 0 || input.OptionIndex >= len(pending.Options) {
		return nil, errors.InvalidArgumentf("option %d is out of range (0-%d)", input.OptionIndex, len(pending.Options)-1)
	}

	target := pending.Source
	if target == "" {
		target = shadowdark.ItemTalent
	}
	opt := pending.Options[input.OptionIndex]
	item, err := o.itemFromOption(ctx, opt, target)
	if err != nil {
		return nil, err
	}
	o.accept(state, target, item)

	pending.Picked++
	pending.Options = slices.Delete(pending.Options, input.OptionIndex, input.OptionIndex+1)
	remaining := pending.Remaining()
	if remaining == 0 || len(pending.Options) == 0 {
		state.PendingChoice = nil
		remaining = 0
	}

	if _, err := o.save(ctx, state); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "choice resolved",
		"session_id", state.ID,
		"option", opt.Label,
		"item", item.Name,
		"remaining", remaining)
	o.publish(ctx, EventChoice, state, map[string]any{
		"option":    opt.Label,
		"item":      item.Name,
		"remaining": remaining,
	})

	return &ResolveChoiceOutput{
		State:     state,
		Item:      item,
		Remaining: remaining,
	}, nil
}

// itemFromOption resolves a referenced document, or builds an item from the
// option's label and description
func (o *orchestrator) itemFromOption(
	ctx context.Context, opt shadowdark.ChoiceOption, target shadowdark.ItemType,
) (*shadowdark.Item, error) {
	var item *shadowdark.Item
	if opt.DocumentID != "" {
		doc, err := o.docs.GetDocument(ctx, opt.DocumentID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve option %q", opt.Label)
		}
		item = shadowdark.ItemFromDocument(doc)
		if item.Name == "" {
			item.Name = opt.Label
		}
		if item.Type == shadowdark.ItemBasic {
			item.Type = target
		}
	} else {
		item = &shadowdark.Item{
			Name:        opt.Label,
			Type:        target,
			Description: opt.Description,
		}
	}

	item.Action = opt.Action
	for k, v := range opt.Config {
		if item.Config == nil {
			item.Config = make(map[string]any, len(opt.Config))
		}
		item.Config[k] = v
	}
	o.registry.Annotate(item)
	return item, nil
}

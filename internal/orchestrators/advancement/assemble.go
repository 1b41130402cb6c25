package advancement

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// legacyTypes maps placeholder type codes from older content packs
var legacyTypes = map[string]shadowdark.ItemType{
	"talent":        shadowdark.ItemTalent,
	"boon":          shadowdark.ItemBoon,
	"spell":         shadowdark.ItemSpell,
	"language":      shadowdark.ItemLanguage,
	"class-ability": shadowdark.ItemClassAbility,
	"classability":  shadowdark.ItemClassAbility,
	"ability":       shadowdark.ItemClassAbility,
	"feature":       shadowdark.ItemClassAbility,
	"weapon":        shadowdark.ItemWeapon,
	"armor":         shadowdark.ItemArmor,
	"gear":          shadowdark.ItemBasic,
	"item":          shadowdark.ItemBasic,
	"placeholder":   shadowdark.ItemBasic,
	"unknown":       shadowdark.ItemBasic,
}

// AssembleFinalItems builds the items finalize writes: the rolled talents and
// boons stamped with the level and mutated by their handlers, the selected
// spells, every handler's synthesized items and, for a new character, the
// class and ancestry baggage.
func (o *orchestrator) AssembleFinalItems(ctx context.Context, input *AssembleInput) ([]*shadowdark.Item, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	state := input.State

	var items []*shadowdark.Item
	for _, rolled := range state.RolledItems() {
		item := rolled.Clone()
		item.Level = state.TargetLevel
		o.registry.Mutate(item, state)
		items = append(items, item)
	}

	for _, id := range state.SelectedSpells {
		doc, err := o.document(ctx, id, shadowdark.KindSpell)
		if err != nil {
			return nil, err
		}
		spell := shadowdark.ItemFromDocument(doc)
		spell.Level = state.TargetLevel
		items = append(items, spell)
	}

	resolved, err := o.registry.ResolveItems(ctx, state)
	if err != nil {
		return nil, err
	}
	items = append(items, resolved...)

	if state.IsNewCharacter() {
		baggage, err := o.resolveBaggage(ctx, input.Class, input.Ancestry)
		if err != nil {
			return nil, err
		}
		items = append(items, baggage...)
	}

	return sanitize(items), nil
}

// resolveBaggage follows every list of document references on the class and
// ancestry, and on the documents those reference in turn
func (o *orchestrator) resolveBaggage(ctx context.Context, roots ...*shadowdark.Document) ([]*shadowdark.Item, error) {
	visited := make(map[string]bool)
	var items []*shadowdark.Item

	var walk func(doc *shadowdark.Document) error
	walk = func(doc *shadowdark.Document) error {
		for _, key := range slices.Sorted(maps.Keys(doc.Payload)) {
			// spell class lists point back at classes
			if key == shadowdark.PayloadClasses {
				continue
			}
			for _, id := range doc.Refs(key) {
				if visited[id] {
					continue
				}
				visited[id] = true

				ref, err := o.docs.GetDocument(ctx, id)
				if err != nil {
					return errors.Wrapf(err, "failed to resolve %s of %s", key, doc.ID)
				}
				if isContainerKind(ref.Kind) {
					continue
				}
				items = append(items, shadowdark.ItemFromDocument(ref))
				if err := walk(ref); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, root := range roots {
		if root == nil {
			continue
		}
		visited[root.ID] = true
		if err := walk(root); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// isContainerKind reports kinds that are never written to an actor as items
func isContainerKind(kind shadowdark.DocumentKind) bool {
	switch kind {
	case shadowdark.KindClass, shadowdark.KindAncestry, shadowdark.KindPatron, shadowdark.KindRollTable:
		return true
	}
	return false
}

// sanitize drops transient placeholders and malformed effects and maps
// legacy type codes to current item types
func sanitize(items []*shadowdark.Item) []*shadowdark.Item {
	out := make([]*shadowdark.Item, 0, len(items))
	for _, item := range items {
		if item == nil || item.Transient {
			continue
		}
		if item.Effects != nil {
			effects := item.Effects[:0]
			for _, e := range item.Effects {
				if e.Key == "" {
					continue
				}
				if e.Mode == "" {
					e.Mode = shadowdark.EffectModeAdd
				}
				effects = append(effects, e)
			}
			item.Effects = effects
			if len(item.Effects) == 0 {
				item.Effects = nil
			}
		}
		item.Type = normalizeType(item.Type)
		out = append(out, item)
	}
	return out
}

func normalizeType(t shadowdark.ItemType) shadowdark.ItemType {
	switch t {
	case shadowdark.ItemTalent, shadowdark.ItemBoon, shadowdark.ItemSpell, shadowdark.ItemLanguage,
		shadowdark.ItemClassAbility, shadowdark.ItemBasic, shadowdark.ItemWeapon, shadowdark.ItemArmor:
		return t
	}
	if mapped, ok := legacyTypes[shadowdark.NameKey(string(t))]; ok {
		return mapped
	}
	return shadowdark.ItemBasic
}

// Finalize validates the transaction, assembles its items and writes them to
// the actor service. A new character is created; an existing one is updated
// and receives the new items. Partial writes are not rolled back.
func (o *orchestrator) Finalize(ctx context.Context, input *FinalizeInput) (_ *FinalizeOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "Finalize", input.SessionID)
	defer func() { endSpan(span, err) }()

	state, err := o.loadState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	validation := o.ValidateState(state)
	if !validation.Valid {
		slog.InfoContext(ctx, "advancement not ready to finalize",
			"session_id", state.ID,
			"reason", validation.Reason)
		return &FinalizeOutput{State: state, Validation: validation}, nil
	}

	src, err := o.loadSources(ctx, state.ClassID, state.AncestryID, "")
	if err != nil {
		return nil, err
	}
	items, err := o.AssembleFinalItems(ctx, &AssembleInput{
		State:    state,
		Class:    src.class,
		Ancestry: src.ancestry,
	})
	if err != nil {
		return nil, err
	}

	var actor *shadowdark.Actor
	if state.IsNewCharacter() {
		actor, err = o.createCharacter(ctx, state, items)
	} else {
		actor, err = o.advanceCharacter(ctx, state, items)
	}
	if err != nil {
		return nil, err
	}

	state.ActorID = actor.ID
	state.Phase = advancementsession.PhaseFinalized
	if err := o.sessionRepo.Update(ctx, state); err != nil {
		// the actor is already written; the session just expires
		slog.WarnContext(ctx, "failed to mark advancement finalized",
			"session_id", state.ID,
			"error", err)
	}

	slog.InfoContext(ctx, "advancement finalized",
		"session_id", state.ID,
		"actor_id", actor.ID,
		"level", state.TargetLevel,
		"items", len(items))
	o.publish(ctx, EventFinalized, state, map[string]any{
		"actor_id": actor.ID,
		"items":    len(items),
	})

	return &FinalizeOutput{
		State:      state,
		Validation: validation,
		Actor:      actor,
		Items:      items,
	}, nil
}

func (o *orchestrator) createCharacter(
	ctx context.Context, state *advancementsession.State, items []*shadowdark.Item,
) (*shadowdark.Actor, error) {
	actor := &shadowdark.Actor{}
	if state.Actor != nil {
		*actor = *state.Actor
	}
	actor.Name = state.ActorName
	actor.Level = state.TargetLevel
	actor.ClassID = state.ClassID
	actor.AncestryID = state.AncestryID
	actor.PatronID = state.PatronID
	actor.HP = shadowdark.HitPoints{Value: state.HPRoll.Value, Max: state.HPRoll.Value}
	if state.GoldRoll != nil {
		actor.Gold = state.GoldRoll.Value
	}
	actor.Items = items

	created, err := o.external.CreateActor(ctx, actor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actor")
	}
	return created, nil
}

func (o *orchestrator) advanceCharacter(
	ctx context.Context, state *advancementsession.State, items []*shadowdark.Item,
) (*shadowdark.Actor, error) {
	actor := state.Actor
	if actor == nil {
		return nil, errors.Internal("advancement has no actor snapshot")
	}

	gain := state.HPRoll.Value
	err := o.external.UpdateActor(ctx, state.ActorID, map[string]any{
		"level":    state.TargetLevel,
		"hp.max":   actor.HP.Max + gain,
		"hp.value": actor.HP.Value + gain,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update actor")
	}

	created, err := o.external.CreateActorItems(ctx, state.ActorID, items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actor items")
	}

	updated := *actor
	updated.Level = state.TargetLevel
	updated.HP = shadowdark.HitPoints{Value: actor.HP.Value + gain, Max: actor.HP.Max + gain}
	updated.Items = append(slices.Clone(actor.Items), created...)
	return &updated, nil
}

package talents

import (
	"context"
	"fmt"
	"regexp"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

// Handler ids for synthesized grants
const (
	HandlerExtraSpell    = "extra-spell"
	HandlerExtraLanguage = "extra-language"
)

var (
	extraSpellPhrase    = regexp.MustCompile(`(?i)\b(?:learn|gain)\b.*\b(?:additional|extra|bonus|new)\b.*\bspells?\b`)
	extraLanguagePhrase = regexp.MustCompile(`(?i)\blanguages?\b`)
)

// extraSpell asks for a bonus spell and adds it at finalize
type extraSpell struct {
	docs documents.Store
}

func (h *extraSpell) ID() string { return HandlerExtraSpell }

func (h *extraSpell) Matches(item *shadowdark.Item) bool {
	return extraSpellPhrase.MatchString(item.Name)
}

func (h *extraSpell) Configure(_ *shadowdark.Item) map[string]any {
	return map[string]any{ConfigSelection: SelectionSpell}
}

func (h *extraSpell) Stackable() bool { return true }

func (h *extraSpell) IsBlocked(state *advancementsession.State) (bool, string) {
	for _, item := range matchingItems(h, state) {
		if state.ExtraSpellSelection[item.ID] == "" {
			return true, fmt.Sprintf("%s: choose a bonus spell", item.Name)
		}
	}
	return false, ""
}

func (h *extraSpell) ResolveItems(ctx context.Context, state *advancementsession.State) ([]*shadowdark.Item, error) {
	var out []*shadowdark.Item
	for _, item := range matchingItems(h, state) {
		spellID := state.ExtraSpellSelection[item.ID]
		if spellID == "" {
			continue
		}
		doc, err := h.docs.GetDocument(ctx, spellID)
		if err != nil {
			return nil, err
		}
		if doc.Kind != shadowdark.KindSpell {
			return nil, errors.InvalidArgumentf("bonus spell %s is a %s", spellID, doc.Kind)
		}
		spell := shadowdark.ItemFromDocument(doc)
		spell.Level = state.TargetLevel
		spell.Payload = map[string]any{"grantedBy": item.ID}
		out = append(out, spell)
	}
	return out, nil
}

// extraLanguage asks for language picks and adds them at finalize
type extraLanguage struct {
	docs documents.Store
}

func (h *extraLanguage) ID() string { return HandlerExtraLanguage }

func (h *extraLanguage) Matches(item *shadowdark.Item) bool {
	return extraLanguagePhrase.MatchString(item.Name)
}

func (h *extraLanguage) Configure(item *shadowdark.Item) map[string]any {
	return map[string]any{
		ConfigSelection: SelectionLanguage,
		ConfigCount:     leadingNumber(item.Name, 1),
	}
}

func (h *extraLanguage) Stackable() bool { return true }

func (h *extraLanguage) required(state *advancementsession.State) int {
	total := 0
	for _, item := range matchingItems(h, state) {
		total += configInt(item, ConfigCount, 1)
	}
	return total
}

func (h *extraLanguage) IsBlocked(state *advancementsession.State) (bool, string) {
	if need := h.required(state); len(state.SelectedLanguages) < need {
		return true, fmt.Sprintf("choose %d language(s) (%d chosen)", need, len(state.SelectedLanguages))
	}
	return false, ""
}

func (h *extraLanguage) ResolveItems(ctx context.Context, state *advancementsession.State) ([]*shadowdark.Item, error) {
	if h.required(state) == 0 {
		return nil, nil
	}
	var out []*shadowdark.Item
	for _, id := range state.SelectedLanguages {
		doc, err := h.docs.GetDocument(ctx, id)
		if err != nil {
			return nil, err
		}
		if doc.Kind != shadowdark.KindLanguage {
			return nil, errors.InvalidArgumentf("language %s is a %s", id, doc.Kind)
		}
		out = append(out, shadowdark.ItemFromDocument(doc))
	}
	return out, nil
}

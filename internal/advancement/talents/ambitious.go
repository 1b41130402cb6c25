package talents

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

// HandlerAmbitious is the id of the bonus first-level talent handler
const HandlerAmbitious = "ambitious"

const ambitiousName = "Ambitious"

// ambitious grants one extra talent at first level to characters with the
// Ambitious trait, whether already owned or bundled with their ancestry
type ambitious struct {
	docs documents.Store
}

func (h *ambitious) ID() string { return HandlerAmbitious }

func (h *ambitious) Matches(item *shadowdark.Item) bool {
	return shadowdark.NameKey(item.Name) == shadowdark.NameKey(ambitiousName)
}

func (h *ambitious) OnInit(ctx context.Context, input *InitInput) (Adjustment, error) {
	if input == nil || input.TargetLevel != 1 {
		return Adjustment{}, nil
	}
	if input.Actor.OwnsItemNamed(ambitiousName) {
		return Adjustment{Talents: 1}, nil
	}
	if input.Ancestry == nil {
		return Adjustment{}, nil
	}

	for _, raw := range input.Ancestry.Payload {
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		for _, v := range list {
			if s, ok := v.(string); ok && shadowdark.NameKey(s) == shadowdark.NameKey(ambitiousName) {
				return Adjustment{Talents: 1}, nil
			}
			id, ok := shadowdark.ParseRef(v)
			if !ok {
				continue
			}
			doc, err := h.docs.GetDocument(ctx, id)
			if errors.IsNotFound(err) {
				continue
			}
			if err != nil {
				return Adjustment{}, err
			}
			if h.Matches(&shadowdark.Item{Name: doc.Name}) {
				return Adjustment{Talents: 1}, nil
			}
		}
	}
	return Adjustment{}, nil
}

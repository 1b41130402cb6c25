package talents

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

// Config holds the dependencies for the default handlers
type Config struct {
	Documents documents.Store
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Documents == nil {
		vb.RequiredField("Documents")
	}
	return vb.Build()
}

// Registry is the fixed, ordered handler list. Order is rule precedence:
// the first matching handler owns an item.
type Registry struct {
	handlers []Handler
}

// NewRegistry builds the default handler set
func NewRegistry(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return NewRegistryWith(
		&statDistribution{},
		&patronBoon{},
		&weaponMastery{},
		&armorMastery{},
		&extraSpell{docs: cfg.Documents},
		&extraLanguage{docs: cfg.Documents},
		&ambitious{docs: cfg.Documents},
	), nil
}

// NewRegistryWith builds a registry over explicit handlers, in order
func NewRegistryWith(handlers ...Handler) *Registry {
	return &Registry{handlers: handlers}
}

// Handlers returns the handlers in precedence order
func (r *Registry) Handlers() []Handler {
	return append([]Handler(nil), r.handlers...)
}

// Match returns the first handler that claims the item
func (r *Registry) Match(item *shadowdark.Item) Handler {
	if item == nil {
		return nil
	}
	for _, h := range r.handlers {
		if h.Matches(item) {
			return h
		}
	}
	return nil
}

// Annotate attaches the first matching handler's action and config
func (r *Registry) Annotate(item *shadowdark.Item) {
	h := r.Match(item)
	if h == nil {
		return
	}
	item.Action = h.ID()
	if c, ok := h.(Configurer); ok {
		cfg := c.Configure(item)
		if len(cfg) > 0 {
			if item.Config == nil {
				item.Config = make(map[string]any, len(cfg))
			}
			for k, v := range cfg {
				if _, set := item.Config[k]; !set {
					item.Config[k] = v
				}
			}
		}
	}
}

// AnnotateOption attaches handler metadata to a choice option
func (r *Registry) AnnotateOption(opt *shadowdark.ChoiceOption) {
	candidate := &shadowdark.Item{Name: opt.Label, Description: opt.Description, Config: opt.Config}
	r.Annotate(candidate)
	opt.Action = candidate.Action
	opt.Config = candidate.Config
}

// OnInit sums every initializer's adjustment
func (r *Registry) OnInit(ctx context.Context, input *InitInput) (Adjustment, error) {
	var total Adjustment
	for _, h := range r.handlers {
		init, ok := h.(Initializer)
		if !ok {
			continue
		}
		adj, err := init.OnInit(ctx, input)
		if err != nil {
			return Adjustment{}, errors.Wrapf(err, "handler %s failed to initialize", h.ID())
		}
		total.Talents += adj.Talents
		total.Boons += adj.Boons
	}
	return total, nil
}

// OnRoll runs the first matching handler's roll hook
func (r *Registry) OnRoll(item *shadowdark.Item, state *advancementsession.State) {
	if hook, ok := r.Match(item).(RollHook); ok {
		hook.OnRoll(item, state)
	}
}

// Blocked returns the first open sub-selection reason, if any
func (r *Registry) Blocked(state *advancementsession.State) (bool, string) {
	for _, h := range r.handlers {
		b, ok := h.(Blocker)
		if !ok {
			continue
		}
		if blocked, reason := b.IsBlocked(state); blocked {
			return true, reason
		}
	}
	return false, ""
}

// Mutate applies the first matching handler's mutation
func (r *Registry) Mutate(item *shadowdark.Item, state *advancementsession.State) {
	if m, ok := r.Match(item).(Mutator); ok {
		m.MutateItem(item, state)
	}
}

// ResolveItems collects the items every resolver synthesizes
func (r *Registry) ResolveItems(ctx context.Context, state *advancementsession.State) ([]*shadowdark.Item, error) {
	var out []*shadowdark.Item
	for _, h := range r.handlers {
		res, ok := h.(Resolver)
		if !ok {
			continue
		}
		items, err := res.ResolveItems(ctx, state)
		if err != nil {
			return nil, errors.Wrapf(err, "handler %s failed to resolve items", h.ID())
		}
		out = append(out, items...)
	}
	return out, nil
}

// IsStackable reports whether the owning handler allows repeats of the item
func (r *Registry) IsStackable(item *shadowdark.Item) bool {
	s, ok := r.Match(item).(Stacker)
	return ok && s.Stackable()
}

// matchingItems returns the rolled items a handler owns under this registry's
// precedence
func matchingItems(h Handler, state *advancementsession.State) []*shadowdark.Item {
	var out []*shadowdark.Item
	for _, item := range state.RolledItems() {
		if item.Action == h.ID() || (item.Action == "" && h.Matches(item)) {
			out = append(out, item)
		}
	}
	return out
}

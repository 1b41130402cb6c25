// Package talents holds the ordered rule handlers that recognize rolled
// talents and boons and attach follow-up behavior to them.
package talents

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// Handler recognizes the items it is responsible for
type Handler interface {
	ID() string
	Matches(item *shadowdark.Item) bool
}

// InitInput describes the level being gained
type InitInput struct {
	Actor       *shadowdark.Actor
	TargetLevel int
	Class       *shadowdark.Document
	Ancestry    *shadowdark.Document
}

// Adjustment adds to the level's requirements
type Adjustment struct {
	Talents int
	Boons   int
}

// Initializer contributes extra requirements for character-specific grants
type Initializer interface {
	OnInit(ctx context.Context, input *InitInput) (Adjustment, error)
}

// RollHook runs after a matching item is appended to the state
type RollHook interface {
	OnRoll(item *shadowdark.Item, state *advancementsession.State)
}

// Blocker reports an open sub-selection that stops finalize
type Blocker interface {
	IsBlocked(state *advancementsession.State) (bool, string)
}

// Mutator bakes the player's sub-selection into a matching item
type Mutator interface {
	MutateItem(item *shadowdark.Item, state *advancementsession.State)
}

// Resolver synthesizes the items a sub-selection implies
type Resolver interface {
	ResolveItems(ctx context.Context, state *advancementsession.State) ([]*shadowdark.Item, error)
}

// Configurer supplies the action and config attached to matching items and
// choice options
type Configurer interface {
	Configure(item *shadowdark.Item) map[string]any
}

// Stacker marks items that may legitimately be gained more than once
type Stacker interface {
	Stackable() bool
}

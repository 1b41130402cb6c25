// Package external is the client for the document and actor service the
// advancement engine writes finalized characters to
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-companion/internal/clients/external Client

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
)

// Client defines the interface for the external document and actor service
type Client interface {
	// FetchDocument loads a content document by id
	FetchDocument(ctx context.Context, id string) (*shadowdark.Document, error)

	// GetActor loads an actor with its items
	GetActor(ctx context.Context, actorID string) (*shadowdark.Actor, error)

	// CreateActor stores a new actor, assigning an id when it has none
	CreateActor(ctx context.Context, actor *shadowdark.Actor) (*shadowdark.Actor, error)

	// UpdateActor sets fields by dotted path, e.g. "hp.max" or "stats.str"
	UpdateActor(ctx context.Context, actorID string, fields map[string]any) error

	// CreateActorItems appends items to an actor, assigning missing ids
	CreateActorItems(ctx context.Context, actorID string, items []*shadowdark.Item) ([]*shadowdark.Item, error)
}

package advancement

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// Event types published on the bus
const (
	EventRolled    = "advancement.rolled"
	EventChoice    = "advancement.choice"
	EventFinalized = "advancement.finalized"
)

// Entity types used as event source and target
const (
	EntityTypeAdvancement = "advancement"
	EntityTypeCharacter   = "character"
)

// advancementEntity wraps a session to implement core.Entity
type advancementEntity struct {
	*advancementsession.State
}

// GetID returns the session ID
func (e *advancementEntity) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *advancementEntity) GetType() string {
	return EntityTypeAdvancement
}

// characterEntity is the actor a session advances
type characterEntity struct {
	id string
}

func (e *characterEntity) GetID() string   { return e.id }
func (e *characterEntity) GetType() string { return EntityTypeCharacter }

// publish sends an event for the session. Delivery failures are logged and
// never fail the operation that triggered them.
func (o *orchestrator) publish(ctx context.Context, eventType string, state *advancementsession.State, data map[string]any) {
	var target core.Entity
	if state.ActorID != "" {
		target = &characterEntity{id: state.ActorID}
	}

	event := events.NewGameEvent(eventType, &advancementEntity{State: state}, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}
	event.Context().Set("target_level", state.TargetLevel)

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish advancement event",
			"event", eventType,
			"session_id", state.ID,
			"error", err)
	}
}

// Package advancement implements the leveling transaction: requirement
// calculation, table rolls and choices, validation, item assembly and the
// final write to the actor service.
package advancement

//go:generate mockgen -destination=mock/mock_service.go -package=advancementmock github.com/KirkDiggler/rpg-companion/internal/orchestrators/advancement Service

import (
	"context"
	"log/slog"
	"time"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/tables"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/clients/external"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

const (
	// MaxRollAttempts bounds the duplicate/reroll loop
	MaxRollAttempts = 5
	// MaxLevel is the highest level a character can reach
	MaxLevel = 10

	// DefaultSessionTTL is how long an unfinished transaction lives
	DefaultSessionTTL = 2 * time.Hour

	// GoldFormula is starting gold for a new character
	GoldFormula = "2d6 * 5"

	tracerName = "github.com/KirkDiggler/rpg-companion/internal/orchestrators/advancement"
)

// ExhaustionPolicy decides what happens to the last draw when every attempt
// of a roll hit a duplicate or a reroll instruction
type ExhaustionPolicy string

// Exhaustion policies
const (
	// ExhaustionSurface keeps the state unchanged and reports a warning.
	// This is the default and departs from the accept-last-draw rule: the
	// last draw is a duplicate or a reroll instruction, and appending it
	// would put a duplicate talent on the sheet. Use ExhaustionAccept for
	// the accept-last-draw behavior.
	ExhaustionSurface ExhaustionPolicy = "surface"
	// ExhaustionAccept appends the last draw with a warning
	ExhaustionAccept ExhaustionPolicy = "accept"
)

// Service defines the advancement operations
type Service interface {
	// Rule operations
	CalculateAdvancement(ctx context.Context, input *CalculateAdvancementInput) (*CalculateAdvancementOutput, error)
	ValidateState(state *advancementsession.State) ValidationResult
	AssembleFinalItems(ctx context.Context, input *AssembleInput) ([]*shadowdark.Item, error)
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error)
	ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error)

	// Session lifecycle
	BeginAdvancement(ctx context.Context, input *BeginAdvancementInput) (*BeginAdvancementOutput, error)
	GetAdvancement(ctx context.Context, input *GetAdvancementInput) (*GetAdvancementOutput, error)
	RollTalent(ctx context.Context, input *RollInput) (*RollOutput, error)
	RollBoon(ctx context.Context, input *RollInput) (*RollOutput, error)
	ResolveChoice(ctx context.Context, input *ResolveChoiceInput) (*ResolveChoiceOutput, error)
	RollHitPoints(ctx context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error)
	RollGold(ctx context.Context, input *RollGoldInput) (*RollGoldOutput, error)
	UpdateSelections(ctx context.Context, input *UpdateSelectionsInput) (*UpdateSelectionsOutput, error)
	ValidateAdvancement(ctx context.Context, input *ValidateAdvancementInput) (*ValidateAdvancementOutput, error)
	Finalize(ctx context.Context, input *FinalizeInput) (*FinalizeOutput, error)
}

// Config holds the dependencies for the advancement orchestrator
type Config struct {
	Documents   documents.Store
	Resolver    *tables.Resolver
	Registry    *talents.Registry
	SessionRepo advancementsession.Repository
	External    external.Client
	IDGenerator idgen.Generator
	EventBus    events.EventBus

	// Optional
	Roller           toolkitdice.Roller
	Clock            clock.Clock
	ExhaustionPolicy ExhaustionPolicy
	SessionTTL       time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Documents == nil {
		vb.RequiredField("Documents")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.External == nil {
		vb.RequiredField("External")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	switch c.ExhaustionPolicy {
	case "", ExhaustionSurface, ExhaustionAccept:
	default:
		vb.Field("ExhaustionPolicy", "must be surface or accept")
	}

	return vb.Build()
}

type orchestrator struct {
	docs        documents.Store
	resolver    *tables.Resolver
	registry    *talents.Registry
	sessionRepo advancementsession.Repository
	external    external.Client
	idGen       idgen.Generator
	eventBus    events.EventBus
	roller      toolkitdice.Roller
	clock       clock.Clock
	exhaustion  ExhaustionPolicy
	sessionTTL  time.Duration
	tracer      trace.Tracer
}

// NewOrchestrator creates a new advancement orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		docs:        cfg.Documents,
		resolver:    cfg.Resolver,
		registry:    cfg.Registry,
		sessionRepo: cfg.SessionRepo,
		external:    cfg.External,
		idGen:       cfg.IDGenerator,
		eventBus:    cfg.EventBus,
		roller:      cfg.Roller,
		clock:       cfg.Clock,
		exhaustion:  cfg.ExhaustionPolicy,
		sessionTTL:  cfg.SessionTTL,
		tracer:      otel.Tracer(tracerName),
	}
	if o.roller == nil {
		o.roller = toolkitdice.DefaultRoller
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.exhaustion == "" {
		o.exhaustion = ExhaustionSurface
	}
	if o.sessionTTL == 0 {
		o.sessionTTL = DefaultSessionTTL
	}
	return o, nil
}

// Ensure orchestrator implements Service
var _ Service = (*orchestrator)(nil)

func (o *orchestrator) startSpan(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, "advancement."+name,
		trace.WithAttributes(attribute.String("advancement.session_id", sessionID)))
}

// endSpan records err on the span and ends it
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// sources are the content documents a transaction is built on
type sources struct {
	class    *shadowdark.Document
	ancestry *shadowdark.Document
	patron   *shadowdark.Document
}

func (o *orchestrator) loadSources(ctx context.Context, classID, ancestryID, patronID string) (*sources, error) {
	var src sources
	var err error

	if src.class, err = o.document(ctx, classID, shadowdark.KindClass); err != nil {
		return nil, err
	}
	if ancestryID != "" {
		if src.ancestry, err = o.document(ctx, ancestryID, shadowdark.KindAncestry); err != nil {
			return nil, err
		}
	}
	if patronID != "" {
		if src.patron, err = o.document(ctx, patronID, shadowdark.KindPatron); err != nil {
			return nil, err
		}
	}
	return &src, nil
}

func (o *orchestrator) document(ctx context.Context, id string, kind shadowdark.DocumentKind) (*shadowdark.Document, error) {
	doc, err := o.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", kind)
	}
	if doc.Kind != kind {
		return nil, errors.InvalidArgumentf("document %s is a %s, not a %s", id, doc.Kind, kind).
			WithMeta("document_id", id)
	}
	return doc, nil
}

// loadState fetches a session that can still be changed
func (o *orchestrator) loadState(ctx context.Context, sessionID string) (*advancementsession.State, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	out, err := o.sessionRepo.Get(ctx, advancementsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get advancement session")
	}
	if out.State.Phase == advancementsession.PhaseFinalized {
		return nil, errors.FailedPrecondition("advancement is already finalized").
			WithMeta("session_id", sessionID)
	}
	return out.State, nil
}

// save refreshes the phase from validation and persists the state
func (o *orchestrator) save(ctx context.Context, state *advancementsession.State) (ValidationResult, error) {
	result := o.ValidateState(state)
	switch {
	case state.Phase == advancementsession.PhaseFinalized:
	case result.Valid:
		state.Phase = advancementsession.PhaseReadyToFinalize
	default:
		state.Phase = advancementsession.PhaseRolling
	}

	if err := o.sessionRepo.Update(ctx, state); err != nil {
		return result, errors.Wrap(err, "failed to update advancement session")
	}
	return result, nil
}

func (o *orchestrator) ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error) {
	if input == nil || input.ClassName == "" {
		return nil, errors.InvalidArgument("class name is required")
	}
	spells, err := o.docs.GetSpellsBySource(ctx, input.ClassName)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "listed spells",
		"class", input.ClassName,
		"count", len(spells))
	return &ListSpellsOutput{Spells: spells}, nil
}

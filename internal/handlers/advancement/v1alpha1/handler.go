// Package v1alpha1 handles the advancement grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/advancement"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	AdvancementService advancement.Service
	Documents          documents.Store
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.AdvancementService == nil {
		vb.RequiredField("AdvancementService")
	}
	if c.Documents == nil {
		vb.RequiredField("Documents")
	}
	return vb.Build()
}

// Handler implements the advancement gRPC service
type Handler struct {
	service advancement.Service
	docs    documents.Store
}

var _ AdvancementServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		service: cfg.AdvancementService,
		docs:    cfg.Documents,
	}, nil
}

// respond encodes a result or maps the error to a status
func respond(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

func requireSession(id string) error {
	if id == "" {
		return errors.InvalidArgument("session_id is required")
	}
	return nil
}

func toValidation(v advancement.ValidationResult) *Validation {
	return &Validation{Valid: v.Valid, Reason: v.Reason}
}

// decodeSession reads a request that carries only a session id
func decodeSession(req *structpb.Struct) (string, error) {
	var in SessionRequest
	if err := decode(req, &in); err != nil {
		return "", err
	}
	if err := requireSession(in.SessionID); err != nil {
		return "", err
	}
	return in.SessionID, nil
}

// EvaluateDice evaluates a dice formula
func (h *Handler) EvaluateDice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in EvaluateDiceRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}
	if in.Formula == "" {
		return respond(nil, errors.InvalidArgument("formula is required"))
	}

	output, err := h.service.Evaluate(ctx, &advancement.EvaluateInput{
		Formula:  in.Formula,
		Minimize: in.Minimize,
		Maximize: in.Maximize,
		Strict:   in.Strict,
	})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&EvaluateDiceResponse{Result: output.Result}, nil)
}

// CalculateAdvancement reports what a level grants without opening a session
func (h *Handler) CalculateAdvancement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CalculateAdvancementRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}
	if in.ClassID == "" {
		return respond(nil, errors.InvalidArgument("class_id is required"))
	}

	class, err := h.document(ctx, in.ClassID, shadowdark.KindClass)
	if err != nil {
		return respond(nil, err)
	}
	var ancestry *shadowdark.Document
	if in.AncestryID != "" {
		ancestry, err = h.document(ctx, in.AncestryID, shadowdark.KindAncestry)
		if err != nil {
			return respond(nil, err)
		}
	}

	output, err := h.service.CalculateAdvancement(ctx, &advancement.CalculateAdvancementInput{
		Actor:       in.Actor,
		TargetLevel: in.TargetLevel,
		Class:       class,
		Ancestry:    ancestry,
	})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&CalculateAdvancementResponse{Requirements: output.Requirements}, nil)
}

func (h *Handler) document(ctx context.Context, id string, kind shadowdark.DocumentKind) (*shadowdark.Document, error) {
	doc, err := h.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Kind != kind {
		return nil, errors.InvalidArgumentf("document %s is a %s, not a %s", id, doc.Kind, kind)
	}
	return doc, nil
}

// BeginAdvancement opens a leveling session
func (h *Handler) BeginAdvancement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in BeginAdvancementRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}

	output, err := h.service.BeginAdvancement(ctx, &advancement.BeginAdvancementInput{
		ActorID:     in.ActorID,
		Draft:       in.Draft,
		TargetLevel: in.TargetLevel,
	})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&StateResponse{State: output.State}, nil)
}

// GetAdvancement loads a session with its current validation
func (h *Handler) GetAdvancement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := decodeSession(req)
	if err != nil {
		return respond(nil, err)
	}

	output, err := h.service.GetAdvancement(ctx, &advancement.GetAdvancementInput{SessionID: sessionID})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&StateResponse{State: output.State, Validation: toValidation(output.Validation)}, nil)
}

// RollTalent rolls on the class talent table
func (h *Handler) RollTalent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.roll(ctx, req, h.service.RollTalent)
}

// RollBoon rolls on the patron boon table
func (h *Handler) RollBoon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.roll(ctx, req, h.service.RollBoon)
}

type rollFunc func(context.Context, *advancement.RollInput) (*advancement.RollOutput, error)

func (h *Handler) roll(ctx context.Context, req *structpb.Struct, call rollFunc) (*structpb.Struct, error) {
	var in RollRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}
	if err := requireSession(in.SessionID); err != nil {
		return respond(nil, err)
	}

	output, err := call(ctx, &advancement.RollInput{SessionID: in.SessionID, TableID: in.TableID})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&RollResponse{
		State:       output.State,
		Item:        output.Item,
		NeedsChoice: output.NeedsChoice,
		Choice:      output.Choice,
		Total:       output.Total,
		Flags:       output.Flags.String(),
		Attempts:    output.Attempts,
		Accepted:    output.Accepted,
		Warning:     output.Warning,
	}, nil)
}

// ResolveChoice settles one pick of the pending choice
func (h *Handler) ResolveChoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ResolveChoiceRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}
	if err := requireSession(in.SessionID); err != nil {
		return respond(nil, err)
	}

	output, err := h.service.ResolveChoice(ctx, &advancement.ResolveChoiceInput{
		SessionID:   in.SessionID,
		OptionIndex: in.OptionIndex,
	})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&ResolveChoiceResponse{
		State:     output.State,
		Item:      output.Item,
		Remaining: output.Remaining,
	}, nil)
}

// RollHitPoints rolls the level's hit points
func (h *Handler) RollHitPoints(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := decodeSession(req)
	if err != nil {
		return respond(nil, err)
	}

	output, err := h.service.RollHitPoints(ctx, &advancement.RollHitPointsInput{SessionID: sessionID})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&RollHitPointsResponse{State: output.State, HPRoll: output.HPRoll, Roll: output.Roll}, nil)
}

// RollGold rolls a new character's starting gold
func (h *Handler) RollGold(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := decodeSession(req)
	if err != nil {
		return respond(nil, err)
	}

	output, err := h.service.RollGold(ctx, &advancement.RollGoldInput{SessionID: sessionID})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&RollGoldResponse{State: output.State, GoldRoll: output.GoldRoll, Roll: output.Roll}, nil)
}

// UpdateSelections merges player sub-selections into the session
func (h *Handler) UpdateSelections(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in UpdateSelectionsRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}
	if err := requireSession(in.SessionID); err != nil {
		return respond(nil, err)
	}

	output, err := h.service.UpdateSelections(ctx, &advancement.UpdateSelectionsInput{
		SessionID:     in.SessionID,
		StatSelection: in.StatSelection,
		WeaponMastery: in.WeaponMastery,
		ArmorMastery:  in.ArmorMastery,
		ExtraSpells:   in.ExtraSpells,
		Languages:     in.Languages,
		Spells:        in.Spells,
	})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&StateResponse{State: output.State, Validation: toValidation(output.Validation)}, nil)
}

// ValidateAdvancement reports whether the session can be finalized
func (h *Handler) ValidateAdvancement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := decodeSession(req)
	if err != nil {
		return respond(nil, err)
	}

	output, err := h.service.ValidateAdvancement(ctx, &advancement.ValidateAdvancementInput{SessionID: sessionID})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&StateResponse{State: output.State, Validation: toValidation(output.Validation)}, nil)
}

// FinalizeAdvancement applies the session to the character
func (h *Handler) FinalizeAdvancement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := decodeSession(req)
	if err != nil {
		return respond(nil, err)
	}

	output, err := h.service.Finalize(ctx, &advancement.FinalizeInput{SessionID: sessionID})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&FinalizeResponse{
		State:      output.State,
		Validation: *toValidation(output.Validation),
		Actor:      output.Actor,
		Items:      output.Items,
	}, nil)
}

// ListSpells lists the spells a class can learn
func (h *Handler) ListSpells(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListSpellsRequest
	if err := decode(req, &in); err != nil {
		return respond(nil, err)
	}
	if in.ClassName == "" {
		return respond(nil, errors.InvalidArgument("class_name is required"))
	}

	output, err := h.service.ListSpells(ctx, &advancement.ListSpellsInput{ClassName: in.ClassName})
	if err != nil {
		return respond(nil, err)
	}

	return respond(&ListSpellsResponse{Spells: output.Spells}, nil)
}

package v1alpha1

import (
	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// EvaluateDiceRequest is the EvaluateDice payload
type EvaluateDiceRequest struct {
	Formula  string `json:"formula"`
	Minimize bool   `json:"minimize,omitempty"`
	Maximize bool   `json:"maximize,omitempty"`
	Strict   bool   `json:"strict,omitempty"`
}

// EvaluateDiceResponse is the EvaluateDice result
type EvaluateDiceResponse struct {
	Result dice.Result `json:"result"`
}

// CalculateAdvancementRequest is the CalculateAdvancement payload
type CalculateAdvancementRequest struct {
	ClassID     string            `json:"class_id"`
	AncestryID  string            `json:"ancestry_id,omitempty"`
	TargetLevel int               `json:"target_level"`
	Actor       *shadowdark.Actor `json:"actor,omitempty"`
}

// CalculateAdvancementResponse is the CalculateAdvancement result
type CalculateAdvancementResponse struct {
	Requirements advancementsession.Requirements `json:"requirements"`
}

// BeginAdvancementRequest is the BeginAdvancement payload
type BeginAdvancementRequest struct {
	ActorID     string            `json:"actor_id,omitempty"`
	Draft       *shadowdark.Actor `json:"draft,omitempty"`
	TargetLevel int               `json:"target_level,omitempty"`
}

// SessionRequest names an advancement session
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// Validation reports whether a session can be finalized
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// StateResponse carries a session and, when computed, its validation
type StateResponse struct {
	State      *advancementsession.State `json:"state"`
	Validation *Validation               `json:"validation,omitempty"`
}

// RollRequest is the RollTalent and RollBoon payload
type RollRequest struct {
	SessionID string `json:"session_id"`
	TableID   string `json:"table_id,omitempty"`
}

// RollResponse is the RollTalent and RollBoon result
type RollResponse struct {
	State       *advancementsession.State `json:"state"`
	Item        *shadowdark.Item          `json:"item,omitempty"`
	NeedsChoice bool                      `json:"needs_choice"`
	Choice      *shadowdark.Choice        `json:"choice,omitempty"`
	Total       int                       `json:"total"`
	Flags       string                    `json:"flags"`
	Attempts    int                       `json:"attempts"`
	Accepted    bool                      `json:"accepted"`
	Warning     string                    `json:"warning,omitempty"`
}

// ResolveChoiceRequest is the ResolveChoice payload
type ResolveChoiceRequest struct {
	SessionID   string `json:"session_id"`
	OptionIndex int    `json:"option_index"`
}

// ResolveChoiceResponse is the ResolveChoice result
type ResolveChoiceResponse struct {
	State     *advancementsession.State `json:"state"`
	Item      *shadowdark.Item          `json:"item"`
	Remaining int                       `json:"remaining"`
}

// RollHitPointsResponse is the RollHitPoints result
type RollHitPointsResponse struct {
	State  *advancementsession.State  `json:"state"`
	HPRoll *advancementsession.HPRoll `json:"hp_roll"`
	Roll   dice.Result                `json:"roll"`
}

// RollGoldResponse is the RollGold result
type RollGoldResponse struct {
	State    *advancementsession.State    `json:"state"`
	GoldRoll *advancementsession.GoldRoll `json:"gold_roll"`
	Roll     dice.Result                  `json:"roll"`
}

// UpdateSelectionsRequest is the UpdateSelections payload
type UpdateSelectionsRequest struct {
	SessionID     string                    `json:"session_id"`
	StatSelection map[string]map[string]int `json:"stat_selection,omitempty"`
	WeaponMastery map[string]string         `json:"weapon_mastery,omitempty"`
	ArmorMastery  map[string]string         `json:"armor_mastery,omitempty"`
	ExtraSpells   map[string]string         `json:"extra_spells,omitempty"`
	Languages     []string                  `json:"languages,omitempty"`
	Spells        []string                  `json:"spells,omitempty"`
}

// FinalizeResponse is the FinalizeAdvancement result
type FinalizeResponse struct {
	State      *advancementsession.State `json:"state"`
	Validation Validation                `json:"validation"`
	Actor      *shadowdark.Actor         `json:"actor,omitempty"`
	Items      []*shadowdark.Item        `json:"items,omitempty"`
}

// ListSpellsRequest is the ListSpells payload
type ListSpellsRequest struct {
	ClassName string `json:"class_name"`
}

// ListSpellsResponse is the ListSpells result
type ListSpellsResponse struct {
	Spells []*shadowdark.Document `json:"spells"`
}

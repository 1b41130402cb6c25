package advancement

import (
	"github.com/KirkDiggler/rpg-companion/internal/advancement/filters"
	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
)

// CalculateAdvancementInput defines the request for computing what a level grants
type CalculateAdvancementInput struct {
	Actor       *shadowdark.Actor
	TargetLevel int
	Class       *shadowdark.Document
	Ancestry    *shadowdark.Document
}

// CalculateAdvancementOutput defines the response for computing what a level grants
type CalculateAdvancementOutput struct {
	Requirements advancementsession.Requirements
}

// BeginAdvancementInput defines the request for starting a leveling transaction.
// Either ActorID names an existing character, or Draft describes a new one.
type BeginAdvancementInput struct {
	ActorID     string
	Draft       *shadowdark.Actor
	TargetLevel int
}

// BeginAdvancementOutput defines the response for starting a leveling transaction
type BeginAdvancementOutput struct {
	State *advancementsession.State
}

// GetAdvancementInput defines the request for loading a transaction
type GetAdvancementInput struct {
	SessionID string
}

// GetAdvancementOutput defines the response for loading a transaction
type GetAdvancementOutput struct {
	State      *advancementsession.State
	Validation ValidationResult
}

// RollInput defines the request for a talent or boon roll. TableID overrides
// the table named by the class or patron.
type RollInput struct {
	SessionID string
	TableID   string
}

// RollOutput is the shape shared by talent and boon rolls: either an
// accepted item or a choice the player must resolve
type RollOutput struct {
	State       *advancementsession.State
	Item        *shadowdark.Item
	NeedsChoice bool
	Choice      *shadowdark.Choice
	Total       int
	Flags       filters.Flags
	Attempts    int
	// Accepted is false when the reroll budget ran out and the last draw
	// was not kept
	Accepted bool
	Warning  string
}

// ResolveChoiceInput defines the request for settling one pick of a pending choice
type ResolveChoiceInput struct {
	SessionID   string
	OptionIndex int
}

// ResolveChoiceOutput defines the response for settling a pick
type ResolveChoiceOutput struct {
	State *advancementsession.State
	Item  *shadowdark.Item
	// Remaining is how many picks the choice still owes
	Remaining int
}

// RollHitPointsInput defines the request for the level's hit point roll
type RollHitPointsInput struct {
	SessionID string
}

// RollHitPointsOutput defines the response for the hit point roll
type RollHitPointsOutput struct {
	State  *advancementsession.State
	HPRoll *advancementsession.HPRoll
	Roll   dice.Result
}

// RollGoldInput defines the request for a new character's starting gold
type RollGoldInput struct {
	SessionID string
}

// RollGoldOutput defines the response for the starting gold roll
type RollGoldOutput struct {
	State    *advancementsession.State
	GoldRoll *advancementsession.GoldRoll
	Roll     dice.Result
}

// UpdateSelectionsInput carries player sub-selections. Maps are keyed by the
// rolled item id and merge into the state; nil slices leave the current
// selection untouched.
type UpdateSelectionsInput struct {
	SessionID     string
	StatSelection map[string]map[string]int
	WeaponMastery map[string]string
	ArmorMastery  map[string]string
	ExtraSpells   map[string]string
	Languages     []string
	Spells        []string
}

// UpdateSelectionsOutput defines the response for updating selections
type UpdateSelectionsOutput struct {
	State      *advancementsession.State
	Validation ValidationResult
}

// ValidationResult reports whether a state can be finalized. Reason is set
// only when Valid is false.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// ValidateAdvancementInput defines the request for validating a transaction
type ValidateAdvancementInput struct {
	SessionID string
}

// ValidateAdvancementOutput defines the response for validating a transaction
type ValidateAdvancementOutput struct {
	State      *advancementsession.State
	Validation ValidationResult
}

// AssembleInput defines what item assembly works from
type AssembleInput struct {
	State    *advancementsession.State
	Class    *shadowdark.Document
	Ancestry *shadowdark.Document
}

// FinalizeInput defines the request for applying a transaction to the actor
type FinalizeInput struct {
	SessionID string
}

// FinalizeOutput defines the response for finalize. When Validation is not
// valid nothing was written.
type FinalizeOutput struct {
	State      *advancementsession.State
	Validation ValidationResult
	Actor      *shadowdark.Actor
	Items      []*shadowdark.Item
}

// ListSpellsInput defines the request for the spells a class can learn
type ListSpellsInput struct {
	ClassName string
}

// ListSpellsOutput defines the response for listing spells
type ListSpellsOutput struct {
	Spells []*shadowdark.Document
}

// EvaluateInput defines the request for evaluating a dice formula
type EvaluateInput struct {
	Formula  string
	Minimize bool
	Maximize bool
	// Strict turns a malformed formula into an error instead of a zero total
	Strict bool
}

// EvaluateOutput defines the response for evaluating a dice formula
type EvaluateOutput struct {
	Result dice.Result
}

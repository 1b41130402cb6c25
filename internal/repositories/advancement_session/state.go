package advancementsession

import (
	"time"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
)

// Phase is where a leveling transaction stands
type Phase string

// Phases, in order
const (
	PhaseIdle            Phase = "IDLE"
	PhaseRolling         Phase = "ROLLING"
	PhaseReadyToFinalize Phase = "READY_TO_FINALIZE"
	PhaseFinalized       Phase = "FINALIZED"
)

// Requirements is what a level grants
type Requirements struct {
	RequiredTalents int  `json:"required_talents"`
	RequiredBoons   int  `json:"required_boons"`
	ChoiceRolls     int  `json:"choice_rolls"`
	NeedsBoon       bool `json:"needs_boon"`
}

// HPRoll records the hit point gain for the level
type HPRoll struct {
	Formula  string `json:"formula"`
	Rolled   int    `json:"rolled"`
	Modifier int    `json:"modifier"`
	Value    int    `json:"value"`
}

// GoldRoll records starting gold
type GoldRoll struct {
	Formula string `json:"formula"`
	Value   int    `json:"value"`
}

// PendingChoice is a table draw waiting for the player to pick
type PendingChoice struct {
	shadowdark.Choice
	TableID   string `json:"table_id"`
	RollTotal int    `json:"roll_total"`
	Picked    int    `json:"picked"`
}

// Remaining returns how many picks are still owed
func (p *PendingChoice) Remaining() int {
	if p == nil {
		return 0
	}
	return max(p.ChooseCount-p.Picked, 0)
}

// State is the single mutable aggregate of one leveling transaction.
// Rolled item lists only grow until finalize.
type State struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id,omitempty"`
	ActorName  string `json:"actor_name,omitempty"`
	ClassID    string `json:"class_id"`
	AncestryID string `json:"ancestry_id,omitempty"`
	PatronID   string `json:"patron_id,omitempty"`
	// Actor is the character as it stood when the transaction began
	Actor *shadowdark.Actor `json:"actor,omitempty"`

	CurrentLevel int          `json:"current_level"`
	TargetLevel  int          `json:"target_level"`
	Phase        Phase        `json:"phase"`
	Requirements Requirements `json:"requirements"`

	RolledTalents     []*shadowdark.Item `json:"rolled_talents,omitempty"`
	RolledBoons       []*shadowdark.Item `json:"rolled_boons,omitempty"`
	SelectedSpells    []string           `json:"selected_spells,omitempty"`
	SelectedLanguages []string           `json:"selected_languages,omitempty"`

	HPRoll   *HPRoll   `json:"hp_roll,omitempty"`
	GoldRoll *GoldRoll `json:"gold_roll,omitempty"`

	// StatSelection maps a distribution item id to stat points
	StatSelection map[string]map[string]int `json:"stat_selection,omitempty"`
	StatPool      int                       `json:"stat_pool"`
	// Mastery and bonus spell picks keyed by the granting item id
	WeaponMasterySelection map[string]string `json:"weapon_mastery_selection,omitempty"`
	ArmorMasterySelection  map[string]string `json:"armor_mastery_selection,omitempty"`
	ExtraSpellSelection    map[string]string `json:"extra_spell_selection,omitempty"`

	PendingChoice    *PendingChoice `json:"pending_choice,omitempty"`
	PendingBoonRolls int            `json:"pending_boon_rolls"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsNewCharacter reports whether the transaction creates the character
func (s *State) IsNewCharacter() bool {
	return s.CurrentLevel == 0
}

// RolledItems returns talents then boons
func (s *State) RolledItems() []*shadowdark.Item {
	out := make([]*shadowdark.Item, 0, len(s.RolledTalents)+len(s.RolledBoons))
	out = append(out, s.RolledTalents...)
	return append(out, s.RolledBoons...)
}

// HasRolledName reports whether this session already rolled an item with the name
func (s *State) HasRolledName(name string) bool {
	key := shadowdark.NameKey(name)
	for _, item := range s.RolledItems() {
		if shadowdark.NameKey(item.Name) == key {
			return true
		}
	}
	return false
}

// AppendRolled adds an item to the talent or boon list
func (s *State) AppendRolled(target shadowdark.ItemType, item *shadowdark.Item) {
	if target == shadowdark.ItemBoon {
		s.RolledBoons = append(s.RolledBoons, item)
		return
	}
	s.RolledTalents = append(s.RolledTalents, item)
}

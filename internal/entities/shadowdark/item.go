package shadowdark

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ItemType is the item type written to the actor sheet
type ItemType string

// Item types produced by advancement
const (
	ItemTalent       ItemType = "Talent"
	ItemBoon         ItemType = "Boon"
	ItemSpell        ItemType = "Spell"
	ItemLanguage     ItemType = "Language"
	ItemClassAbility ItemType = "Class Ability"
	ItemBasic        ItemType = "Basic"
	ItemWeapon       ItemType = "Weapon"
	ItemArmor        ItemType = "Armor"
)

// Effect modes
const (
	EffectModeAdd      = "add"
	EffectModeOverride = "override"
	EffectModeUpgrade  = "upgrade"
)

// Effect is a single mechanical change an item applies to the actor
type Effect struct {
	Key   string `json:"key" yaml:"key"`
	Mode  string `json:"mode" yaml:"mode"`
	Value string `json:"value" yaml:"value"`
}

// Item is the unit written to the actor at finalize. Transient items are
// placeholders that drive follow-up rolls and are never persisted.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        ItemType       `json:"type"`
	Description string         `json:"description,omitempty"`
	SourceID    string         `json:"source_id,omitempty"`
	Level       int            `json:"level,omitempty"`
	Action      string         `json:"action,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Effects     []Effect       `json:"effects,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	Transient   bool           `json:"transient,omitempty"`
}

// Clone returns a copy safe to mutate without touching the original
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.Config != nil {
		c.Config = make(map[string]any, len(i.Config))
		for k, v := range i.Config {
			c.Config[k] = v
		}
	}
	if i.Effects != nil {
		c.Effects = append([]Effect(nil), i.Effects...)
	}
	if i.Payload != nil {
		c.Payload = make(map[string]any, len(i.Payload))
		for k, v := range i.Payload {
			c.Payload[k] = v
		}
	}
	return &c
}

// NameKey folds a display name for case-insensitive comparison
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// ItemTypeForKind maps a document kind to the item type it produces
func ItemTypeForKind(kind DocumentKind) ItemType {
	switch kind {
	case KindTalent:
		return ItemTalent
	case KindBoon:
		return ItemBoon
	case KindSpell:
		return ItemSpell
	case KindLanguage:
		return ItemLanguage
	default:
		return ItemBasic
	}
}

// ItemFromDocument builds an item from a content document. A payload "type"
// overrides the kind-derived type and payload "effects" become item effects.
func ItemFromDocument(doc *Document) *Item {
	if doc == nil {
		return nil
	}
	item := &Item{
		Name:        doc.Name,
		Type:        ItemTypeForKind(doc.Kind),
		Description: doc.Description,
		SourceID:    doc.ID,
	}
	if t := doc.String("type"); t != "" {
		item.Type = ItemType(t)
	}
	for _, raw := range doc.List(PayloadEffects) {
		if e, ok := effectFromPayload(raw); ok {
			item.Effects = append(item.Effects, e)
		}
	}
	return item
}

func effectFromPayload(raw any) (Effect, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Effect{}, false
	}
	key, _ := m["key"].(string)
	if key == "" {
		return Effect{}, false
	}
	mode, _ := m["mode"].(string)
	if mode == "" {
		mode = EffectModeAdd
	}
	var value string
	if v, ok := m["value"]; ok && v != nil {
		value = fmt.Sprint(v)
	}
	return Effect{Key: key, Mode: mode, Value: value}, true
}

package shadowdark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	testCases := []struct {
		name   string
		value  any
		wantID string
		wantOK bool
	}{
		{name: "reference", value: "ref:class-wizard", wantID: "class-wizard", wantOK: true},
		{name: "plain text", value: "Wizard", wantOK: false},
		{name: "empty id", value: "ref: ", wantOK: false},
		{name: "not a string", value: 12, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ParseRef(tc.value)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestDocumentPayloadAccessors(t *testing.T) {
	doc := &Document{
		ID:   "spell-light",
		Kind: KindSpell,
		Payload: map[string]any{
			PayloadClasses: []any{"ref:class-wizard", "ref:class-priest", "nonsense"},
			PayloadTier:    float64(1),
			"hpAdvantage":  true,
		},
	}

	assert.Equal(t, []string{"class-wizard", "class-priest"}, doc.Refs(PayloadClasses))
	assert.Equal(t, 1, doc.Int(PayloadTier))
	assert.True(t, doc.Bool(PayloadHPAdvantage))
	assert.Empty(t, doc.String("missing"))
}

func TestRollTableMatching(t *testing.T) {
	table := &RollTable{
		Formula: "2d6",
		Results: []TableResult{
			{Range: [2]int{2, 2}, Kind: ResultText, Text: "Gain Weapon Mastery"},
			{Range: [2]int{12, 12}, Kind: ResultText, Text: "Choose one option:"},
			{Range: [2]int{12, 12}, Kind: ResultText, Text: "+2 to Strength"},
		},
	}

	assert.Len(t, table.Matching(12), 2)
	assert.Len(t, table.Matching(2), 1)
	assert.Empty(t, table.Matching(7))
}

func TestItemFromDocument(t *testing.T) {
	doc := &Document{
		ID:   "talent-armor",
		Kind: KindTalent,
		Name: "Armor Mastery",
		Payload: map[string]any{
			PayloadEffects: []any{
				map[string]any{"key": "system.bonuses.acBonus", "value": float64(1)},
				map[string]any{"mode": "add"},
			},
		},
	}

	item := ItemFromDocument(doc)
	assert.Equal(t, ItemTalent, item.Type)
	assert.Equal(t, "talent-armor", item.SourceID)
	assert.Equal(t, []Effect{{Key: "system.bonuses.acBonus", Mode: EffectModeAdd, Value: "1"}}, item.Effects)
}

func TestAbilityModifier(t *testing.T) {
	assert.Equal(t, -4, AbilityModifier(3))
	assert.Equal(t, -1, AbilityModifier(9))
	assert.Equal(t, 0, AbilityModifier(10))
	assert.Equal(t, 0, AbilityModifier(11))
	assert.Equal(t, 4, AbilityModifier(18))
	assert.Equal(t, 4, AbilityModifier(20))
	assert.Equal(t, 4, AbilityModifier(25))
	assert.Equal(t, -4, AbilityModifier(1))
	assert.Equal(t, -4, AbilityModifier(0))
}

package talents_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

type RegistryTestSuite struct {
	suite.Suite
	ctx      context.Context
	registry *talents.Registry
	state    *advancementsession.State
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := documents.NewStore(&documents.Config{Source: documents.NewMemorySource(
		&shadowdark.Document{ID: "spell-sleep", Kind: shadowdark.KindSpell, Name: "Sleep"},
		&shadowdark.Document{ID: "lang-elvish", Kind: shadowdark.KindLanguage, Name: "Elvish"},
		&shadowdark.Document{ID: "lang-dwarvish", Kind: shadowdark.KindLanguage, Name: "Dwarvish"},
		&shadowdark.Document{ID: "talent-ambitious", Kind: shadowdark.KindTalent, Name: "Ambitious"},
		&shadowdark.Document{
			ID:      "ancestry-human",
			Kind:    shadowdark.KindAncestry,
			Name:    "Human",
			Payload: map[string]any{"talents": []any{"ref:talent-ambitious"}},
		},
	)})
	s.Require().NoError(err)

	s.registry, err = talents.NewRegistry(&talents.Config{Documents: store})
	s.Require().NoError(err)

	s.state = &advancementsession.State{
		ID:          "adv_1",
		TargetLevel: 3,
	}
}

// roll annotates an item, appends it and runs the roll hook the way the
// orchestrator does
func (s *RegistryTestSuite) roll(id, name string) *shadowdark.Item {
	item := &shadowdark.Item{ID: id, Name: name, Type: shadowdark.ItemTalent}
	s.registry.Annotate(item)
	s.state.AppendRolled(shadowdark.ItemTalent, item)
	s.registry.OnRoll(item, s.state)
	return item
}

func (s *RegistryTestSuite) TestNewRegistryRequiresDocuments() {
	_, err := talents.NewRegistry(&talents.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestHandlerOrder() {
	var ids []string
	for _, h := range s.registry.Handlers() {
		ids = append(ids, h.ID())
	}
	s.Equal([]string{
		talents.HandlerStatDistribution,
		talents.HandlerPatronBoon,
		talents.HandlerWeaponMastery,
		talents.HandlerArmorMastery,
		talents.HandlerExtraSpell,
		talents.HandlerExtraLanguage,
		talents.HandlerAmbitious,
	}, ids)
}

func (s *RegistryTestSuite) TestAnnotate() {
	testCases := []struct {
		name       string
		itemName   string
		wantAction string
		wantConfig map[string]any
	}{
		{
			name:       "distribute",
			itemName:   "Distribute to Stats",
			wantAction: talents.HandlerStatDistribution,
			wantConfig: map[string]any{talents.ConfigSelection: talents.SelectionStats, talents.ConfigPoints: 2},
		},
		{
			name:       "named stats",
			itemName:   "+2 to Strength, Dexterity, or Constitution",
			wantAction: talents.HandlerStatDistribution,
			wantConfig: map[string]any{
				talents.ConfigSelection: talents.SelectionStats,
				talents.ConfigPoints:    2,
				talents.ConfigStats:     []string{shadowdark.StatSTR, shadowdark.StatDEX, shadowdark.StatCON},
			},
		},
		{
			name:       "one point to two stats",
			itemName:   "+1 to two different stats",
			wantAction: talents.HandlerStatDistribution,
			wantConfig: map[string]any{
				talents.ConfigSelection:  talents.SelectionStats,
				talents.ConfigPoints:     2,
				talents.ConfigMaxPerStat: 1,
			},
		},
		{
			name:       "boon twice",
			itemName:   shadowdark.LabelPatronBoonTwice,
			wantAction: talents.HandlerPatronBoon,
			wantConfig: map[string]any{talents.ConfigRolls: 2},
		},
		{
			name:       "weapon mastery",
			itemName:   "Gain Weapon Mastery with one additional weapon type",
			wantAction: talents.HandlerWeaponMastery,
			wantConfig: map[string]any{talents.ConfigSelection: talents.SelectionWeapon},
		},
		{
			name:       "extra spell",
			itemName:   "Learn one additional wizard spell of any tier you know",
			wantAction: talents.HandlerExtraSpell,
			wantConfig: map[string]any{talents.ConfigSelection: talents.SelectionSpell},
		},
		{
			name:       "languages",
			itemName:   "Learn two additional common languages",
			wantAction: talents.HandlerExtraLanguage,
			wantConfig: map[string]any{talents.ConfigSelection: talents.SelectionLanguage, talents.ConfigCount: 2},
		},
		{
			name:     "no handler",
			itemName: "+1 to melee and ranged attacks",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			item := &shadowdark.Item{Name: tc.itemName}
			s.registry.Annotate(item)
			s.Equal(tc.wantAction, item.Action)
			s.Equal(tc.wantConfig, item.Config)
		})
	}
}

func (s *RegistryTestSuite) TestAnnotateOption() {
	opt := &shadowdark.ChoiceOption{Label: "Weapon Mastery"}
	s.registry.AnnotateOption(opt)
	s.Equal(talents.HandlerWeaponMastery, opt.Action)
	s.Equal(talents.SelectionWeapon, opt.Config[talents.ConfigSelection])
}

func (s *RegistryTestSuite) TestStatDistributionBlocksUntilAllocated() {
	item := s.roll("item_1", "+1 to two different stats")
	s.Equal(2, s.state.StatPool)

	blocked, reason := s.registry.Blocked(s.state)
	s.True(blocked)
	s.Contains(reason, "allocate 2 stat points")

	s.state.StatSelection = map[string]map[string]int{"item_1": {shadowdark.StatSTR: 2}}
	blocked, reason = s.registry.Blocked(s.state)
	s.True(blocked)
	s.Contains(reason, "at most 1 point")

	s.state.StatSelection["item_1"] = map[string]int{shadowdark.StatSTR: 1, shadowdark.StatWIS: 1}
	blocked, _ = s.registry.Blocked(s.state)
	s.False(blocked)

	s.registry.Mutate(item, s.state)
	s.Equal("+1 to two different stats (+1 STR, +1 WIS)", item.Name)
	s.Equal([]shadowdark.Effect{
		{Key: "system.abilities.str.base", Mode: shadowdark.EffectModeAdd, Value: "1"},
		{Key: "system.abilities.wis.base", Mode: shadowdark.EffectModeAdd, Value: "1"},
	}, item.Effects)
}

func (s *RegistryTestSuite) TestStatDistributionRestrictsNamedStats() {
	s.roll("item_1", "+2 to Strength or Wisdom stat")
	s.state.StatSelection = map[string]map[string]int{"item_1": {shadowdark.StatDEX: 2}}

	blocked, reason := s.registry.Blocked(s.state)
	s.True(blocked)
	s.Contains(reason, "cannot go to DEX")
}

func (s *RegistryTestSuite) TestPatronBoonAddsPendingRolls() {
	item := s.roll("item_1", shadowdark.LabelPatronBoonTwice)

	s.True(item.Transient)
	s.Equal(2, s.state.PendingBoonRolls)
	s.True(s.registry.IsStackable(item))

	blocked, reason := s.registry.Blocked(s.state)
	s.True(blocked)
	s.Contains(reason, "2 patron boon roll(s) pending")
}

func (s *RegistryTestSuite) TestWeaponMastery() {
	item := s.roll("item_1", "Weapon Mastery")

	blocked, reason := s.registry.Blocked(s.state)
	s.True(blocked)
	s.Contains(reason, "choose a weapon type")

	s.state.WeaponMasterySelection = map[string]string{"item_1": "longsword"}
	blocked, _ = s.registry.Blocked(s.state)
	s.False(blocked)

	s.registry.Mutate(item, s.state)
	s.Equal("Weapon Mastery (Longsword)", item.Name)
	s.Equal("longsword", item.Effects[0].Value)
}

func (s *RegistryTestSuite) TestArmorMasteryAddsArmorClass() {
	item := s.roll("item_1", "Choose one kind of armor. You get +1 AC from that armor")
	s.state.ArmorMasterySelection = map[string]string{"item_1": "chainmail"}

	s.registry.Mutate(item, s.state)
	s.Equal("Armor Mastery (Chainmail)", item.Name)
	s.Contains(item.Effects, shadowdark.Effect{Key: "system.bonuses.acBonus", Mode: shadowdark.EffectModeAdd, Value: "1"})
}

func (s *RegistryTestSuite) TestExtraSpellResolves() {
	s.roll("item_1", "Learn one additional wizard spell")

	blocked, _ := s.registry.Blocked(s.state)
	s.True(blocked)

	s.state.ExtraSpellSelection = map[string]string{"item_1": "spell-sleep"}
	items, err := s.registry.ResolveItems(s.ctx, s.state)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Sleep", items[0].Name)
	s.Equal(shadowdark.ItemSpell, items[0].Type)
	s.Equal(3, items[0].Level)

	s.state.ExtraSpellSelection["item_1"] = "lang-elvish"
	_, err = s.registry.ResolveItems(s.ctx, s.state)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestExtraLanguageResolves() {
	s.roll("item_1", "Learn two additional common languages")

	s.state.SelectedLanguages = []string{"lang-elvish"}
	blocked, reason := s.registry.Blocked(s.state)
	s.True(blocked)
	s.Contains(reason, "choose 2 language(s)")

	s.state.SelectedLanguages = append(s.state.SelectedLanguages, "lang-dwarvish")
	items, err := s.registry.ResolveItems(s.ctx, s.state)
	s.Require().NoError(err)
	s.Len(items, 2)
}

func (s *RegistryTestSuite) TestAmbitiousOnInit() {
	human := &shadowdark.Document{
		ID:      "ancestry-human",
		Kind:    shadowdark.KindAncestry,
		Payload: map[string]any{"talents": []any{"ref:talent-ambitious"}},
	}

	testCases := []struct {
		name  string
		input *talents.InitInput
		want  talents.Adjustment
	}{
		{
			name:  "ancestry grants ambitious at level one",
			input: &talents.InitInput{Actor: &shadowdark.Actor{}, TargetLevel: 1, Ancestry: human},
			want:  talents.Adjustment{Talents: 1},
		},
		{
			name: "owned trait",
			input: &talents.InitInput{
				Actor:       &shadowdark.Actor{Items: []*shadowdark.Item{{Name: "ambitious"}}},
				TargetLevel: 1,
			},
			want: talents.Adjustment{Talents: 1},
		},
		{
			name:  "only at level one",
			input: &talents.InitInput{Actor: &shadowdark.Actor{}, TargetLevel: 3, Ancestry: human},
		},
		{
			name:  "no trait",
			input: &talents.InitInput{Actor: &shadowdark.Actor{}, TargetLevel: 1},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			adj, err := s.registry.OnInit(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.want, adj)
		})
	}
}

func (s *RegistryTestSuite) TestPhrases() {
	s.True(talents.IsStatPhrase("+2 to Dexterity"))
	s.True(talents.IsStatPhrase("Distribute to Stats"))
	s.True(talents.IsStatPhrase("+2 points to distribute to stats"))
	s.False(talents.IsStatPhrase("+1 to melee and ranged attacks"))
	s.False(talents.IsStatPhrase("+1 to wizard spellcasting checks"))

	s.True(talents.IsBoonPhrase("Roll a patron boon"))
	s.True(talents.IsBoonPhrase("Patron Boon (x2)"))
	s.False(talents.IsBoonPhrase("Weapon Mastery"))
	s.True(talents.IsTwicePhrase("Roll two patron boons"))
}

package tables_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/filters"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/tables"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

type fixedRoller struct {
	values []int
	next   int
}

func (r *fixedRoller) Roll(_ int) (int, error) {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v, nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

func text(low, high int, s string) shadowdark.TableResult {
	return shadowdark.TableResult{Range: [2]int{low, high}, Kind: shadowdark.ResultText, Text: s}
}

func fighterTable() *shadowdark.RollTable {
	return &shadowdark.RollTable{
		Formula: "2d6",
		Results: []shadowdark.TableResult{
			text(2, 2, "Gain Weapon Mastery with one additional weapon type"),
			text(3, 6, "+1 to melee and ranged attacks"),
			text(7, 9, "+2 to Strength, Dexterity, or Constitution"),
			text(10, 11, "Choose one kind of armor. You get +1 AC from that armor"),
			text(12, 12, "Choose one option:"),
			text(12, 12, "Weapon Mastery"),
			text(12, 12, "+2 points to distribute to stats"),
			{Range: [2]int{12, 12}, Kind: shadowdark.ResultDocument, Text: "Armor Mastery", DocumentID: "talent-armor-mastery"},
		},
	}
}

type ResolverTestSuite struct {
	suite.Suite
	ctx      context.Context
	roller   *fixedRoller
	resolver *tables.Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := documents.NewStore(&documents.Config{Source: documents.NewMemorySource(
		&shadowdark.Document{ID: "table-fighter-talents", Kind: shadowdark.KindRollTable, Name: "Fighter Talents", Table: fighterTable()},
		&shadowdark.Document{ID: "talent-armor-mastery", Kind: shadowdark.KindTalent, Description: "+1 AC with one armor"},
		&shadowdark.Document{ID: "boon-eye", Kind: shadowdark.KindBoon, Name: "Eye of the Serpent"},
	)})
	s.Require().NoError(err)

	registry, err := talents.NewRegistry(&talents.Config{Documents: store})
	s.Require().NoError(err)

	classifier, err := filters.Default()
	s.Require().NoError(err)

	s.roller = &fixedRoller{values: []int{6, 6}}
	s.resolver, err = tables.NewResolver(&tables.Config{
		Documents:  store,
		Classifier: classifier,
		Registry:   registry,
		Roller:     s.roller,
	})
	s.Require().NoError(err)
}

func (s *ResolverTestSuite) draw(results ...shadowdark.TableResult) *tables.Draw {
	return &tables.Draw{TableID: "table-test", Target: shadowdark.ItemTalent, Total: 12, Results: results}
}

func labels(choice *shadowdark.Choice) []string {
	var out []string
	for _, o := range choice.Options {
		out = append(out, o.Label)
	}
	return out
}

func (s *ResolverTestSuite) TestNewResolverValidatesConfig() {
	_, err := tables.NewResolver(&tables.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ResolverTestSuite) TestChooseOneWithDistributionCollapsesStatOptions() {
	draw := s.draw(
		text(12, 12, "Choose one option:"),
		text(12, 12, "+1 to Strength"),
		text(12, 12, "+2 to Dexterity"),
		text(12, 12, "Weapon Mastery"),
	)
	flags := filters.DropChooseOne | filters.ChooseOne | filters.HasDistributeTable

	res, err := s.resolver.ProcessRollResult(s.ctx, draw, nil, flags)
	s.Require().NoError(err)

	s.True(res.NeedsChoice)
	s.Nil(res.Item)
	s.Equal("Choose one option:", res.Choice.Title)
	s.Equal(1, res.Choice.ChooseCount)
	s.Equal([]string{shadowdark.LabelDistributeToStats, "Weapon Mastery"}, labels(res.Choice))
	s.Equal(talents.HandlerStatDistribution, res.Choice.Options[0].Action)
	s.Equal(talents.HandlerWeaponMastery, res.Choice.Options[1].Action)
}

func (s *ResolverTestSuite) TestDistributionPhrasesNeverDuplicate() {
	draw := s.draw(
		text(12, 12, "+1 to two stats"),
		text(12, 12, "Distribute +2 points to any stats"),
		text(12, 12, "+2 points to distribute to stats"),
		text(12, 12, "Roll a patron boon"),
		text(12, 12, "Patron Boon"),
		text(12, 12, ""),
	)

	for _, flags := range []filters.Flags{
		filters.DropChooseOne | filters.ChooseOne | filters.HasDistributeTable,
		filters.WarlockComposite,
	} {
		s.Run(flags.String(), func() {
			res, err := s.resolver.ProcessRollResult(s.ctx, draw, nil, flags)
			s.Require().NoError(err)
			s.Equal([]string{shadowdark.LabelDistributeToStats, shadowdark.LabelPatronBoon}, labels(res.Choice))
			s.Equal(shadowdark.LabelChooseOne, res.Choice.Title)
		})
	}
}

func (s *ResolverTestSuite) TestOptionsNeverHaveEmptyLabels() {
	table := fighterTable()
	for total := 2; total <= 12; total++ {
		for _, flags := range []filters.Flags{
			filters.ChooseTwoInstead,
			filters.DropChooseOne | filters.ChooseOne | filters.HasDistributeTable,
			filters.DropChooseOne | filters.ChooseOne,
			filters.WarlockComposite,
		} {
			draw := &tables.Draw{TableID: "table-fighter-talents", Total: total, Results: table.Matching(total)}
			res, err := s.resolver.ProcessRollResult(s.ctx, draw, table, flags)
			s.Require().NoError(err)
			s.Require().NotNil(res.Choice)
			for _, o := range res.Choice.Options {
				s.NotEmpty(o.Label)
				s.NotEqual("Unknown Option", o.Label)
			}
		}
	}
}

func (s *ResolverTestSuite) TestChooseOneKeepsEntriesVerbatim() {
	draw := s.draw(
		text(5, 5, "Choose one:"),
		text(5, 5, "+2 to Intelligence"),
		text(5, 5, "+1 to wizard spellcasting checks"),
		text(5, 5, "  "),
	)

	res, err := s.resolver.ProcessRollResult(s.ctx, draw, nil, filters.DropChooseOne|filters.ChooseOne)
	s.Require().NoError(err)
	s.Equal("Choose one:", res.Choice.Title)
	s.Equal([]string{"+2 to Intelligence", "+1 to wizard spellcasting checks"}, labels(res.Choice))
}

func (s *ResolverTestSuite) TestChooseTwoInsteadOffersWholeTable() {
	table := fighterTable()
	draw := &tables.Draw{TableID: "table-fighter-talents", Total: 2, Results: table.Matching(2)}
	flags := filters.ChooseTwoInstead | filters.DropChooseOne | filters.ChooseOne | filters.HasDistributeTable

	res, err := s.resolver.ProcessRollResult(s.ctx, draw, table, flags)
	s.Require().NoError(err)
	s.Equal(2, res.Choice.ChooseCount)
	s.Equal([]string{
		"Gain Weapon Mastery with one additional weapon type",
		"+1 to melee and ranged attacks",
		"+2 to Strength, Dexterity, or Constitution",
		"Choose one kind of armor. You get +1 AC from that armor",
		"Weapon Mastery",
		"+2 points to distribute to stats",
		"Armor Mastery",
	}, labels(res.Choice))
	s.Equal("talent-armor-mastery", res.Choice.Options[6].DocumentID)
	s.Equal("+1 AC with one armor", res.Choice.Options[6].Description)
}

func (s *ResolverTestSuite) TestChooseTwoInsteadSkipsSelfReferencingRow() {
	table := &shadowdark.RollTable{
		Formula: "2d6",
		Results: []shadowdark.TableResult{
			text(2, 2, "Choose two talents from this table"),
			text(3, 6, "+1 to witch spellcasting checks"),
			text(7, 9, "+2 to Intelligence or Charisma stat"),
			text(10, 11, "Learn one additional witch spell of any tier you know"),
			text(12, 12, "Choose one option:"),
			text(12, 12, "+1 to witch spellcasting checks"),
			text(12, 12, "+2 points to distribute to stats"),
		},
	}
	draw := &tables.Draw{TableID: "table-witch-talents", Total: 2, Results: table.Matching(2)}

	res, err := s.resolver.ProcessRollResult(s.ctx, draw, table, filters.ChooseTwoInstead)
	s.Require().NoError(err)
	s.Require().True(res.NeedsChoice)
	s.Equal(2, res.Choice.ChooseCount)
	s.Equal([]string{
		"+1 to witch spellcasting checks",
		"+2 to Intelligence or Charisma stat",
		"Learn one additional witch spell of any tier you know",
		"+2 points to distribute to stats",
	}, labels(res.Choice))
}

func (s *ResolverTestSuite) TestSynthesizedItems() {
	testCases := []struct {
		name       string
		flags      filters.Flags
		wantName   string
		wantAction string
		wantConfig map[string]any
	}{
		{
			name:       "distribute once",
			flags:      filters.DistributeOnce,
			wantName:   shadowdark.LabelDistributeToStats,
			wantAction: talents.HandlerStatDistribution,
			wantConfig: map[string]any{
				talents.ConfigMaxPerStat: 1,
				talents.ConfigPoints:     2,
				talents.ConfigSelection:  talents.SelectionStats,
			},
		},
		{
			name:       "distribute any",
			flags:      filters.DistributeAny,
			wantName:   shadowdark.LabelDistributeToStats,
			wantAction: talents.HandlerStatDistribution,
			wantConfig: map[string]any{
				talents.ConfigPoints:    2,
				talents.ConfigSelection: talents.SelectionStats,
			},
		},
		{
			name:       "boon once",
			flags:      filters.BoonOnce,
			wantName:   shadowdark.LabelPatronBoon,
			wantAction: talents.HandlerPatronBoon,
			wantConfig: map[string]any{talents.ConfigRolls: 1},
		},
		{
			name:       "boon any",
			flags:      filters.BoonAny | filters.DropBlank,
			wantName:   shadowdark.LabelPatronBoon,
			wantAction: talents.HandlerPatronBoon,
			wantConfig: map[string]any{talents.ConfigRolls: 1},
		},
		{
			name:       "boon twice",
			flags:      filters.BoonTwice,
			wantName:   shadowdark.LabelPatronBoonTwice,
			wantAction: talents.HandlerPatronBoon,
			wantConfig: map[string]any{talents.ConfigRolls: 2},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res, err := s.resolver.ProcessRollResult(s.ctx, s.draw(text(7, 9, "+1 to two stats")), nil, tc.flags)
			s.Require().NoError(err)
			s.False(res.NeedsChoice)
			s.Require().NotNil(res.Item)
			s.Equal(tc.wantName, res.Item.Name)
			s.Equal(tc.wantAction, res.Item.Action)
			s.Equal(tc.wantConfig, res.Item.Config)
		})
	}
}

func (s *ResolverTestSuite) TestPlainItems() {
	res, err := s.resolver.ProcessRollResult(s.ctx, s.draw(text(3, 6, "+1 to melee and ranged attacks")), nil, filters.FlagNone)
	s.Require().NoError(err)
	s.Equal("+1 to melee and ranged attacks", res.Item.Name)
	s.Equal(shadowdark.ItemTalent, res.Item.Type)
	s.Empty(res.Item.Action)

	boonDraw := &tables.Draw{
		TableID: "table-boons",
		Target:  shadowdark.ItemBoon,
		Results: []shadowdark.TableResult{
			{Range: [2]int{5, 5}, Kind: shadowdark.ResultDocument, Text: "Serpent", DocumentID: "boon-eye"},
		},
	}
	res, err = s.resolver.ProcessRollResult(s.ctx, boonDraw, nil, filters.FlagNone)
	s.Require().NoError(err)
	s.Equal("Eye of the Serpent", res.Item.Name)
	s.Equal(shadowdark.ItemBoon, res.Item.Type)
	s.Equal("boon-eye", res.Item.SourceID)

	unnamed := s.draw(shadowdark.TableResult{
		Range: [2]int{12, 12}, Kind: shadowdark.ResultDocument, Text: "Armor Mastery", DocumentID: "talent-armor-mastery",
	})
	res, err = s.resolver.ProcessRollResult(s.ctx, unnamed, nil, filters.FlagNone)
	s.Require().NoError(err)
	s.Equal("Armor Mastery", res.Item.Name)
	s.Equal(talents.HandlerArmorMastery, res.Item.Action)
}

func (s *ResolverTestSuite) TestMissingDocumentIsLookupError() {
	draw := s.draw(shadowdark.TableResult{
		Range: [2]int{12, 12}, Kind: shadowdark.ResultDocument, Text: "Gone", DocumentID: "talent-gone",
	})
	_, err := s.resolver.ProcessRollResult(s.ctx, draw, nil, filters.FlagNone)
	s.True(errors.IsNotFound(err))
}

func (s *ResolverTestSuite) TestRollClassifiesBySource() {
	draw, res, err := s.resolver.Roll(s.ctx, "table-fighter-talents", "class-fighter", shadowdark.ItemTalent)
	s.Require().NoError(err)

	s.Equal(12, draw.Total)
	s.Len(draw.Results, 4)
	s.True(res.NeedsChoice)
	s.Equal("Choose one option:", res.Choice.Title)
	s.Equal([]string{"Weapon Mastery", shadowdark.LabelDistributeToStats, "Armor Mastery"}, labels(res.Choice))

	s.roller.values = []int{2, 2}
	draw, res, err = s.resolver.Roll(s.ctx, "table-fighter-talents", "class-fighter", shadowdark.ItemTalent)
	s.Require().NoError(err)
	s.Equal(4, draw.Total)
	s.Equal("+1 to melee and ranged attacks", res.Item.Name)

	_, _, err = s.resolver.Roll(s.ctx, "table-missing", "class-fighter", shadowdark.ItemTalent)
	s.True(errors.IsNotFound(err))
}

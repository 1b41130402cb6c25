package documents_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/filters"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/tables"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

// ContentPackTestSuite checks the bundled content directory against the
// table patterns the resolver classifies with
type ContentPackTestSuite struct {
	suite.Suite
	ctx   context.Context
	store documents.Store
}

func TestContentPackSuite(t *testing.T) {
	suite.Run(t, new(ContentPackTestSuite))
}

func (s *ContentPackTestSuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.store, err = documents.NewStore(&documents.Config{
		Source: documents.NewYAMLSource(os.DirFS("../../../content")),
	})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Initialize(s.ctx))
}

func (s *ContentPackTestSuite) TestReferencesResolve() {
	docs, err := s.store.GetAllDocuments(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(docs)

	for _, doc := range docs {
		for key := range doc.Payload {
			ids := doc.Refs(key)
			if id := doc.RefField(key); id != "" {
				ids = append(ids, id)
			}
			for _, id := range ids {
				_, err := s.store.GetDocument(s.ctx, id)
				s.NoError(err, "%s.%s references %s", doc.ID, key, id)
			}
		}
		if doc.Table == nil {
			continue
		}
		for _, result := range doc.Table.Results {
			if result.IsDocument() {
				_, err := s.store.GetDocument(s.ctx, result.DocumentID)
				s.NoError(err, "%s result %q", doc.ID, result.Text)
			}
		}
	}
}

func (s *ContentPackTestSuite) TestPatternsMatchTables() {
	classifier, err := filters.Default()
	s.Require().NoError(err)

	for _, source := range classifier.Sources() {
		doc, err := s.store.GetDocument(s.ctx, source)
		s.Require().NoError(err, "pattern source %s", source)

		tableID := doc.RefField(shadowdark.PayloadTalentTable)
		if doc.Kind == shadowdark.KindPatron {
			tableID = doc.RefField(shadowdark.PayloadBoonTable)
		}
		s.Require().NotEmpty(tableID, "%s names no table", source)

		table, err := s.store.GetTable(s.ctx, tableID)
		s.Require().NoError(err)

		pattern, ok := classifier.Pattern(source)
		s.Require().True(ok)
		s.Equal(pattern.Formula, table.Formula, source)
		for _, entry := range pattern.Entries {
			s.NotEmpty(table.Matching(entry.Range[0]), "%s has nothing at %d", tableID, entry.Range[0])
			s.NotEmpty(table.Matching(entry.Range[1]), "%s has nothing at %d", tableID, entry.Range[1])
		}
	}
}

func (s *ContentPackTestSuite) TestSpellsByClass() {
	spells, err := s.store.GetSpellsBySource(s.ctx, "Wizard")
	s.Require().NoError(err)

	names := make([]string, 0, len(spells))
	for _, spell := range spells {
		names = append(names, spell.Name)
	}
	s.Contains(names, "Magic Missile")
	s.Contains(names, "Light")
	s.NotContains(names, "Cure Wounds")
}

type onesRoller struct{}

func (onesRoller) Roll(_ int) (int, error) { return 1, nil }

func (onesRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

func (s *ContentPackTestSuite) TestWitchChooseTwoOmitsTriggerRow() {
	classifier, err := filters.Default()
	s.Require().NoError(err)
	registry, err := talents.NewRegistry(&talents.Config{Documents: s.store})
	s.Require().NoError(err)
	resolver, err := tables.NewResolver(&tables.Config{
		Documents:  s.store,
		Classifier: classifier,
		Registry:   registry,
		Roller:     onesRoller{},
	})
	s.Require().NoError(err)

	draw, res, err := resolver.Roll(s.ctx, "table-witch-talents", "class-witch", shadowdark.ItemTalent)
	s.Require().NoError(err)
	s.Equal(2, draw.Total)
	s.Require().True(res.NeedsChoice)
	s.Equal(2, res.Choice.ChooseCount)
	s.NotEmpty(res.Choice.Options)
	for _, opt := range res.Choice.Options {
		s.NotContains(strings.ToLower(opt.Label), "from this table")
		s.NotContains(strings.ToLower(opt.Label), "choose")
	}
}

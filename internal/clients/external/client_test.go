package external_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/clients/external"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
	"github.com/KirkDiggler/rpg-companion/internal/testutils"
)

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	mr     *miniredis.Miniredis
	client external.Client
	writer *documents.RedisWriter
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()

	redisClient, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	var err error
	s.client, err = external.New(&external.Config{
		Client:      redisClient,
		IDGenerator: idgen.NewSequential("id"),
	})
	s.Require().NoError(err)

	s.writer, err = documents.NewRedisWriter(&documents.RedisConfig{Client: redisClient})
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TestNewValidatesConfig() {
	_, err := external.New(&external.Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ClientTestSuite) TestFetchDocument() {
	_, err := s.writer.Import(s.ctx, []*shadowdark.Document{
		{ID: "class-fighter", Kind: shadowdark.KindClass, Name: "Fighter", Payload: map[string]any{"hitDie": "1d8"}},
	})
	s.Require().NoError(err)

	doc, err := s.client.FetchDocument(s.ctx, "class-fighter")
	s.Require().NoError(err)
	s.Equal("Fighter", doc.Name)
	s.Equal("1d8", doc.String(shadowdark.PayloadHitDie))

	_, err = s.client.FetchDocument(s.ctx, "class-bard")
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestCreateAndGetActor() {
	created, err := s.client.CreateActor(s.ctx, &shadowdark.Actor{
		Name:    "Brannoc",
		Level:   1,
		ClassID: "class-fighter",
		Stats:   map[string]int{shadowdark.StatSTR: 16},
		HP:      shadowdark.HitPoints{Value: 9, Max: 9},
		Items: []*shadowdark.Item{
			{Name: "Weapon Mastery (Longsword)", Type: shadowdark.ItemTalent, Level: 1},
		},
	})
	s.Require().NoError(err)
	s.Equal("id_1", created.ID)
	s.Require().Len(created.Items, 1)
	s.Equal("id_2", created.Items[0].ID)

	got, err := s.client.GetActor(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Brannoc", got.Name)
	s.Equal(16, got.Stats[shadowdark.StatSTR])
	s.Require().Len(got.Items, 1)
	s.Equal("Weapon Mastery (Longsword)", got.Items[0].Name)

	_, err = s.client.CreateActor(s.ctx, &shadowdark.Actor{ID: created.ID})
	s.True(errors.IsAlreadyExists(err))

	_, err = s.client.GetActor(s.ctx, "missing")
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestUpdateActor() {
	created, err := s.client.CreateActor(s.ctx, &shadowdark.Actor{ID: "actor_1", Name: "Ilsa", Level: 2})
	s.Require().NoError(err)

	err = s.client.UpdateActor(s.ctx, created.ID, map[string]any{
		"level":     3,
		"hp.max":    14,
		"hp.value":  14,
		"stats.int": 17,
	})
	s.Require().NoError(err)

	got, err := s.client.GetActor(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(3, got.Level)
	s.Equal(shadowdark.HitPoints{Value: 14, Max: 14}, got.HP)
	s.Equal(17, got.Stats[shadowdark.StatINT])
	s.Equal("Ilsa", got.Name)

	testCases := []struct {
		name   string
		fields map[string]any
	}{
		{name: "unknown field", fields: map[string]any{"alignment": "chaotic"}},
		{name: "id is immutable", fields: map[string]any{"id": "other"}},
		{name: "wrong type", fields: map[string]any{"level": "three"}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.client.UpdateActor(s.ctx, created.ID, tc.fields)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}

	err = s.client.UpdateActor(s.ctx, "missing", map[string]any{"level": 2})
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestCreateActorItems() {
	_, err := s.client.CreateActor(s.ctx, &shadowdark.Actor{ID: "actor_1", Name: "Ilsa"})
	s.Require().NoError(err)

	items, err := s.client.CreateActorItems(s.ctx, "actor_1", []*shadowdark.Item{
		{Name: "Sleep", Type: shadowdark.ItemSpell},
		{ID: "keep-me", Name: "Elvish", Type: shadowdark.ItemLanguage},
	})
	s.Require().NoError(err)
	s.Equal("id_1", items[0].ID)
	s.Equal("keep-me", items[1].ID)

	got, err := s.client.GetActor(s.ctx, "actor_1")
	s.Require().NoError(err)
	s.Len(got.Items, 2)

	_, err = s.client.CreateActorItems(s.ctx, "missing", items)
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestRedisDownIsUnavailable() {
	s.mr.Close()

	_, err := s.client.GetActor(s.ctx, "actor_1")
	s.True(errors.IsUnavailable(err))
}

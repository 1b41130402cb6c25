package advancementsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
	"github.com/KirkDiggler/rpg-companion/internal/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.Manual
	mr    *miniredis.Miniredis
	repos map[string]advancementsession.Repository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	redisRepo, err := advancementsession.NewRedisRepository(&advancementsession.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)

	s.repos = map[string]advancementsession.Repository{
		"redis":  redisRepo,
		"memory": advancementsession.NewMemoryRepository(s.clock),
	}
}

func (s *RepositoryTestSuite) newState(id string) *advancementsession.State {
	return &advancementsession.State{
		ID:          id,
		ActorID:     "actor_1",
		ClassID:     "class-fighter",
		TargetLevel: 3,
		Phase:       advancementsession.PhaseRolling,
		RolledTalents: []*shadowdark.Item{
			{ID: "item_1", Name: "Weapon Mastery", Type: shadowdark.ItemTalent},
		},
		WeaponMasterySelection: map[string]string{"item_1": "longsword"},
	}
}

func (s *RepositoryTestSuite) TestNewRedisRepositoryValidatesConfig() {
	_, err := advancementsession.NewRedisRepository(&advancementsession.Config{Clock: s.clock})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	for name, repo := range s.repos {
		s.Run(name, func() {
			out, err := repo.Create(s.ctx, advancementsession.CreateInput{State: s.newState("adv_" + name)})
			s.Require().NoError(err)
			s.Equal(s.clock.Now(), out.State.CreatedAt)
			s.Equal(s.clock.Now().Add(advancementsession.DefaultTTL), out.State.ExpiresAt)

			got, err := repo.Get(s.ctx, advancementsession.GetInput{ID: "adv_" + name})
			s.Require().NoError(err)
			s.Equal("class-fighter", got.State.ClassID)
			s.Require().Len(got.State.RolledTalents, 1)
			s.Equal("longsword", got.State.WeaponMasterySelection["item_1"])

			_, err = repo.Create(s.ctx, advancementsession.CreateInput{State: s.newState("adv_" + name)})
			s.True(errors.IsAlreadyExists(err))
		})
	}
}

func (s *RepositoryTestSuite) TestGetMissing() {
	for name, repo := range s.repos {
		s.Run(name, func() {
			_, err := repo.Get(s.ctx, advancementsession.GetInput{ID: "nope"})
			s.True(errors.IsNotFound(err))

			_, err = repo.Get(s.ctx, advancementsession.GetInput{})
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RepositoryTestSuite) TestUpdateKeepsExpiry() {
	for name, repo := range s.repos {
		s.Run(name, func() {
			id := "adv_update_" + name
			out, err := repo.Create(s.ctx, advancementsession.CreateInput{State: s.newState(id), TTL: time.Hour})
			s.Require().NoError(err)

			state := out.State
			state.HPRoll = &advancementsession.HPRoll{Formula: "1d8", Rolled: 5, Modifier: 1, Value: 6}
			s.Require().NoError(repo.Update(s.ctx, state))

			got, err := repo.Get(s.ctx, advancementsession.GetInput{ID: id})
			s.Require().NoError(err)
			s.Equal(6, got.State.HPRoll.Value)
			s.Equal(out.State.ExpiresAt, got.State.ExpiresAt)

			missing := s.newState("adv_missing_" + name)
			missing.ExpiresAt = s.clock.Now().Add(time.Minute)
			s.True(errors.IsNotFound(repo.Update(s.ctx, missing)))
		})
	}
}

func (s *RepositoryTestSuite) TestExpiry() {
	for name, repo := range s.repos {
		s.Run(name, func() {
			id := "adv_expire_" + name
			out, err := repo.Create(s.ctx, advancementsession.CreateInput{State: s.newState(id), TTL: time.Minute})
			s.Require().NoError(err)

			s.clock.Advance(2 * time.Minute)

			_, err = repo.Get(s.ctx, advancementsession.GetInput{ID: id})
			s.True(errors.IsNotFound(err))

			err = repo.Update(s.ctx, out.State)
			s.True(errors.IsFailedPrecondition(err))
		})
	}
}

func (s *RepositoryTestSuite) TestRedisKeyExpires() {
	repo := s.repos["redis"]
	_, err := repo.Create(s.ctx, advancementsession.CreateInput{State: s.newState("adv_ttl"), TTL: time.Minute})
	s.Require().NoError(err)
	s.True(s.mr.Exists("advancement_session:adv_ttl"))

	s.mr.FastForward(2 * time.Minute)
	s.False(s.mr.Exists("advancement_session:adv_ttl"))
}

func (s *RepositoryTestSuite) TestDelete() {
	for name, repo := range s.repos {
		s.Run(name, func() {
			id := "adv_delete_" + name
			_, err := repo.Create(s.ctx, advancementsession.CreateInput{State: s.newState(id)})
			s.Require().NoError(err)

			out, err := repo.Delete(s.ctx, advancementsession.DeleteInput{ID: id})
			s.Require().NoError(err)
			s.True(out.Deleted)

			out, err = repo.Delete(s.ctx, advancementsession.DeleteInput{ID: id})
			s.Require().NoError(err)
			s.False(out.Deleted)
		})
	}
}

func (s *RepositoryTestSuite) TestPendingChoiceRemaining() {
	var nilChoice *advancementsession.PendingChoice
	s.Equal(0, nilChoice.Remaining())

	choice := &advancementsession.PendingChoice{Choice: shadowdark.Choice{ChooseCount: 2}, Picked: 1}
	s.Equal(1, choice.Remaining())
}

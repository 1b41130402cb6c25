package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/filters"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/tables"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/clients/external"
	"github.com/KirkDiggler/rpg-companion/internal/config"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/advancement"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
	advancementsession "github.com/KirkDiggler/rpg-companion/internal/repositories/advancement_session"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

// app holds the wired service graph
type app struct {
	redis   redisclient.Client
	docs    documents.Store
	handler *v1alpha1.Handler
}

func (a *app) Close() error {
	return a.redis.Close()
}

// newApp builds every dependency the advancement handler needs
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	client, err := redisclient.NewClientFromURL(cfg.RedisURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
	}

	a := &app{redis: client}
	if err := a.wire(ctx, cfg, logger); err != nil {
		_ = client.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	source, err := contentSource(cfg, a.redis)
	if err != nil {
		return err
	}

	a.docs, err = documents.NewStore(&documents.Config{Source: source})
	if err != nil {
		return errors.Wrap(err, "failed to create document store")
	}
	if err := a.docs.Initialize(ctx); err != nil {
		return errors.Wrap(err, "failed to load content")
	}

	classifier, err := filters.Default()
	if err != nil {
		return errors.Wrap(err, "failed to load table patterns")
	}

	registry, err := talents.NewRegistry(&talents.Config{Documents: a.docs})
	if err != nil {
		return errors.Wrap(err, "failed to create talent registry")
	}

	resolver, err := tables.NewResolver(&tables.Config{
		Documents:  a.docs,
		Classifier: classifier,
		Registry:   registry,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create table resolver")
	}

	sessions, err := advancementsession.NewRedisRepository(&advancementsession.Config{Client: a.redis})
	if err != nil {
		return errors.Wrap(err, "failed to create session repository")
	}

	actors, err := external.New(&external.Config{
		Client:      a.redis,
		IDGenerator: idgen.NewUUID("actor"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create actor client")
	}

	bus := events.NewBus()
	bus.SubscribeFunc(advancement.EventFinalized, 0, func(ctx context.Context, e events.Event) error {
		logger.InfoContext(ctx, "advancement finalized", "session_id", e.Source().GetID())
		return nil
	})

	service, err := advancement.NewOrchestrator(&advancement.Config{
		Documents:        a.docs,
		Resolver:         resolver,
		Registry:         registry,
		SessionRepo:      sessions,
		External:         actors,
		IDGenerator:      idgen.NewUUID("adv"),
		EventBus:         bus,
		ExhaustionPolicy: advancement.ExhaustionPolicy(cfg.RerollExhaustion),
		SessionTTL:       cfg.SessionTTL,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create advancement orchestrator")
	}

	a.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		AdvancementService: service,
		Documents:          a.docs,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create advancement handler")
	}

	return nil
}

// contentSource picks where documents are loaded from
func contentSource(cfg *config.Config, client redisclient.Client) (documents.Source, error) {
	switch cfg.ContentSource {
	case config.ContentSourceRedis:
		source, err := documents.NewRedisSource(&documents.RedisConfig{Client: client})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis content source")
		}
		return source, nil
	default:
		return documents.NewYAMLSource(os.DirFS(cfg.ContentDir)), nil
	}
}

// loadConfig reads the environment and validates it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

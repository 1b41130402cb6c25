package external

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

const (
	// Key patterns: actor:{id} and actor:{id}:items
	actorKeyPrefix   = "actor:"
	actorItemsSuffix = ":items"

	errActorIDEmpty  = "actor ID cannot be empty"
	errActorNotFound = "actor not found"
)

// Config holds the configuration for the redis-backed client
type Config struct {
	Client      redisclient.Client
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type client struct {
	redis redisclient.Client
	idGen idgen.Generator
}

// New creates a client backed by the shared redis store
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &client{
		redis: cfg.Client,
		idGen: cfg.IDGenerator,
	}, nil
}

// Ensure client implements Client
var _ Client = (*client)(nil)

func actorKey(id string) string {
	return actorKeyPrefix + id
}

func itemsKey(id string) string {
	return actorKeyPrefix + id + actorItemsSuffix
}

func unavailable(err error, message string) error {
	return errors.WrapWithCode(err, errors.CodeUnavailable, message)
}

func (c *client) FetchDocument(ctx context.Context, id string) (*shadowdark.Document, error) {
	if id == "" {
		return nil, errors.InvalidArgument("document ID cannot be empty")
	}

	data, err := c.redis.Get(ctx, documents.DocumentKey(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFound("document not found").WithMeta("document_id", id)
	}
	if err != nil {
		return nil, unavailable(err, "failed to fetch document")
	}

	var doc shadowdark.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal document %s", id)
	}
	return &doc, nil
}

func (c *client) GetActor(ctx context.Context, actorID string) (*shadowdark.Actor, error) {
	if actorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	pipe := c.redis.Pipeline()
	actorCmd := pipe.Get(ctx, actorKey(actorID))
	itemsCmd := pipe.LRange(ctx, itemsKey(actorID), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, unavailable(err, "failed to load actor")
	}

	data, err := actorCmd.Bytes()
	if err == redis.Nil {
		return nil, errors.NotFound(errActorNotFound).WithMeta("actor_id", actorID)
	}
	if err != nil {
		return nil, unavailable(err, "failed to load actor")
	}

	var actor shadowdark.Actor
	if err := json.Unmarshal(data, &actor); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal actor %s", actorID)
	}

	for _, raw := range itemsCmd.Val() {
		var item shadowdark.Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal item of actor %s", actorID)
		}
		actor.Items = append(actor.Items, &item)
	}
	return &actor, nil
}

func (c *client) CreateActor(ctx context.Context, actor *shadowdark.Actor) (*shadowdark.Actor, error) {
	if actor == nil {
		return nil, errors.InvalidArgument("actor cannot be nil")
	}

	created := *actor
	if created.ID == "" {
		created.ID = c.idGen.Generate()
	}
	items := c.assignItemIDs(created.Items)
	created.Items = nil

	data, err := json.Marshal(&created)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal actor")
	}
	encoded, err := encodeItems(items)
	if err != nil {
		return nil, err
	}

	ok, err := c.redis.SetNX(ctx, actorKey(created.ID), data, 0).Result()
	if err != nil {
		return nil, unavailable(err, "failed to create actor")
	}
	if !ok {
		return nil, errors.AlreadyExistsf("actor %s already exists", created.ID)
	}
	if len(encoded) > 0 {
		if err := c.redis.RPush(ctx, itemsKey(created.ID), encoded...).Err(); err != nil {
			return nil, unavailable(err, "failed to store actor items")
		}
	}

	slog.InfoContext(ctx, "actor created",
		"actor_id", created.ID,
		"name", created.Name,
		"items", len(items))

	created.Items = items
	return &created, nil
}

func (c *client) UpdateActor(ctx context.Context, actorID string, fields map[string]any) error {
	if actorID == "" {
		return errors.InvalidArgument(errActorIDEmpty)
	}
	if len(fields) == 0 {
		return nil
	}

	key := actorKey(actorID)
	err := c.redis.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return errors.NotFound(errActorNotFound).WithMeta("actor_id", actorID)
		}
		if err != nil {
			return unavailable(err, "failed to load actor")
		}

		updated, err := applyFieldPaths(data, fields)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return unavailable(err, "failed to update actor")
		}
		return nil
	}, key)
	if err == redis.TxFailedErr {
		return errors.New(errors.CodeAborted, "actor changed during update").WithMeta("actor_id", actorID)
	}
	return err
}

// applyFieldPaths sets dotted paths on an actor document and checks the
// result still decodes as an actor
func applyFieldPaths(data []byte, fields map[string]any) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode actor")
	}

	for path, value := range fields {
		parts := strings.Split(path, ".")
		if path == "" || parts[0] == "id" || parts[0] == "items" {
			return nil, errors.InvalidArgumentf("actor field %q cannot be updated", path).WithMeta("path", path)
		}
		node := doc
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[part] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode actor")
	}

	dec := json.NewDecoder(bytes.NewReader(out))
	dec.DisallowUnknownFields()
	var check shadowdark.Actor
	if err := dec.Decode(&check); err != nil {
		return nil, errors.InvalidArgumentf("invalid actor update: %v", err)
	}
	return out, nil
}

func (c *client) CreateActorItems(
	ctx context.Context, actorID string, items []*shadowdark.Item,
) ([]*shadowdark.Item, error) {
	if actorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	exists, err := c.redis.Exists(ctx, actorKey(actorID)).Result()
	if err != nil {
		return nil, unavailable(err, "failed to check actor")
	}
	if exists == 0 {
		return nil, errors.NotFound(errActorNotFound).WithMeta("actor_id", actorID)
	}

	created := c.assignItemIDs(items)
	encoded, err := encodeItems(created)
	if err != nil {
		return nil, err
	}
	if len(encoded) == 0 {
		return created, nil
	}
	if err := c.redis.RPush(ctx, itemsKey(actorID), encoded...).Err(); err != nil {
		return nil, unavailable(err, "failed to store actor items")
	}

	slog.InfoContext(ctx, "actor items created",
		"actor_id", actorID,
		"items", len(created))
	return created, nil
}

func (c *client) assignItemIDs(items []*shadowdark.Item) []*shadowdark.Item {
	out := make([]*shadowdark.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		cp := item.Clone()
		if cp.ID == "" {
			cp.ID = c.idGen.Generate()
		}
		out = append(out, cp)
	}
	return out
}

func encodeItems(items []*shadowdark.Item) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal item %s", item.Name)
		}
		out = append(out, data)
	}
	return out, nil
}

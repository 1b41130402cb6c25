package documents

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
)

const (
	// Key pattern: document:{id}
	documentKeyPrefix = "document:"
	// Set of every imported document id
	documentIndexKey = "documents"
)

// DocumentKey returns the redis key a document is stored under
func DocumentKey(id string) string {
	return documentKeyPrefix + id
}

// RedisConfig holds the configuration for the redis pack source and writer
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

// RedisSource reads a pack previously written with RedisWriter
type RedisSource struct {
	client redisclient.Client
}

// NewRedisSource creates a pack source backed by redis
func NewRedisSource(cfg *RedisConfig) (*RedisSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &RedisSource{client: cfg.Client}, nil
}

// Load reads every indexed document, ordered by id
func (r *RedisSource) Load(ctx context.Context) ([]*shadowdark.Document, error) {
	ids, err := r.client.SMembers(ctx, documentIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read document index")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, DocumentKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "failed to read documents")
	}

	docs := make([]*shadowdark.Document, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err == redis.Nil {
			// index entry without a document; skip it
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read document %s", ids[i])
		}

		var doc shadowdark.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal document %s", ids[i])
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// RedisWriter imports packs into redis
type RedisWriter struct {
	client redisclient.Client
}

// NewRedisWriter creates a writer for importing packs
func NewRedisWriter(cfg *RedisConfig) (*RedisWriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &RedisWriter{client: cfg.Client}, nil
}

// Import stores every document and indexes its id. Existing documents with
// the same id are replaced.
func (w *RedisWriter) Import(ctx context.Context, docs []*shadowdark.Document) (int, error) {
	pipe := w.client.TxPipeline()
	count := 0
	for _, doc := range docs {
		if doc == nil || doc.ID == "" {
			continue
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to marshal document %s", doc.ID)
		}
		pipe.Set(ctx, DocumentKey(doc.ID), data, 0)
		pipe.SAdd(ctx, documentIndexKey, doc.ID)
		count++
	}
	if count == 0 {
		return 0, nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Wrap(err, "failed to import documents")
	}
	return count, nil
}

package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories depend on an interface
// that miniredis-backed and real clients both satisfy.
type Client interface {
	redis.UniversalClient
}

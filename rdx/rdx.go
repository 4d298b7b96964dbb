package rdx

import (
	"github.com/redis/go-redis/v9"
)

// Conn stays nil when REDIS_URL is unset; callers fall back to local state.
var Conn *redis.Client

func Init(redisURL string) error {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return err
	}
	Conn = redis.NewClient(opts)
	return nil
}

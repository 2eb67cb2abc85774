package config

import (
	"fmt"

	"github.com/redis/rueidis"
)

// NewRedisClient returns nil without error when addr is empty.
func NewRedisClient(addr string) (rueidis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress:  []string{addr},
			DisableCache: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	return redisClient, nil
}

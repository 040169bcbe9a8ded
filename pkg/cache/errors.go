package cache

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by GetOrMiss when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// GetOrMiss is Get folded into a single error: a miss yields ErrCacheMiss.
func GetOrMiss(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, ErrCacheMiss
	}
	return data, nil
}

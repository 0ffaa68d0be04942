// Package kv provides the session key-value store used for guest carts,
// checkout drafts, pending orders, helpful votes and the compare list.
// Implementations must treat a missing key as ErrNotFound, never as an error
// worth surfacing to the user.
package kv

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

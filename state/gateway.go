package state

import (
	"context"
	"fmt"
)

// Gateway adapts a Store to the tour's string-valued persistence interface.
type Gateway struct {
	store *Store
}

// NewGateway wraps store.
func NewGateway(store *Store) *Gateway {
	return &Gateway{store: store}
}

// Get returns the value stored under key. Non-string values, which only
// appear when the file was edited by hand, are formatted with fmt.
func (g *Gateway) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	val, ok, err := g.store.Get(key)
	if err != nil || !ok {
		return "", false, err
	}
	if val == nil {
		return "", true, nil
	}
	if s, isString := val.(string); isString {
		return s, true, nil
	}
	return fmt.Sprint(val), true, nil
}

// Set stores value under key.
func (g *Gateway) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.store.Set(key, value)
}

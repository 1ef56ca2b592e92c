package cache

import "errors"

var (
	// ErrNotFound indicates that the entity is not in the cache (never fetched or evicted)
	ErrNotFound = errors.New("entity not found in cache")

	// ErrNoChange indicates that a transition left the entity unchanged
	ErrNoChange = errors.New("transition produced no change")
)

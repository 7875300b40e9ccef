// Package kv defines the flat key-value store that holds all durable
// records (entries, users, the public feed index).
//
// The contract is deliberately minimal: get, put, delete on opaque string
// values. There are no transactions, secondary indexes, or conditional
// writes — callers that read-modify-write a value accept the resulting
// lost-update window.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("key not found")

// Store is the flat key-value persistence contract.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error
	// Delete removes the value under key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

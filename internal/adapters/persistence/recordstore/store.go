// Package recordstore persists whole named collections as JSON documents.
// Every save replaces the previous document; the store takes no locks, so
// callers that need read-modify-write atomicity serialise themselves.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names used by the application
const (
	Accounts     = "accounts"
	Queue        = "queue"
	Appointments = "appointments"
	Sessions     = "sessions"
)

// ErrNotFound is returned by Read when no document exists under a name.
var ErrNotFound = errors.New("recordstore: collection not found")

// Store is the raw document contract implemented by every driver.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Driver() string
	Close() error
}

// Load decodes the named collection into T. When nothing is stored under
// name yet, def is written first and then returned.
func Load[T any](ctx context.Context, s Store, name string, def T) (T, error) {
	data, err := s.Read(ctx, name)
	if errors.Is(err, ErrNotFound) {
		if err := Save(ctx, s, name, def); err != nil {
			var zero T
			return zero, err
		}
		return def, nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", name, err)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// Peek decodes the named collection into T without creating it. def is
// returned when nothing is stored under name.
func Peek[T any](ctx context.Context, s Store, name string, def T) (T, error) {
	data, err := s.Read(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", name, err)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// Save encodes v and replaces the named collection with it.
func Save[T any](ctx context.Context, s Store, name string, v T) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.Write(ctx, name, data); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Encode renders a collection the way it is kept on disk: two-space
// indented JSON.
func Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Package storage provides small key/value persistence backends for
// user-owned application state.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// KV is a process-external key/value store.
type KV interface {
	// Get returns the value for key. ok is false when the key has never
	// been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and locates a backend.
type Options struct {
	Backend string
	// Path is a directory for the file backend and a database file for
	// the SQLite backend. Ignored by the memory backend.
	Path string
}

// Open returns the backend named by opts and a function releasing it.
func Open(opts Options) (KV, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		kv, err := NewFileKV(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return kv, noop, nil
	case BackendSQLite:
		kv, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	case BackendMemory:
		return NewMemoryKV(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

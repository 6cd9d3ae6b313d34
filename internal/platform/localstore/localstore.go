// Copyright (c) 2026 Niramaya. All rights reserved.

/*
Package localstore implements a durable document store on the local filesystem.

It is the storage substrate for local mode: each named record is one JSON file
inside a data directory, read and written as a whole value under a fixed key.
This mirrors origin-scoped web storage — whole-document replace, no partial
updates, no conflict detection between concurrent processes sharing the
directory.

Core Responsibilities:

  - Durability: Records survive process restarts.
  - Simplicity: Get/Put/Delete over JSON-serialized whole values.
  - Isolation: Files are created 0600; the directory 0700.

This package must only ever be wired into the local testing backend. It has
no place in a live deployment.
*/
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store reads and writes named JSON documents under a single directory.
//
// # Concurrency
//
// A mutex serializes access within one process. Concurrent processes sharing
// the directory can still overwrite each other's records — accepted for a
// development-only store.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open ensures the data directory exists and returns a ready [*Store].
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("localstore: failed to create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Get reads the named record into target.
//
// # Returns
//   - false, nil when the record does not exist (target untouched).
//   - true, nil when the record was decoded successfully.
func (store *Store) Get(name string, target any) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := os.ReadFile(store.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("localstore_read_failed: %w", err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("localstore_decode_failed: %w", err)
	}

	return true, nil
}

// Put replaces the named record with the JSON serialization of value.
//
// The write goes through a temp file and rename so a crash mid-write never
// leaves a half-serialized record behind.
func (store *Store) Put(name string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore_encode_failed: %w", err)
	}

	target := store.path(name)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("localstore_write_failed: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("localstore_replace_failed: %w", err)
	}

	return nil
}

// Delete removes the named record. Deleting an absent record is not an error.
func (store *Store) Delete(name string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("localstore_delete_failed: %w", err)
	}

	return nil
}

// path maps a record name to its file on disk.
func (store *Store) path(name string) string {
	return filepath.Join(store.dir, name+".json")
}

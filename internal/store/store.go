// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package store provides the BadgerDB-backed document store.
//
// Every entity lives in its own logical collection. Documents are JSON values
// keyed by "<collection>:<id>", so a prefix scan over "<collection>:" yields
// the whole collection. Updates are last-writer-wins; there is no optimistic
// concurrency token.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/voyagecare/voyagecare/internal/logging"
	"github.com/voyagecare/voyagecare/internal/metrics"
)

// ErrNotFound is returned when a document id does not resolve.
var ErrNotFound = errors.New("document not found")

// Store is a collection-oriented wrapper around a single BadgerDB instance.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the document store at path.
// An empty path opens an in-memory store, which is intended for tests.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{})
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// key builds the storage key for a document.
func key(collection, id string) []byte {
	return []byte(collection + ":" + id)
}

// observe records one operation's duration and failure. ErrNotFound is an
// expected outcome, not a store failure.
func observe(operation, collection string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStoreOperation(operation, collection, time.Since(start), err)
}

// Put stores doc under the given collection and id, overwriting any existing
// document with the same id.
func (s *Store) Put(ctx context.Context, collection, id string, doc interface{}) error {
	start := time.Now()

	data, err := json.Marshal(doc)
	if err != nil {
		err = fmt.Errorf("marshal %s document: %w", collection, err)
		observe("put", collection, start, err)
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(collection, id), data)
	})
	observe("put", collection, start, err)
	return err
}

// Get loads the document with the given id into out.
// Returns ErrNotFound when the id does not resolve.
func (s *Store) Get(ctx context.Context, collection, id string, out interface{}) error {
	start := time.Now()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(collection, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s/%s: %w", collection, id, err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	observe("get", collection, start, err)
	return err
}

// Exists reports whether a document with the given id exists.
func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key(collection, id))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the document with the given id.
// Returns ErrNotFound when the id does not resolve, so callers can report a
// 404 without a separate existence check.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		k := key(collection, id)
		if _, err := txn.Get(k); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(k)
	})
	observe("delete", collection, start, err)
	return err
}

// ForEach iterates every document in a collection, invoking fn with the raw
// JSON value. Iteration stops on the first error fn returns.
func (s *Store) ForEach(ctx context.Context, collection string, fn func(val []byte) error) error {
	start := time.Now()
	prefix := []byte(collection + ":")

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
	observe("scan", collection, start, err)
	return err
}

// Count returns the number of documents in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	prefix := []byte(collection + ":")
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// All decodes every document in a collection into a slice of T.
func All[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	var out []T
	err := s.ForEach(ctx, collection, func(val []byte) error {
		var doc T
		if err := json.Unmarshal(val, &doc); err != nil {
			return fmt.Errorf("unmarshal %s document: %w", collection, err)
		}
		out = append(out, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// badgerLogger routes BadgerDB's internal logging through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

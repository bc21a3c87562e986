// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package store

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/metrics"
)

type testDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	N    int    `json:"n"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := testDoc{ID: "a", Name: "bandages", N: 3}
	require.NoError(t, s.Put(ctx, "items", "a", in))

	var out testDoc
	require.NoError(t, s.Get(ctx, "items", "a", &out))
	assert.Equal(t, in, out)
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	s := newTestStore(t)

	var out testDoc
	err := s.Get(context.Background(), "items", "nope", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutOverwritesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "items", "a", testDoc{ID: "a", N: 1}))
	require.NoError(t, s.Put(ctx, "items", "a", testDoc{ID: "a", N: 2}))

	var out testDoc
	require.NoError(t, s.Get(ctx, "items", "a", &out))
	assert.Equal(t, 2, out.N)

	count, err := s.Count(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteMissingReturnsErrNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Delete(ctx, "items", "nope"), ErrNotFound)

	require.NoError(t, s.Put(ctx, "items", "a", testDoc{ID: "a"}))
	require.NoError(t, s.Delete(ctx, "items", "a"))
	assert.ErrorIs(t, s.Delete(ctx, "items", "a"), ErrNotFound)
}

func TestExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "items", "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "items", "a", testDoc{ID: "a"}))
	ok, err = s.Exists(ctx, "items", "a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCollectionsAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "items", "a", testDoc{ID: "a"}))
	require.NoError(t, s.Put(ctx, "item", "b", testDoc{ID: "b"}))
	require.NoError(t, s.Put(ctx, "alerts", "a", testDoc{ID: "a"}))

	// "item" must not be swept up by the "items" prefix scan.
	docs, err := All[testDoc](ctx, s, "items")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)

	count, err := s.Count(ctx, "alerts")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOperationFailuresAreCounted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.StoreOperationErrors.WithLabelValues("put", "items"))
	err := s.Put(ctx, "items", "bad", func() {}) // not marshalable
	require.Error(t, err)
	assert.Equal(t, before+1,
		testutil.ToFloat64(metrics.StoreOperationErrors.WithLabelValues("put", "items")))

	// Not-found reads are expected outcomes, not store failures.
	getBefore := testutil.ToFloat64(metrics.StoreOperationErrors.WithLabelValues("get", "items"))
	var out testDoc
	require.ErrorIs(t, s.Get(ctx, "items", "nope", &out), ErrNotFound)
	assert.Equal(t, getBefore,
		testutil.ToFloat64(metrics.StoreOperationErrors.WithLabelValues("get", "items")))
}

func TestAllDecodesEveryDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, d := range []testDoc{{ID: "a", N: 1}, {ID: "b", N: 2}, {ID: "c", N: 3}} {
		require.NoError(t, s.Put(ctx, "items", d.ID, d))
	}

	docs, err := All[testDoc](ctx, s, "items")
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	total := 0
	for _, d := range docs {
		total += d.N
	}
	assert.Equal(t, 6, total)
}

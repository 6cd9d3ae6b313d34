// Copyright (c) 2026 Niramaya. All rights reserved.

package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/platform/localstore"
)

type testRecord struct {
	Email string `json:"email"`
	Count int    `json:"count"`
}

/*
TestStore_PutGet verifies the whole-document round trip.
*/
func TestStore_PutGet(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	in := testRecord{Email: "alice@example.com", Count: 3}
	require.NoError(t, store.Put("record", in))

	var out testRecord
	found, err := store.Get("record", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

/*
TestStore_GetMissing verifies that an absent record reports found=false
without touching the target.
*/
func TestStore_GetMissing(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	out := testRecord{Email: "unchanged"}
	found, err := store.Get("nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "unchanged", out.Email)
}

/*
TestStore_Replace verifies that Put is a whole-document replace.
*/
func TestStore_Replace(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("record", testRecord{Email: "v1"}))
	require.NoError(t, store.Put("record", testRecord{Email: "v2"}))

	var out testRecord
	found, err := store.Get("record", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", out.Email)
}

/*
TestStore_Delete verifies deletion and its idempotency.
*/
func TestStore_Delete(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("record", testRecord{Email: "x"}))
	require.NoError(t, store.Delete("record"))

	var out testRecord
	found, err := store.Get("record", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again must not fail.
	assert.NoError(t, store.Delete("record"))
}

/*
TestStore_SurvivesReopen verifies durability across store instances,
mirroring a page reload in the original environment.
*/
func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := localstore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put("record", testRecord{Email: "persisted", Count: 7}))

	second, err := localstore.Open(dir)
	require.NoError(t, err)

	var out testRecord
	found, err := second.Get("record", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, out.Count)
}
